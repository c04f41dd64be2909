package chunker

import "strings"

// DefaultSentencesPerParagraph is the paragraph size used when none is configured.
const DefaultSentencesPerParagraph = 4

const paragraphBreak = "\n\n"

// ParagraphChunker groups consecutive sentences into fixed-size paragraphs.
type ParagraphChunker struct {
	sentencesPerParagraph int
}

func NewParagraphChunker(sentencesPerParagraph int) *ParagraphChunker {
	if sentencesPerParagraph <= 0 {
		sentencesPerParagraph = DefaultSentencesPerParagraph
	}
	return &ParagraphChunker{sentencesPerParagraph: sentencesPerParagraph}
}

// SentencesPerParagraph returns the configured group size.
func (c *ParagraphChunker) SentencesPerParagraph() int { return c.sentencesPerParagraph }

// Chunk splits sentences into groups of the configured size. The last group
// may be shorter. Sentences are not copied.
func (c *ParagraphChunker) Chunk(sentences []string) [][]string {
	var paragraphs [][]string
	for i := 0; i < len(sentences); i += c.sentencesPerParagraph {
		end := i + c.sentencesPerParagraph
		if end > len(sentences) {
			end = len(sentences)
		}
		paragraphs = append(paragraphs, sentences[i:end])
	}
	return paragraphs
}

// SplitParagraphs splits text on every "\n\n". Paragraphs keep their
// surrounding whitespace; whitespace-only pieces are dropped.
func SplitParagraphs(text string) []string {
	var out []string
	for _, p := range strings.Split(text, paragraphBreak) {
		if strings.TrimSpace(p) == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}
