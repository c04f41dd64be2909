package summarizer

import (
	"sort"
	"strings"
	"unicode/utf8"

	"textdigest/internal/domain"
	"textdigest/internal/stopwords"
	"textdigest/internal/tokenizer"
)

const (
	// Texts shorter than this many runes are returned unchanged.
	minSummaryRunes = 100
	// Texts with fewer sentences are returned unchanged.
	minSummarySentences = 3
)

// FrequencyTable maps a token to its number of occurrences in a document.
type FrequencyTable map[string]int

// BuildFrequency counts every token that is not a stopword.
func BuildFrequency(tokens []string, stop stopwords.Set) FrequencyTable {
	freq := make(FrequencyTable, len(tokens))
	for _, tok := range tokens {
		if stop.Contains(tok) {
			continue
		}
		freq[tok]++
	}
	return freq
}

// FrequencySummarizer ranks sentences by the summed frequency of their tokens (stopwords filtered).
type FrequencySummarizer struct {
	stopwords stopwords.Set
}

// NewFrequencySummarizer creates a frequency-based sentence ranker summarizer.
func NewFrequencySummarizer(stop stopwords.Set) *FrequencySummarizer {
	return &FrequencySummarizer{stopwords: stop}
}

// Summarize keeps the highest scoring percentage of sentences in their original order.
// Short texts are returned as-is.
func (s *FrequencySummarizer) Summarize(text string, percentage int) string {
	selected, ok := s.Select(text, percentage)
	if !ok {
		return text
	}
	out := make([]string, len(selected))
	for i, sent := range selected {
		out[i] = sent.Text
	}
	summary := strings.Join(out, ". ")
	if summary != "" && !strings.HasSuffix(summary, ".") {
		summary += "."
	}
	return summary
}

// Select returns the sentences Summarize would keep, ordered by index.
// ok is false when the text is too short to be summarized.
func (s *FrequencySummarizer) Select(text string, percentage int) (selected []domain.Sentence, ok bool) {
	if utf8.RuneCountInString(strings.TrimSpace(text)) < minSummaryRunes {
		return nil, false
	}
	sentences := tokenizer.SplitSentences(text)
	if len(sentences) < minSummarySentences {
		return nil, false
	}

	ranked := s.rank(text, sentences)
	k := len(sentences) * percentage / 100
	if k < 1 {
		k = 1
	}
	if k > len(ranked) {
		k = len(ranked)
	}
	selected = ranked[:k]
	sort.Slice(selected, func(i, j int) bool { return selected[i].Index < selected[j].Index })
	return selected, true
}

// Rank scores every sentence of text and orders them by score descending,
// lower index first on ties.
func (s *FrequencySummarizer) Rank(text string) []domain.Sentence {
	return s.rank(text, tokenizer.SplitSentences(text))
}

func (s *FrequencySummarizer) rank(text string, sentences []domain.Sentence) []domain.Sentence {
	freq := BuildFrequency(tokenizer.Tokenize(text), s.stopwords)
	scored := make([]domain.Sentence, len(sentences))
	for i, sent := range sentences {
		score := 0
		for _, tok := range tokenizer.Tokenize(sent.Text) {
			score += freq[tok]
		}
		sent.Score = score
		scored[i] = sent
	}
	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].Score != scored[j].Score {
			return scored[i].Score > scored[j].Score
		}
		return scored[i].Index < scored[j].Index
	})
	return scored
}
