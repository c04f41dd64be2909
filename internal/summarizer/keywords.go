package summarizer

import (
	"sort"
	"strings"
	"unicode/utf8"

	"textdigest/internal/chunker"
	"textdigest/internal/domain"
	"textdigest/internal/stopwords"
	"textdigest/internal/tokenizer"
)

const (
	// Tokens of this many runes or fewer never become keywords.
	maxShortTokenRunes = 3
	outlineKeywords    = 15
	excerptRunes       = 100
)

// KeywordExtractor reports the most frequent non-stopword tokens of a text.
type KeywordExtractor struct {
	stopwords stopwords.Set
}

// NewKeywordExtractor creates an extractor filtering the given stopwords.
func NewKeywordExtractor(stop stopwords.Set) *KeywordExtractor {
	return &KeywordExtractor{stopwords: stop}
}

// ExtractKeywords returns up to k keywords ordered by count descending.
// Equal counts keep the order in which the words first appear in text.
func (e *KeywordExtractor) ExtractKeywords(text string, k int) []domain.Keyword {
	if k <= 0 {
		return nil
	}
	var candidates []string
	for _, tok := range tokenizer.Tokenize(text) {
		if utf8.RuneCountInString(tok) <= maxShortTokenRunes {
			continue
		}
		candidates = append(candidates, tok)
	}
	freq := BuildFrequency(candidates, e.stopwords)

	keywords := make([]domain.Keyword, 0, len(freq))
	seen := make(map[string]struct{}, len(freq))
	for _, tok := range candidates {
		if _, ok := seen[tok]; ok {
			continue
		}
		seen[tok] = struct{}{}
		if n, ok := freq[tok]; ok {
			keywords = append(keywords, domain.Keyword{Word: tok, Count: n})
		}
	}
	sort.SliceStable(keywords, func(i, j int) bool { return keywords[i].Count > keywords[j].Count })
	if len(keywords) > k {
		keywords = keywords[:k]
	}
	return keywords
}

// Outline maps each of the top k keywords to excerpts of the "\n\n"
// separated paragraphs that mention it.
func (e *KeywordExtractor) Outline(text string, k int) []domain.OutlineEntry {
	if k <= 0 {
		k = outlineKeywords
	}
	keywords := e.ExtractKeywords(text, k)
	paragraphs := chunker.SplitParagraphs(text)

	outline := make([]domain.OutlineEntry, 0, len(keywords))
	for _, kw := range keywords {
		outline = append(outline, outlineEntry(kw.Word, paragraphs))
	}
	return outline
}

// outlineEntry collects excerpts of the paragraphs containing word.
// Excerpts is never nil.
func outlineEntry(word string, paragraphs []string) domain.OutlineEntry {
	entry := domain.OutlineEntry{Keyword: word, Excerpts: []string{}}
	for _, p := range paragraphs {
		if strings.Contains(strings.ToLower(p), word) {
			entry.Excerpts = append(entry.Excerpts, excerpt(p))
		}
	}
	return entry
}

func excerpt(p string) string {
	runes := []rune(p)
	if len(runes) > excerptRunes {
		runes = runes[:excerptRunes]
	}
	return string(runes) + "..."
}
