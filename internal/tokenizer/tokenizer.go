// Package tokenizer splits raw text into sentences and lowercase word tokens.
package tokenizer

import (
	"regexp"
	"strings"
	"unicode"

	"textdigest/internal/domain"
)

var (
	sentenceBreakRe = regexp.MustCompile(`[.!?]+`)
	wordRe          = regexp.MustCompile(`[\p{L}\p{N}_]+`)
)

// SplitSentences splits text on runs of sentence-terminal punctuation.
// Empty pieces are dropped and indices are assigned after filtering.
func SplitSentences(text string) []domain.Sentence {
	parts := sentenceBreakRe.Split(text, -1)
	var out []domain.Sentence
	for _, p := range parts {
		p = strings.TrimFunc(p, IsSpace)
		if p == "" {
			continue
		}
		out = append(out, domain.Sentence{Index: len(out), Text: p})
	}
	return out
}

// Tokenize lowercases text and returns its word-character runs.
func Tokenize(text string) []string {
	return wordRe.FindAllString(strings.ToLower(text), -1)
}

// MapWords replaces every word-character run in text by fn(word).
func MapWords(text string, fn func(word string) string) string {
	return wordRe.ReplaceAllStringFunc(text, fn)
}

// WordSpans returns the byte offsets of every word-character run in text.
func WordSpans(text string) [][]int {
	return wordRe.FindAllStringIndex(text, -1)
}

// IsSpace reports whether r is whitespace, including the ASCII
// information separators some transcribers emit between segments.
func IsSpace(r rune) bool {
	return unicode.IsSpace(r) || (r >= 0x1c && r <= 0x1f)
}
