package domain

import "context"

// Document represents a single transcript loaded into the system.
type Document struct {
	ID      string
	Path    string
	Content string
}

// Sentence is one sentence of a document in source order.
type Sentence struct {
	Index int
	Text  string
	Score int
}

// Keyword is a frequent non-stopword token with its occurrence count.
type Keyword struct {
	Word  string
	Count int
}

// OutlineEntry lists excerpts of the paragraphs that mention a keyword.
type OutlineEntry struct {
	Keyword  string   `json:"keyword"`
	Excerpts []string `json:"excerpts"`
}

// SummaryResult is the caller-facing result of a summarization request.
type SummaryResult struct {
	Summary        string   `json:"summary"`
	Keywords       []string `json:"keywords"`
	OriginalLength int      `json:"original_length"`
	SummaryLength  int      `json:"summary_length"`
}

// HumanizeResult is the caller-facing result of a humanization request.
type HumanizeResult struct {
	HumanizedText string `json:"humanized_text"`
}

// Digest bundles everything produced for one document.
type Digest struct {
	Document  Document
	Summary   SummaryResult
	Humanized string
	Outline   []OutlineEntry
}

// Summarizer produces an extractive summary keeping the given percentage of sentences.
type Summarizer interface {
	Summarize(text string, percentage int) string
}

// KeywordExtractor ranks the most frequent content words of a text.
type KeywordExtractor interface {
	ExtractKeywords(text string, k int) []Keyword
	Outline(text string, k int) []OutlineEntry
}

// Humanizer normalizes whitespace, punctuation and paragraphs of raw transcripts.
type Humanizer interface {
	Humanize(text string) string
}

// ReadabilityImprover cleans up repetitions and casing in humanized text.
type ReadabilityImprover interface {
	ImproveReadability(text string) string
}

// DigestService defines the operations exposed by the application core.
type DigestService interface {
	Summarize(ctx context.Context, text string, percentage int) (SummaryResult, error)
	Keywords(ctx context.Context, text string, k int) ([]Keyword, error)
	Humanize(ctx context.Context, text string) (HumanizeResult, error)
	Outline(ctx context.Context, text string) ([]OutlineEntry, error)
	Digest(ctx context.Context, doc Document, percentage int) (Digest, error)
}
