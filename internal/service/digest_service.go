package service

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"textdigest/internal/domain"
	"textdigest/internal/errortypes"
)

// DigestServiceImpl validates caller input and drives the summarizer,
// keyword extractor and humanizer.
type DigestServiceImpl struct {
	summarizer  domain.Summarizer
	keywords    domain.KeywordExtractor
	humanizer   domain.Humanizer
	readability domain.ReadabilityImprover
	keywordTopK int
	withSummary bool
	log         *slog.Logger
}

// Option configures a DigestServiceImpl.
type Option func(*DigestServiceImpl)

// WithSummary controls whether Digest includes the summary text. Keywords
// and the outline are reported either way. Summaries are on by default.
func WithSummary(enabled bool) Option {
	return func(s *DigestServiceImpl) { s.withSummary = enabled }
}

// DefaultKeywords is the number of keywords Summarize reports when none is configured.
const DefaultKeywords = 10

// NewDigestService wires the pipeline. A nil readability improver skips
// that pass and a nil logger discards logs.
func NewDigestService(sum domain.Summarizer, kw domain.KeywordExtractor, h domain.Humanizer, r domain.ReadabilityImprover, keywordTopK int, log *slog.Logger, opts ...Option) *DigestServiceImpl {
	if keywordTopK <= 0 {
		keywordTopK = DefaultKeywords
	}
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	s := &DigestServiceImpl{summarizer: sum, keywords: kw, humanizer: h, readability: r, keywordTopK: keywordTopK, withSummary: true, log: log}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func validatePercentage(percentage int) error {
	if percentage < 1 || percentage > 100 {
		return errortypes.InvalidArgument(nil, fmt.Sprintf("percentage must be between 1 and 100, got %d", percentage)).
			WithField("percentage", percentage)
	}
	return nil
}

// Summarize returns the extractive summary of text with its top keywords.
func (s *DigestServiceImpl) Summarize(ctx context.Context, text string, percentage int) (domain.SummaryResult, error) {
	if err := validatePercentage(percentage); err != nil {
		return domain.SummaryResult{}, err
	}
	kws, err := s.Keywords(ctx, text, s.keywordTopK)
	if err != nil {
		return domain.SummaryResult{}, err
	}
	summary := s.summarizer.Summarize(text, percentage)
	words := make([]string, len(kws))
	for i, kw := range kws {
		words[i] = kw.Word
	}
	res := domain.SummaryResult{
		Summary:        summary,
		Keywords:       words,
		OriginalLength: utf8.RuneCountInString(text),
		SummaryLength:  utf8.RuneCountInString(summary),
	}
	s.log.DebugContext(ctx, "summarized text",
		"percentage", percentage,
		"original_length", res.OriginalLength,
		"summary_length", res.SummaryLength,
	)
	return res, nil
}

// Keywords returns the k most frequent keywords of text with their counts.
func (s *DigestServiceImpl) Keywords(ctx context.Context, text string, k int) ([]domain.Keyword, error) {
	if k <= 0 {
		return nil, errortypes.InvalidArgument(nil, fmt.Sprintf("keyword count must be positive, got %d", k)).
			WithField("k", k)
	}
	return s.keywords.ExtractKeywords(text, k), nil
}

// Humanize cleans up a raw transcript and, when configured, improves its readability.
func (s *DigestServiceImpl) Humanize(ctx context.Context, text string) (domain.HumanizeResult, error) {
	out := s.humanizer.Humanize(text)
	if s.readability != nil {
		out = s.readability.ImproveReadability(out)
	}
	s.log.DebugContext(ctx, "humanized text", "input_length", utf8.RuneCountInString(text), "output_length", utf8.RuneCountInString(out))
	return domain.HumanizeResult{HumanizedText: out}, nil
}

func (s *DigestServiceImpl) Outline(ctx context.Context, text string) ([]domain.OutlineEntry, error) {
	return s.keywords.Outline(text, 0), nil
}

// Digest runs every operation on one document. It stops early when ctx is done.
func (s *DigestServiceImpl) Digest(ctx context.Context, doc domain.Document, percentage int) (domain.Digest, error) {
	d := domain.Digest{Document: doc}

	summary, err := s.Summarize(ctx, doc.Content, percentage)
	if err != nil {
		return d, err
	}
	if !s.withSummary {
		summary.Summary = ""
		summary.SummaryLength = 0
	}
	d.Summary = summary
	if err := ctx.Err(); err != nil {
		return d, err
	}

	humanized, err := s.Humanize(ctx, doc.Content)
	if err != nil {
		return d, err
	}
	d.Humanized = humanized.HumanizedText
	if err := ctx.Err(); err != nil {
		return d, err
	}

	if d.Outline, err = s.Outline(ctx, doc.Content); err != nil {
		return d, err
	}
	s.log.InfoContext(ctx, "digested document", "id", doc.ID, "path", doc.Path, "keywords", len(d.Summary.Keywords))
	return d, nil
}

// LoadDocuments expands glob patterns and reads every .txt file they match.
// Paths that match nothing are tried literally.
func LoadDocuments(paths []string) ([]domain.Document, error) {
	var documents []domain.Document
	for _, p := range paths {
		matches, _ := filepath.Glob(p)
		if matches == nil {
			matches = []string{p}
		}
		for _, m := range matches {
			if !IsTranscriptFile(m) {
				continue
			}
			doc, err := LoadDocument(m)
			if err != nil {
				return nil, err
			}
			documents = append(documents, doc)
		}
	}
	if len(documents) == 0 {
		return nil, errortypes.InvalidArgument(errors.New("no .txt documents found"), "load documents")
	}
	return documents, nil
}

// LoadDocument reads a single transcript.
func LoadDocument(path string) (domain.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.Document{}, errortypes.IOError(err, "read transcript").WithField("path", path)
	}
	return domain.Document{ID: hashString(path), Path: path, Content: string(data)}, nil
}

// IsTranscriptFile reports whether path names a plain text transcript.
func IsTranscriptFile(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".txt")
}

func hashString(s string) string {
	h := sha1.Sum([]byte(s))
	return hex.EncodeToString(h[:8])
}
