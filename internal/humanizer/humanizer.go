// Package humanizer turns raw machine transcripts into readable text through
// an ordered list of pure text passes.
package humanizer

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"textdigest/internal/chunker"
	"textdigest/internal/tokenizer"
)

// Whitespace as understood by the transcript sources: Go's \s plus vertical
// tab, information separators, NEL and every Unicode separator.
const spaceClass = `[\s\x{0b}\x{1c}-\x{1f}\x{85}\p{Z}]`

var (
	spaceRunRe         = regexp.MustCompile(spaceClass + `+`)
	spaceBeforePunctRe = regexp.MustCompile(spaceClass + `+([.,!?;:])`)
	punctSpacingRe     = regexp.MustCompile(`([.,!?;:])` + spaceClass + `*`)
)

// Stage is one text -> text pass of a pipeline.
type Stage struct {
	Name  string
	Apply func(string) string
}

// Filler is a disfluency token matched as a whole word, ignoring case.
// Kept fillers are matched but left as they are.
type Filler struct {
	Word string
	Keep bool
}

// DefaultFillers are the Spanish verbal tics stripped from transcripts.
// "eh" is deliberately kept.
var DefaultFillers = []Filler{
	{Word: "eh", Keep: true},
	{Word: "um"},
	{Word: "uh"},
	{Word: "emm"},
	{Word: "ahh"},
}

type options struct {
	fillers               []Filler
	sentencesPerParagraph int
}

// Option customizes a Humanizer.
type Option func(*options)

// WithFillers replaces the default filler list.
func WithFillers(fillers []Filler) Option {
	return func(o *options) { o.fillers = fillers }
}

// WithSentencesPerParagraph sets how many sentences make up a paragraph.
func WithSentencesPerParagraph(n int) Option {
	return func(o *options) { o.sentencesPerParagraph = n }
}

// Humanizer applies its stages in order. The order is significant.
type Humanizer struct {
	stages []Stage
}

// New builds the standard humanization pipeline.
func New(opts ...Option) *Humanizer {
	o := options{
		fillers:               DefaultFillers,
		sentencesPerParagraph: chunker.DefaultSentencesPerParagraph,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return &Humanizer{stages: []Stage{
		{Name: "collapse-space", Apply: CollapseSpace},
		{Name: "capitalize-sentences", Apply: CapitalizeSentences},
		{Name: "final-period", Apply: EnsureFinalPeriod},
		{Name: "tighten-punctuation", Apply: TightenPunctuation},
		{Name: "space-after-punctuation", Apply: SpaceAfterPunctuation},
		{Name: "collapse-space", Apply: CollapseSpace},
		{Name: "remove-fillers", Apply: RemoveFillers(o.fillers)},
		{Name: "trim", Apply: Trim},
		{Name: "paragraphs", Apply: Paragraphs(chunker.NewParagraphChunker(o.sentencesPerParagraph))},
	}}
}

// Humanize runs text through every stage.
func (h *Humanizer) Humanize(text string) string {
	for _, st := range h.stages {
		text = st.Apply(text)
	}
	return text
}

// Stages returns a copy of the pipeline.
func (h *Humanizer) Stages() []Stage {
	return append([]Stage(nil), h.stages...)
}

// CollapseSpace replaces every whitespace run by a single space.
func CollapseSpace(s string) string {
	return spaceRunRe.ReplaceAllString(s, " ")
}

// CapitalizeSentences splits on '.', trims each piece, drops empty pieces,
// uppercases the first character of the rest and joins them with ". ".
func CapitalizeSentences(s string) string {
	parts := strings.Split(s, ".")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimFunc(p, tokenizer.IsSpace)
		if p == "" {
			continue
		}
		_, size := utf8.DecodeRuneInString(p)
		out = append(out, strings.ToUpper(p[:size])+p[size:])
	}
	return strings.Join(out, ". ")
}

// EnsureFinalPeriod appends '.' to non-empty text that lacks one.
func EnsureFinalPeriod(s string) string {
	if s != "" && !strings.HasSuffix(s, ".") {
		return s + "."
	}
	return s
}

// TightenPunctuation removes whitespace in front of . , ! ? ; :
func TightenPunctuation(s string) string {
	return spaceBeforePunctRe.ReplaceAllString(s, "${1}")
}

// SpaceAfterPunctuation leaves exactly one space after . , ! ? ; :
func SpaceAfterPunctuation(s string) string {
	return punctSpacingRe.ReplaceAllString(s, "${1} ")
}

// RemoveFillers builds a stage deleting the given fillers.
func RemoveFillers(fillers []Filler) func(string) string {
	byWord := make(map[string]Filler, len(fillers))
	for _, f := range fillers {
		byWord[strings.ToLower(f.Word)] = f
	}
	return func(s string) string {
		return tokenizer.MapWords(s, func(w string) string {
			f, ok := byWord[strings.ToLower(w)]
			if !ok || f.Keep {
				return w
			}
			return ""
		})
	}
}

// Trim collapses whitespace and strips it from both ends.
func Trim(s string) string {
	return strings.TrimFunc(CollapseSpace(s), tokenizer.IsSpace)
}

// Paragraphs builds a stage that re-splits text on ". " and lays the
// sentences out in blank-line separated paragraphs.
func Paragraphs(c *chunker.ParagraphChunker) func(string) string {
	return func(s string) string {
		if s == "" {
			return ""
		}
		groups := c.Chunk(strings.Split(s, ". "))
		paragraphs := make([]string, len(groups))
		for i, g := range groups {
			p := strings.Join(g, ". ")
			if !strings.HasSuffix(g[len(g)-1], ".") {
				p += "."
			}
			paragraphs[i] = p
		}
		return strings.Join(paragraphs, "\n\n")
	}
}
