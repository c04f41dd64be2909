package humanizer

import (
	"regexp"
	"strings"

	"textdigest/internal/tokenizer"
)

// DefaultProperNouns are re-cased wherever they appear.
var DefaultProperNouns = []string{
	"Python", "JavaScript", "Java", "SQL", "HTML", "CSS", "React",
	"Node", "Git", "Linux", "Windows", "Mac", "Google", "Microsoft",
}

var (
	doubledYRe    = regexp.MustCompile(spaceClass + `+y` + spaceClass + `+y` + spaceClass + `+`)
	doubledPeroRe = regexp.MustCompile(spaceClass + `+pero` + spaceClass + `+pero` + spaceClass + `+`)
)

// ReadabilityImprover removes stutters and fixes the casing of known names.
type ReadabilityImprover struct {
	properNouns map[string]string
}

// NewReadabilityImprover uses DefaultProperNouns when properNouns is nil.
func NewReadabilityImprover(properNouns []string) *ReadabilityImprover {
	if properNouns == nil {
		properNouns = DefaultProperNouns
	}
	m := make(map[string]string, len(properNouns))
	for _, n := range properNouns {
		m[strings.ToLower(n)] = n
	}
	return &ReadabilityImprover{properNouns: m}
}

// ImproveReadability runs the readability stages in order.
func (r *ReadabilityImprover) ImproveReadability(text string) string {
	for _, st := range r.Stages() {
		text = st.Apply(text)
	}
	return text
}

// Stages returns the readability passes.
func (r *ReadabilityImprover) Stages() []Stage {
	return []Stage{
		{Name: "collapse-repeated-words", Apply: CollapseRepeatedWords},
		{Name: "collapse-connectors", Apply: CollapseConnectors},
		{Name: "proper-nouns", Apply: r.caseProperNouns},
	}
}

// CollapseRepeatedWords drops the second of two adjacent equal words
// separated only by whitespace. Each pair is collapsed once, so "a a a"
// becomes "a a".
func CollapseRepeatedWords(text string) string {
	spans := tokenizer.WordSpans(text)
	var b strings.Builder
	last := 0
	for i := 0; i+1 < len(spans); i++ {
		cur, next := spans[i], spans[i+1]
		gap := text[cur[1]:next[0]]
		if gap == "" || strings.IndexFunc(gap, func(r rune) bool { return !tokenizer.IsSpace(r) }) >= 0 {
			continue
		}
		if !strings.EqualFold(text[cur[0]:cur[1]], text[next[0]:next[1]]) {
			continue
		}
		b.WriteString(text[last:cur[1]])
		last = next[1]
		i++
	}
	if last == 0 {
		return text
	}
	b.WriteString(text[last:])
	return b.String()
}

// CollapseConnectors rewrites "y y" and "pero pero" to a single connector.
func CollapseConnectors(text string) string {
	text = doubledYRe.ReplaceAllString(text, " y ")
	return doubledPeroRe.ReplaceAllString(text, " pero ")
}

func (r *ReadabilityImprover) caseProperNouns(text string) string {
	return tokenizer.MapWords(text, func(w string) string {
		if canonical, ok := r.properNouns[strings.ToLower(w)]; ok {
			return canonical
		}
		return w
	})
}
