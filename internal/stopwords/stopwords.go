// Package stopwords holds immutable sets of function words excluded from
// frequency scoring.
package stopwords

import "strings"

// Set is an immutable, case-insensitive set of words.
type Set struct {
	words map[string]struct{}
}

// New builds a Set from the given words.
func New(words ...string) Set {
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		w = strings.ToLower(strings.TrimSpace(w))
		if w == "" {
			continue
		}
		m[w] = struct{}{}
	}
	return Set{words: m}
}

// Contains reports whether word is in the set, ignoring case.
func (s Set) Contains(word string) bool {
	if _, ok := s.words[word]; ok {
		return true
	}
	_, ok := s.words[strings.ToLower(word)]
	return ok
}

// Len returns the number of distinct words in the set.
func (s Set) Len() int { return len(s.words) }

// Spanish returns the default Spanish stopword set used for sentence scoring.
func Spanish() Set { return spanish }

// SpanishKeywords returns the shorter Spanish set used for keyword
// extraction. Words such as "desde" or "todos" are not in it and can be
// reported as keywords.
func SpanishKeywords() Set { return spanishKeywords }

var spanish = New(
	"el", "la", "de", "que", "y", "a", "en", "un", "es", "se", "no", "por",
	"con", "su", "para", "una", "o", "del", "al", "lo", "como", "más",
	"pero", "sus", "le", "ya", "este", "sí", "porque", "esta", "son",
	"entre", "está", "cuando", "muy", "sin", "sobre", "ser", "tiene",
	"también", "me", "hasta", "hay", "donde", "han", "quien", "están",
	"estado", "desde", "todo", "nos", "durante", "estados", "todos",
	"uno", "les", "ni", "contra", "otros", "fueron", "ese", "eso", "había",
	"ante", "ellos", "era", "éramos", "eran", "eras", "eres", "esa", "esas",
	"estemos", "esto", "estos", "estoy", "estuvo", "estuve",
	"estuviera", "estuviese", "estuviesen", "estuviesemos", "esté",
	"estéis", "estén", "estés", "estábamos", "estabais", "estaban",
	"estabas", "estaba", "estada", "estadas", "estatua",
)

var spanishKeywords = New(
	"el", "la", "de", "que", "y", "a", "en", "un", "es", "se", "no", "por",
	"con", "su", "para", "una", "o", "del", "al", "lo", "como", "más",
	"pero", "sus", "le", "ya", "este", "sí", "porque", "esta", "son",
	"entre", "está", "cuando", "muy", "sin", "sobre", "ser", "tiene",
	"también", "me", "hasta", "hay", "donde", "han", "quien", "están",
)
