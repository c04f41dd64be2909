package summarizer

import (
	"encoding/json"
	"reflect"
	"testing"
	"unicode/utf8"

	"textdigest/internal/domain"
	"textdigest/internal/stopwords"
)

const keywordText = "Python es un lenguaje versátil. Python se usa en ciencia de datos y datos abiertos. Google usa Python. También Netflix."

func TestKeywordExtractor_ExtractKeywords(t *testing.T) {
	e := NewKeywordExtractor(stopwords.SpanishKeywords())

	tests := []struct {
		name string
		text string
		k    int
		want []domain.Keyword
	}{
		{
			name: "top three",
			text: keywordText,
			k:    3,
			want: []domain.Keyword{{Word: "python", Count: 3}, {Word: "datos", Count: 2}, {Word: "lenguaje", Count: 1}},
		},
		{
			name: "ties keep first appearance",
			text: keywordText,
			k:    10,
			want: []domain.Keyword{
				{Word: "python", Count: 3}, {Word: "datos", Count: 2}, {Word: "lenguaje", Count: 1}, {Word: "versátil", Count: 1},
				{Word: "ciencia", Count: 1}, {Word: "abiertos", Count: 1}, {Word: "google", Count: 1}, {Word: "netflix", Count: 1},
			},
		},
		{
			name: "words outside the keyword stopwords rank",
			text: "desde el inicio todos estos datos fueron datos de todos desde siempre",
			k:    10,
			want: []domain.Keyword{
				{Word: "desde", Count: 2}, {Word: "todos", Count: 2}, {Word: "datos", Count: 2}, {Word: "inicio", Count: 1},
				{Word: "estos", Count: 1}, {Word: "fueron", Count: 1}, {Word: "siempre", Count: 1},
			},
		},
		{name: "zero k", text: keywordText, k: 0, want: nil},
		{name: "empty text", text: "", k: 5, want: []domain.Keyword{}},
		{name: "only short words", text: "el sol y la luz", k: 5, want: []domain.Keyword{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := e.ExtractKeywords(tt.text, tt.k)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ExtractKeywords() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestKeywordExtractor_Bounds(t *testing.T) {
	stop := stopwords.SpanishKeywords()
	e := NewKeywordExtractor(stop)
	text := keywordText + " " + pythonText + " Estaban también entre todos nosotros."

	for k := 1; k <= 20; k++ {
		got := e.ExtractKeywords(text, k)
		if len(got) > k {
			t.Fatalf("ExtractKeywords(k=%d) returned %d keywords", k, len(got))
		}
		for _, kw := range got {
			if stop.Contains(kw.Word) {
				t.Errorf("keyword %q is a stopword", kw.Word)
			}
			if utf8.RuneCountInString(kw.Word) <= 3 {
				t.Errorf("keyword %q is too short", kw.Word)
			}
		}
		for i := 1; i < len(got); i++ {
			if got[i-1].Count < got[i].Count {
				t.Errorf("keywords not sorted by count: %v", got)
			}
		}
	}
}

func TestKeywordExtractor_Outline(t *testing.T) {
	e := NewKeywordExtractor(stopwords.SpanishKeywords())
	text := "Python para datos.\n\nLos datos son útiles para Google.\n\nNada aquí."

	got := e.Outline(text, 0)
	want := []domain.OutlineEntry{
		{Keyword: "datos", Excerpts: []string{"Python para datos....", "Los datos son útiles para Google...."}},
		{Keyword: "python", Excerpts: []string{"Python para datos...."}},
		{Keyword: "útiles", Excerpts: []string{"Los datos son útiles para Google...."}},
		{Keyword: "google", Excerpts: []string{"Los datos son útiles para Google...."}},
		{Keyword: "nada", Excerpts: []string{"Nada aquí...."}},
		{Keyword: "aquí", Excerpts: []string{"Nada aquí...."}},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Outline() = %v, want %v", got, want)
	}
}

func TestKeywordExtractor_OutlineKeepsParagraphIndent(t *testing.T) {
	e := NewKeywordExtractor(stopwords.SpanishKeywords())
	text := "  Python para datos.\n\n\n   Los datos son útiles.\n\nNada aquí."

	got := e.Outline(text, 0)
	want := []domain.OutlineEntry{
		{Keyword: "datos", Excerpts: []string{"  Python para datos....", "\n   Los datos son útiles...."}},
		{Keyword: "python", Excerpts: []string{"  Python para datos...."}},
		{Keyword: "útiles", Excerpts: []string{"\n   Los datos son útiles...."}},
		{Keyword: "nada", Excerpts: []string{"Nada aquí...."}},
		{Keyword: "aquí", Excerpts: []string{"Nada aquí...."}},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Outline() = %q, want %q", got, want)
	}
}

func TestOutlineEntryWithoutMatches(t *testing.T) {
	entry := outlineEntry("python", []string{"Nada aquí."})
	if entry.Excerpts == nil || len(entry.Excerpts) != 0 {
		t.Fatalf("Excerpts = %#v, want empty slice", entry.Excerpts)
	}
	b, err := json.Marshal(entry)
	if err != nil {
		t.Fatal(err)
	}
	if want := `{"keyword":"python","excerpts":[]}`; string(b) != want {
		t.Errorf("json = %s, want %s", b, want)
	}
}

func TestExcerptTruncatesRunes(t *testing.T) {
	long := ""
	for i := 0; i < 120; i++ {
		long += "ñ"
	}
	got := excerpt(long)
	if utf8.RuneCountInString(got) != excerptRunes+3 {
		t.Errorf("excerpt length = %d runes", utf8.RuneCountInString(got))
	}
}
