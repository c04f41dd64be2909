package chunker

import (
	"reflect"
	"testing"
)

func TestNewParagraphChunker(t *testing.T) {
	tests := []struct {
		name string
		size int
		want int
	}{
		{"positive value", 3, 3},
		{"zero value", 0, DefaultSentencesPerParagraph},
		{"negative value", -2, DefaultSentencesPerParagraph},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewParagraphChunker(tt.size).SentencesPerParagraph()
			if got != tt.want {
				t.Errorf("NewParagraphChunker(%d) size = %d, want %d", tt.size, got, tt.want)
			}
		})
	}
}

func TestParagraphChunkerChunk(t *testing.T) {
	c := NewParagraphChunker(4)
	tests := []struct {
		name      string
		sentences []string
		want      [][]string
	}{
		{"empty", nil, nil},
		{"shorter than one paragraph", []string{"a", "b"}, [][]string{{"a", "b"}}},
		{"exact multiple", []string{"a", "b", "c", "d"}, [][]string{{"a", "b", "c", "d"}}},
		{
			"remainder kept",
			[]string{"a", "b", "c", "d", "e", "f"},
			[][]string{{"a", "b", "c", "d"}, {"e", "f"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.Chunk(tt.sentences)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Chunk() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSplitParagraphs(t *testing.T) {
	text := "Primer párrafo.\n\n  Segundo\npárrafo. \n \n\n\nTercero"
	want := []string{"Primer párrafo.", "  Segundo\npárrafo. \n ", "\nTercero"}
	if got := SplitParagraphs(text); !reflect.DeepEqual(got, want) {
		t.Errorf("SplitParagraphs() = %q, want %q", got, want)
	}
	if got := SplitParagraphs("   "); got != nil {
		t.Errorf("SplitParagraphs(blank) = %q, want nil", got)
	}
}
