// Package report renders a digested transcript into the plain text file
// handed back to students.
package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"textdigest/internal/domain"
	"textdigest/internal/errortypes"
)

const (
	ruleWidth   = 80
	fileSuffix  = "_transcription.txt"
	stampLayout = "20060102_150405"
	dateLayout  = "2006-01-02 15:04:05"
)

// Render lays out d as a report processed at the given time. Empty
// sections are left out.
func Render(d domain.Digest, processedAt time.Time) string {
	var b strings.Builder
	b.WriteString("TRANSCRIPCIÓN DE LA CLASE\n")
	b.WriteString(strings.Repeat("=", ruleWidth) + "\n\n")
	fmt.Fprintf(&b, "Archivo: %s\n", filepath.Base(d.Document.Path))
	fmt.Fprintf(&b, "Fecha de procesamiento: %s\n\n", processedAt.Format(dateLayout))

	if len(d.Summary.Keywords) > 0 {
		section(&b, "PALABRAS CLAVE", strings.Join(d.Summary.Keywords, ", "))
	}
	if d.Summary.Summary != "" {
		section(&b, "RESUMEN", d.Summary.Summary)
	}
	if len(d.Outline) > 0 {
		var o strings.Builder
		for _, e := range d.Outline {
			fmt.Fprintf(&o, "* %s\n", e.Keyword)
			for _, ex := range e.Excerpts {
				fmt.Fprintf(&o, "  - %s\n", ex)
			}
		}
		section(&b, "ESQUEMA", strings.TrimSuffix(o.String(), "\n"))
	}

	transcript := d.Humanized
	if transcript == "" {
		transcript = d.Document.Content
	}
	b.WriteString("TRANSCRIPCIÓN COMPLETA\n")
	b.WriteString(strings.Repeat("-", ruleWidth) + "\n")
	b.WriteString(transcript + "\n")
	return b.String()
}

func section(b *strings.Builder, title, body string) {
	b.WriteString(title + "\n")
	b.WriteString(strings.Repeat("-", ruleWidth) + "\n")
	b.WriteString(body + "\n\n")
}

// FileName names the report of sourcePath, e.g. clase_20240131_093000_transcription.txt.
func FileName(sourcePath string, processedAt time.Time) string {
	base := filepath.Base(sourcePath)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return base + "_" + processedAt.Format(stampLayout) + fileSuffix
}

// Write renders d into dir and returns the path of the new file.
func Write(dir string, d domain.Digest, processedAt time.Time) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", errortypes.IOError(err, "create output directory").WithField("dir", dir)
	}
	path := filepath.Join(dir, FileName(d.Document.Path, processedAt))
	if err := os.WriteFile(path, []byte(Render(d, processedAt)), 0o644); err != nil {
		return "", errortypes.IOError(err, "write report").WithField("path", path)
	}
	return path, nil
}
