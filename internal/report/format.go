package report

import (
	"fmt"
	"io"
	"strings"
)

// Format selects the dossier rendering
type Format string

const (
	FormatText Format = "txt"
	FormatPDF  Format = "pdf"
)

// ParseFormat accepts "txt", "text" or "pdf" in any case. Empty means text.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "txt", "text":
		return FormatText, nil
	case "pdf":
		return FormatPDF, nil
	default:
		return "", fmt.Errorf("unknown report format %q (want txt or pdf)", s)
	}
}

// ContentType is the MIME type of the rendered dossier
func (f Format) ContentType() string {
	if f == FormatPDF {
		return "application/pdf"
	}
	return "text/plain; charset=utf-8"
}

// Write renders d in format f
func Write(w io.Writer, d Dossier, f Format) error {
	if f == FormatPDF {
		return WritePDF(w, d)
	}
	return WriteText(w, d)
}
