package display

import (
	"fmt"
	"io"
	"strings"

	"github.com/guttosm/custopulse/internal/report"
)

// Document is a Display that serializes to a downloadable file.
type Document interface {
	report.Display
	io.WriterTo
}

// Supported document formats.
const (
	FormatXLSX = "xlsx"
	FormatPDF  = "pdf"
)

// NewDocument returns an empty document for format plus its content type.
func NewDocument(format string) (Document, string, error) {
	switch strings.ToLower(format) {
	case FormatXLSX:
		return NewWorkbook(), "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", nil
	case FormatPDF:
		return NewPDF(), "application/pdf", nil
	default:
		return nil, "", fmt.Errorf("unsupported document format %q", format)
	}
}
