package display

import (
	"fmt"
	"io"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/guttosm/custopulse/internal/domain/models"
)

// PDF renders widgets into an A4 document.
type PDF struct {
	doc *gofpdf.Fpdf
	tr  func(string) string
	now func() time.Time
}

// NewPDF starts a document with its title block.
func NewPDF() *PDF {
	doc := gofpdf.New("P", "mm", "A4", "")
	p := &PDF{doc: doc, tr: doc.UnicodeTranslatorFromDescriptor(""), now: time.Now}
	doc.AddPage()
	doc.SetFillColor(40, 40, 40)
	doc.SetTextColor(255, 255, 255)
	doc.SetFont("Arial", "B", 14)
	doc.CellFormat(0, 12, p.tr("  Relatório de Custos"), "", 1, "L", true, 0, "")
	doc.Ln(6)
	doc.SetTextColor(50, 50, 50)
	return p
}

func (p *PDF) Metric(label, value string) {
	p.doc.SetFont("Arial", "", 11)
	p.doc.CellFormat(70, 8, p.tr(label), "B", 0, "L", false, 0, "")
	p.doc.SetFont("Arial", "B", 12)
	p.doc.CellFormat(0, 8, p.tr(value), "B", 1, "R", false, 0, "")
	p.doc.Ln(2)
}

func (p *PDF) Table(t models.Table) {
	p.doc.Ln(6)
	if len(t.Columns) == 0 {
		return
	}
	width := 190.0 / float64(len(t.Columns))

	p.doc.SetFont("Arial", "B", 9)
	p.doc.SetFillColor(240, 240, 240)
	for _, c := range t.Columns {
		p.doc.CellFormat(width, 7, p.tr(c), "1", 0, "C", true, 0, "")
	}
	p.doc.Ln(-1)

	p.doc.SetFont("Arial", "", 9)
	for _, r := range t.StringRows() {
		for _, c := range r {
			p.doc.CellFormat(width, 6, p.tr(c), "1", 0, "L", false, 0, "")
		}
		p.doc.Ln(-1)
	}
}

// WriteTo adds the footer and writes the PDF bytes to w.
func (p *PDF) WriteTo(w io.Writer) (int64, error) {
	p.doc.SetY(-15)
	p.doc.SetFont("Arial", "I", 8)
	p.doc.SetTextColor(128, 128, 128)
	p.doc.CellFormat(0, 10, p.tr(fmt.Sprintf("Gerado por custopulse | %s", p.now().Format("2006-01-02"))), "", 0, "L", false, 0, "")

	cw := &countingWriter{w: w}
	if err := p.doc.Output(cw); err != nil {
		return cw.n, fmt.Errorf("write pdf: %w", err)
	}
	return cw.n, nil
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(b []byte) (int, error) {
	n, err := c.w.Write(b)
	c.n += int64(n)
	return n, err
}
