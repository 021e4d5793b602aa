package display

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/guttosm/custopulse/internal/domain/models"
)

// Sheet names used by Workbook.
const (
	SummarySheet   = "Resumo"
	EfficientSheet = "Eficientes"
)

// Workbook renders widgets into an XLSX document.
//
// Metrics go to the "Resumo" sheet as label/value rows; the table goes to
// the "Eficientes" sheet with its header in row 1.
type Workbook struct {
	f          *excelize.File
	summaryRow int
	err        error
}

// NewWorkbook creates an empty workbook with the summary sheet active.
func NewWorkbook() *Workbook {
	f := excelize.NewFile()
	wb := &Workbook{f: f, summaryRow: 1}
	if err := f.SetSheetName(f.GetSheetName(0), SummarySheet); err != nil {
		wb.err = err
	}
	return wb
}

func (wb *Workbook) Metric(label, value string) {
	if wb.err != nil {
		return
	}
	cell, err := excelize.CoordinatesToCellName(1, wb.summaryRow)
	if err != nil {
		wb.err = err
		return
	}
	row := []any{label, value}
	if err := wb.f.SetSheetRow(SummarySheet, cell, &row); err != nil {
		wb.err = fmt.Errorf("write metric %q: %w", label, err)
		return
	}
	wb.summaryRow++
}

func (wb *Workbook) Table(t models.Table) {
	if wb.err != nil {
		return
	}
	if _, err := wb.f.NewSheet(EfficientSheet); err != nil {
		wb.err = err
		return
	}
	header := make([]any, len(t.Columns))
	for i, c := range t.Columns {
		header[i] = c
	}
	if err := wb.f.SetSheetRow(EfficientSheet, "A1", &header); err != nil {
		wb.err = fmt.Errorf("write header: %w", err)
		return
	}
	for i, r := range t.Rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			wb.err = err
			return
		}
		row := r
		if err := wb.f.SetSheetRow(EfficientSheet, cell, &row); err != nil {
			wb.err = fmt.Errorf("write row %d: %w", i+1, err)
			return
		}
	}
}

// WriteTo writes the XLSX bytes to w and closes the workbook.
func (wb *Workbook) WriteTo(w io.Writer) (int64, error) {
	defer func() { _ = wb.f.Close() }()
	if wb.err != nil {
		return 0, wb.err
	}
	return wb.f.WriteTo(w)
}
