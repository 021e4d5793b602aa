package models

import (
	"fmt"
	"strconv"
)

// Table is a tabular structure with named columns, rendered as-is by displays.
//
// Rows hold cells in column order. Cells are plain values (string, float64,
// int) so every display can render them without knowing the schema.
type Table struct {
	Columns []string `json:"columns" example:"codigo,descricao,indicador"`
	Rows    [][]any  `json:"rows"`
}

// Len returns the number of rows.
func (t Table) Len() int {
	return len(t.Rows)
}

// StringRows returns every cell formatted with fmt's default verb.
// Useful for displays that only render text.
func (t Table) StringRows() [][]string {
	out := make([][]string, 0, len(t.Rows))
	for _, r := range t.Rows {
		line := make([]string, len(r))
		for i, c := range r {
			line[i] = formatCell(c)
		}
		out = append(out, line)
	}
	return out
}

func formatCell(c any) string {
	switch v := c.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}
