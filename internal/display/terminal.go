package display

import (
	"fmt"
	"io"

	"github.com/pterm/pterm"

	"github.com/guttosm/custopulse/internal/domain/models"
)

// Terminal renders widgets as text for the CLI.
//
// Metrics print as "<label>: <value>"; tables print through pterm's table
// printer. The first write error is kept and reported by Err.
type Terminal struct {
	w   io.Writer
	err error
}

// NewTerminal writes to w (usually os.Stdout).
func NewTerminal(w io.Writer) *Terminal {
	return &Terminal{w: w}
}

func (t *Terminal) Metric(label, value string) {
	t.write(fmt.Sprintf("%s: %s\n", pterm.Bold.Sprint(label), pterm.FgGreen.Sprint(value)))
}

func (t *Terminal) Table(tbl models.Table) {
	if tbl.Len() == 0 {
		t.write(pterm.FgGray.Sprint("(nenhum registro eficiente)") + "\n")
		return
	}
	data := pterm.TableData{tbl.Columns}
	data = append(data, tbl.StringRows()...)
	s, err := pterm.DefaultTable.WithHasHeader().WithBoxed().WithData(data).Srender()
	if err != nil {
		t.setErr(err)
		return
	}
	t.write(s + "\n")
}

// Err returns the first error met while rendering.
func (t *Terminal) Err() error {
	return t.err
}

func (t *Terminal) write(s string) {
	if t.err != nil {
		return
	}
	if _, err := io.WriteString(t.w, s); err != nil {
		t.setErr(err)
	}
}

func (t *Terminal) setErr(err error) {
	if t.err == nil {
		t.err = err
	}
}
