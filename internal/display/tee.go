package display

import (
	"github.com/guttosm/custopulse/internal/domain/models"
	"github.com/guttosm/custopulse/internal/report"
)

// Tee forwards every widget to each display in order, so one rendering
// pass can feed the terminal and a document at the same time.
type Tee []report.Display

var _ report.Display = Tee(nil)

func (t Tee) Metric(label, value string) {
	for _, d := range t {
		d.Metric(label, value)
	}
}

func (t Tee) Table(tbl models.Table) {
	for _, d := range t {
		d.Table(tbl)
	}
}
