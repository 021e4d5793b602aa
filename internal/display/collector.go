// Package display provides report.Display implementations: an in-memory
// collector for the JSON API, a terminal renderer, and XLSX/PDF documents.
package display

import (
	"github.com/guttosm/custopulse/internal/domain/dto"
	"github.com/guttosm/custopulse/internal/domain/models"
	"github.com/guttosm/custopulse/internal/report"
)

// Collector records widgets in display order.
type Collector struct {
	widgets []dto.Widget
}

var _ report.Display = (*Collector)(nil)

// NewCollector returns an empty Collector.
func NewCollector() *Collector {
	return &Collector{widgets: []dto.Widget{}}
}

func (c *Collector) Metric(label, value string) {
	c.widgets = append(c.widgets, dto.Widget{Kind: dto.WidgetMetric, Label: label, Value: value})
}

func (c *Collector) Table(t models.Table) {
	c.widgets = append(c.widgets, dto.Widget{Kind: dto.WidgetTable, Table: &t})
}

// Widgets returns the recorded widgets.
func (c *Collector) Widgets() []dto.Widget {
	return c.widgets
}
