package dto

import "github.com/guttosm/custopulse/internal/domain/models"

// Widget kinds emitted by a rendering pass.
const (
	WidgetMetric = "metric"
	WidgetTable  = "table"
)

// Widget is one displayed element, in display order.
//
// Metric widgets carry Label and Value; table widgets carry Table.
type Widget struct {
	Kind  string        `json:"kind" example:"metric"`
	Label string        `json:"label,omitempty" example:"Custo Total Interno"`
	Value string        `json:"value,omitempty" example:"R$ 150.00"`
	Table *models.Table `json:"table,omitempty"`
}

// ReportResponse is the JSON body returned by POST /api/v1/report.
type ReportResponse struct {
	RunID   string   `json:"run_id" example:"5f1c9a52-3f57-4c8e-9a57-2b9b1a0f4e11"`
	Widgets []Widget `json:"widgets"`
}

// RunsResponse is the JSON body returned by GET /api/v1/runs.
type RunsResponse struct {
	Runs []models.Run `json:"runs"`
}
