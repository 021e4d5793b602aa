package models

import "time"

// Run is the audit entry recorded for one rendering pass.
//
// Only metadata is kept; the Result record itself is never persisted.
//
// swagger:model Run
type Run struct {
	ID            string    `json:"id" example:"5f1c9a52-3f57-4c8e-9a57-2b9b1a0f4e11"`
	RequestID     string    `json:"request_id,omitempty"`
	Files         []string  `json:"files" example:"comb.csv,ext.csv,int.csv"`
	LimEf         float64   `json:"lim_ef" example:"100"`
	LimNorm       float64   `json:"lim_norm" example:"200"`
	Present       bool      `json:"present"`
	Reason        string    `json:"reason,omitempty"`
	EfficientRows int       `json:"efficient_rows"`
	DurationMs    int64     `json:"duration_ms"`
	CreatedAt     time.Time `json:"created_at"`
}
