// Package report implements one rendering pass: process the uploads once,
// then show the two cost metrics and the efficient-records table.
package report

import (
	"context"
	"strconv"

	"github.com/guttosm/custopulse/internal/domain/models"
	"github.com/guttosm/custopulse/internal/upload"
)

// Metric labels shown for a present result.
const (
	LabelCustoInt = "Custo Total Interno"
	LabelCustoExt = "Custo Total Externo"
)

// Display is the rendering context a pass writes widgets to.
// It is always passed explicitly; there is no process-wide UI state.
type Display interface {
	Metric(label, value string)
	Table(t models.Table)
}

// Processor turns three uploads and two thresholds into an Outcome.
// Any failure must surface as an absent Outcome.
type Processor interface {
	Process(ctx context.Context, in Input) models.Outcome
}

// ProcessorFunc adapts a function to Processor.
type ProcessorFunc func(ctx context.Context, in Input) models.Outcome

func (f ProcessorFunc) Process(ctx context.Context, in Input) models.Outcome {
	return f(ctx, in)
}

// Input carries everything a rendering pass forwards to the processor.
type Input struct {
	Comb    upload.Handle // combined file
	Ext     upload.Handle // external costs
	Int     upload.Handle // internal costs
	LimEf   float64
	LimNorm float64
}

// Render runs one pass against d.
//
// Behavior:
//   - Calls p.Process exactly once.
//   - Absent outcome: returns false without touching d.
//   - Present outcome: emits the internal cost metric, the external cost
//     metric and the efficient table, in that order, and returns true.
//
// Render never retries and never inspects why an outcome is absent.
func Render(ctx context.Context, p Processor, in Input, d Display) bool {
	res, ok := p.Process(ctx, in).Result()
	if !ok {
		return false
	}

	d.Metric(LabelCustoInt, FormatCurrency(res.CustoInt))
	d.Metric(LabelCustoExt, FormatCurrency(res.CustoExt))
	d.Table(res.EffFinal)
	return true
}

// FormatCurrency renders v as "R$ " followed by v with two fixed decimals
// (1234.5 → "R$ 1234.50"). Values that round to zero print as "R$ 0.00".
func FormatCurrency(v float64) string {
	s := strconv.FormatFloat(v, 'f', 2, 64)
	if s == "-0.00" {
		s = "0.00"
	}
	return "R$ " + s
}
