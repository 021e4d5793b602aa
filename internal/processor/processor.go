// Package processor computes internal and external costs from the three
// uploaded files and selects the efficient records.
package processor

import (
	"context"
	"fmt"
	"math"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/guttosm/custopulse/internal/domain/models"
	"github.com/guttosm/custopulse/internal/logger"
	"github.com/guttosm/custopulse/internal/report"
	"github.com/guttosm/custopulse/internal/upload"
)

// Expected headers. Order and count are enforced by upload.ReadSheet.
var (
	CombinedHeader = []string{"codigo", "descricao", "indicador"}
	CostHeader     = []string{"codigo", "custo"}
)

// EffColumns are the columns of the efficient-records table.
var EffColumns = []string{"codigo", "descricao", "indicador", "custo_interno", "custo_externo"}

// Classes assigned to each combined-file item.
const (
	ClassEficiente    = "eficiente"
	ClassNormal       = "normal"
	ClassForaDoPadrao = "fora_do_padrao"
)

// CostProcessor is the report.Processor used by the service.
//
// Rules:
//   - indicador <= lim_ef → eficiente; <= lim_norm → normal; else fora_do_padrao.
//   - custo_int sums the internal cost of eficiente and normal items.
//   - custo_ext sums the external cost of fora_do_padrao items.
//   - the efficient table keeps combined-file order.
//
// Every combined item must have exactly one internal and one external cost;
// anything else makes the whole outcome absent.
type CostProcessor struct{}

// New returns a CostProcessor.
func New() *CostProcessor {
	return &CostProcessor{}
}

var _ report.Processor = (*CostProcessor)(nil)

// Process implements report.Processor.
func (p *CostProcessor) Process(ctx context.Context, in report.Input) models.Outcome {
	start := time.Now()
	res, err := p.compute(ctx, in)
	if err != nil {
		logger.L().Warn().Err(err).Dur("elapsed", time.Since(start)).Msg("processing produced no result")
		return models.Absent(err.Error())
	}
	logger.L().Debug().
		Float64("custo_int", res.CustoInt).
		Float64("custo_ext", res.CustoExt).
		Int("efficient_rows", res.EffFinal.Len()).
		Dur("elapsed", time.Since(start)).
		Msg("processing done")
	return models.Present(res)
}

func (p *CostProcessor) compute(ctx context.Context, in report.Input) (models.Result, error) {
	if err := ValidateThresholds(in.LimEf, in.LimNorm); err != nil {
		return models.Result{}, err
	}

	var comb, ext, inte upload.Sheet

	// errgroup cancels the sibling parsers on first error.
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		comb, err = upload.ReadSheet(gctx, in.Comb, CombinedHeader)
		return wrap("combined", err)
	})
	g.Go(func() (err error) {
		ext, err = upload.ReadSheet(gctx, in.Ext, CostHeader)
		return wrap("external", err)
	})
	g.Go(func() (err error) {
		inte, err = upload.ReadSheet(gctx, in.Int, CostHeader)
		return wrap("internal", err)
	})
	if err := g.Wait(); err != nil {
		return models.Result{}, err
	}

	extCosts, err := costIndex(ext)
	if err != nil {
		return models.Result{}, wrap("external", err)
	}
	intCosts, err := costIndex(inte)
	if err != nil {
		return models.Result{}, wrap("internal", err)
	}

	res := models.Result{EffFinal: models.Table{Columns: append([]string(nil), EffColumns...), Rows: [][]any{}}}
	seen := make(map[string]struct{}, len(comb.Rows))

	for i, row := range comb.Rows {
		line := i + 2
		code, desc := row[0], row[1]
		if code == "" {
			return models.Result{}, fmt.Errorf("combined: line %d: empty codigo", line)
		}
		if _, dup := seen[code]; dup {
			return models.Result{}, fmt.Errorf("combined: line %d: duplicate codigo %q", line, code)
		}
		seen[code] = struct{}{}

		ind, err := comb.Number(row[2])
		if err != nil {
			return models.Result{}, fmt.Errorf("combined: line %d: indicador: %w", line, err)
		}
		ic, ok := intCosts[code]
		if !ok {
			return models.Result{}, fmt.Errorf("internal: no cost for codigo %q", code)
		}
		ec, ok := extCosts[code]
		if !ok {
			return models.Result{}, fmt.Errorf("external: no cost for codigo %q", code)
		}

		switch Classify(ind, in.LimEf, in.LimNorm) {
		case ClassEficiente:
			res.CustoInt += ic
			res.EffFinal.Rows = append(res.EffFinal.Rows, []any{code, desc, ind, ic, ec})
		case ClassNormal:
			res.CustoInt += ic
		default:
			res.CustoExt += ec
		}
	}

	if err := ctx.Err(); err != nil {
		return models.Result{}, err
	}
	return res, nil
}

// Classify maps an indicator to its class given the two thresholds.
func Classify(indicador, limEf, limNorm float64) string {
	switch {
	case indicador <= limEf:
		return ClassEficiente
	case indicador <= limNorm:
		return ClassNormal
	default:
		return ClassForaDoPadrao
	}
}

// ValidateThresholds requires finite, non-negative limits with lim_ef <= lim_norm.
func ValidateThresholds(limEf, limNorm float64) error {
	limits := []struct {
		name string
		v    float64
	}{{"lim_ef", limEf}, {"lim_norm", limNorm}}
	for _, l := range limits {
		name, v := l.name, l.v
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%s must be finite", name)
		}
		if v < 0 {
			return fmt.Errorf("%s must be >= 0, got %v", name, v)
		}
	}
	if limEf > limNorm {
		return fmt.Errorf("lim_ef (%v) must not exceed lim_norm (%v)", limEf, limNorm)
	}
	return nil
}

func costIndex(s upload.Sheet) (map[string]float64, error) {
	costs := make(map[string]float64, len(s.Rows))
	for i, row := range s.Rows {
		line := i + 2
		code := row[0]
		if code == "" {
			return nil, fmt.Errorf("line %d: empty codigo", line)
		}
		if _, dup := costs[code]; dup {
			return nil, fmt.Errorf("line %d: duplicate codigo %q", line, code)
		}
		v, err := s.Number(row[1])
		if err != nil {
			return nil, fmt.Errorf("line %d: custo: %w", line, err)
		}
		costs[code] = v
	}
	return costs, nil
}

func wrap(file string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", file, err)
}
