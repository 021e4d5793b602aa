package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guttosm/custopulse/internal/display"
	"github.com/guttosm/custopulse/internal/domain/models"
	"github.com/guttosm/custopulse/internal/report"
	"github.com/guttosm/custopulse/internal/upload"
)

type fakeRepo struct {
	runs    []models.Run
	err     error
	listErr error
}

func (f *fakeRepo) InsertRun(_ context.Context, run models.Run) error {
	f.runs = append(f.runs, run)
	return f.err
}

func (f *fakeRepo) ListRecentRuns(context.Context, int) ([]models.Run, error) {
	return f.runs, f.listErr
}

func (f *fakeRepo) Ping(context.Context) error { return nil }

func fixed(out models.Outcome) report.Processor {
	return report.ProcessorFunc(func(context.Context, report.Input) models.Outcome { return out })
}

func input() report.Input {
	return report.Input{
		Comb:    upload.MemoryHandle{FileName: "comb.csv"},
		Ext:     upload.MemoryHandle{FileName: "ext.csv"},
		LimEf:   100,
		LimNorm: 200,
	}
}

func TestGenerate_Present(t *testing.T) {
	repo := &fakeRepo{}
	tbl := models.Table{Columns: []string{"codigo"}, Rows: [][]any{{"A1"}, {"A2"}}}
	svc := NewReportService(fixed(models.Present(models.Result{CustoInt: 150, CustoExt: 75.25, EffFinal: tbl})), repo)

	c := display.NewCollector()
	run := svc.Generate(context.Background(), "req-1", input(), c)

	assert.True(t, run.Present)
	assert.NotEmpty(t, run.ID)
	assert.Equal(t, "req-1", run.RequestID)
	assert.Equal(t, []string{"comb.csv", "ext.csv", ""}, run.Files)
	assert.Equal(t, 2, run.EfficientRows)
	assert.Empty(t, run.Reason)
	require.Len(t, c.Widgets(), 3)
	assert.Equal(t, "R$ 75.25", c.Widgets()[1].Value)

	require.Len(t, repo.runs, 1)
	assert.Equal(t, run, repo.runs[0])
}

func TestGenerate_AbsentRecordsReason(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewReportService(fixed(models.Absent("combined: missing upload")), repo)

	c := display.NewCollector()
	run := svc.Generate(context.Background(), "", input(), c)

	assert.False(t, run.Present)
	assert.Equal(t, "combined: missing upload", run.Reason)
	assert.Zero(t, run.EfficientRows)
	assert.Empty(t, c.Widgets())
	require.Len(t, repo.runs, 1)
}

func TestGenerate_AuditFailureDoesNotChangeOutcome(t *testing.T) {
	repo := &fakeRepo{err: errors.New("db down")}
	svc := NewReportService(fixed(models.Present(models.Result{})), repo)

	c := display.NewCollector()
	run := svc.Generate(context.Background(), "req", input(), c)

	assert.True(t, run.Present)
	assert.Len(t, c.Widgets(), 3)
}

func TestGenerate_UniqueRunIDs(t *testing.T) {
	svc := NewReportService(fixed(models.Absent("x")), &fakeRepo{})
	a := svc.Generate(context.Background(), "", input(), display.NewCollector())
	b := svc.Generate(context.Background(), "", input(), display.NewCollector())
	assert.NotEqual(t, a.ID, b.ID)
}

func TestRecentRuns(t *testing.T) {
	repo := &fakeRepo{runs: []models.Run{{ID: "r1"}}}
	svc := NewReportService(fixed(models.Absent("x")), repo)

	runs, err := svc.RecentRuns(context.Background(), 10)
	require.NoError(t, err)
	assert.Len(t, runs, 1)

	repo.listErr = errors.New("boom")
	_, err = svc.RecentRuns(context.Background(), 10)
	assert.Error(t, err)
}
