package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/guttosm/custopulse/internal/domain/models"
	"github.com/guttosm/custopulse/internal/logger"
	"github.com/guttosm/custopulse/internal/report"
	"github.com/guttosm/custopulse/internal/storage"
	"github.com/guttosm/custopulse/internal/upload"
)

const auditTimeout = 5 * time.Second

// ReportService runs rendering passes and keeps their audit trail.
type ReportService interface {
	// Generate runs exactly one rendering pass against d and returns the
	// run metadata. Present reports whether widgets were displayed.
	Generate(ctx context.Context, requestID string, in report.Input, d report.Display) models.Run
	RecentRuns(ctx context.Context, limit int) ([]models.Run, error)
}

type reportService struct {
	proc report.Processor
	repo storage.RunsRepository
	now  func() time.Time
}

func NewReportService(proc report.Processor, repo storage.RunsRepository) ReportService {
	return &reportService{proc: proc, repo: repo, now: time.Now}
}

func (s *reportService) Generate(ctx context.Context, requestID string, in report.Input, d report.Display) models.Run {
	start := s.now()
	run := models.Run{
		ID:        uuid.NewString(),
		RequestID: requestID,
		Files:     []string{handleName(in.Comb), handleName(in.Ext), handleName(in.Int)},
		LimEf:     in.LimEf,
		LimNorm:   in.LimNorm,
		CreatedAt: start.UTC(),
	}
	log := logger.ForRun(run.ID)

	// capture the outcome for the audit trail; Render itself never looks at why
	rec := &outcomeRecorder{next: s.proc}
	run.Present = report.Render(ctx, rec, in, d)
	run.DurationMs = s.now().Sub(start).Milliseconds()

	if res, ok := rec.out.Result(); ok {
		run.EfficientRows = res.EffFinal.Len()
		log.Info().Int("efficient_rows", run.EfficientRows).Int64("duration_ms", run.DurationMs).Msg("report rendered")
	} else {
		run.Reason = rec.out.Reason()
		log.Info().Str("reason", run.Reason).Int64("duration_ms", run.DurationMs).Msg("report halted: no result")
	}

	actx, cancel := context.WithTimeout(context.WithoutCancel(ctx), auditTimeout)
	defer cancel()
	if err := s.repo.InsertRun(actx, run); err != nil {
		log.Error().Err(err).Msg("audit insert failed")
	}
	return run
}

func (s *reportService) RecentRuns(ctx context.Context, limit int) ([]models.Run, error) {
	return s.repo.ListRecentRuns(ctx, limit)
}

type outcomeRecorder struct {
	next report.Processor
	out  models.Outcome
}

func (r *outcomeRecorder) Process(ctx context.Context, in report.Input) models.Outcome {
	r.out = r.next.Process(ctx, in)
	return r.out
}

func handleName(h upload.Handle) string {
	if h == nil {
		return ""
	}
	return h.Name()
}
