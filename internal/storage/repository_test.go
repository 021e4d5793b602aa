package storage

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/guttosm/custopulse/internal/domain/models"
)

type dummyErr struct{}

func (dummyErr) Error() string { return "dummy" }

func newMockRepo(t *testing.T) (*runsRepository, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	repo := &runsRepository{db: db}
	cleanup := func() { _ = db.Close() }
	return repo, mock, cleanup
}

func sampleRun() models.Run {
	return models.Run{
		ID:            "run-1",
		RequestID:     "req-1",
		Files:         []string{"comb.csv", "ext.csv", "int.csv"},
		LimEf:         100,
		LimNorm:       200,
		Present:       true,
		EfficientRows: 2,
		DurationMs:    12,
		CreatedAt:     time.Date(2025, 9, 12, 10, 0, 0, 0, time.UTC),
	}
}

func TestInsertRun_SQLMock(t *testing.T) {
	insertRegex := regexp.QuoteMeta("INSERT INTO processing_runs")

	cases := []struct {
		name    string
		run     models.Run
		execErr error
		wantErr bool
	}{
		{name: "present run", run: sampleRun()},
		{name: "absent run with reason", run: func() models.Run {
			r := sampleRun()
			r.Present, r.Reason, r.RequestID, r.EfficientRows = false, "combined: missing upload", "", 0
			return r
		}()},
		{name: "db error", run: sampleRun(), execErr: dummyErr{}, wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo, mock, done := newMockRepo(t)
			defer done()

			var reqID, reason interface{}
			if tc.run.RequestID != "" {
				reqID = tc.run.RequestID
			}
			if tc.run.Reason != "" {
				reason = tc.run.Reason
			}

			exp := mock.ExpectExec(insertRegex).WithArgs(
				tc.run.ID, reqID, sqlmock.AnyArg(), tc.run.LimEf, tc.run.LimNorm,
				tc.run.Present, reason, tc.run.EfficientRows, tc.run.DurationMs, tc.run.CreatedAt,
			)
			if tc.execErr != nil {
				exp.WillReturnError(tc.execErr)
			} else {
				exp.WillReturnResult(sqlmock.NewResult(0, 1))
			}

			err := repo.InsertRun(context.Background(), tc.run)
			if tc.wantErr != (err != nil) {
				t.Fatalf("wantErr=%v got %v", tc.wantErr, err)
			}
			if err := mock.ExpectationsWereMet(); err != nil {
				t.Fatalf("unmet expectations: %v", err)
			}
		})
	}
}

func TestListRecentRuns_SQLMock(t *testing.T) {
	repo, mock, done := newMockRepo(t)
	defer done()

	created := time.Date(2025, 9, 12, 10, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{
		"id", "request_id", "files", "lim_ef", "lim_norm", "present", "reason", "efficient_rows", "duration_ms", "created_at",
	}).
		AddRow("run-2", nil, "{comb.csv,ext.csv,int.csv}", 1.0, 2.0, false, "bad header", 0, int64(3), created).
		AddRow("run-1", "req-1", "{a.csv,b.csv,c.csv}", 100.0, 200.0, true, nil, 2, int64(12), created)

	mock.ExpectQuery(regexp.QuoteMeta("FROM processing_runs")).WithArgs(10).WillReturnRows(rows)

	runs, err := repo.ListRecentRuns(context.Background(), 10)
	if err != nil {
		t.Fatalf("ListRecentRuns: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("want 2 runs got %d", len(runs))
	}
	if runs[0].ID != "run-2" || runs[0].RequestID != "" || runs[0].Reason != "bad header" || runs[0].Present {
		t.Fatalf("unexpected first run %+v", runs[0])
	}
	if len(runs[1].Files) != 3 || runs[1].Files[2] != "c.csv" || runs[1].EfficientRows != 2 {
		t.Fatalf("unexpected second run %+v", runs[1])
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestListRecentRuns_QueryError(t *testing.T) {
	repo, mock, done := newMockRepo(t)
	defer done()

	mock.ExpectQuery(regexp.QuoteMeta("FROM processing_runs")).WillReturnError(dummyErr{})
	if _, err := repo.ListRecentRuns(context.Background(), 5); err == nil {
		t.Fatalf("expected error")
	}
}

func TestPing_SQLMock(t *testing.T) {
	repo, mock, done := newMockRepo(t)
	defer done()

	mock.ExpectPing()
	if err := repo.Ping(context.Background()); err != nil {
		t.Fatalf("ping: %v", err)
	}
	mock.ExpectPing().WillReturnError(dummyErr{})
	if err := repo.Ping(context.Background()); err == nil {
		t.Fatalf("expected ping error")
	}
}

func TestNewRunsRepository_Construct(t *testing.T) {
	db, _, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	defer func() { _ = db.Close() }()
	if r := NewRunsRepository(db); r == nil {
		t.Fatalf("expected non-nil repository")
	}
}

func TestNopRunsRepository(t *testing.T) {
	var r RunsRepository = NopRunsRepository{}
	if err := r.InsertRun(context.Background(), sampleRun()); err != nil {
		t.Fatalf("insert: %v", err)
	}
	runs, err := r.ListRecentRuns(context.Background(), 10)
	if err != nil || runs == nil || len(runs) != 0 {
		t.Fatalf("list: %v %v", runs, err)
	}
	if err := r.Ping(context.Background()); err != nil {
		t.Fatalf("ping: %v", err)
	}
}
