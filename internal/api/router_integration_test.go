//go:build integration
// +build integration

package api_test

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/docker/go-connections/nat"
	_ "github.com/lib/pq"
	goose "github.com/pressly/goose/v3"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/guttosm/custopulse/config"
	"github.com/guttosm/custopulse/internal/app"
)

func startPG(t *testing.T) (dsn string, host string, port nat.Port, terminate func()) {
	t.Helper()
	ctx := context.Background()
	req := tc.ContainerRequest{
		Image:        "postgres:15-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_DB":       "custopulse",
			"POSTGRES_USER":     "postgres",
			"POSTGRES_PASSWORD": "postgres",
		},
		WaitingFor: wait.ForSQL("5432/tcp", "postgres", func(h string, p nat.Port) string {
			return fmt.Sprintf("host=%s port=%s user=postgres password=postgres dbname=custopulse sslmode=disable", h, p.Port())
		}).WithStartupTimeout(60 * time.Second),
	}
	c, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{ContainerRequest: req, Started: true})
	if err != nil {
		t.Fatalf("container: %v", err)
	}
	h, err := c.Host(ctx)
	if err != nil {
		t.Fatalf("host: %v", err)
	}
	mp, err := c.MappedPort(ctx, "5432/tcp")
	if err != nil {
		t.Fatalf("port: %v", err)
	}
	dsn = fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", "postgres", "postgres", h, mp.Port(), "custopulse")
	terminate = func() { _ = c.Terminate(context.Background()) }
	return dsn, h, mp, terminate
}

func migrate(t *testing.T, dsn string) {
	t.Helper()
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer db.Close()
	if err := goose.SetDialect("postgres"); err != nil {
		t.Fatalf("dialect: %v", err)
	}
	if err := goose.Up(db, filepath.Join("..", "..", "db", "migrations")); err != nil {
		t.Fatalf("migrate: %v", err)
	}
}

func reportRequest(t *testing.T, files map[string]string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for field, content := range files {
		fw, err := mw.CreateFormFile(field, field+".csv")
		if err != nil {
			t.Fatalf("form file: %v", err)
		}
		_, _ = fw.Write([]byte(content))
	}
	_ = mw.WriteField("lim_ef", "100")
	_ = mw.WriteField("lim_norm", "200")
	_ = mw.Close()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/report", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestAPI_E2E_ReportAndRuns(t *testing.T) {
	dsn, host, port, term := startPG(t)
	defer term()
	migrate(t, dsn)

	old := config.AppConfig
	t.Cleanup(func() { config.AppConfig = old })
	config.AppConfig.Processing = config.ProcessingConfig{LimEf: 100, LimNorm: 200, MaxUploadBytes: 1 << 20}
	config.AppConfig.Audit.Enabled = true
	config.AppConfig.Postgres.Host = host
	p, _ := nat.ParsePort(port.Port())
	config.AppConfig.Postgres.Port = int(p)
	config.AppConfig.Postgres.User = "postgres"
	config.AppConfig.Postgres.Password = "postgres"
	config.AppConfig.Postgres.DBName = "custopulse"
	config.AppConfig.Postgres.SSLMode = "disable"

	router, cleanup, err := app.InitializeApp()
	if err != nil {
		t.Fatalf("init app: %v", err)
	}
	defer cleanup()

	files := map[string]string{
		"comb": "codigo;descricao;indicador\nA1;Item 1;50\nA2;Item 2;250\n",
		"ext":  "codigo;custo\nA1;10\nA2;20,5\n",
		"int":  "codigo;custo\nA1;7\nA2;9\n",
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, reportRequest(t, files))
	if w.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d body=%s", w.Code, w.Body.String())
	}

	delete(files, "ext")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, reportRequest(t, files))
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", w.Code)
	}

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/runs?limit=10", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("runs status: %d", w.Code)
	}
	var body struct {
		Runs []struct {
			Present       bool   `json:"present"`
			Reason        string `json:"reason"`
			EfficientRows int    `json:"efficient_rows"`
		} `json:"runs"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("json: %v", err)
	}
	if len(body.Runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(body.Runs))
	}
	// newest first
	if body.Runs[0].Present || body.Runs[0].Reason == "" {
		t.Fatalf("expected halted run first: %+v", body.Runs[0])
	}
	if !body.Runs[1].Present || body.Runs[1].EfficientRows != 1 {
		t.Fatalf("unexpected rendered run: %+v", body.Runs[1])
	}
}
