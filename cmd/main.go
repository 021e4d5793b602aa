package main

//
//  @title           custopulse API
//  @version         1.0
//  @description     Uploaded-file cost processing: internal and external cost totals plus the efficient records table.
//  @termsOfService  https://github.com/guttosm/custopulse
//  @contact.name    API Support
//  @contact.url     https://github.com/guttosm/custopulse
//  @contact.email   support@example.com
//  @license.name    MIT
//  @license.url     https://opensource.org/licenses/MIT
//  @host            localhost:8080
//  @BasePath        /
//  @schemes         http
//
//  @tag.name        report
//  @tag.description Cost report generation and run history
//
//  @tag.name        health
//  @tag.description Liveness and readiness probes

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/guttosm/custopulse/config"
	_ "github.com/guttosm/custopulse/docs" // swagger docs
	"github.com/guttosm/custopulse/internal/app"
	"github.com/guttosm/custopulse/internal/display"
	"github.com/guttosm/custopulse/internal/logger"
	"github.com/guttosm/custopulse/internal/report"
	"github.com/guttosm/custopulse/internal/service"
	"github.com/guttosm/custopulse/internal/upload"
)

// exitNoResult is returned by process mode when the pass halts without a result.
const exitNoResult = 2

// startServer initializes and starts the HTTP server in a separate goroutine.
//
// Parameters:
//   - router (http.Handler): The HTTP router (Gin Engine) configured with all routes.
//   - port (string): The port where the server will listen for incoming requests.
//
// Returns:
//   - *http.Server: The initialized HTTP server instance.
func startServer(router http.Handler, port string) *http.Server {
	server := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadTimeout:       60 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      90 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.L().Info().Str("port", port).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.L().Fatal().Err(err).Msg("server failed to start")
		}
	}()

	return server
}

// gracefulShutdown gracefully terminates the HTTP server and cleans up resources
// when an OS interrupt signal (SIGINT, SIGTERM) is received.
//
// Parameters:
//   - ctx (context.Context): A context with timeout for graceful shutdown.
//   - server (*http.Server): The HTTP server instance to shut down.
//   - cleanup (func()): Cleanup callback to release resources (e.g., DB connections).
func gracefulShutdown(ctx context.Context, server *http.Server, cleanup func()) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	<-quit
	logger.L().Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.L().Fatal().Err(err).Msg("server forced to shutdown")
	}

	cleanup()
	logger.L().Info().Msg("server exited gracefully")
}

// processOptions are the inputs of a one-shot rendering pass.
type processOptions struct {
	Comb, Ext, Int string
	LimEf, LimNorm float64
	Out            string // optional .xlsx or .pdf path
}

// runProcess renders one pass to stdout (and to opts.Out when set) and
// returns the process exit code.
func runProcess(ctx context.Context, svc service.ReportService, opts processOptions, stdout io.Writer) (int, error) {
	term := display.NewTerminal(stdout)
	d := display.Tee{term}

	var doc display.Document
	if opts.Out != "" {
		format := strings.TrimPrefix(strings.ToLower(filepath.Ext(opts.Out)), ".")
		var err error
		if doc, _, err = display.NewDocument(format); err != nil {
			return 1, fmt.Errorf("output %s: %w", opts.Out, err)
		}
		d = append(d, doc)
	}

	in := report.Input{
		Comb:    upload.NewFileHandle(opts.Comb),
		Ext:     upload.NewFileHandle(opts.Ext),
		Int:     upload.NewFileHandle(opts.Int),
		LimEf:   opts.LimEf,
		LimNorm: opts.LimNorm,
	}

	run := svc.Generate(ctx, "", in, d)
	if !run.Present {
		return exitNoResult, nil
	}
	if err := term.Err(); err != nil {
		return 1, fmt.Errorf("write terminal: %w", err)
	}

	if doc != nil {
		f, err := os.Create(opts.Out)
		if err != nil {
			return 1, fmt.Errorf("create %s: %w", opts.Out, err)
		}
		if _, err := doc.WriteTo(f); err != nil {
			_ = f.Close()
			return 1, fmt.Errorf("write %s: %w", opts.Out, err)
		}
		if err := f.Close(); err != nil {
			return 1, fmt.Errorf("close %s: %w", opts.Out, err)
		}
		logger.L().Info().Str("run_id", run.ID).Str("path", opts.Out).Msg("report written")
	}
	return 0, nil
}

// main is the entry point of the custopulse application.
//
// Modes (selected via --mode flag):
//   - api:     Starts the REST API that accepts uploads and renders reports.
//   - process: Runs one pass over local files and prints the report.
//
// Flags:
//   - --mode: Execution mode ("api" or "process"). Default: "api".
//   - --port: Port for the API server. Defaults to value from config (SERVER_PORT).
//   - --comb, --ext, --int: input file paths for process mode.
//   - --lim-ef, --lim-norm: thresholds for process mode (defaults from LIM_EF / LIM_NORM).
//   - --out: optional .xlsx or .pdf file written by process mode.
func main() {
	ctx := context.Background()

	// Load configuration from environment or .env file
	config.LoadConfig()

	// Initialize JSON logger
	logger.Init()

	// Parse CLI flags (override config defaults if provided)
	mode := flag.String("mode", "api", "Mode: api or process")
	port := flag.String("port", config.AppConfig.Server.Port, "Port for API mode")
	comb := flag.String("comb", "", "Combined file (.csv, .txt, .xlsx)")
	ext := flag.String("ext", "", "External cost file")
	intFile := flag.String("int", "", "Internal cost file")
	limEf := flag.Float64("lim-ef", config.AppConfig.Processing.LimEf, "Efficiency threshold")
	limNorm := flag.Float64("lim-norm", config.AppConfig.Processing.LimNorm, "Normality threshold")
	out := flag.String("out", "", "Optional report file (.xlsx or .pdf)")
	flag.Parse()

	switch *mode {
	case "process":
		// keep stdout for the report itself
		logger.SetOutput(os.Stderr)

		svc, _, cleanup, err := app.NewReportService(config.AppConfig)
		if err != nil {
			logger.L().Fatal().Err(err).Msg("service init error")
		}

		code, err := runProcess(ctx, svc, processOptions{
			Comb: *comb, Ext: *ext, Int: *intFile,
			LimEf: *limEf, LimNorm: *limNorm,
			Out: *out,
		}, os.Stdout)
		cleanup()
		if err != nil {
			logger.L().Error().Err(err).Msg("process failed")
		}
		os.Exit(code)

	case "api":
		// API mode: start the HTTP server
		logger.L().Info().Msg("starting API server")

		router, cleanup, err := app.InitializeApp()
		if err != nil {
			logger.L().Fatal().Err(err).Msg("app init error")
		}

		server := startServer(router, *port)
		gracefulShutdown(ctx, server, cleanup)

	default:
		logger.L().Fatal().Str("mode", *mode).Msg("unknown mode")
	}
}
