package app

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/custopulse/config"
	"github.com/guttosm/custopulse/internal/api"
	"github.com/guttosm/custopulse/internal/logger"
	"github.com/guttosm/custopulse/internal/processor"
	"github.com/guttosm/custopulse/internal/service"
	"github.com/guttosm/custopulse/internal/storage"
)

// InitializeApp sets up all application dependencies and returns
// a fully configured Gin router, a cleanup function for graceful shutdown,
// and any error encountered during initialization.
//
// Responsibilities:
//   - Connects to PostgreSQL using InitPostgres() when auditing is enabled.
//   - Initializes the run repository (RunsRepository or its no-op variant).
//   - Wires the cost processor and the report service.
//   - Configures the Gin router with all API routes.
//   - Registers health and readiness probes.
//   - Provides a cleanup function to close resources (e.g., DB connection).
//
// Returns:
//   - *gin.Engine: the configured Gin HTTP router.
//   - func(): cleanup function to be executed on shutdown.
//   - error: any initialization error that occurred.
func InitializeApp() (*gin.Engine, func(), error) {
	// Load global configuration
	cfg := config.AppConfig

	svc, ping, cleanup, err := NewReportService(cfg)
	if err != nil {
		return nil, nil, err
	}

	// Initialize HTTP handler layer (business logic to HTTP mapping)
	handler := api.NewHandler(svc, cfg.Processing)

	// Setup Gin router with routes
	router := api.NewRouter(handler)

	// Register health and readiness probes
	api.NewHealthHandler(ping).Register(router)

	return router, cleanup, nil
}

// NewReportService wires the cost processor to the run repository chosen by
// cfg.Audit. ping is nil when auditing is disabled. Shared by the API and
// the one-shot process mode.
func NewReportService(cfg config.Config) (svc service.ReportService, ping func(ctx context.Context) error, cleanup func(), err error) {
	var repo storage.RunsRepository = storage.NopRunsRepository{}
	cleanup = func() {}

	if cfg.Audit.Enabled {
		// indirection for unit testing
		db, err := postgresOpener(cfg)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("failed to initialize postgres: %w", err)
		}
		repo = storage.NewRunsRepository(db)
		ping = repo.Ping
		cleanup = func() {
			_ = db.Close()
		}
	} else {
		logger.L().Info().Msg("run audit disabled")
	}

	return service.NewReportService(processor.New(), repo), ping, cleanup, nil
}
