package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gruas/acesso/internal/acesso/catalog"
	httpapi "github.com/gruas/acesso/internal/acesso/http"
	"github.com/gruas/acesso/internal/acesso/service"
	"github.com/gruas/acesso/internal/acesso/store"
	"github.com/gruas/acesso/internal/acesso/store/drivers/sqlite"
	"github.com/gruas/acesso/pkg/jwtx"
	"github.com/gruas/acesso/pkg/slogx"
)

// BuildVersion is overridden at build time via -ldflags.
var BuildVersion = "v0.1.0"

// Application wires the access control service together.
type Application struct {
	cfg    Config
	logger *slog.Logger

	// Core dependencies
	db        store.Store
	model     *catalog.Model
	keys      *jwtx.KeySet
	verifier  jwtx.Verifier
	refresher *jwtx.Refresher

	// Services
	accessService       *service.AccessService
	auditService        *service.AuditService
	recorder            *service.DecisionRecorder
	housekeepingService *service.HousekeepingService

	// HTTP server
	server *http.Server
	router *httpapi.Router

	// set once Run has started the background loops
	running bool
}

// New creates a new Application instance with all dependencies initialized
func New(cfg Config) (*Application, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "acesso",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
			File:    cfg.LogFile,
		}),
	}

	model, err := catalog.LoadModel(cfg.CatalogFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}
	app.model = model
	app.logger.Info("catalog loaded",
		"file", cfg.CatalogFile,
		"roles", len(model.Resolver.Roles()),
		"permissions", len(model.Universe),
		"routes", len(model.Routes.Rules()),
	)

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	ctx := context.Background()
	keys, verifier, refresher, err := InitVerifier(ctx, cfg, app.logger)
	if err != nil {
		_ = app.db.Close()
		return nil, fmt.Errorf("failed to initialize token verification: %w", err)
	}
	app.keys, app.verifier, app.refresher = keys, verifier, refresher

	if err := app.initServices(); err != nil {
		_ = app.db.Close()
		return nil, err
	}
	app.initHTTP()

	return app, nil
}

// Handler exposes the routed HTTP handler, mainly for tests.
func (app *Application) Handler() http.Handler { return app.router }

// Run starts the application and blocks until shutdown is requested
func (app *Application) Run() error {
	app.housekeepingService.Start()
	app.refresher.Start()
	app.running = true

	app.logger.Info("acesso service starting", "port", app.cfg.Port, "version", BuildVersion)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(shutdown)

	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
			app.logger.Error("server failed", "error", err)
			if serr := app.Shutdown(); serr != nil {
				app.logger.Error("cleanup after server failure failed", "error", serr)
			}
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)

		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown drains HTTP, flushes the decision log, stops the background
// loops and closes the store, in that order.
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down acesso service...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	if err := app.recorder.Close(ctx); err != nil {
		app.logger.Error("final audit flush failed", "error", err)
	}
	if app.running {
		app.refresher.Stop()
		app.housekeepingService.Stop()
		app.running = false
	}

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("acesso service stopped")
	return nil
}

// initDatabase opens the audit store and applies migrations
func (app *Application) initDatabase() error {
	db, err := sqlite.NewStore(sqlite.DSN(app.cfg.DatabaseFile))
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied successfully", "file", app.cfg.DatabaseFile)
	return nil
}

func (app *Application) initServices() error {
	subjectKey, err := LoadSubjectKey(app.cfg)
	if err != nil {
		return fmt.Errorf("failed to load subject key: %w", err)
	}

	app.recorder = service.NewDecisionRecorder(app.db, subjectKey, app.logger, service.RecorderConfig{
		FlushDelay: app.cfg.AuditFlushDelay,
		BatchSize:  app.cfg.AuditBatch,
	})
	app.accessService = service.NewAccessService(app.model, app.recorder, app.logger)
	app.auditService = &service.AuditService{Store: app.db, SubjectKey: subjectKey}
	app.housekeepingService = service.NewHousekeepingService(
		app.db,
		app.logger,
		app.cfg.HousekeepingInterval,
		app.cfg.AuditRetention,
	)
	return nil
}

// initHTTP initializes the HTTP router and server
func (app *Application) initHTTP() {
	router := httpapi.NewRouter(
		app.keys,
		app.verifier,
		BuildVersion,
		app.db,
		app.logger,
	)
	router.AccessService = app.accessService
	router.AuditService = app.auditService
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
