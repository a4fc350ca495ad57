// Package app wires configuration, storage, the event bus, and the feature
// modules into a single process.
package app

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"

	"github.com/high-country-wrestling/roster-bot/app/eventbus"
	"github.com/high-country-wrestling/roster-bot/app/modules/importer"
	"github.com/high-country-wrestling/roster-bot/app/modules/reports"
	"github.com/high-country-wrestling/roster-bot/app/modules/roster"
	rosterdb "github.com/high-country-wrestling/roster-bot/app/modules/roster/infrastructure/repositories"
	"github.com/high-country-wrestling/roster-bot/app/modules/session"
	"github.com/high-country-wrestling/roster-bot/config"
	"github.com/high-country-wrestling/roster-bot/internal/observability"
)

// App holds the assembled application.
type App struct {
	Config        *config.Config
	Observability *observability.Observability
	DB            *bun.DB
	EventBus      eventbus.EventBus

	RosterModule   *roster.Module
	SessionModule  *session.Module
	ImporterModule *importer.Module
	ReportsModule  *reports.Module

	httpServer    *http.Server
	metricsServer *http.Server
}

// NewApp builds every dependency and module. Nothing is started yet; call
// Run to serve.
func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	obs := observability.New("roster-bot", cfg.Observability.Environment)
	logger := obs.Logger

	pgdb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(cfg.Postgres.DSN)))
	db := bun.NewDB(pgdb, pgdialect.New())
	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	eventBus, err := eventbus.NewEventBus(ctx, cfg.NATS.URL, logger)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize event bus: %w", err)
	}

	store := rosterdb.NewStore(db)

	rosterModule, err := roster.NewRosterModule(ctx, cfg, obs, store, eventBus)
	if err != nil {
		eventBus.Close()
		db.Close()
		return nil, fmt.Errorf("failed to initialize roster module: %w", err)
	}

	sessionModule, err := session.NewSessionModule(ctx, cfg, obs, db, eventBus)
	if err != nil {
		eventBus.Close()
		db.Close()
		return nil, fmt.Errorf("failed to initialize session module: %w", err)
	}

	importerModule := importer.NewImporterModule(ctx, obs, db)
	reportsModule := reports.NewReportsModule(ctx, obs, store)

	a := &App{
		Config:         cfg,
		Observability:  obs,
		DB:             db,
		EventBus:       eventBus,
		RosterModule:   rosterModule,
		SessionModule:  sessionModule,
		ImporterModule: importerModule,
		ReportsModule:  reportsModule,
	}

	a.httpServer = &http.Server{
		Addr:    cfg.HTTP.Address,
		Handler: a.router(),
	}

	if cfg.Observability.MetricsAddress != "" {
		metricsMux := http.NewServeMux()
		metricsMux.Handle("/metrics", promhttp.HandlerFor(obs.Registry, promhttp.HandlerOpts{}))
		a.metricsServer = &http.Server{
			Addr:    cfg.Observability.MetricsAddress,
			Handler: metricsMux,
		}
	}

	return a, nil
}

// router assembles the public HTTP surface from the module handlers.
func (a *App) router() http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	r.Route("/api", func(r chi.Router) {
		r.Mount("/roster", a.RosterModule.Handler())
		r.Mount("/sessions", a.SessionModule.Handler())
		r.Mount("/import", a.ImporterModule.Handler())
		r.Mount("/reports", a.ReportsModule.Handler())
	})

	return r
}
