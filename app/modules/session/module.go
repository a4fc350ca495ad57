package session

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/uptrace/bun"

	"github.com/high-country-wrestling/roster-bot/app/eventbus"
	sessionservice "github.com/high-country-wrestling/roster-bot/app/modules/session/application"
	sessionhandlers "github.com/high-country-wrestling/roster-bot/app/modules/session/infrastructure/handlers"
	sessionqueue "github.com/high-country-wrestling/roster-bot/app/modules/session/infrastructure/queue"
	sessiondb "github.com/high-country-wrestling/roster-bot/app/modules/session/infrastructure/repositories"
	"github.com/high-country-wrestling/roster-bot/config"
	"github.com/high-country-wrestling/roster-bot/internal/observability"
)

// Module represents the session module.
type Module struct {
	SessionService sessionservice.Service
	Queue          sessionqueue.QueueService
	handlers       *sessionhandlers.SessionHandlers
	observability  *observability.Observability
	cancelFunc     context.CancelFunc
}

// NewSessionModule creates a new instance of the session module.
func NewSessionModule(
	ctx context.Context,
	cfg *config.Config,
	obs *observability.Observability,
	db *bun.DB,
	eventBus eventbus.EventBus,
) (*Module, error) {
	logger := obs.Logger

	logger.InfoContext(ctx, "session.NewSessionModule called")

	store := sessiondb.NewStore(db)

	queue, err := sessionqueue.NewService(ctx, cfg.Postgres.DSN, store, eventBus, logger)
	if err != nil {
		return nil, err
	}

	service := sessionservice.NewSessionService(store, queue, eventBus, logger, obs.Metrics, obs.Tracer)
	handlers := sessionhandlers.NewSessionHandlers(service, logger)

	return &Module{
		SessionService: service,
		Queue:          queue,
		handlers:       handlers,
		observability:  obs,
	}, nil
}

// Handler returns the module's HTTP surface for mounting on the app server.
func (m *Module) Handler() http.Handler {
	return m.handlers.Routes()
}

// Run starts the queue workers and keeps the module alive until the
// context is canceled.
func (m *Module) Run(ctx context.Context, wg *sync.WaitGroup) {
	logger := m.observability.Logger
	logger.InfoContext(ctx, "Starting session module")

	ctx, cancel := context.WithCancel(ctx)
	m.cancelFunc = cancel
	defer cancel()

	if wg != nil {
		defer wg.Done()
	}

	if err := m.Queue.Start(ctx); err != nil {
		logger.ErrorContext(ctx, "Failed to start session queue", slog.Any("error", err))
		return
	}

	<-ctx.Done()
	logger.InfoContext(ctx, "Session module goroutine stopped")
}

// Close stops the session module and its queue workers.
func (m *Module) Close() error {
	logger := m.observability.Logger
	logger.Info("Stopping session module")

	if m.cancelFunc != nil {
		m.cancelFunc()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := m.Queue.Stop(ctx); err != nil {
		logger.Error("Error stopping session queue", slog.Any("error", err))
		return err
	}

	logger.Info("Session module stopped")
	return nil
}
