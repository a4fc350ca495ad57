package roster

import (
	"context"
	"net/http"
	"sync"

	"golang.org/x/time/rate"

	"github.com/high-country-wrestling/roster-bot/app/eventbus"
	rosterservice "github.com/high-country-wrestling/roster-bot/app/modules/roster/application"
	rosterdb "github.com/high-country-wrestling/roster-bot/app/modules/roster/infrastructure/repositories"
	rosterrouter "github.com/high-country-wrestling/roster-bot/app/modules/roster/infrastructure/router"
	"github.com/high-country-wrestling/roster-bot/config"
	"github.com/high-country-wrestling/roster-bot/internal/observability"
)

// Module represents the roster module.
type Module struct {
	EventBus      eventbus.EventBus
	RosterService rosterservice.Service
	Router        *rosterrouter.RosterRouter
	config        *config.Config
	observability *observability.Observability
	cancelFunc    context.CancelFunc
}

// NewRosterModule creates a new instance of the roster module.
func NewRosterModule(
	ctx context.Context,
	cfg *config.Config,
	obs *observability.Observability,
	store rosterdb.Repository,
	eventBus eventbus.EventBus,
) (*Module, error) {
	logger := obs.Logger

	logger.InfoContext(ctx, "roster.NewRosterModule called")

	rosterService := rosterservice.NewRosterService(store, eventBus, logger, obs.Metrics, obs.Tracer)
	router := rosterrouter.NewRosterRouter(rosterService, logger, rate.Limit(cfg.HTTP.RateLimit))

	return &Module{
		EventBus:      eventBus,
		RosterService: rosterService,
		Router:        router,
		config:        cfg,
		observability: obs,
	}, nil
}

// Handler returns the module's HTTP surface for mounting on the app server.
func (m *Module) Handler() http.Handler {
	return m.Router.Handler()
}

// Run keeps the module alive until the context is canceled.
func (m *Module) Run(ctx context.Context, wg *sync.WaitGroup) {
	logger := m.observability.Logger
	logger.InfoContext(ctx, "Starting roster module")

	ctx, cancel := context.WithCancel(ctx)
	m.cancelFunc = cancel
	defer cancel()

	if wg != nil {
		defer wg.Done()
	}

	<-ctx.Done()
	logger.InfoContext(ctx, "Roster module goroutine stopped")
}

// Close stops the roster module.
func (m *Module) Close() error {
	m.observability.Logger.Info("Stopping roster module")
	if m.cancelFunc != nil {
		m.cancelFunc()
	}
	return nil
}
