package importer

import (
	"context"
	"net/http"

	"github.com/uptrace/bun"

	importerservice "github.com/high-country-wrestling/roster-bot/app/modules/importer/application"
	importerhandlers "github.com/high-country-wrestling/roster-bot/app/modules/importer/infrastructure/handlers"
	importerdb "github.com/high-country-wrestling/roster-bot/app/modules/importer/infrastructure/repositories"
	"github.com/high-country-wrestling/roster-bot/internal/observability"
)

// Module represents the importer module.
type Module struct {
	ImporterService importerservice.Service
	handlers        *importerhandlers.ImporterHandlers
}

// NewImporterModule creates a new instance of the importer module.
func NewImporterModule(
	ctx context.Context,
	obs *observability.Observability,
	db *bun.DB,
) *Module {
	obs.Logger.InfoContext(ctx, "importer.NewImporterModule called")

	store := importerdb.NewStore(db)
	service := importerservice.NewImporterService(store, obs.Logger, obs.Metrics, obs.Tracer)

	return &Module{
		ImporterService: service,
		handlers:        importerhandlers.NewImporterHandlers(service, obs.Logger),
	}
}

// Handler returns the module's HTTP surface for mounting on the app server.
func (m *Module) Handler() http.Handler {
	return m.handlers.Routes()
}
