package reports

import (
	"context"
	"net/http"

	reportsservice "github.com/high-country-wrestling/roster-bot/app/modules/reports/application"
	reportshandlers "github.com/high-country-wrestling/roster-bot/app/modules/reports/infrastructure/handlers"
	"github.com/high-country-wrestling/roster-bot/internal/observability"
)

// Module represents the reports module.
type Module struct {
	ReportsService reportsservice.Service
	handlers       *reportshandlers.ReportsHandlers
}

// NewReportsModule creates a new instance of the reports module. It reads
// through the roster repository and owns no storage of its own.
func NewReportsModule(
	ctx context.Context,
	obs *observability.Observability,
	snapshots reportsservice.SnapshotLoader,
) *Module {
	obs.Logger.InfoContext(ctx, "reports.NewReportsModule called")

	service := reportsservice.NewReportsService(snapshots, obs.Logger, obs.Metrics, obs.Tracer)

	return &Module{
		ReportsService: service,
		handlers:       reportshandlers.NewReportsHandlers(service, obs.Logger),
	}
}

// Handler returns the module's HTTP surface for mounting on the app server.
func (m *Module) Handler() http.Handler {
	return m.handlers.Routes()
}
