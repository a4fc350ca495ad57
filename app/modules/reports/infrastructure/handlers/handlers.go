// Package reportshandlers serves generated report artifacts.
package reportshandlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	reportsservice "github.com/high-country-wrestling/roster-bot/app/modules/reports/application"
	sharedtypes "github.com/high-country-wrestling/roster-bot/app/shared/types"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ReportsHandlers routes report download requests.
type ReportsHandlers struct {
	service reportsservice.Service
	logger  *slog.Logger
}

// NewReportsHandlers creates a new ReportsHandlers instance.
func NewReportsHandlers(service reportsservice.Service, logger *slog.Logger) *ReportsHandlers {
	return &ReportsHandlers{service: service, logger: logger}
}

func (h *ReportsHandlers) respondError(w http.ResponseWriter, err error) {
	h.logger.Error("report request failed", slog.Any("error", err))
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusInternalServerError)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
}

// RosterWorkbook serves the division roster workbook.
func (h *ReportsHandlers) RosterWorkbook(w http.ResponseWriter, r *http.Request) {
	sessionID := sharedtypes.SessionID(chi.URLParam(r, "sessionID"))
	division := sharedtypes.Division(r.URL.Query().Get("division"))

	payload, err := h.service.RosterWorkbook(r.Context(), sessionID, division)
	if err != nil {
		h.respondError(w, err)
		return
	}
	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="rosters.xlsx"`)
	_, _ = w.Write(payload)
}

// PlacementWorkbook serves the home team placement workbook.
func (h *ReportsHandlers) PlacementWorkbook(w http.ResponseWriter, r *http.Request) {
	sessionID := sharedtypes.SessionID(chi.URLParam(r, "sessionID"))

	payload, err := h.service.PlacementWorkbook(r.Context(), sessionID)
	if err != nil {
		h.respondError(w, err)
		return
	}
	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="placements.xlsx"`)
	_, _ = w.Write(payload)
}

// ForfeitChart serves the division forfeit overview PNG.
func (h *ReportsHandlers) ForfeitChart(w http.ResponseWriter, r *http.Request) {
	sessionID := sharedtypes.SessionID(chi.URLParam(r, "sessionID"))
	division := sharedtypes.Division(r.URL.Query().Get("division"))

	payload, err := h.service.ForfeitChart(r.Context(), sessionID, division)
	if err != nil {
		h.respondError(w, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	_, _ = w.Write(payload)
}

// Routes sets up the routes for the reports controller.
func (h *ReportsHandlers) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/{sessionID}/rosters", h.RosterWorkbook)
	r.Get("/{sessionID}/placements", h.PlacementWorkbook)
	r.Get("/{sessionID}/forfeit-chart", h.ForfeitChart)
	return r
}
