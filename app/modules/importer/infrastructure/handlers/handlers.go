// Package importerhandlers exposes the CSV importer over HTTP. Request
// bodies are raw CSV, not JSON.
package importerhandlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	importerservice "github.com/high-country-wrestling/roster-bot/app/modules/importer/application"
	"github.com/high-country-wrestling/roster-bot/app/shared/results"
	sharedtypes "github.com/high-country-wrestling/roster-bot/app/shared/types"
)

// ImporterHandlers routes CSV import requests.
type ImporterHandlers struct {
	service importerservice.Service
	logger  *slog.Logger
}

// NewImporterHandlers creates a new ImporterHandlers instance.
func NewImporterHandlers(service importerservice.Service, logger *slog.Logger) *ImporterHandlers {
	return &ImporterHandlers{service: service, logger: logger}
}

type errorResponse struct {
	Error string `json:"error"`
}

func (h *ImporterHandlers) respond(w http.ResponseWriter, result results.OperationResult, err error) {
	w.Header().Set("Content-Type", "application/json")
	if err != nil {
		h.logger.Error("import request failed", slog.Any("error", err))
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(errorResponse{Error: err.Error()})
		return
	}
	w.WriteHeader(http.StatusOK)
	if encodeErr := json.NewEncoder(w).Encode(result.Success); encodeErr != nil {
		h.logger.Error("failed to encode response", slog.Any("error", encodeErr))
	}
}

// ImportHomeTeams imports a home team CSV.
func (h *ImporterHandlers) ImportHomeTeams(w http.ResponseWriter, r *http.Request) {
	sessionID := sharedtypes.SessionID(chi.URLParam(r, "sessionID"))
	result, err := h.service.ImportHomeTeams(r.Context(), sessionID, r.Body)
	h.respond(w, result, err)
}

// ImportWrestlers imports a wrestler CSV.
func (h *ImporterHandlers) ImportWrestlers(w http.ResponseWriter, r *http.Request) {
	sessionID := sharedtypes.SessionID(chi.URLParam(r, "sessionID"))
	result, err := h.service.ImportWrestlers(r.Context(), sessionID, r.Body)
	h.respond(w, result, err)
}

// ImportCompetitionTeams imports a competition team CSV.
func (h *ImporterHandlers) ImportCompetitionTeams(w http.ResponseWriter, r *http.Request) {
	sessionID := sharedtypes.SessionID(chi.URLParam(r, "sessionID"))
	result, err := h.service.ImportCompetitionTeams(r.Context(), sessionID, r.Body)
	h.respond(w, result, err)
}

// Routes sets up the routes for the importer controller.
func (h *ImporterHandlers) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/{sessionID}/home-teams", h.ImportHomeTeams)
	r.Post("/{sessionID}/wrestlers", h.ImportWrestlers)
	r.Post("/{sessionID}/competition-teams", h.ImportCompetitionTeams)
	return r
}
