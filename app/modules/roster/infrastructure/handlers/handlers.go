package rosterhandlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	rosterdomain "github.com/high-country-wrestling/roster-bot/app/modules/roster/domain"
	rosterservice "github.com/high-country-wrestling/roster-bot/app/modules/roster/application"
	rosterdb "github.com/high-country-wrestling/roster-bot/app/modules/roster/infrastructure/repositories"
	"github.com/high-country-wrestling/roster-bot/app/shared/results"
)

// RosterHandlers exposes the roster service over HTTP.
type RosterHandlers struct {
	service rosterservice.Service
	logger  *slog.Logger
}

// NewRosterHandlers creates a new RosterHandlers instance.
func NewRosterHandlers(service rosterservice.Service, logger *slog.Logger) *RosterHandlers {
	return &RosterHandlers{
		service: service,
		logger:  logger,
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

func (h *RosterHandlers) respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to encode response", slog.Any("error", err))
	}
}

// respondError maps domain error types onto HTTP status codes. Failure
// payloads from the service carry more detail than the error string, so
// when one is present it rides along in the body.
func (h *RosterHandlers) respondError(w http.ResponseWriter, r *http.Request, result results.OperationResult, err error) {
	status := http.StatusInternalServerError

	var ve *rosterdomain.ValidationError
	var ie *rosterdomain.IneligibleAssignmentError
	var cv *rosterdomain.ConsistencyViolation
	switch {
	case errors.Is(err, rosterdb.ErrSessionNotFound):
		status = http.StatusNotFound
	case errors.As(err, &ve):
		status = http.StatusBadRequest
	case errors.As(err, &ie):
		status = http.StatusUnprocessableEntity
	case errors.As(err, &cv):
		status = http.StatusConflict
	}

	h.logger.ErrorContext(r.Context(), "request failed",
		slog.String("path", r.URL.Path),
		slog.Int("status", status),
		slog.Any("error", err),
	)

	if result.Failure != nil {
		h.respondJSON(w, status, result.Failure)
		return
	}
	h.respondJSON(w, status, errorResponse{Error: err.Error()})
}

func (h *RosterHandlers) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		h.respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body: " + err.Error()})
		return false
	}
	return true
}
