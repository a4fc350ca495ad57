// Package sessionhandlers exposes the session service over HTTP.
package sessionhandlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	rosterdomain "github.com/high-country-wrestling/roster-bot/app/modules/roster/domain"
	sessionservice "github.com/high-country-wrestling/roster-bot/app/modules/session/application"
	sessiondb "github.com/high-country-wrestling/roster-bot/app/modules/session/infrastructure/repositories"
	sharedtypes "github.com/high-country-wrestling/roster-bot/app/shared/types"
)

// SessionHandlers routes session CRUD and duplication requests.
type SessionHandlers struct {
	service sessionservice.Service
	logger  *slog.Logger
}

// NewSessionHandlers creates a new SessionHandlers instance.
func NewSessionHandlers(service sessionservice.Service, logger *slog.Logger) *SessionHandlers {
	return &SessionHandlers{service: service, logger: logger}
}

type errorResponse struct {
	Error string `json:"error"`
}

func (h *SessionHandlers) respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to encode response", slog.Any("error", err))
	}
}

func (h *SessionHandlers) respondError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	var ve *rosterdomain.ValidationError
	switch {
	case errors.Is(err, sessiondb.ErrSessionNotFound):
		status = http.StatusNotFound
	case errors.As(err, &ve):
		status = http.StatusBadRequest
	}
	h.respondJSON(w, status, errorResponse{Error: err.Error()})
}

// CreateSessionDto represents the input data for creating a session.
type CreateSessionDto struct {
	Name string `json:"name"`
}

// CreateSession creates a named session.
func (h *SessionHandlers) CreateSession(w http.ResponseWriter, r *http.Request) {
	var input CreateSessionDto
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		h.respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body: " + err.Error()})
		return
	}

	result, err := h.service.CreateSession(r.Context(), input.Name)
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusCreated, result.Success)
}

// GetSession returns one session record.
func (h *SessionHandlers) GetSession(w http.ResponseWriter, r *http.Request) {
	id := sharedtypes.SessionID(chi.URLParam(r, "sessionID"))

	result, err := h.service.GetSession(r.Context(), id)
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, result.Success)
}

// ListSessions returns all sessions.
func (h *SessionHandlers) ListSessions(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.ListSessions(r.Context())
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, result.Success)
}

// CustomWeightsDto represents the input data for setting custom classes.
type CustomWeightsDto struct {
	Division sharedtypes.Division       `json:"division"`
	Classes  []rosterdomain.WeightClass `json:"classes"`
}

// SetCustomWeightClasses replaces a division's custom weight classes.
func (h *SessionHandlers) SetCustomWeightClasses(w http.ResponseWriter, r *http.Request) {
	id := sharedtypes.SessionID(chi.URLParam(r, "sessionID"))

	var input CustomWeightsDto
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		h.respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body: " + err.Error()})
		return
	}

	result, err := h.service.SetCustomWeightClasses(r.Context(), id, input.Division, input.Classes)
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, result.Success)
}

// DeleteSession removes a session and all its data.
func (h *SessionHandlers) DeleteSession(w http.ResponseWriter, r *http.Request) {
	id := sharedtypes.SessionID(chi.URLParam(r, "sessionID"))

	result, err := h.service.DeleteSession(r.Context(), id)
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, result.Success)
}

// DuplicateSessionDto represents the input data for duplicating a session.
type DuplicateSessionDto struct {
	Name string `json:"name"`
}

// DuplicateSession queues a deep copy of the session under a new name.
func (h *SessionHandlers) DuplicateSession(w http.ResponseWriter, r *http.Request) {
	id := sharedtypes.SessionID(chi.URLParam(r, "sessionID"))

	var input DuplicateSessionDto
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		h.respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body: " + err.Error()})
		return
	}

	result, err := h.service.DuplicateSession(r.Context(), id, input.Name)
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusAccepted, result.Success)
}

// Routes sets up the routes for the session controller.
func (h *SessionHandlers) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.CreateSession)
	r.Get("/", h.ListSessions)
	r.Get("/{sessionID}", h.GetSession)
	r.Put("/{sessionID}/weight-classes", h.SetCustomWeightClasses)
	r.Delete("/{sessionID}", h.DeleteSession)
	r.Post("/{sessionID}/duplicate", h.DuplicateSession)
	return r
}
