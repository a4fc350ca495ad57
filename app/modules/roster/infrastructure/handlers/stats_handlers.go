package rosterhandlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/high-country-wrestling/roster-bot/app/shared/results"
	sharedtypes "github.com/high-country-wrestling/roster-bot/app/shared/types"
)

// ComputeStatistics returns the session's headline counts and forfeit grids.
func (h *RosterHandlers) ComputeStatistics(w http.ResponseWriter, r *http.Request) {
	sessionID := sharedtypes.SessionID(chi.URLParam(r, "sessionID"))

	result, err := h.service.ComputeStatistics(r.Context(), sessionID)
	if err != nil {
		h.respondError(w, r, result, err)
		return
	}
	h.respondJSON(w, http.StatusOK, result.Success)
}

// ClassifyWeight previews the weight class a given weight falls into,
// honoring the session's custom classes for the division.
func (h *RosterHandlers) ClassifyWeight(w http.ResponseWriter, r *http.Request) {
	sessionID := sharedtypes.SessionID(chi.URLParam(r, "sessionID"))
	division := sharedtypes.Division(r.URL.Query().Get("division"))

	weight, err := strconv.ParseFloat(r.URL.Query().Get("weight"), 64)
	if err != nil {
		h.respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid weight parameter"})
		return
	}

	result, err := h.service.ClassifyWeight(r.Context(), sessionID, division, weight)
	if err != nil {
		h.respondError(w, r, result, err)
		return
	}
	h.respondJSON(w, http.StatusOK, result.Success)
}

// GetSnapshot returns the session's complete roster state.
func (h *RosterHandlers) GetSnapshot(w http.ResponseWriter, r *http.Request) {
	sessionID := sharedtypes.SessionID(chi.URLParam(r, "sessionID"))

	snap, err := h.service.GetSnapshot(r.Context(), sessionID)
	if err != nil {
		h.respondError(w, r, results.OperationResult{}, err)
		return
	}
	h.respondJSON(w, http.StatusOK, snap)
}
