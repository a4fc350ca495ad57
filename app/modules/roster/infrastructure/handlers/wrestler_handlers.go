package rosterhandlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	rosterdomain "github.com/high-country-wrestling/roster-bot/app/modules/roster/domain"
	sharedtypes "github.com/high-country-wrestling/roster-bot/app/shared/types"
)

// CreateWrestlerDto represents the input data for registering a wrestler.
type CreateWrestlerDto struct {
	Name           string  `json:"name"`
	HomeTeamID     string  `json:"home_team_id"`
	HomeTeamName   string  `json:"home_team_name"`
	ActualWeight   float64 `json:"actual_weight,omitempty"`
	IsFemale       bool    `json:"is_female,omitempty"`
	IsMiddleSchool bool    `json:"is_middle_school,omitempty"`
}

// CreateWrestler registers a wrestler with a home team.
func (h *RosterHandlers) CreateWrestler(w http.ResponseWriter, r *http.Request) {
	sessionID := sharedtypes.SessionID(chi.URLParam(r, "sessionID"))

	var input CreateWrestlerDto
	if !h.decode(w, r, &input) {
		return
	}

	result, err := h.service.CreateWrestler(r.Context(), sessionID, rosterdomain.Wrestler{
		Name:           input.Name,
		HomeTeamID:     sharedtypes.HomeTeamID(input.HomeTeamID),
		HomeTeamName:   input.HomeTeamName,
		ActualWeight:   input.ActualWeight,
		IsFemale:       input.IsFemale,
		IsMiddleSchool: input.IsMiddleSchool,
	})
	if err != nil {
		h.respondError(w, r, result, err)
		return
	}
	h.respondJSON(w, http.StatusCreated, result.Success)
}

// DeleteWrestler removes a wrestler and vacates any placement they held.
func (h *RosterHandlers) DeleteWrestler(w http.ResponseWriter, r *http.Request) {
	sessionID := sharedtypes.SessionID(chi.URLParam(r, "sessionID"))
	wrestlerID := sharedtypes.WrestlerID(chi.URLParam(r, "wrestlerID"))

	result, err := h.service.DeleteWrestler(r.Context(), sessionID, wrestlerID)
	if err != nil {
		h.respondError(w, r, result, err)
		return
	}
	h.respondJSON(w, http.StatusOK, result.Success)
}

// WeighInDto represents the input data for recording a weigh-in.
type WeighInDto struct {
	Weight float64 `json:"weight"`
}

// RecordWeighIn stores a wrestler's actual weight and resulting weight class.
func (h *RosterHandlers) RecordWeighIn(w http.ResponseWriter, r *http.Request) {
	sessionID := sharedtypes.SessionID(chi.URLParam(r, "sessionID"))
	wrestlerID := sharedtypes.WrestlerID(chi.URLParam(r, "wrestlerID"))

	var input WeighInDto
	if !h.decode(w, r, &input) {
		return
	}

	result, err := h.service.RecordWeighIn(r.Context(), sessionID, wrestlerID, input.Weight)
	if err != nil {
		h.respondError(w, r, result, err)
		return
	}
	h.respondJSON(w, http.StatusOK, result.Success)
}

// DivisionFlagsDto represents the input data for a division flag update.
type DivisionFlagsDto struct {
	IsFemale       bool `json:"is_female"`
	IsMiddleSchool bool `json:"is_middle_school"`
}

// SetDivisionFlags updates a wrestler's female / middle-school flags.
func (h *RosterHandlers) SetDivisionFlags(w http.ResponseWriter, r *http.Request) {
	sessionID := sharedtypes.SessionID(chi.URLParam(r, "sessionID"))
	wrestlerID := sharedtypes.WrestlerID(chi.URLParam(r, "wrestlerID"))

	var input DivisionFlagsDto
	if !h.decode(w, r, &input) {
		return
	}

	result, err := h.service.SetDivisionFlags(r.Context(), sessionID, wrestlerID, input.IsFemale, input.IsMiddleSchool)
	if err != nil {
		h.respondError(w, r, result, err)
		return
	}
	h.respondJSON(w, http.StatusOK, result.Success)
}
