package rosterhandlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	rosterdomain "github.com/high-country-wrestling/roster-bot/app/modules/roster/domain"
	sharedtypes "github.com/high-country-wrestling/roster-bot/app/shared/types"
)

// PlacementRequestDto names a roster target for eligibility and assignment.
type PlacementRequestDto struct {
	TeamID string                 `json:"team_id"`
	Role   sharedtypes.RosterRole `json:"role"`
	Slot   string                 `json:"slot,omitempty"`
}

func (d PlacementRequestDto) toDomain() rosterdomain.EligibilityRequest {
	return rosterdomain.EligibilityRequest{
		TeamID: sharedtypes.CompetitionTeamID(d.TeamID),
		Role:   d.Role,
		Slot:   d.Slot,
	}
}

// ResolveEligibility lists the wrestlers who may fill a roster target.
func (h *RosterHandlers) ResolveEligibility(w http.ResponseWriter, r *http.Request) {
	sessionID := sharedtypes.SessionID(chi.URLParam(r, "sessionID"))

	var input PlacementRequestDto
	if !h.decode(w, r, &input) {
		return
	}

	result, err := h.service.ResolveEligibility(r.Context(), sessionID, input.toDomain())
	if err != nil {
		h.respondError(w, r, result, err)
		return
	}
	h.respondJSON(w, http.StatusOK, result.Success)
}

// AssignWrestler places a wrestler into a starter slot or the reserves.
func (h *RosterHandlers) AssignWrestler(w http.ResponseWriter, r *http.Request) {
	sessionID := sharedtypes.SessionID(chi.URLParam(r, "sessionID"))
	wrestlerID := sharedtypes.WrestlerID(chi.URLParam(r, "wrestlerID"))

	var input PlacementRequestDto
	if !h.decode(w, r, &input) {
		return
	}

	result, err := h.service.AssignWrestler(r.Context(), sessionID, wrestlerID, input.toDomain())
	if err != nil {
		h.respondError(w, r, result, err)
		return
	}
	h.respondJSON(w, http.StatusOK, result.Success)
}

// UnassignWrestler removes a wrestler from their current placement.
func (h *RosterHandlers) UnassignWrestler(w http.ResponseWriter, r *http.Request) {
	sessionID := sharedtypes.SessionID(chi.URLParam(r, "sessionID"))
	wrestlerID := sharedtypes.WrestlerID(chi.URLParam(r, "wrestlerID"))

	var input PlacementRequestDto
	if !h.decode(w, r, &input) {
		return
	}

	result, err := h.service.UnassignWrestler(r.Context(), sessionID, wrestlerID,
		sharedtypes.CompetitionTeamID(input.TeamID), input.Role, input.Slot)
	if err != nil {
		h.respondError(w, r, result, err)
		return
	}
	h.respondJSON(w, http.StatusOK, result.Success)
}

// FarmOutDto carries the division a wrestler is offered to.
type FarmOutDto struct {
	Division sharedtypes.Division `json:"division"`
}

// FarmOutWrestler moves an unassigned wrestler into a division's farm-out pool.
func (h *RosterHandlers) FarmOutWrestler(w http.ResponseWriter, r *http.Request) {
	sessionID := sharedtypes.SessionID(chi.URLParam(r, "sessionID"))
	wrestlerID := sharedtypes.WrestlerID(chi.URLParam(r, "wrestlerID"))

	var input FarmOutDto
	if !h.decode(w, r, &input) {
		return
	}

	result, err := h.service.FarmOutWrestler(r.Context(), sessionID, wrestlerID, input.Division)
	if err != nil {
		h.respondError(w, r, result, err)
		return
	}
	h.respondJSON(w, http.StatusOK, result.Success)
}

// ListFarmOutPlacements lists the open slots a farmed-out wrestler could fill,
// best fit first.
func (h *RosterHandlers) ListFarmOutPlacements(w http.ResponseWriter, r *http.Request) {
	sessionID := sharedtypes.SessionID(chi.URLParam(r, "sessionID"))
	wrestlerID := sharedtypes.WrestlerID(chi.URLParam(r, "wrestlerID"))

	result, err := h.service.ListFarmOutPlacements(r.Context(), sessionID, wrestlerID)
	if err != nil {
		h.respondError(w, r, result, err)
		return
	}
	h.respondJSON(w, http.StatusOK, result.Success)
}
