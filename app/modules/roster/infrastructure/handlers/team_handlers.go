package rosterhandlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	rosterdomain "github.com/high-country-wrestling/roster-bot/app/modules/roster/domain"
	sharedtypes "github.com/high-country-wrestling/roster-bot/app/shared/types"
)

// CreateHomeTeamDto represents the input data for registering a home team.
type CreateHomeTeamDto struct {
	Name  string `json:"name"`
	State string `json:"state,omitempty"`
}

// CreateHomeTeam registers a home team in the session.
func (h *RosterHandlers) CreateHomeTeam(w http.ResponseWriter, r *http.Request) {
	sessionID := sharedtypes.SessionID(chi.URLParam(r, "sessionID"))

	var input CreateHomeTeamDto
	if !h.decode(w, r, &input) {
		return
	}

	result, err := h.service.CreateHomeTeam(r.Context(), sessionID, rosterdomain.HomeTeam{
		Name:  input.Name,
		State: input.State,
	})
	if err != nil {
		h.respondError(w, r, result, err)
		return
	}
	h.respondJSON(w, http.StatusCreated, result.Success)
}

// CreateCompetitionTeamDto represents the input data for a competition team.
type CreateCompetitionTeamDto struct {
	Name                 string               `json:"name"`
	AssociatedHomeTeamID string               `json:"associated_home_team_id"`
	Division             sharedtypes.Division `json:"division"`
}

// CreateCompetitionTeam registers a competition team tied to a home team.
func (h *RosterHandlers) CreateCompetitionTeam(w http.ResponseWriter, r *http.Request) {
	sessionID := sharedtypes.SessionID(chi.URLParam(r, "sessionID"))

	var input CreateCompetitionTeamDto
	if !h.decode(w, r, &input) {
		return
	}

	result, err := h.service.CreateCompetitionTeam(r.Context(), sessionID, rosterdomain.CompetitionTeam{
		Name:                 input.Name,
		AssociatedHomeTeamID: sharedtypes.HomeTeamID(input.AssociatedHomeTeamID),
		Division:             input.Division,
	})
	if err != nil {
		h.respondError(w, r, result, err)
		return
	}
	h.respondJSON(w, http.StatusCreated, result.Success)
}

// DeleteCompetitionTeam removes a competition team and reverts its roster.
func (h *RosterHandlers) DeleteCompetitionTeam(w http.ResponseWriter, r *http.Request) {
	sessionID := sharedtypes.SessionID(chi.URLParam(r, "sessionID"))
	teamID := sharedtypes.CompetitionTeamID(chi.URLParam(r, "teamID"))

	result, err := h.service.DeleteCompetitionTeam(r.Context(), sessionID, teamID)
	if err != nil {
		h.respondError(w, r, result, err)
		return
	}
	h.respondJSON(w, http.StatusOK, result.Success)
}

// CompletionDto represents the input data for home-team progress checkboxes.
type CompletionDto struct {
	WeighInComplete bool `json:"weigh_in_complete"`
	RosterComplete  bool `json:"roster_complete"`
}

// SetHomeTeamCompletion updates a home team's weigh-in and roster checkboxes.
func (h *RosterHandlers) SetHomeTeamCompletion(w http.ResponseWriter, r *http.Request) {
	sessionID := sharedtypes.SessionID(chi.URLParam(r, "sessionID"))
	teamID := sharedtypes.HomeTeamID(chi.URLParam(r, "teamID"))

	var input CompletionDto
	if !h.decode(w, r, &input) {
		return
	}

	result, err := h.service.SetHomeTeamCompletion(r.Context(), sessionID, teamID, input.WeighInComplete, input.RosterComplete)
	if err != nil {
		h.respondError(w, r, result, err)
		return
	}
	h.respondJSON(w, http.StatusOK, result.Success)
}

// BulkFlagsDto represents the input data for a team-wide flag update.
type BulkFlagsDto struct {
	IsFemale       bool `json:"is_female"`
	IsMiddleSchool bool `json:"is_middle_school"`
}

// BulkSetDivisionFlags flags every eligible wrestler of a home team at once.
func (h *RosterHandlers) BulkSetDivisionFlags(w http.ResponseWriter, r *http.Request) {
	sessionID := sharedtypes.SessionID(chi.URLParam(r, "sessionID"))
	teamID := sharedtypes.HomeTeamID(chi.URLParam(r, "teamID"))

	var input BulkFlagsDto
	if !h.decode(w, r, &input) {
		return
	}

	result, err := h.service.BulkSetDivisionFlags(r.Context(), sessionID, teamID, input.IsFemale, input.IsMiddleSchool)
	if err != nil {
		h.respondError(w, r, result, err)
		return
	}
	h.respondJSON(w, http.StatusOK, result.Success)
}

// ClearSessionData deletes every team and wrestler in the session.
func (h *RosterHandlers) ClearSessionData(w http.ResponseWriter, r *http.Request) {
	sessionID := sharedtypes.SessionID(chi.URLParam(r, "sessionID"))

	result, err := h.service.ClearSessionData(r.Context(), sessionID)
	if err != nil {
		h.respondError(w, r, result, err)
		return
	}
	h.respondJSON(w, http.StatusOK, result.Success)
}
