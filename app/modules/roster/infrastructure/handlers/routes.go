package rosterhandlers

import "github.com/go-chi/chi/v5"

// Routes sets up the routes for the roster controller. Everything is scoped
// to a session; the session itself is managed by the session module.
func (h *RosterHandlers) Routes() chi.Router {
	r := chi.NewRouter()

	r.Route("/{sessionID}", func(r chi.Router) {
		r.Get("/snapshot", h.GetSnapshot)
		r.Get("/statistics", h.ComputeStatistics)
		r.Get("/classify", h.ClassifyWeight)
		r.Post("/eligibility", h.ResolveEligibility)

		r.Route("/wrestlers", func(r chi.Router) {
			r.Post("/", h.CreateWrestler)
			r.Delete("/{wrestlerID}", h.DeleteWrestler)
			r.Put("/{wrestlerID}/weigh-in", h.RecordWeighIn)
			r.Put("/{wrestlerID}/flags", h.SetDivisionFlags)
			r.Post("/{wrestlerID}/assign", h.AssignWrestler)
			r.Post("/{wrestlerID}/unassign", h.UnassignWrestler)
			r.Post("/{wrestlerID}/farm-out", h.FarmOutWrestler)
			r.Get("/{wrestlerID}/placements", h.ListFarmOutPlacements)
		})

		r.Route("/home-teams", func(r chi.Router) {
			r.Post("/", h.CreateHomeTeam)
			r.Put("/{teamID}/completion", h.SetHomeTeamCompletion)
			r.Put("/{teamID}/flags", h.BulkSetDivisionFlags)
		})

		r.Route("/competition-teams", func(r chi.Router) {
			r.Post("/", h.CreateCompetitionTeam)
			r.Delete("/{teamID}", h.DeleteCompetitionTeam)
		})

		r.Delete("/data", h.ClearSessionData)
	})

	return r
}
