// Package rosterdomain implements the roster assignment and eligibility
// engine: the weight-class catalog, the wrestler status state machine, the
// eligibility resolver, the assignment transaction builder, and the
// aggregate statistics. Everything in this package is pure computation over
// an immutable snapshot; committing the resulting transactions is the
// store's job.
package rosterdomain

import (
	sharedtypes "github.com/high-country-wrestling/roster-bot/app/shared/types"
)

// WeightClass is a named weight-class slot with an inclusive upper bound.
type WeightClass struct {
	Name      string  `json:"name"`
	MaxWeight float64 `json:"max_weight"`
}

// HomeTeam is a club that brings wrestlers to the session. It is mutated
// only by organizer actions, never by the assignment engine.
type HomeTeam struct {
	ID              sharedtypes.HomeTeamID `json:"id"`
	Name            string                 `json:"name"`
	State           string                 `json:"state"`
	WeighInComplete bool                   `json:"weigh_in_complete"`
	RosterComplete  bool                   `json:"roster_complete"`
}

// Wrestler is a single athlete record.
//
// CalculatedWeightClass is always the deterministic function of
// ActualWeight for the wrestler's catalog; it is never set independently.
// FarmOutDivision is set iff Status is FarmOutAvailable.
// AssignedWeightClassSlot is set iff Status is Starter.
// CompetitionTeamID/Name are set iff Status is Starter or Reserve.
type Wrestler struct {
	ID                      sharedtypes.WrestlerID        `json:"id"`
	Name                    string                        `json:"name"`
	HomeTeamID              sharedtypes.HomeTeamID        `json:"home_team_id"`
	HomeTeamName            string                        `json:"home_team_name"`
	ActualWeight            float64                       `json:"actual_weight"`
	CalculatedWeightClass   string                        `json:"calculated_weight_class"`
	Status                  sharedtypes.WrestlerStatus    `json:"status"`
	CompetitionTeamID       sharedtypes.CompetitionTeamID `json:"competition_team_id,omitempty"`
	CompetitionTeamName     string                        `json:"competition_team_name,omitempty"`
	AssignedWeightClassSlot string                        `json:"assigned_weight_class_slot,omitempty"`
	IsFemale                bool                          `json:"is_female"`
	IsMiddleSchool          bool                          `json:"is_middle_school"`
	FarmOutDivision         sharedtypes.Division          `json:"farm_out_division,omitempty"`
}

// WeighedIn reports whether the wrestler has a recorded weight.
func (w Wrestler) WeighedIn() bool { return w.ActualWeight > 0 }

// RosterMap maps slot name to the wrestler occupying it. An absent or empty
// entry is a forfeit.
type RosterMap map[string]sharedtypes.WrestlerID

// Occupant returns the wrestler in the given slot and whether the slot is
// filled.
func (r RosterMap) Occupant(slot string) (sharedtypes.WrestlerID, bool) {
	id, ok := r[slot]
	if !ok || id == "" {
		return "", false
	}
	return id, true
}

// Clone returns a copy of the roster map, never nil.
func (r RosterMap) Clone() RosterMap {
	out := make(RosterMap, len(r))
	for slot, id := range r {
		out[slot] = id
	}
	return out
}

// CompetitionTeam is a team entered in one division, built from a home
// team's wrestlers plus farm-outs.
//
// Every wrestler ID appearing in Roster or Reserves must reference a
// wrestler whose CompetitionTeamID equals this team's ID and whose status
// matches the role. That invariant is enforced by the transaction builder,
// never by either side on its own.
type CompetitionTeam struct {
	ID                     sharedtypes.CompetitionTeamID `json:"id"`
	Name                   string                        `json:"name"`
	AssociatedHomeTeamID   sharedtypes.HomeTeamID        `json:"associated_home_team_id"`
	AssociatedHomeTeamName string                        `json:"associated_home_team_name"`
	Division               sharedtypes.Division          `json:"division"`
	Pool                   string                        `json:"pool,omitempty"`
	Roster                 RosterMap                     `json:"roster"`
	Reserves               []sharedtypes.WrestlerID      `json:"reserves"`
}

// HasReserve reports whether the wrestler is on this team's reserve list.
func (t CompetitionTeam) HasReserve(id sharedtypes.WrestlerID) bool {
	for _, r := range t.Reserves {
		if r == id {
			return true
		}
	}
	return false
}

// StarterSlot returns the slot the wrestler starts at on this team, if any.
func (t CompetitionTeam) StarterSlot(id sharedtypes.WrestlerID) (string, bool) {
	for slot, occupant := range t.Roster {
		if occupant == id {
			return slot, true
		}
	}
	return "", false
}

// Session scopes every other entity and carries the organizer's custom
// weight classes per division.
type Session struct {
	ID                 sharedtypes.SessionID `json:"id"`
	Name               string                `json:"name"`
	CustomWeightsDivI  []WeightClass         `json:"custom_weights_div_i,omitempty"`
	CustomWeightsDivII []WeightClass         `json:"custom_weights_div_ii,omitempty"`
}

// CustomWeights returns the session's custom classes for the division.
func (s Session) CustomWeights(division sharedtypes.Division) []WeightClass {
	if division == sharedtypes.DivisionII {
		return s.CustomWeightsDivII
	}
	return s.CustomWeightsDivI
}

// Snapshot is a point-in-time view of one session's entities. The engine
// treats it as immutable; every assignment request recomputes eligibility
// from a fresh snapshot rather than caching decisions.
type Snapshot struct {
	Session          Session
	HomeTeams        map[sharedtypes.HomeTeamID]HomeTeam
	Wrestlers        map[sharedtypes.WrestlerID]Wrestler
	CompetitionTeams map[sharedtypes.CompetitionTeamID]CompetitionTeam
}

// Wrestler looks up a wrestler by ID.
func (s Snapshot) Wrestler(id sharedtypes.WrestlerID) (Wrestler, bool) {
	w, ok := s.Wrestlers[id]
	return w, ok
}

// CompetitionTeam looks up a competition team by ID.
func (s Snapshot) CompetitionTeam(id sharedtypes.CompetitionTeamID) (CompetitionTeam, bool) {
	t, ok := s.CompetitionTeams[id]
	return t, ok
}

// HomeTeam looks up a home team by ID.
func (s Snapshot) HomeTeam(id sharedtypes.HomeTeamID) (HomeTeam, bool) {
	t, ok := s.HomeTeams[id]
	return t, ok
}

// ClassesFor resolves the ordered weight-class catalog for a division using
// the snapshot's session.
func (s Snapshot) ClassesFor(division sharedtypes.Division) []WeightClass {
	return ClassesFor(division, s.Session)
}
