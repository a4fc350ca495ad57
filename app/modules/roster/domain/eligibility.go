package rosterdomain

import (
	"sort"

	sharedtypes "github.com/high-country-wrestling/roster-bot/app/shared/types"
)

// EligiblePools is the resolver output: the candidates drawn from the
// team's own home team and the candidates borrowed from the division's
// farm-out pool, each ordered by ascending weight. The caller picks one
// candidate from either pool; the resolver's contract ends at producing a
// correct, exhaustive, deduplicated set.
type EligiblePools struct {
	Home []Wrestler
	Farm []Wrestler
}

// EligibilityRequest names a placement target on one competition team.
// Slot is required for starter requests and ignored for reserve requests.
type EligibilityRequest struct {
	TeamID sharedtypes.CompetitionTeamID
	Role   sharedtypes.RosterRole
	Slot   string
}

// ResolveEligibility computes which wrestlers qualify for the target.
//
// Exclusions, in order: wrestlers who have not weighed in; female and
// middle-school wrestlers (those divisions are outside the open
// competition roster); wrestlers already placed elsewhere. A wrestler
// already occupying the exact slot being re-evaluated stays in the pool as
// a no-op candidate. Starter targets additionally require weight
// adjacency: a wrestler may fill their own class's slot or the slot one
// class up, never down and never more than one up.
func ResolveEligibility(snap Snapshot, req EligibilityRequest) (EligiblePools, error) {
	team, ok := snap.CompetitionTeam(req.TeamID)
	if !ok {
		return EligiblePools{}, &ValidationError{Field: "team_id", Reason: "competition team not found"}
	}
	if req.Role == sharedtypes.RoleStarter && req.Slot == "" {
		return EligiblePools{}, &ValidationError{Field: "slot", Reason: "starter requests require a slot"}
	}

	classes := snap.ClassesFor(team.Division)
	if req.Role == sharedtypes.RoleStarter && SlotIndex(req.Slot, classes) < 0 {
		return EligiblePools{}, &ValidationError{Field: "slot", Reason: "slot is not a weight class of the team's division"}
	}

	pools := EligiblePools{}
	for _, w := range snap.Wrestlers {
		if !candidateAllowed(w, team, req) {
			continue
		}
		if req.Role == sharedtypes.RoleStarter && !weightAdjacent(w, req.Slot, classes) {
			continue
		}
		switch {
		case homePoolMember(w, team, req.Role):
			pools.Home = append(pools.Home, w)
		case farmPoolMember(w, team):
			pools.Farm = append(pools.Farm, w)
		}
	}

	sortByWeight(pools.Home)
	sortByWeight(pools.Farm)
	return pools, nil
}

// candidateAllowed applies the exclusions shared by both pools.
func candidateAllowed(w Wrestler, team CompetitionTeam, req EligibilityRequest) bool {
	if !w.WeighedIn() {
		return false
	}
	if w.IsFemale || w.IsMiddleSchool {
		return false
	}
	if w.Status == sharedtypes.WrestlerStarter {
		// Starters stay eligible only for the exact slot they already hold
		// on this team; anything else would double-book them.
		slot, onTeam := team.StarterSlot(w.ID)
		if !onTeam || req.Role != sharedtypes.RoleStarter || slot != req.Slot {
			return false
		}
	}
	if req.Role == sharedtypes.RoleReserve && team.HasReserve(w.ID) {
		return false
	}
	return true
}

// homePoolMember: belongs to the team's home team and is free to place.
// For starter requests, a reserve already on this team may be promoted.
func homePoolMember(w Wrestler, team CompetitionTeam, role sharedtypes.RosterRole) bool {
	if w.HomeTeamID != team.AssociatedHomeTeamID {
		return false
	}
	switch w.Status {
	case sharedtypes.WrestlerUnassigned:
		return true
	case sharedtypes.WrestlerReserve:
		return role == sharedtypes.RoleStarter && w.CompetitionTeamID == team.ID
	case sharedtypes.WrestlerStarter:
		// Survived candidateAllowed, so this is the self-slot no-op case.
		return true
	}
	return false
}

// farmPoolMember: available for farming out in this team's division.
func farmPoolMember(w Wrestler, team CompetitionTeam) bool {
	return w.Status == sharedtypes.WrestlerFarmOutAvailable && w.FarmOutDivision == team.Division
}

// weightAdjacent enforces the lighter-up rule: slot index minus the
// candidate's class index must be 0 or 1. Superheavy candidates (class
// index -1) fit no named slot. There is deliberately no cascading fallback
// to two classes up when the one-up pool is empty.
func weightAdjacent(w Wrestler, slot string, classes []WeightClass) bool {
	i := ClassIndex(w.ActualWeight, classes)
	j := SlotIndex(slot, classes)
	if i < 0 || j < 0 {
		return false
	}
	diff := j - i
	return diff == 0 || diff == 1
}

func sortByWeight(pool []Wrestler) {
	sort.SliceStable(pool, func(a, b int) bool {
		if pool[a].ActualWeight == pool[b].ActualWeight {
			return pool[a].Name < pool[b].Name
		}
		return pool[a].ActualWeight < pool[b].ActualWeight
	})
}
