package rosterdomain

import (
	"fmt"

	sharedtypes "github.com/high-country-wrestling/roster-bot/app/shared/types"
)

// The transaction builder computes the minimal atomic mutation set for one
// placement decision. It never touches storage: the output is a descriptor
// the store applies all-or-nothing. Builders validate everything up front
// and return the snapshot's error kinds; a returned transaction is always
// safe to submit against the snapshot it was built from.

// BuildAssignment produces the transaction that places the wrestler on the
// team in the requested role. For a starter request whose slot already
// holds a different wrestler, the displaced occupant's reversion travels in
// the same transaction; no intermediate state ever shows two wrestlers on
// one slot or a half-cleared occupant.
func BuildAssignment(snap Snapshot, wrestlerID sharedtypes.WrestlerID, req EligibilityRequest) (Transaction, error) {
	var tx Transaction

	w, ok := snap.Wrestler(wrestlerID)
	if !ok {
		return tx, &ValidationError{Field: "wrestler_id", Reason: "wrestler not found"}
	}
	if w.HomeTeamID == "" {
		return tx, &ValidationError{Field: "home_team_id", Reason: "wrestler has no home team"}
	}
	team, ok := snap.CompetitionTeam(req.TeamID)
	if !ok {
		return tx, &ValidationError{Field: "team_id", Reason: "competition team not found"}
	}

	// Self-reassignment is a no-op, not an error: the caller gets an empty
	// transaction that leaves the snapshot unchanged.
	if req.Role == sharedtypes.RoleStarter {
		if occupant, filled := team.Roster.Occupant(req.Slot); filled && occupant == wrestlerID {
			return tx, nil
		}
	}

	pools, err := ResolveEligibility(snap, req)
	if err != nil {
		return tx, err
	}
	if !poolsContain(pools, wrestlerID) {
		return tx, &IneligibleAssignmentError{
			WrestlerID: string(wrestlerID),
			Reason:     fmt.Sprintf("fails eligibility for %s on team %s", describeTarget(req), team.Name),
		}
	}

	if err := checkUnreferencedElsewhere(snap, w, team.ID); err != nil {
		return tx, err
	}

	roster := team.Roster.Clone()
	reserves := removeReserve(team.Reserves, wrestlerID)
	wrestlerFields := map[string]any{
		FieldCompetitionTeamID:   string(team.ID),
		FieldCompetitionTeamName: team.Name,
		FieldFarmOutDivision:     "",
	}

	switch req.Role {
	case sharedtypes.RoleStarter:
		if !CanBecomeStarter(w.Status) {
			return tx, &IneligibleAssignmentError{WrestlerID: string(wrestlerID), Reason: fmt.Sprintf("status %s cannot become a starter", w.Status)}
		}
		if displacedID, filled := team.Roster.Occupant(req.Slot); filled {
			displaced, ok := snap.Wrestler(displacedID)
			if !ok {
				return tx, &ConsistencyViolation{Reason: fmt.Sprintf("slot %s references unknown wrestler %s", req.Slot, displacedID)}
			}
			tx.add(UpdateMutation(KindWrestler, string(displacedID), unassignmentFields(displaced, team)))
		}
		roster[req.Slot] = wrestlerID
		wrestlerFields[FieldStatus] = string(sharedtypes.WrestlerStarter)
		wrestlerFields[FieldAssignedWeightClassSlot] = req.Slot

	case sharedtypes.RoleReserve:
		if !CanBecomeReserve(w.Status) {
			return tx, &IneligibleAssignmentError{WrestlerID: string(wrestlerID), Reason: fmt.Sprintf("status %s cannot become a reserve", w.Status)}
		}
		reserves = append(reserves, wrestlerID)
		wrestlerFields[FieldStatus] = string(sharedtypes.WrestlerReserve)
		wrestlerFields[FieldAssignedWeightClassSlot] = ""

	default:
		return tx, &ValidationError{Field: "role", Reason: fmt.Sprintf("unknown roster role %q", req.Role)}
	}

	tx.add(UpdateMutation(KindWrestler, string(wrestlerID), wrestlerFields))
	teamFields := map[string]any{}
	if req.Role == sharedtypes.RoleStarter {
		teamFields[FieldRoster] = roster
		if team.HasReserve(wrestlerID) {
			// A reserve promoted to starter leaves the reserve list in the
			// same commit.
			teamFields[FieldReserves] = reserves
		}
	} else {
		teamFields[FieldReserves] = reserves
	}
	tx.add(UpdateMutation(KindCompetitionTeam, string(team.ID), teamFields))
	return tx, nil
}

// BuildUnassignment produces the transaction that removes the wrestler from
// the team: the roster slot or reserve entry is cleared and the wrestler
// reverts per the home/farmed asymmetry, all in one commit.
func BuildUnassignment(snap Snapshot, wrestlerID sharedtypes.WrestlerID, teamID sharedtypes.CompetitionTeamID, role sharedtypes.RosterRole, slot string) (Transaction, error) {
	var tx Transaction

	w, ok := snap.Wrestler(wrestlerID)
	if !ok {
		return tx, &ValidationError{Field: "wrestler_id", Reason: "wrestler not found"}
	}
	team, ok := snap.CompetitionTeam(teamID)
	if !ok {
		return tx, &ValidationError{Field: "team_id", Reason: "competition team not found"}
	}

	teamFields := map[string]any{}
	switch role {
	case sharedtypes.RoleStarter:
		occupant, filled := team.Roster.Occupant(slot)
		if !filled || occupant != wrestlerID {
			return tx, &ValidationError{Field: "slot", Reason: fmt.Sprintf("wrestler does not start at slot %s", slot)}
		}
		roster := team.Roster.Clone()
		roster[slot] = ""
		teamFields[FieldRoster] = roster

	case sharedtypes.RoleReserve:
		if !team.HasReserve(wrestlerID) {
			return tx, &ValidationError{Field: "wrestler_id", Reason: "wrestler is not on the team's reserve list"}
		}
		teamFields[FieldReserves] = removeReserve(team.Reserves, wrestlerID)

	default:
		return tx, &ValidationError{Field: "role", Reason: fmt.Sprintf("unknown roster role %q", role)}
	}

	tx.add(UpdateMutation(KindWrestler, string(wrestlerID), unassignmentFields(w, team)))
	tx.add(UpdateMutation(KindCompetitionTeam, string(team.ID), teamFields))
	return tx, nil
}

// BuildFarmOut marks a wrestler as available for farming out in the chosen
// division. The female/middle-school flags clear because a farm-out
// candidate competes in the open division.
func BuildFarmOut(snap Snapshot, wrestlerID sharedtypes.WrestlerID, division sharedtypes.Division) (Transaction, error) {
	var tx Transaction

	w, ok := snap.Wrestler(wrestlerID)
	if !ok {
		return tx, &ValidationError{Field: "wrestler_id", Reason: "wrestler not found"}
	}
	if !division.Valid() {
		return tx, &ValidationError{Field: "farm_out_division", Reason: "a farm-out requires an explicit division choice"}
	}
	if w.Status.Assigned() {
		return tx, &IneligibleAssignmentError{WrestlerID: string(wrestlerID), Reason: "unassign from the competition team before farming out"}
	}

	tx.add(UpdateMutation(KindWrestler, string(wrestlerID), map[string]any{
		FieldStatus:          string(sharedtypes.WrestlerFarmOutAvailable),
		FieldFarmOutDivision: string(division),
		FieldIsFemale:        false,
		FieldIsMiddleSchool:  false,
	}))
	return tx, nil
}

// BuildWeighIn records an actual weight and recomputes the calculated
// class. Status never changes here; a weight change only shifts which
// slots the wrestler is eligible for, evaluated at assignment time.
func BuildWeighIn(snap Snapshot, wrestlerID sharedtypes.WrestlerID, weight float64) (Transaction, error) {
	var tx Transaction

	if _, ok := snap.Wrestler(wrestlerID); !ok {
		return tx, &ValidationError{Field: "wrestler_id", Reason: "wrestler not found"}
	}
	if weight < 0 {
		return tx, &ValidationError{Field: "actual_weight", Reason: "weight cannot be negative"}
	}

	tx.add(UpdateMutation(KindWrestler, string(wrestlerID), map[string]any{
		FieldActualWeight:          weight,
		FieldCalculatedWeightClass: Classify(weight, StandardWeightClasses),
	}))
	return tx, nil
}

// BuildDivisionFlags sets the female / middle-school flags, keeping them
// mutually exclusive. Flag changes are refused while the wrestler holds a
// competition-team placement.
func BuildDivisionFlags(snap Snapshot, wrestlerID sharedtypes.WrestlerID, female, middleSchool bool) (Transaction, error) {
	var tx Transaction

	w, ok := snap.Wrestler(wrestlerID)
	if !ok {
		return tx, &ValidationError{Field: "wrestler_id", Reason: "wrestler not found"}
	}
	if female && middleSchool {
		return tx, &ValidationError{Field: "is_female", Reason: "female and middle school are mutually exclusive"}
	}
	if w.Status.Assigned() && (female || middleSchool) {
		return tx, &IneligibleAssignmentError{WrestlerID: string(wrestlerID), Reason: "unassign from the competition team before changing division flags"}
	}

	fields := map[string]any{
		FieldIsFemale:       female,
		FieldIsMiddleSchool: middleSchool,
	}
	if (female || middleSchool) && w.Status == sharedtypes.WrestlerFarmOutAvailable {
		// Leaving the open division also leaves the farm-out pool.
		fields[FieldStatus] = string(sharedtypes.WrestlerUnassigned)
		fields[FieldFarmOutDivision] = ""
	}
	tx.add(UpdateMutation(KindWrestler, string(wrestlerID), fields))
	return tx, nil
}

// BuildWrestlerDeletion removes a wrestler. When the wrestler occupies a
// roster slot or reserve entry, the referencing team is updated in the same
// transaction so no roster is ever left pointing at a dangling id.
func BuildWrestlerDeletion(snap Snapshot, wrestlerID sharedtypes.WrestlerID) (Transaction, error) {
	var tx Transaction

	w, ok := snap.Wrestler(wrestlerID)
	if !ok {
		return tx, &ValidationError{Field: "wrestler_id", Reason: "wrestler not found"}
	}

	if w.CompetitionTeamID != "" {
		team, ok := snap.CompetitionTeam(w.CompetitionTeamID)
		if !ok {
			return tx, &ConsistencyViolation{Reason: fmt.Sprintf("wrestler %s references unknown competition team %s", w.ID, w.CompetitionTeamID)}
		}
		teamFields := map[string]any{}
		if slot, started := team.StarterSlot(wrestlerID); started {
			roster := team.Roster.Clone()
			roster[slot] = ""
			teamFields[FieldRoster] = roster
		}
		if team.HasReserve(wrestlerID) {
			teamFields[FieldReserves] = removeReserve(team.Reserves, wrestlerID)
		}
		if len(teamFields) > 0 {
			tx.add(UpdateMutation(KindCompetitionTeam, string(team.ID), teamFields))
		}
	}

	tx.add(DeleteMutation(KindWrestler, string(wrestlerID)))
	return tx, nil
}

// BuildTeamDeletion removes a competition team and reverts every wrestler
// referencing it in the same transaction, applying the home/farmed
// asymmetry to each.
func BuildTeamDeletion(snap Snapshot, teamID sharedtypes.CompetitionTeamID) (Transaction, error) {
	var tx Transaction

	team, ok := snap.CompetitionTeam(teamID)
	if !ok {
		return tx, &ValidationError{Field: "team_id", Reason: "competition team not found"}
	}

	for _, w := range snap.Wrestlers {
		if w.CompetitionTeamID == teamID {
			tx.add(UpdateMutation(KindWrestler, string(w.ID), unassignmentFields(w, team)))
		}
	}
	tx.add(DeleteMutation(KindCompetitionTeam, string(teamID)))
	return tx, nil
}

// checkUnreferencedElsewhere rejects assignments for wrestlers that other
// teams' rosters or reserve lists still reference. A healthy snapshot never
// trips this; it guards against committing on top of a corrupted one.
func checkUnreferencedElsewhere(snap Snapshot, w Wrestler, target sharedtypes.CompetitionTeamID) error {
	for _, team := range snap.CompetitionTeams {
		if team.ID == target {
			continue
		}
		if _, started := team.StarterSlot(w.ID); started || team.HasReserve(w.ID) {
			return &ConsistencyViolation{Reason: fmt.Sprintf("wrestler %s is still referenced by team %s", w.ID, team.Name)}
		}
	}
	return nil
}

func poolsContain(pools EligiblePools, id sharedtypes.WrestlerID) bool {
	for _, w := range pools.Home {
		if w.ID == id {
			return true
		}
	}
	for _, w := range pools.Farm {
		if w.ID == id {
			return true
		}
	}
	return false
}

func removeReserve(reserves []sharedtypes.WrestlerID, id sharedtypes.WrestlerID) []sharedtypes.WrestlerID {
	out := make([]sharedtypes.WrestlerID, 0, len(reserves))
	for _, r := range reserves {
		if r != id {
			out = append(out, r)
		}
	}
	return out
}

func describeTarget(req EligibilityRequest) string {
	if req.Role == sharedtypes.RoleStarter {
		return fmt.Sprintf("slot %s", req.Slot)
	}
	return "reserve"
}
