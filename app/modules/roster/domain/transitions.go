package rosterdomain

import (
	"fmt"

	sharedtypes "github.com/high-country-wrestling/roster-bot/app/shared/types"
)

// The wrestler status state machine. Every transition is externally
// triggered; there are no autonomous transitions. The builder funnels all
// status changes through these helpers so the invariants hold after every
// transaction:
//
//	Unassigned            -> FarmOutAvailable (division required, flags cleared)
//	Unassigned|FarmOut|Reserve -> Starter     (team + slot required)
//	Unassigned|FarmOut    -> Reserve          (team required, no slot)
//	Starter|Reserve       -> Unassigned       (home wrestler unassigned)
//	Starter|Reserve       -> FarmOutAvailable (farmed wrestler unassigned,
//	                                           division preserved)

// CanBecomeStarter reports whether the status may transition to Starter.
func CanBecomeStarter(s sharedtypes.WrestlerStatus) bool {
	switch s {
	case sharedtypes.WrestlerUnassigned, sharedtypes.WrestlerFarmOutAvailable, sharedtypes.WrestlerReserve:
		return true
	}
	return false
}

// CanBecomeReserve reports whether the status may transition to Reserve.
func CanBecomeReserve(s sharedtypes.WrestlerStatus) bool {
	switch s {
	case sharedtypes.WrestlerUnassigned, sharedtypes.WrestlerFarmOutAvailable:
		return true
	}
	return false
}

// ValidateWrestler checks the record-level invariants that must hold after
// any transition.
func ValidateWrestler(w Wrestler) error {
	if w.IsFemale && w.IsMiddleSchool {
		return &ConsistencyViolation{Reason: fmt.Sprintf("wrestler %s cannot be both female and middle school", w.ID)}
	}
	if (w.FarmOutDivision != "") != (w.Status == sharedtypes.WrestlerFarmOutAvailable) {
		return &ConsistencyViolation{Reason: fmt.Sprintf("wrestler %s farm-out division set without FarmOutAvailable status", w.ID)}
	}
	if (w.AssignedWeightClassSlot != "") != (w.Status == sharedtypes.WrestlerStarter) {
		return &ConsistencyViolation{Reason: fmt.Sprintf("wrestler %s slot assignment does not match status %s", w.ID, w.Status)}
	}
	if (w.CompetitionTeamID != "") != w.Status.Assigned() {
		return &ConsistencyViolation{Reason: fmt.Sprintf("wrestler %s competition team reference does not match status %s", w.ID, w.Status)}
	}
	return nil
}

// unassignedStatus resolves the status a wrestler reverts to when removed
// from a competition team: home wrestlers go back to Unassigned, farmed
// wrestlers return to the farm-out pool with their division preserved.
func unassignedStatus(w Wrestler, team CompetitionTeam) sharedtypes.WrestlerStatus {
	if w.HomeTeamID != team.AssociatedHomeTeamID {
		return sharedtypes.WrestlerFarmOutAvailable
	}
	return sharedtypes.WrestlerUnassigned
}

// unassignmentFields computes the wrestler-side update for removal from a
// team, applying the home/farmed asymmetry. A farmed wrestler returns to
// the pool of the division they were wrestling in; promotion cleared their
// recorded division, so it is restored from the team.
func unassignmentFields(w Wrestler, team CompetitionTeam) map[string]any {
	status := unassignedStatus(w, team)
	fields := clearedAssignmentFields(string(status))
	if status == sharedtypes.WrestlerFarmOutAvailable {
		fields[FieldFarmOutDivision] = string(team.Division)
	} else {
		fields[FieldFarmOutDivision] = ""
	}
	return fields
}
