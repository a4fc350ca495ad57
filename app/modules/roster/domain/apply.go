package rosterdomain

import (
	"fmt"

	sharedtypes "github.com/high-country-wrestling/roster-bot/app/shared/types"
)

// Apply replays a transaction against an in-memory snapshot and returns the
// resulting snapshot, leaving the input untouched. The store applies the
// same mutations against Postgres; this pure form backs the round-trip and
// no-double-occupancy properties and lets callers preview a commit.
func Apply(snap Snapshot, tx Transaction) (Snapshot, error) {
	out := cloneSnapshot(snap)
	for _, m := range tx.Mutations {
		if err := applyMutation(&out, m); err != nil {
			return snap, err
		}
	}
	return out, nil
}

func applyMutation(snap *Snapshot, m Mutation) error {
	switch m.Kind {
	case KindWrestler:
		return applyWrestler(snap, m)
	case KindCompetitionTeam:
		return applyCompetitionTeam(snap, m)
	case KindHomeTeam:
		return applyHomeTeam(snap, m)
	default:
		return fmt.Errorf("unsupported entity kind %q", m.Kind)
	}
}

func applyWrestler(snap *Snapshot, m Mutation) error {
	id := sharedtypes.WrestlerID(m.ID)
	if m.Delete {
		delete(snap.Wrestlers, id)
		return nil
	}
	w, ok := snap.Wrestlers[id]
	if !ok {
		return fmt.Errorf("wrestler %s not in snapshot", m.ID)
	}
	for field, value := range m.Fields {
		switch field {
		case FieldStatus:
			w.Status = sharedtypes.WrestlerStatus(value.(string))
		case FieldCompetitionTeamID:
			w.CompetitionTeamID = sharedtypes.CompetitionTeamID(value.(string))
		case FieldCompetitionTeamName:
			w.CompetitionTeamName = value.(string)
		case FieldAssignedWeightClassSlot:
			w.AssignedWeightClassSlot = value.(string)
		case FieldFarmOutDivision:
			w.FarmOutDivision = sharedtypes.Division(value.(string))
		case FieldActualWeight:
			w.ActualWeight = value.(float64)
		case FieldCalculatedWeightClass:
			w.CalculatedWeightClass = value.(string)
		case FieldIsFemale:
			w.IsFemale = value.(bool)
		case FieldIsMiddleSchool:
			w.IsMiddleSchool = value.(bool)
		default:
			return fmt.Errorf("unknown wrestler field %q", field)
		}
	}
	snap.Wrestlers[id] = w
	return nil
}

func applyCompetitionTeam(snap *Snapshot, m Mutation) error {
	id := sharedtypes.CompetitionTeamID(m.ID)
	if m.Delete {
		delete(snap.CompetitionTeams, id)
		return nil
	}
	t, ok := snap.CompetitionTeams[id]
	if !ok {
		return fmt.Errorf("competition team %s not in snapshot", m.ID)
	}
	for field, value := range m.Fields {
		switch field {
		case FieldRoster:
			t.Roster = value.(RosterMap).Clone()
		case FieldReserves:
			reserves := value.([]sharedtypes.WrestlerID)
			t.Reserves = append([]sharedtypes.WrestlerID(nil), reserves...)
		default:
			return fmt.Errorf("unknown competition team field %q", field)
		}
	}
	snap.CompetitionTeams[id] = t
	return nil
}

func applyHomeTeam(snap *Snapshot, m Mutation) error {
	id := sharedtypes.HomeTeamID(m.ID)
	if m.Delete {
		delete(snap.HomeTeams, id)
		return nil
	}
	t, ok := snap.HomeTeams[id]
	if !ok {
		return fmt.Errorf("home team %s not in snapshot", m.ID)
	}
	for field, value := range m.Fields {
		switch field {
		case FieldWeighInComplete:
			t.WeighInComplete = value.(bool)
		case FieldRosterComplete:
			t.RosterComplete = value.(bool)
		default:
			return fmt.Errorf("unknown home team field %q", field)
		}
	}
	snap.HomeTeams[id] = t
	return nil
}

func cloneSnapshot(snap Snapshot) Snapshot {
	out := Snapshot{
		Session:          snap.Session,
		HomeTeams:        make(map[sharedtypes.HomeTeamID]HomeTeam, len(snap.HomeTeams)),
		Wrestlers:        make(map[sharedtypes.WrestlerID]Wrestler, len(snap.Wrestlers)),
		CompetitionTeams: make(map[sharedtypes.CompetitionTeamID]CompetitionTeam, len(snap.CompetitionTeams)),
	}
	for id, t := range snap.HomeTeams {
		out.HomeTeams[id] = t
	}
	for id, w := range snap.Wrestlers {
		out.Wrestlers[id] = w
	}
	for id, t := range snap.CompetitionTeams {
		t.Roster = t.Roster.Clone()
		t.Reserves = append([]sharedtypes.WrestlerID(nil), t.Reserves...)
		out.CompetitionTeams[id] = t
	}
	return out
}
