package rosterdomain

// EntityKind names the entity collection a mutation touches.
type EntityKind string

const (
	KindWrestler        EntityKind = "wrestler"
	KindHomeTeam        EntityKind = "home_team"
	KindCompetitionTeam EntityKind = "competition_team"
	KindSession         EntityKind = "session"
)

// Field names used in mutation update maps. They double as the store's
// column names.
const (
	FieldStatus                  = "status"
	FieldCompetitionTeamID       = "competition_team_id"
	FieldCompetitionTeamName     = "competition_team_name"
	FieldAssignedWeightClassSlot = "assigned_weight_class_slot"
	FieldFarmOutDivision         = "farm_out_division"
	FieldActualWeight            = "actual_weight"
	FieldCalculatedWeightClass   = "calculated_weight_class"
	FieldIsFemale                = "is_female"
	FieldIsMiddleSchool          = "is_middle_school"
	FieldRoster                  = "roster"
	FieldReserves                = "reserves"
	FieldWeighInComplete         = "weigh_in_complete"
	FieldRosterComplete          = "roster_complete"
)

// Mutation is a single-entity change: either a field-update map or a
// delete. A mutation never spans entities; atomicity across entities is the
// transaction's job.
type Mutation struct {
	Kind   EntityKind
	ID     string
	Fields map[string]any
	Delete bool
}

// UpdateMutation builds a field-update mutation.
func UpdateMutation(kind EntityKind, id string, fields map[string]any) Mutation {
	return Mutation{Kind: kind, ID: id, Fields: fields}
}

// DeleteMutation builds a delete mutation.
func DeleteMutation(kind EntityKind, id string) Mutation {
	return Mutation{Kind: kind, ID: id, Delete: true}
}

// Transaction is the complete, consistent set of entity mutations required
// to realize one assignment decision. The store must apply all of it or
// none of it.
type Transaction struct {
	Mutations []Mutation
}

// Empty reports whether the transaction mutates nothing. Reassigning a
// wrestler to the slot they already occupy yields an empty transaction.
func (t Transaction) Empty() bool { return len(t.Mutations) == 0 }

// MutationCount returns the number of single-entity mutations. Bulk
// operations use it to chunk under the store's per-transaction limit
// without splitting one entity's multi-field change across commits.
func (t Transaction) MutationCount() int { return len(t.Mutations) }

// add appends a mutation, merging field updates when the transaction
// already touches the same entity. A transaction never carries two entries
// for one entity, so a chunk boundary can never split an entity's change.
func (t *Transaction) add(m Mutation) {
	for i := range t.Mutations {
		existing := &t.Mutations[i]
		if existing.Kind != m.Kind || existing.ID != m.ID {
			continue
		}
		if m.Delete {
			existing.Fields = nil
			existing.Delete = true
			return
		}
		if existing.Delete {
			return
		}
		for k, v := range m.Fields {
			existing.Fields[k] = v
		}
		return
	}
	t.Mutations = append(t.Mutations, m)
}

// clearedAssignmentFields is the update map that detaches a wrestler from
// any competition team.
func clearedAssignmentFields(status string) map[string]any {
	return map[string]any{
		FieldStatus:                  status,
		FieldCompetitionTeamID:       "",
		FieldCompetitionTeamName:     "",
		FieldAssignedWeightClassSlot: "",
	}
}
