// Package rosterevents defines the topics and payloads the roster module
// publishes after committing transactions.
package rosterevents

import (
	sharedtypes "github.com/high-country-wrestling/roster-bot/app/shared/types"
)

// Topics. The "roster" JetStream stream captures everything under roster.>.
const (
	WrestlerAssigned     = "roster.wrestler.assigned"
	WrestlerUnassigned   = "roster.wrestler.unassigned"
	WrestlerFarmedOut    = "roster.wrestler.farmed_out"
	WrestlerWeighedIn    = "roster.wrestler.weighed_in"
	WrestlerFlagsChanged = "roster.wrestler.flags_changed"
	WrestlerDeleted      = "roster.wrestler.deleted"
	TeamDeleted          = "roster.team.deleted"
	RosterCommitFailed   = "roster.commit.failed"
)

// Session lifecycle topics, captured by the "session" stream.
const (
	SessionCreated    = "session.created"
	SessionDeleted    = "session.deleted"
	SessionDuplicated = "session.duplicated"
)

// AssignedPayload announces a committed placement.
type AssignedPayload struct {
	SessionID  sharedtypes.SessionID         `json:"session_id"`
	WrestlerID sharedtypes.WrestlerID        `json:"wrestler_id"`
	TeamID     sharedtypes.CompetitionTeamID `json:"team_id"`
	Role       sharedtypes.RosterRole        `json:"role"`
	Slot       string                        `json:"slot,omitempty"`
	// DisplacedWrestlerID is set when the placement bumped a prior occupant.
	DisplacedWrestlerID sharedtypes.WrestlerID `json:"displaced_wrestler_id,omitempty"`
}

// UnassignedPayload announces a committed removal.
type UnassignedPayload struct {
	SessionID      sharedtypes.SessionID         `json:"session_id"`
	WrestlerID     sharedtypes.WrestlerID        `json:"wrestler_id"`
	TeamID         sharedtypes.CompetitionTeamID `json:"team_id"`
	Role           sharedtypes.RosterRole        `json:"role"`
	Slot           string                        `json:"slot,omitempty"`
	RevertedStatus sharedtypes.WrestlerStatus    `json:"reverted_status"`
}

// FarmedOutPayload announces a wrestler entering the farm-out pool.
type FarmedOutPayload struct {
	SessionID  sharedtypes.SessionID  `json:"session_id"`
	WrestlerID sharedtypes.WrestlerID `json:"wrestler_id"`
	Division   sharedtypes.Division   `json:"division"`
}

// WeighedInPayload announces a recorded weight.
type WeighedInPayload struct {
	SessionID             sharedtypes.SessionID  `json:"session_id"`
	WrestlerID            sharedtypes.WrestlerID `json:"wrestler_id"`
	ActualWeight          float64                `json:"actual_weight"`
	CalculatedWeightClass string                 `json:"calculated_weight_class"`
}

// FlagsChangedPayload announces a division flag update.
type FlagsChangedPayload struct {
	SessionID      sharedtypes.SessionID  `json:"session_id"`
	WrestlerID     sharedtypes.WrestlerID `json:"wrestler_id"`
	IsFemale       bool                   `json:"is_female"`
	IsMiddleSchool bool                   `json:"is_middle_school"`
}

// WrestlerDeletedPayload announces a wrestler removal.
type WrestlerDeletedPayload struct {
	SessionID  sharedtypes.SessionID  `json:"session_id"`
	WrestlerID sharedtypes.WrestlerID `json:"wrestler_id"`
}

// TeamDeletedPayload announces a competition team removal, including the
// wrestlers the deletion reverted.
type TeamDeletedPayload struct {
	SessionID         sharedtypes.SessionID         `json:"session_id"`
	TeamID            sharedtypes.CompetitionTeamID `json:"team_id"`
	RevertedWrestlers []sharedtypes.WrestlerID      `json:"reverted_wrestlers,omitempty"`
}

// SessionCreatedPayload announces a new session record.
type SessionCreatedPayload struct {
	SessionID sharedtypes.SessionID `json:"session_id"`
	Name      string                `json:"name"`
}

// SessionDeletedPayload announces a session removal.
type SessionDeletedPayload struct {
	SessionID sharedtypes.SessionID `json:"session_id"`
}

// SessionDuplicatedPayload announces a completed background deep copy.
type SessionDuplicatedPayload struct {
	SourceSessionID sharedtypes.SessionID `json:"source_session_id"`
	TargetSessionID sharedtypes.SessionID `json:"target_session_id"`
}

// CommitFailedPayload reports a rejected transaction. No partial state was
// written.
type CommitFailedPayload struct {
	SessionID sharedtypes.SessionID `json:"session_id"`
	Operation string                `json:"operation"`
	Reason    string                `json:"reason"`
}
