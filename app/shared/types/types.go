// Package sharedtypes holds the scalar identifier and enum types shared
// across roster-bot modules.
package sharedtypes

// Entity identifiers. All entities are scoped to a single session.
type (
	SessionID         string
	HomeTeamID        string
	WrestlerID        string
	CompetitionTeamID string
)

// Division is a competition bracket with its own weight-class catalog.
type Division string

const (
	DivisionI  Division = "I"
	DivisionII Division = "II"
)

// Valid reports whether d is one of the two competition divisions.
func (d Division) Valid() bool {
	return d == DivisionI || d == DivisionII
}

// WrestlerStatus tracks a wrestler's placement state.
type WrestlerStatus string

const (
	WrestlerUnassigned       WrestlerStatus = "Unassigned"
	WrestlerFarmOutAvailable WrestlerStatus = "FarmOutAvailable"
	WrestlerStarter          WrestlerStatus = "Starter"
	WrestlerReserve          WrestlerStatus = "Reserve"
)

// Assigned reports whether the status ties the wrestler to a competition
// team.
func (s WrestlerStatus) Assigned() bool {
	return s == WrestlerStarter || s == WrestlerReserve
}

// RosterRole is the placement role requested for a wrestler on a
// competition team.
type RosterRole string

const (
	RoleStarter RosterRole = "starter"
	RoleReserve RosterRole = "reserve"
)
