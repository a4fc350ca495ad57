package rosterdb

import (
	"time"

	"github.com/uptrace/bun"

	rosterdomain "github.com/high-country-wrestling/roster-bot/app/modules/roster/domain"
	sharedtypes "github.com/high-country-wrestling/roster-bot/app/shared/types"
)

// Wrestler is the wrestlers table. Column names match the mutation field
// constants in the domain package, so a field-update map applies directly.
type Wrestler struct {
	bun.BaseModel `bun:"table:wrestlers,alias:w"`

	ID                      string    `bun:"id,pk,type:varchar(36)"`
	SessionID               string    `bun:"session_id,notnull,type:varchar(36)"`
	Name                    string    `bun:"name,notnull"`
	HomeTeamID              string    `bun:"home_team_id,notnull,type:varchar(36)"`
	HomeTeamName            string    `bun:"home_team_name,notnull"`
	ActualWeight            float64   `bun:"actual_weight,notnull,default:0"`
	CalculatedWeightClass   string    `bun:"calculated_weight_class,notnull,default:'N/A'"`
	Status                  string    `bun:"status,notnull,default:'Unassigned'"`
	CompetitionTeamID       string    `bun:"competition_team_id,nullzero,type:varchar(36)"`
	CompetitionTeamName     string    `bun:"competition_team_name,nullzero"`
	AssignedWeightClassSlot string    `bun:"assigned_weight_class_slot,nullzero"`
	IsFemale                bool      `bun:"is_female,notnull,default:false"`
	IsMiddleSchool          bool      `bun:"is_middle_school,notnull,default:false"`
	FarmOutDivision         string    `bun:"farm_out_division,nullzero,type:varchar(3)"`
	CreatedAt               time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp"`
	UpdatedAt               time.Time `bun:"updated_at,nullzero,notnull,default:current_timestamp"`
}

// HomeTeam is the home_teams table.
type HomeTeam struct {
	bun.BaseModel `bun:"table:home_teams,alias:ht"`

	ID              string    `bun:"id,pk,type:varchar(36)"`
	SessionID       string    `bun:"session_id,notnull,type:varchar(36)"`
	Name            string    `bun:"name,notnull"`
	State           string    `bun:"state,nullzero"`
	WeighInComplete bool      `bun:"weigh_in_complete,notnull,default:false"`
	RosterComplete  bool      `bun:"roster_complete,notnull,default:false"`
	CreatedAt       time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp"`
	UpdatedAt       time.Time `bun:"updated_at,nullzero,notnull,default:current_timestamp"`
}

// CompetitionTeam is the competition_teams table. Roster and reserves are
// JSONB: the slot map and reserve list always change as a whole within a
// transaction, never per-entry.
type CompetitionTeam struct {
	bun.BaseModel `bun:"table:competition_teams,alias:ct"`

	ID                     string            `bun:"id,pk,type:varchar(36)"`
	SessionID              string            `bun:"session_id,notnull,type:varchar(36)"`
	Name                   string            `bun:"name,notnull"`
	AssociatedHomeTeamID   string            `bun:"associated_home_team_id,notnull,type:varchar(36)"`
	AssociatedHomeTeamName string            `bun:"associated_home_team_name,notnull"`
	Division               string            `bun:"division,notnull,type:varchar(3)"`
	Pool                   string            `bun:"pool,nullzero"`
	Roster                 map[string]string `bun:"roster,type:jsonb"`
	Reserves               []string          `bun:"reserves,type:jsonb"`
	CreatedAt              time.Time         `bun:"created_at,nullzero,notnull,default:current_timestamp"`
	UpdatedAt              time.Time         `bun:"updated_at,nullzero,notnull,default:current_timestamp"`
}

// Session is the sessions table. Custom weight classes are JSONB lists.
type Session struct {
	bun.BaseModel `bun:"table:sessions,alias:s"`

	ID                 string                     `bun:"id,pk,type:varchar(36)"`
	Name               string                     `bun:"name,notnull"`
	CustomWeightsDivI  []rosterdomain.WeightClass `bun:"custom_weights_div_i,type:jsonb"`
	CustomWeightsDivII []rosterdomain.WeightClass `bun:"custom_weights_div_ii,type:jsonb"`
	CreatedAt          time.Time                  `bun:"created_at,nullzero,notnull,default:current_timestamp"`
	UpdatedAt          time.Time                  `bun:"updated_at,nullzero,notnull,default:current_timestamp"`
}

func (m *Wrestler) toDomain() rosterdomain.Wrestler {
	return rosterdomain.Wrestler{
		ID:                      sharedtypes.WrestlerID(m.ID),
		Name:                    m.Name,
		HomeTeamID:              sharedtypes.HomeTeamID(m.HomeTeamID),
		HomeTeamName:            m.HomeTeamName,
		ActualWeight:            m.ActualWeight,
		CalculatedWeightClass:   m.CalculatedWeightClass,
		Status:                  sharedtypes.WrestlerStatus(m.Status),
		CompetitionTeamID:       sharedtypes.CompetitionTeamID(m.CompetitionTeamID),
		CompetitionTeamName:     m.CompetitionTeamName,
		AssignedWeightClassSlot: m.AssignedWeightClassSlot,
		IsFemale:                m.IsFemale,
		IsMiddleSchool:          m.IsMiddleSchool,
		FarmOutDivision:         sharedtypes.Division(m.FarmOutDivision),
	}
}

func (m *HomeTeam) toDomain() rosterdomain.HomeTeam {
	return rosterdomain.HomeTeam{
		ID:              sharedtypes.HomeTeamID(m.ID),
		Name:            m.Name,
		State:           m.State,
		WeighInComplete: m.WeighInComplete,
		RosterComplete:  m.RosterComplete,
	}
}

func (m *CompetitionTeam) toDomain() rosterdomain.CompetitionTeam {
	roster := make(rosterdomain.RosterMap, len(m.Roster))
	for slot, id := range m.Roster {
		roster[slot] = sharedtypes.WrestlerID(id)
	}
	reserves := make([]sharedtypes.WrestlerID, 0, len(m.Reserves))
	for _, id := range m.Reserves {
		reserves = append(reserves, sharedtypes.WrestlerID(id))
	}
	return rosterdomain.CompetitionTeam{
		ID:                     sharedtypes.CompetitionTeamID(m.ID),
		Name:                   m.Name,
		AssociatedHomeTeamID:   sharedtypes.HomeTeamID(m.AssociatedHomeTeamID),
		AssociatedHomeTeamName: m.AssociatedHomeTeamName,
		Division:               sharedtypes.Division(m.Division),
		Pool:                   m.Pool,
		Roster:                 roster,
		Reserves:               reserves,
	}
}

// ToDomain is exported for the session module, which manages session
// records over the same table.
func (m *Session) ToDomain() rosterdomain.Session {
	return rosterdomain.Session{
		ID:                 sharedtypes.SessionID(m.ID),
		Name:               m.Name,
		CustomWeightsDivI:  m.CustomWeightsDivI,
		CustomWeightsDivII: m.CustomWeightsDivII,
	}
}
