package importerservice

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	sharedtypes "github.com/high-country-wrestling/roster-bot/app/shared/types"
)

// HomeTeamRow is one parsed line of a home team CSV.
type HomeTeamRow struct {
	Name  string
	State string
}

// WrestlerRow is one parsed line of a wrestler CSV. Home teams are
// referenced by name; the service resolves names to IDs at import time.
type WrestlerRow struct {
	Name           string
	HomeTeamName   string
	Weight         float64
	IsFemale       bool
	IsMiddleSchool bool
}

// CompetitionTeamRow is one parsed line of a competition team CSV.
type CompetitionTeamRow struct {
	Name         string
	HomeTeamName string
	Division     sharedtypes.Division
}

// header matching is case-insensitive and ignores surrounding whitespace
func headerIndex(header []string) map[string]int {
	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[strings.ToLower(strings.TrimSpace(h))] = i
	}
	return idx
}

func field(record []string, idx map[string]int, name string) string {
	i, ok := idx[name]
	if !ok || i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}

func boolField(record []string, idx map[string]int, name string) bool {
	v := strings.ToLower(field(record, idx, name))
	return v == "true" || v == "yes" || v == "1"
}

// ParseHomeTeams reads a CSV with columns name, state.
func ParseHomeTeams(r io.Reader) ([]HomeTeamRow, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}
	if len(records) < 2 {
		return nil, nil
	}
	idx := headerIndex(records[0])
	if _, ok := idx["name"]; !ok {
		return nil, fmt.Errorf("missing required column %q", "name")
	}

	rows := make([]HomeTeamRow, 0, len(records)-1)
	for _, record := range records[1:] {
		name := field(record, idx, "name")
		if name == "" {
			continue
		}
		rows = append(rows, HomeTeamRow{
			Name:  name,
			State: field(record, idx, "state"),
		})
	}
	return rows, nil
}

// ParseWrestlers reads a CSV with columns name, home_team, weight,
// is_female, is_middle_school. Weight is optional; blank means not yet
// weighed in.
func ParseWrestlers(r io.Reader) ([]WrestlerRow, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}
	if len(records) < 2 {
		return nil, nil
	}
	idx := headerIndex(records[0])
	for _, required := range []string{"name", "home_team"} {
		if _, ok := idx[required]; !ok {
			return nil, fmt.Errorf("missing required column %q", required)
		}
	}

	rows := make([]WrestlerRow, 0, len(records)-1)
	for n, record := range records[1:] {
		name := field(record, idx, "name")
		if name == "" {
			continue
		}
		row := WrestlerRow{
			Name:           name,
			HomeTeamName:   field(record, idx, "home_team"),
			IsFemale:       boolField(record, idx, "is_female"),
			IsMiddleSchool: boolField(record, idx, "is_middle_school"),
		}
		if raw := field(record, idx, "weight"); raw != "" {
			weight, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: invalid weight %q", n+2, raw)
			}
			row.Weight = weight
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// ParseCompetitionTeams reads a CSV with columns name, home_team, division.
func ParseCompetitionTeams(r io.Reader) ([]CompetitionTeamRow, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}
	if len(records) < 2 {
		return nil, nil
	}
	idx := headerIndex(records[0])
	for _, required := range []string{"name", "home_team", "division"} {
		if _, ok := idx[required]; !ok {
			return nil, fmt.Errorf("missing required column %q", required)
		}
	}

	rows := make([]CompetitionTeamRow, 0, len(records)-1)
	for n, record := range records[1:] {
		name := field(record, idx, "name")
		if name == "" {
			continue
		}
		division := sharedtypes.Division(field(record, idx, "division"))
		if !division.Valid() {
			return nil, fmt.Errorf("line %d: invalid division %q", n+2, division)
		}
		rows = append(rows, CompetitionTeamRow{
			Name:         name,
			HomeTeamName: field(record, idx, "home_team"),
			Division:     division,
		})
	}
	return rows, nil
}
