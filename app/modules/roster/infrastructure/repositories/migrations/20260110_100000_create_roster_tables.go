package migrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"

	rosterdb "github.com/high-country-wrestling/roster-bot/app/modules/roster/infrastructure/repositories"
)

func init() {
	Migrations.MustRegister(
		func(ctx context.Context, db *bun.DB) error {
			fmt.Println("Creating roster tables...")
			models := []any{
				(*rosterdb.Session)(nil),
				(*rosterdb.HomeTeam)(nil),
				(*rosterdb.Wrestler)(nil),
				(*rosterdb.CompetitionTeam)(nil),
			}
			for _, model := range models {
				if _, err := db.NewCreateTable().Model(model).IfNotExists().Exec(ctx); err != nil {
					return err
				}
			}
			for _, idx := range []struct {
				name  string
				table string
				col   string
			}{
				{"idx_wrestlers_session", "wrestlers", "session_id"},
				{"idx_home_teams_session", "home_teams", "session_id"},
				{"idx_competition_teams_session", "competition_teams", "session_id"},
				{"idx_wrestlers_competition_team", "wrestlers", "competition_team_id"},
			} {
				if _, err := db.ExecContext(ctx, fmt.Sprintf(
					"CREATE INDEX IF NOT EXISTS %s ON %s (%s)", idx.name, idx.table, idx.col,
				)); err != nil {
					return err
				}
			}
			fmt.Println("roster tables created successfully!")
			return nil
		},
		func(ctx context.Context, db *bun.DB) error {
			fmt.Println("Dropping roster tables...")
			models := []any{
				(*rosterdb.CompetitionTeam)(nil),
				(*rosterdb.Wrestler)(nil),
				(*rosterdb.HomeTeam)(nil),
				(*rosterdb.Session)(nil),
			}
			for _, model := range models {
				if _, err := db.NewDropTable().Model(model).IfExists().Cascade().Exec(ctx); err != nil {
					return err
				}
			}
			fmt.Println("roster tables dropped successfully!")
			return nil
		},
	)
}
