// Package testutils provides the shared environment for integration tests:
// real Postgres and NATS containers, a migrated schema, and a live event bus.
package testutils

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"testing"

	"github.com/testcontainers/testcontainers-go/modules/nats"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/migrate"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/high-country-wrestling/roster-bot/app/eventbus"
	rostermigrations "github.com/high-country-wrestling/roster-bot/app/modules/roster/infrastructure/repositories/migrations"
	"github.com/high-country-wrestling/roster-bot/integration_tests/containers"
)

// TestEnvironment holds the live resources an integration test runs against.
type TestEnvironment struct {
	Ctx           context.Context
	DB            *bun.DB
	DSN           string
	EventBus      eventbus.EventBus
	PgContainer   *postgres.PostgresContainer
	NatsContainer *nats.NATSContainer
}

// NewTestEnvironment starts the containers, migrates the schema, and wires
// the event bus. Cleanup is registered on t.
func NewTestEnvironment(t *testing.T) *TestEnvironment {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()

	pgContainer, dsn, err := containers.SetupPostgresContainer(ctx)
	if err != nil {
		t.Fatalf("postgres container: %v", err)
	}
	t.Cleanup(func() { pgContainer.Terminate(ctx) })

	natsContainer, natsURL, err := containers.SetupNatsContainer(ctx)
	if err != nil {
		t.Fatalf("nats container: %v", err)
	}
	t.Cleanup(func() { natsContainer.Terminate(ctx) })

	sqlDB, err := sql.Open("pgx", dsn)
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	db := bun.NewDB(sqlDB, pgdialect.New())
	t.Cleanup(func() { db.Close() })

	if err := runMigrations(ctx, db); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	bus, err := eventbus.NewEventBus(ctx, natsURL, slog.New(slog.DiscardHandler))
	if err != nil {
		t.Fatalf("event bus: %v", err)
	}
	t.Cleanup(func() { bus.Close() })

	return &TestEnvironment{
		Ctx:           ctx,
		DB:            db,
		DSN:           dsn,
		EventBus:      bus,
		PgContainer:   pgContainer,
		NatsContainer: natsContainer,
	}
}

func runMigrations(ctx context.Context, db *bun.DB) error {
	migrator := migrate.NewMigrator(db, rostermigrations.Migrations)
	if err := migrator.Init(ctx); err != nil {
		return fmt.Errorf("init migration tables: %w", err)
	}
	group, err := migrator.Migrate(ctx)
	if err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}
	if group.IsZero() {
		return fmt.Errorf("no migrations ran")
	}
	return nil
}
