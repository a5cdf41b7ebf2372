package testutils

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/migrate"

	alliancemigrations "github.com/Black-And-White-Club/alliance-bot/app/modules/alliance/infrastructure/repositories/migrations"
	championmigrations "github.com/Black-And-White-Club/alliance-bot/app/modules/champion/infrastructure/repositories/migrations"
	defensemigrations "github.com/Black-And-White-Club/alliance-bot/app/modules/defense/infrastructure/repositories/migrations"
	usermigrations "github.com/Black-And-White-Club/alliance-bot/app/modules/user/infrastructure/repositories/migrations"
)

// appTables lists every application table; TRUNCATE ... CASCADE handles the
// foreign keys between them.
var appTables = []string{
	"defense_placements",
	"alliance_officers",
	"champion_users",
	"champions",
	"alliances",
	"game_accounts",
	"users",
}

// RunMigrations migrates every module in foreign key order.
func RunMigrations(ctx context.Context, db *bun.DB) error {
	orderedModules := []struct {
		name       string
		migrations *migrate.Migrations
	}{
		{"user", usermigrations.Migrations},
		{"champion", championmigrations.Migrations},
		{"alliance", alliancemigrations.Migrations},
		{"defense", defensemigrations.Migrations},
	}

	for _, mod := range orderedModules {
		migrator := migrate.NewMigrator(db, mod.migrations,
			migrate.WithTableName(mod.name+"_migrations"),
			migrate.WithLocksTableName(mod.name+"_migration_locks"),
		)
		if err := migrator.Init(ctx); err != nil {
			return fmt.Errorf("failed to init %s migrations: %w", mod.name, err)
		}
		group, err := migrator.Migrate(ctx)
		if err != nil {
			return fmt.Errorf("failed to run %s migrations: %w", mod.name, err)
		}
		log.Printf("Ran %s migrations group #%d", mod.name, group.ID)
	}
	return nil
}

// TruncateAll empties every application table.
func TruncateAll(ctx context.Context, db *bun.DB) error {
	query := fmt.Sprintf("TRUNCATE TABLE %s CASCADE", strings.Join(appTables, ", "))
	if _, err := db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("failed to truncate tables: %w", err)
	}
	return nil
}
