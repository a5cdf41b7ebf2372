package main

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/Black-And-White-Club/alliance-bot/config"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/migrate"
	"github.com/urfave/cli/v2"

	alliancemigrations "github.com/Black-And-White-Club/alliance-bot/app/modules/alliance/infrastructure/repositories/migrations"
	championmigrations "github.com/Black-And-White-Club/alliance-bot/app/modules/champion/infrastructure/repositories/migrations"
	defensemigrations "github.com/Black-And-White-Club/alliance-bot/app/modules/defense/infrastructure/repositories/migrations"
	usermigrations "github.com/Black-And-White-Club/alliance-bot/app/modules/user/infrastructure/repositories/migrations"
)

// moduleMigrator is one module's migration set. Each module keeps its own
// bookkeeping tables so modules migrate independently.
type moduleMigrator struct {
	name     string
	migrator *migrate.Migrator
}

func main() {
	cliApp := &cli.App{
		Name: "bun",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Value: "config.yaml", Usage: "path to the configuration file"},
		},
		Before: func(c *cli.Context) error {
			cfg, err := config.LoadConfig(c.String("config"))
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			pgdb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(cfg.Postgres.DSN)))
			c.App.Metadata = map[string]any{"db": bun.NewDB(pgdb, pgdialect.New())}
			return nil
		},
		After: func(c *cli.Context) error {
			if db, ok := c.App.Metadata["db"].(*bun.DB); ok {
				return db.Close()
			}
			return nil
		},
		Commands: []*cli.Command{
			newMultiModuleDBCommand(),
		},
	}

	if err := cliApp.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

// migrators lists the modules in dependency order: later tables reference
// earlier ones.
func migrators(c *cli.Context) []moduleMigrator {
	db := c.App.Metadata["db"].(*bun.DB)
	table := func(module string) []migrate.MigratorOption {
		return []migrate.MigratorOption{
			migrate.WithTableName(module + "_migrations"),
			migrate.WithLocksTableName(module + "_migration_locks"),
		}
	}
	return []moduleMigrator{
		{"user", migrate.NewMigrator(db, usermigrations.Migrations, table("user")...)},
		{"champion", migrate.NewMigrator(db, championmigrations.Migrations, table("champion")...)},
		{"alliance", migrate.NewMigrator(db, alliancemigrations.Migrations, table("alliance")...)},
		{"defense", migrate.NewMigrator(db, defensemigrations.Migrations, table("defense")...)},
	}
}

func findMigrator(c *cli.Context, name string) (*migrate.Migrator, error) {
	for _, m := range migrators(c) {
		if m.name == name {
			return m.migrator, nil
		}
	}
	return nil, fmt.Errorf("invalid module name: %s", name)
}

func newMultiModuleDBCommand() *cli.Command {
	return &cli.Command{
		Name:  "migrate",
		Usage: "database migrations",
		Subcommands: []*cli.Command{
			{
				Name:  "init",
				Usage: "create migration tables",
				Action: func(c *cli.Context) error {
					for _, m := range migrators(c) {
						fmt.Printf("Initializing migrations for module: %s\n", m.name)
						if err := m.migrator.Init(c.Context); err != nil {
							return fmt.Errorf("init %s: %w", m.name, err)
						}
					}
					return nil
				},
			},
			{
				Name:  "migrate",
				Usage: "migrate database",
				Action: func(c *cli.Context) error {
					for _, m := range migrators(c) {
						if err := m.migrator.Lock(c.Context); err != nil {
							return err
						}
						group, err := m.migrator.Migrate(c.Context)
						_ = m.migrator.Unlock(c.Context)
						if err != nil {
							return fmt.Errorf("migrate %s: %w", m.name, err)
						}
						if group.IsZero() {
							fmt.Printf("No new migrations to run for module: %s\n", m.name)
						} else {
							fmt.Printf("Migrated module: %s to %s\n", m.name, group)
						}
					}
					return nil
				},
			},
			{
				Name:  "rollback",
				Usage: "rollback the last migration group of every module",
				Action: func(c *cli.Context) error {
					ms := migrators(c)
					// Reverse order so referencing tables go first.
					for i := len(ms) - 1; i >= 0; i-- {
						m := ms[i]
						if err := m.migrator.Lock(c.Context); err != nil {
							return err
						}
						group, err := m.migrator.Rollback(c.Context)
						_ = m.migrator.Unlock(c.Context)
						if err != nil {
							return fmt.Errorf("rollback %s: %w", m.name, err)
						}
						if group.IsZero() {
							fmt.Printf("No groups to roll back for module: %s\n", m.name)
						} else {
							fmt.Printf("Rolled back module: %s to %s\n", m.name, group)
						}
					}
					return nil
				},
			},
			{
				Name:      "create_go",
				Usage:     "create Go migration",
				ArgsUsage: "<module> <name...>",
				Action: func(c *cli.Context) error {
					migrator, err := findMigrator(c, c.Args().First())
					if err != nil {
						return err
					}
					name := strings.Join(c.Args().Tail(), "_")
					mf, err := migrator.CreateGoMigration(c.Context, name)
					if err != nil {
						return err
					}
					fmt.Printf("Created migration for module %s: %s (%s)\n", c.Args().First(), mf.Name, mf.Path)
					return nil
				},
			},
			{
				Name:  "status",
				Usage: "print migrations status",
				Action: func(c *cli.Context) error {
					for _, m := range migrators(c) {
						ms, err := m.migrator.MigrationsWithStatus(c.Context)
						if err != nil {
							return err
						}
						fmt.Printf("Migrations for module: %s\n", m.name)
						fmt.Printf("  %s\n", ms)
						fmt.Printf("  Applied: %s\n", ms.Applied())
						fmt.Printf("  Unapplied: %s\n", ms.Unapplied())
					}
					return nil
				},
			},
		},
	}
}
