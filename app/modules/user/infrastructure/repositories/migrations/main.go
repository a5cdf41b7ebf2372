package usermigrations

import "github.com/uptrace/bun/migrate"

var Migrations = migrate.NewMigrations()

func init() {
	// Derive each migration's name from the file that registers it.
	if err := Migrations.DiscoverCaller(); err != nil {
		panic(err)
	}
}
