package usermigrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Creating users and game_accounts tables...")

		return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
			if _, err := tx.ExecContext(ctx, `
				CREATE TABLE IF NOT EXISTS users (
					id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
					login VARCHAR(64) NOT NULL UNIQUE,
					email VARCHAR(255) NOT NULL UNIQUE,
					role VARCHAR(16) NOT NULL DEFAULT 'user' CHECK (role IN ('user', 'admin')),
					disabled_at TIMESTAMPTZ,
					deleted_at TIMESTAMPTZ,
					created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
					updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
				);
			`); err != nil {
				return fmt.Errorf("failed to create users table: %w", err)
			}

			// alliance_id gets its foreign key once the alliances table exists.
			if _, err := tx.ExecContext(ctx, `
				CREATE TABLE IF NOT EXISTS game_accounts (
					id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
					user_id UUID NOT NULL REFERENCES users(id) ON DELETE RESTRICT,
					pseudo VARCHAR(50) NOT NULL,
					is_primary BOOLEAN NOT NULL DEFAULT FALSE,
					alliance_id UUID,
					alliance_group SMALLINT CHECK (alliance_group BETWEEN 1 AND 3),
					created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
					updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
					CONSTRAINT chk_game_accounts_group_requires_alliance
						CHECK (alliance_group IS NULL OR alliance_id IS NOT NULL)
				);
				CREATE INDEX IF NOT EXISTS idx_game_accounts_user_id ON game_accounts(user_id);
				CREATE INDEX IF NOT EXISTS idx_game_accounts_alliance ON game_accounts(alliance_id, alliance_group);
			`); err != nil {
				return fmt.Errorf("failed to create game_accounts table: %w", err)
			}

			return nil
		})
	}, func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Dropping game_accounts and users tables...")

		return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
			if _, err := tx.ExecContext(ctx, `DROP TABLE IF EXISTS game_accounts;`); err != nil {
				return fmt.Errorf("failed to drop game_accounts table: %w", err)
			}
			if _, err := tx.ExecContext(ctx, `DROP TABLE IF EXISTS users;`); err != nil {
				return fmt.Errorf("failed to drop users table: %w", err)
			}
			return nil
		})
	})
}
