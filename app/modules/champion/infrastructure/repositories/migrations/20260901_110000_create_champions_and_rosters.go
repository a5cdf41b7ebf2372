package championmigrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Creating champions and champion_users tables...")

		return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
			if _, err := tx.ExecContext(ctx, `
				CREATE TABLE IF NOT EXISTS champions (
					id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
					name VARCHAR(100) NOT NULL UNIQUE,
					class VARCHAR(16) NOT NULL
						CHECK (class IN ('cosmic', 'mutant', 'mystic', 'science', 'skill', 'tech')),
					alias VARCHAR(100),
					image_url TEXT,
					seven_star BOOLEAN NOT NULL DEFAULT FALSE,
					created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
				);
			`); err != nil {
				return fmt.Errorf("failed to create champions table: %w", err)
			}

			if _, err := tx.ExecContext(ctx, `
				CREATE TABLE IF NOT EXISTS champion_users (
					id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
					game_account_id UUID NOT NULL REFERENCES game_accounts(id) ON DELETE CASCADE,
					champion_id UUID NOT NULL REFERENCES champions(id) ON DELETE RESTRICT,
					stars SMALLINT NOT NULL CHECK (stars BETWEEN 0 AND 7),
					rank SMALLINT NOT NULL CHECK (rank BETWEEN 1 AND 6),
					signature INTEGER NOT NULL DEFAULT 0 CHECK (signature >= 0),
					created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
					updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
					CONSTRAINT uq_champion_users_account_champion_stars
						UNIQUE (game_account_id, champion_id, stars)
				);
				CREATE INDEX IF NOT EXISTS idx_champion_users_champion ON champion_users(champion_id);
			`); err != nil {
				return fmt.Errorf("failed to create champion_users table: %w", err)
			}

			return nil
		})
	}, func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Dropping champion_users and champions tables...")

		return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
			if _, err := tx.ExecContext(ctx, `DROP TABLE IF EXISTS champion_users;`); err != nil {
				return fmt.Errorf("failed to drop champion_users table: %w", err)
			}
			if _, err := tx.ExecContext(ctx, `DROP TABLE IF EXISTS champions;`); err != nil {
				return fmt.Errorf("failed to drop champions table: %w", err)
			}
			return nil
		})
	})
}
