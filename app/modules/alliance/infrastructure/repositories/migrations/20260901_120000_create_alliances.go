package alliancemigrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Creating alliances and alliance_officers tables...")

		return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
			if _, err := tx.ExecContext(ctx, `
				CREATE TABLE IF NOT EXISTS alliances (
					id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
					name VARCHAR(100) NOT NULL,
					tag VARCHAR(10) NOT NULL,
					owner_id UUID NOT NULL REFERENCES game_accounts(id) ON DELETE RESTRICT,
					created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
					updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
				);
				CREATE INDEX IF NOT EXISTS idx_alliances_owner_id ON alliances(owner_id);
			`); err != nil {
				return fmt.Errorf("failed to create alliances table: %w", err)
			}

			if _, err := tx.ExecContext(ctx, `
				CREATE TABLE IF NOT EXISTS alliance_officers (
					alliance_id UUID NOT NULL REFERENCES alliances(id) ON DELETE CASCADE,
					game_account_id UUID NOT NULL REFERENCES game_accounts(id) ON DELETE CASCADE,
					created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
					PRIMARY KEY (alliance_id, game_account_id)
				);
			`); err != nil {
				return fmt.Errorf("failed to create alliance_officers table: %w", err)
			}

			// Deleting an alliance detaches its members; both columns are nulled so the
			// group check on game_accounts keeps holding.
			if _, err := tx.ExecContext(ctx, `
				ALTER TABLE game_accounts
					ADD CONSTRAINT fk_game_accounts_alliance
					FOREIGN KEY (alliance_id) REFERENCES alliances(id)
					ON DELETE SET NULL (alliance_id, alliance_group);
			`); err != nil {
				return fmt.Errorf("failed to add game_accounts alliance foreign key: %w", err)
			}

			return nil
		})
	}, func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Dropping alliance tables...")

		return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
			if _, err := tx.ExecContext(ctx, `
				ALTER TABLE game_accounts DROP CONSTRAINT IF EXISTS fk_game_accounts_alliance;
				UPDATE game_accounts SET alliance_id = NULL, alliance_group = NULL;
			`); err != nil {
				return fmt.Errorf("failed to detach game_accounts from alliances: %w", err)
			}
			if _, err := tx.ExecContext(ctx, `DROP TABLE IF EXISTS alliance_officers;`); err != nil {
				return fmt.Errorf("failed to drop alliance_officers table: %w", err)
			}
			if _, err := tx.ExecContext(ctx, `DROP TABLE IF EXISTS alliances;`); err != nil {
				return fmt.Errorf("failed to drop alliances table: %w", err)
			}
			return nil
		})
	})
}
