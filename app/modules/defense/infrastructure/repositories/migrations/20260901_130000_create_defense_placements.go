package defensemigrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Creating defense_placements table...")

		return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
			if _, err := tx.ExecContext(ctx, `
				CREATE TABLE IF NOT EXISTS defense_placements (
					id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
					alliance_id UUID NOT NULL REFERENCES alliances(id) ON DELETE CASCADE,
					battlegroup SMALLINT NOT NULL CHECK (battlegroup BETWEEN 1 AND 3),
					node_number SMALLINT NOT NULL CHECK (node_number BETWEEN 1 AND 55),
					champion_user_id UUID NOT NULL REFERENCES champion_users(id) ON DELETE CASCADE,
					game_account_id UUID NOT NULL REFERENCES game_accounts(id) ON DELETE CASCADE,
					placed_by_id UUID REFERENCES game_accounts(id) ON DELETE SET NULL,
					created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
					CONSTRAINT uq_defense_placements_node
						UNIQUE (alliance_id, battlegroup, node_number),
					CONSTRAINT uq_defense_placements_champion
						UNIQUE (alliance_id, battlegroup, champion_user_id)
				);
				CREATE INDEX IF NOT EXISTS idx_defense_placements_account
					ON defense_placements(alliance_id, game_account_id);
			`); err != nil {
				return fmt.Errorf("failed to create defense_placements table: %w", err)
			}
			return nil
		})
	}, func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Dropping defense_placements table...")

		return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
			if _, err := tx.ExecContext(ctx, `DROP TABLE IF EXISTS defense_placements;`); err != nil {
				return fmt.Errorf("failed to drop defense_placements table: %w", err)
			}
			return nil
		})
	})
}
