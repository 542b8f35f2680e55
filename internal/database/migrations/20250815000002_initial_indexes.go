package migrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		// Decision reads always scan one user's ordered history, so every
		// log is indexed by (user, time).
		indexes := []string{
			`CREATE INDEX IF NOT EXISTS idx_actions_user_occurred
				ON actions (user_id, occurred_at ASC)`,
			`CREATE INDEX IF NOT EXISTS idx_violations_user_occurred
				ON violations (user_id, occurred_at ASC)`,
			`CREATE INDEX IF NOT EXISTS idx_vouches_to_user_active
				ON vouches (to_user) WHERE active = TRUE`,
			`CREATE INDEX IF NOT EXISTS idx_vouches_from_user_issued
				ON vouches (from_user, issued_at ASC)`,
			`CREATE INDEX IF NOT EXISTS idx_vouches_expiry
				ON vouches (expires_at) WHERE active = TRUE`,
		}

		for _, idx := range indexes {
			if _, err := db.ExecContext(ctx, idx); err != nil {
				return fmt.Errorf("failed to create index: %w", err)
			}
		}

		return nil
	}, func(ctx context.Context, db *bun.DB) error {
		indexes := []string{
			`DROP INDEX IF EXISTS idx_actions_user_occurred`,
			`DROP INDEX IF EXISTS idx_violations_user_occurred`,
			`DROP INDEX IF EXISTS idx_vouches_to_user_active`,
			`DROP INDEX IF EXISTS idx_vouches_from_user_issued`,
			`DROP INDEX IF EXISTS idx_vouches_expiry`,
		}

		for _, idx := range indexes {
			if _, err := db.ExecContext(ctx, idx); err != nil {
				return fmt.Errorf("failed to drop index: %w", err)
			}
		}

		return nil
	})
}
