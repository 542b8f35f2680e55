package migrations

import (
	"context"
	"fmt"

	"github.com/lumivault/gatekeeper/internal/database/types"
	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		models := []any{
			(*types.Action)(nil),
			(*types.Vouch)(nil),
			(*types.Violation)(nil),
			(*types.VoucherStanding)(nil),
		}

		for _, model := range models {
			if _, err := db.NewCreateTable().
				Model(model).
				IfNotExists().
				Exec(ctx); err != nil {
				return fmt.Errorf("failed to create table for %T: %w", model, err)
			}
		}

		return nil
	}, func(ctx context.Context, db *bun.DB) error {
		models := []any{
			(*types.VoucherStanding)(nil),
			(*types.Violation)(nil),
			(*types.Vouch)(nil),
			(*types.Action)(nil),
		}

		for _, model := range models {
			if _, err := db.NewDropTable().
				Model(model).
				IfExists().
				Exec(ctx); err != nil {
				return fmt.Errorf("failed to drop table for %T: %w", model, err)
			}
		}

		return nil
	})
}
