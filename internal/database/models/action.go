// Package models contains the repository layer: one model per table, thin
// bun query wrappers with retry.
package models

import (
	"context"
	"fmt"
	"time"

	"github.com/lumivault/gatekeeper/internal/database/dbretry"
	"github.com/lumivault/gatekeeper/internal/database/types"
	"github.com/uptrace/bun"
	"go.uber.org/zap"
)

// ActionModel handles database operations for the append-only action ledger.
type ActionModel struct {
	db     *bun.DB
	logger *zap.Logger
}

// NewAction creates a new ActionModel instance.
func NewAction(db *bun.DB, logger *zap.Logger) *ActionModel {
	return &ActionModel{
		db:     db,
		logger: logger.Named("db_action"),
	}
}

// InsertAction appends one action to the ledger. Actions are immutable;
// there is no update path.
func (m *ActionModel) InsertAction(ctx context.Context, action *types.Action) error {
	return dbretry.NoResult(ctx, func(ctx context.Context) error {
		_, err := m.db.NewInsert().
			Model(action).
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to insert action: %w", err)
		}

		return nil
	})
}

// UserActions returns a user's full history ordered by timestamp ascending.
func (m *ActionModel) UserActions(ctx context.Context, userID string) ([]*types.Action, error) {
	return dbretry.Operation(ctx, func(ctx context.Context) ([]*types.Action, error) {
		var actions []*types.Action

		err := m.db.NewSelect().
			Model(&actions).
			Where("user_id = ?", userID).
			Order("occurred_at ASC").
			Scan(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to get user actions: %w", err)
		}

		return actions, nil
	})
}

// CountUserActions returns the ledger size for one user.
func (m *ActionModel) CountUserActions(ctx context.Context, userID string) (int, error) {
	return dbretry.Operation(ctx, func(ctx context.Context) (int, error) {
		count, err := m.db.NewSelect().
			Model((*types.Action)(nil)).
			Where("user_id = ?", userID).
			Count(ctx)
		if err != nil {
			return 0, fmt.Errorf("failed to count user actions: %w", err)
		}

		return count, nil
	})
}

// CountUserActionsSince returns how many actions a user recorded after the
// given instant.
func (m *ActionModel) CountUserActionsSince(ctx context.Context, userID string, since time.Time) (int, error) {
	return dbretry.Operation(ctx, func(ctx context.Context) (int, error) {
		count, err := m.db.NewSelect().
			Model((*types.Action)(nil)).
			Where("user_id = ?", userID).
			Where("occurred_at >= ?", since).
			Count(ctx)
		if err != nil {
			return 0, fmt.Errorf("failed to count recent user actions: %w", err)
		}

		return count, nil
	})
}
