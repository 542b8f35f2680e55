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

// ViolationModel handles database operations for the append-only violation
// log.
type ViolationModel struct {
	db     *bun.DB
	logger *zap.Logger
}

// NewViolation creates a new ViolationModel instance.
func NewViolation(db *bun.DB, logger *zap.Logger) *ViolationModel {
	return &ViolationModel{
		db:     db,
		logger: logger.Named("db_violation"),
	}
}

// InsertViolation appends one violation record. The (user_id, occurred_at)
// primary key makes the insert idempotent: a retried POST with the same
// occurrence instant returns types.ErrViolationExists instead of
// double-counting.
func (m *ViolationModel) InsertViolation(ctx context.Context, record *types.Violation) error {
	return dbretry.NoResult(ctx, func(ctx context.Context) error {
		res, err := m.db.NewInsert().
			Model(record).
			On("CONFLICT (user_id, occurred_at) DO NOTHING").
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to insert violation: %w", err)
		}

		rows, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to read insert result: %w", err)
		}

		if rows == 0 {
			return types.ErrViolationExists
		}

		return nil
	})
}

// GetViolation fetches one violation by its (user_id, occurred_at) key.
func (m *ViolationModel) GetViolation(
	ctx context.Context, userID string, occurredAt time.Time,
) (*types.Violation, error) {
	return dbretry.Operation(ctx, func(ctx context.Context) (*types.Violation, error) {
		violation := new(types.Violation)

		err := m.db.NewSelect().
			Model(violation).
			Where("user_id = ?", userID).
			Where("occurred_at = ?", occurredAt).
			Scan(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to get violation: %w", err)
		}

		return violation, nil
	})
}

// UserViolations returns a user's full violation log ordered by occurrence
// ascending. Records are retained forever for audit.
func (m *ViolationModel) UserViolations(ctx context.Context, userID string) ([]*types.Violation, error) {
	return dbretry.Operation(ctx, func(ctx context.Context) ([]*types.Violation, error) {
		var violations []*types.Violation

		err := m.db.NewSelect().
			Model(&violations).
			Where("user_id = ?", userID).
			Order("occurred_at ASC").
			Scan(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to get user violations: %w", err)
		}

		return violations, nil
	})
}
