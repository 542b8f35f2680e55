package models

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lumivault/gatekeeper/internal/database/dbretry"
	"github.com/lumivault/gatekeeper/internal/database/types"
	"github.com/uptrace/bun"
	"go.uber.org/zap"
)

// ErrVouchNotFound is returned when a vouch lookup matches nothing.
var ErrVouchNotFound = errors.New("vouch not found")

// VouchModel handles database operations for vouches and voucher standing.
type VouchModel struct {
	db     *bun.DB
	logger *zap.Logger
}

// NewVouch creates a new VouchModel instance.
func NewVouch(db *bun.DB, logger *zap.Logger) *VouchModel {
	return &VouchModel{
		db:     db,
		logger: logger.Named("db_vouch"),
	}
}

// InsertVouch records a newly issued vouch.
func (m *VouchModel) InsertVouch(ctx context.Context, vouch *types.Vouch) error {
	return dbretry.NoResult(ctx, func(ctx context.Context) error {
		_, err := m.db.NewInsert().
			Model(vouch).
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to insert vouch: %w", err)
		}

		return nil
	})
}

// GetVouch fetches one vouch by ID.
func (m *VouchModel) GetVouch(ctx context.Context, id uuid.UUID) (*types.Vouch, error) {
	return dbretry.Operation(ctx, func(ctx context.Context) (*types.Vouch, error) {
		vouch := new(types.Vouch)

		err := m.db.NewSelect().
			Model(vouch).
			Where("id = ?", id).
			Scan(ctx)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, ErrVouchNotFound
			}
			return nil, fmt.Errorf("failed to get vouch: %w", err)
		}

		return vouch, nil
	})
}

// UserVouches returns the vouches a user has received and given.
func (m *VouchModel) UserVouches(ctx context.Context, userID string) (received, given []*types.Vouch, err error) {
	type result struct {
		received []*types.Vouch
		given    []*types.Vouch
	}

	res, err := dbretry.Operation(ctx, func(ctx context.Context) (result, error) {
		var r result

		if err := m.db.NewSelect().
			Model(&r.received).
			Where("to_user = ?", userID).
			Order("issued_at ASC").
			Scan(ctx); err != nil {
			return r, fmt.Errorf("failed to get received vouches: %w", err)
		}

		if err := m.db.NewSelect().
			Model(&r.given).
			Where("from_user = ?", userID).
			Order("issued_at ASC").
			Scan(ctx); err != nil {
			return r, fmt.Errorf("failed to get given vouches: %w", err)
		}

		return r, nil
	})
	if err != nil {
		return nil, nil, err
	}

	return res.received, res.given, nil
}

// ActiveVouchCount counts currently active vouches received by a user.
func (m *VouchModel) ActiveVouchCount(ctx context.Context, userID string, now time.Time) (int, error) {
	return dbretry.Operation(ctx, func(ctx context.Context) (int, error) {
		count, err := m.db.NewSelect().
			Model((*types.Vouch)(nil)).
			Where("to_user = ?", userID).
			Where("active = TRUE").
			Where("revoked_at IS NULL").
			Where("expires_at > ?", now).
			Count(ctx)
		if err != nil {
			return 0, fmt.Errorf("failed to count active vouches: %w", err)
		}

		return count, nil
	})
}

// CountIssuedSince counts active vouches a voucher issued after the given
// instant, for the rolling-quarter quota.
func (m *VouchModel) CountIssuedSince(ctx context.Context, fromUser string, since time.Time) (int, error) {
	return dbretry.Operation(ctx, func(ctx context.Context) (int, error) {
		count, err := m.db.NewSelect().
			Model((*types.Vouch)(nil)).
			Where("from_user = ?", fromUser).
			Where("issued_at >= ?", since).
			Where("active = TRUE").
			Where("revoked_at IS NULL").
			Count(ctx)
		if err != nil {
			return 0, fmt.Errorf("failed to count issued vouches: %w", err)
		}

		return count, nil
	})
}

// RevokeVouch marks a vouch inactive at the voucher's request.
func (m *VouchModel) RevokeVouch(ctx context.Context, id uuid.UUID, now time.Time) error {
	return dbretry.NoResult(ctx, func(ctx context.Context) error {
		res, err := m.db.NewUpdate().
			Model((*types.Vouch)(nil)).
			Set("active = FALSE").
			Set("revoked_at = ?", now).
			Where("id = ?", id).
			Where("active = TRUE").
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to revoke vouch: %w", err)
		}

		rows, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to read revoke result: %w", err)
		}

		if rows == 0 {
			return ErrVouchNotFound
		}

		return nil
	})
}

// DeactivateExpired flips the active flag on vouches past their expiry.
// Attestation math already ignores them; this keeps sweeps and listings
// consistent.
func (m *VouchModel) DeactivateExpired(ctx context.Context, now time.Time) (int64, error) {
	return dbretry.Operation(ctx, func(ctx context.Context) (int64, error) {
		res, err := m.db.NewUpdate().
			Model((*types.Vouch)(nil)).
			Set("active = FALSE").
			Where("active = TRUE").
			Where("expires_at <= ?", now).
			Exec(ctx)
		if err != nil {
			return 0, fmt.Errorf("failed to deactivate expired vouches: %w", err)
		}

		rows, err := res.RowsAffected()
		if err != nil {
			return 0, fmt.Errorf("failed to read deactivate result: %w", err)
		}

		return rows, nil
	})
}

// ActiveVouchersFor returns the issuers of currently active vouches for a
// user, used to apply standing penalties when a vouchee is found in
// violation.
func (m *VouchModel) ActiveVouchersFor(ctx context.Context, userID string, now time.Time) ([]string, error) {
	return dbretry.Operation(ctx, func(ctx context.Context) ([]string, error) {
		var vouchers []string

		err := m.db.NewSelect().
			Model((*types.Vouch)(nil)).
			Column("from_user").
			Where("to_user = ?", userID).
			Where("active = TRUE").
			Where("revoked_at IS NULL").
			Where("expires_at > ?", now).
			Scan(ctx, &vouchers)
		if err != nil {
			return nil, fmt.Errorf("failed to get active vouchers: %w", err)
		}

		return vouchers, nil
	})
}

// GetStanding fetches a voucher's standing record; absent records mean no
// penalties.
func (m *VouchModel) GetStanding(ctx context.Context, userID string) (*types.VoucherStanding, error) {
	return dbretry.Operation(ctx, func(ctx context.Context) (*types.VoucherStanding, error) {
		standing := &types.VoucherStanding{UserID: userID}

		err := m.db.NewSelect().
			Model(standing).
			Where("user_id = ?", userID).
			Scan(ctx)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return standing, nil
			}
			return nil, fmt.Errorf("failed to get voucher standing: %w", err)
		}

		return standing, nil
	})
}

// IncrementPenalty permanently removes one future vouch slot from a voucher.
func (m *VouchModel) IncrementPenalty(ctx context.Context, userID string, now time.Time) error {
	return dbretry.NoResult(ctx, func(ctx context.Context) error {
		standing := &types.VoucherStanding{
			UserID:        userID,
			SlotPenalties: 1,
			UpdatedAt:     now,
		}

		_, err := m.db.NewInsert().
			Model(standing).
			On("CONFLICT (user_id) DO UPDATE").
			Set("slot_penalties = voucher_standing.slot_penalties + 1").
			Set("updated_at = EXCLUDED.updated_at").
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to increment voucher penalty: %w", err)
		}

		return nil
	})
}
