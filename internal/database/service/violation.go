package service

import (
	"context"
	"errors"
	"time"

	"github.com/lumivault/gatekeeper/internal/database/types"
	"github.com/lumivault/gatekeeper/internal/database/types/enum"
	"github.com/lumivault/gatekeeper/internal/engine/cooldown"
	"go.uber.org/zap"
)

// ViolationStore is the slice of the violation log the service needs.
type ViolationStore interface {
	InsertViolation(ctx context.Context, record *types.Violation) error
	GetViolation(ctx context.Context, userID string, occurredAt time.Time) (*types.Violation, error)
	UserViolations(ctx context.Context, userID string) ([]*types.Violation, error)
}

// VoucherPenalizer applies standing penalties to the offender's vouchers.
type VoucherPenalizer interface {
	ActiveVouchersFor(ctx context.Context, userID string, now time.Time) ([]string, error)
	IncrementPenalty(ctx context.Context, userID string, now time.Time) error
}

// ViolationService records violations and applies the standing penalty to
// vouchers of the offending user.
type ViolationService struct {
	violations ViolationStore
	vouches    VoucherPenalizer
	locks      *UserLocks
	logger     *zap.Logger
}

// NewViolation creates a new ViolationService instance.
func NewViolation(
	violations ViolationStore, vouches VoucherPenalizer,
	locks *UserLocks, logger *zap.Logger,
) *ViolationService {
	return &ViolationService{
		violations: violations,
		vouches:    vouches,
		locks:      locks,
		logger:     logger.Named("svc_violation"),
	}
}

// Record appends a violation. Idempotent per (userID, occurredAt): a retried
// report returns the stored record without double-incrementing anything.
// Every voucher with an active vouch on the offender permanently loses one
// future vouch slot.
func (s *ViolationService) Record(
	ctx context.Context, userID string, occurredAt time.Time, severity enum.Severity,
) (*types.Violation, error) {
	unlock := s.locks.Lock(userID)
	defer unlock()

	now := time.Now()

	// Derive the escalation counter the new record will land on, so the
	// applied cooldown hours are stored alongside it for audit.
	existing, err := s.violations.UserViolations(ctx, userID)
	if err != nil {
		return nil, err
	}

	record := &types.Violation{
		UserID:     userID,
		OccurredAt: occurredAt,
		Severity:   severity,
		CreatedAt:  now,
	}

	status := cooldown.Evaluate(append(existing, record), occurredAt)
	record.CooldownHoursApplied = cooldown.Hours(status.ViolationCount)

	if err := s.violations.InsertViolation(ctx, record); err != nil {
		if errors.Is(err, types.ErrViolationExists) {
			// Return what was actually stored, not the retried payload: a
			// resubmission with a different severity must echo the original.
			stored, getErr := s.violations.GetViolation(ctx, userID, occurredAt)
			if getErr != nil {
				return nil, getErr
			}

			return stored, types.ErrViolationExists
		}

		return nil, err
	}

	s.logger.Info("Violation recorded",
		zap.String("userID", userID),
		zap.String("severity", severity.String()),
		zap.Int("violationCount", status.ViolationCount),
		zap.Int("cooldownHours", record.CooldownHoursApplied))

	// Standing penalty for the offender's vouchers. Best effort ordering:
	// the violation itself is already durable.
	vouchers, err := s.vouches.ActiveVouchersFor(ctx, userID, now)
	if err != nil {
		s.logger.Warn("Failed to look up vouchers for penalty",
			zap.String("userID", userID), zap.Error(err))

		return record, nil
	}

	for _, voucher := range vouchers {
		if err := s.vouches.IncrementPenalty(ctx, voucher, now); err != nil {
			s.logger.Warn("Failed to apply voucher penalty",
				zap.String("voucher", voucher), zap.Error(err))
		}
	}

	return record, nil
}
