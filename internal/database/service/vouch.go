package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/lumivault/gatekeeper/internal/database/models"
	"github.com/lumivault/gatekeeper/internal/database/types"
	"go.uber.org/zap"
)

var (
	// ErrSelfVouch rejects vouching for oneself.
	ErrSelfVouch = errors.New("cannot vouch for yourself")

	// ErrVouchQuotaExhausted means the voucher has no slots left in the
	// rolling quarter, counting permanent standing penalties.
	ErrVouchQuotaExhausted = errors.New("vouch quota exhausted")

	// ErrNotVoucher rejects an early revoke by anyone but the issuer.
	ErrNotVoucher = errors.New("only the issuing voucher may revoke")
)

// rollingQuarter is the window for the issuance quota.
const rollingQuarter = 90 * 24 * time.Hour

// VouchService issues and revokes vouches under the quota rules. Tier
// eligibility of the issuer is enforced at the REST layer via the engine
// before Create is reached.
type VouchService struct {
	vouches *models.VouchModel
	locks   *UserLocks
	logger  *zap.Logger
}

// NewVouch creates a new VouchService instance.
func NewVouch(vouches *models.VouchModel, locks *UserLocks, logger *zap.Logger) *VouchService {
	return &VouchService{
		vouches: vouches,
		locks:   locks,
		logger:  logger.Named("svc_vouch"),
	}
}

// Create issues a vouch from fromUser to toUser, enforcing the per-quarter
// quota minus any permanent slot penalties.
func (s *VouchService) Create(ctx context.Context, fromUser, toUser string) (*types.Vouch, error) {
	if fromUser == toUser {
		return nil, ErrSelfVouch
	}

	unlock := s.locks.Lock(fromUser)
	defer unlock()

	now := time.Now()

	standing, err := s.vouches.GetStanding(ctx, fromUser)
	if err != nil {
		return nil, err
	}

	issued, err := s.vouches.CountIssuedSince(ctx, fromUser, now.Add(-rollingQuarter))
	if err != nil {
		return nil, err
	}

	if standing.AvailableSlots(issued) <= 0 {
		return nil, ErrVouchQuotaExhausted
	}

	vouch := &types.Vouch{
		ID:        uuid.New(),
		FromUser:  fromUser,
		ToUser:    toUser,
		IssuedAt:  now,
		ExpiresAt: now.Add(types.VouchValidity),
		Active:    true,
	}

	if err := s.vouches.InsertVouch(ctx, vouch); err != nil {
		return nil, err
	}

	s.logger.Info("Vouch issued",
		zap.String("fromUser", fromUser),
		zap.String("toUser", toUser),
		zap.Time("expiresAt", vouch.ExpiresAt))

	return vouch, nil
}

// Revoke deactivates a vouch early. Only the issuer may do this; expiry
// handles everything else automatically.
func (s *VouchService) Revoke(ctx context.Context, id uuid.UUID, byUser string) error {
	vouch, err := s.vouches.GetVouch(ctx, id)
	if err != nil {
		return err
	}

	if vouch.FromUser != byUser {
		return ErrNotVoucher
	}

	unlock := s.locks.Lock(byUser)
	defer unlock()

	if err := s.vouches.RevokeVouch(ctx, id, time.Now()); err != nil {
		return err
	}

	s.logger.Info("Vouch revoked",
		zap.String("vouchID", id.String()),
		zap.String("byUser", byUser))

	return nil
}
