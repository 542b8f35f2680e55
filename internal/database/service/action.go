package service

import (
	"context"

	"github.com/lumivault/gatekeeper/internal/database/models"
	"github.com/lumivault/gatekeeper/internal/database/types"
	"go.uber.org/zap"
)

// ActionService appends to the action ledger with per-user serialization.
type ActionService struct {
	actions *models.ActionModel
	locks   *UserLocks
	logger  *zap.Logger
}

// NewAction creates a new ActionService instance.
func NewAction(actions *models.ActionModel, locks *UserLocks, logger *zap.Logger) *ActionService {
	return &ActionService{
		actions: actions,
		locks:   locks,
		logger:  logger.Named("svc_action"),
	}
}

// Append records one action. Concurrent appends for the same user are
// linearized through the lock table.
func (s *ActionService) Append(ctx context.Context, action *types.Action) error {
	unlock := s.locks.Lock(action.UserID)
	defer unlock()

	if err := s.actions.InsertAction(ctx, action); err != nil {
		return err
	}

	s.logger.Debug("Action appended",
		zap.String("userID", action.UserID),
		zap.String("type", action.Type),
		zap.Float64("score", action.Score))

	return nil
}
