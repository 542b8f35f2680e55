package database

import (
	"github.com/lumivault/gatekeeper/internal/database/service"
	"go.uber.org/zap"
)

// Service provides access to all multi-model operations.
type Service struct {
	action    *service.ActionService
	vouch     *service.VouchService
	violation *service.ViolationService
}

// NewService creates a new service instance with all services.
func NewService(repo *Repository, logger *zap.Logger) *Service {
	locks := service.NewUserLocks()

	return &Service{
		action:    service.NewAction(repo.Action(), locks, logger),
		vouch:     service.NewVouch(repo.Vouch(), locks, logger),
		violation: service.NewViolation(repo.Violation(), repo.Vouch(), locks, logger),
	}
}

// Action returns the action service.
func (s *Service) Action() *service.ActionService {
	return s.action
}

// Vouch returns the vouch service.
func (s *Service) Vouch() *service.VouchService {
	return s.vouch
}

// Violation returns the violation service.
func (s *Service) Violation() *service.ViolationService {
	return s.violation
}
