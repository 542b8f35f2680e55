package database

import (
	"github.com/lumivault/gatekeeper/internal/database/models"
	"github.com/uptrace/bun"
	"go.uber.org/zap"
)

// Repository provides access to all database models.
type Repository struct {
	action    *models.ActionModel
	vouch     *models.VouchModel
	violation *models.ViolationModel
}

// NewRepository creates a new repository instance with all models.
func NewRepository(db *bun.DB, logger *zap.Logger) *Repository {
	return &Repository{
		action:    models.NewAction(db, logger),
		vouch:     models.NewVouch(db, logger),
		violation: models.NewViolation(db, logger),
	}
}

// Action returns the action ledger repository.
func (r *Repository) Action() *models.ActionModel {
	return r.action
}

// Vouch returns the vouch model repository.
func (r *Repository) Vouch() *models.VouchModel {
	return r.vouch
}

// Violation returns the violation log repository.
func (r *Repository) Violation() *models.ViolationModel {
	return r.violation
}
