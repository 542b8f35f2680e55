// Package handler implements the REST endpoint handlers.
package handler

import (
	"net/http"

	"github.com/lumivault/gatekeeper/internal/engine"
	"github.com/lumivault/gatekeeper/internal/rest/convert"
	"github.com/uptrace/bunrouter"
	"go.uber.org/zap"
)

// DecisionHandler handles access decision endpoints.
type DecisionHandler struct {
	engine            *engine.Engine
	exposeDiagnostics bool
	logger            *zap.Logger
}

// NewDecisionHandler creates a new decision handler.
func NewDecisionHandler(eng *engine.Engine, exposeDiagnostics bool, logger *zap.Logger) *DecisionHandler {
	return &DecisionHandler{
		engine:            eng,
		exposeDiagnostics: exposeDiagnostics,
		logger:            logger,
	}
}

// GetDecision computes the access tier for a user. The computation is a pure
// read of the ledgers; nothing about the user is mutated.
func (h *DecisionHandler) GetDecision(w http.ResponseWriter, req bunrouter.Request) error {
	userID := req.Param("id")
	if userID == "" {
		http.Error(w, "Missing user ID", http.StatusBadRequest)
		return nil
	}

	decision, err := h.engine.Decision(req.Context(), userID)
	if err != nil {
		h.logger.Error("Failed to compute decision",
			zap.String("userID", userID), zap.Error(err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)

		return nil
	}

	return bunrouter.JSON(w, convert.Decision(decision, h.exposeDiagnostics))
}
