package handler

import (
	"io"
	"net/http"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"github.com/lumivault/gatekeeper/internal/database"
	"github.com/lumivault/gatekeeper/internal/database/types"
	"github.com/lumivault/gatekeeper/internal/engine/score"
	restTypes "github.com/lumivault/gatekeeper/internal/rest/types"
	"github.com/uptrace/bunrouter"
	"go.uber.org/zap"
)

// ActionHandler handles action ledger endpoints.
type ActionHandler struct {
	db     database.Client
	table  *score.Table
	logger *zap.Logger
}

// NewActionHandler creates a new action handler.
func NewActionHandler(db database.Client, table *score.Table, logger *zap.Logger) *ActionHandler {
	return &ActionHandler{
		db:     db,
		table:  table,
		logger: logger,
	}
}

// SubmitAction appends one action to the ledger. The quality score comes
// from the scoring policy unless the caller supplies an explicit override.
func (h *ActionHandler) SubmitAction(w http.ResponseWriter, req bunrouter.Request) error {
	body, err := io.ReadAll(req.Body)
	if err != nil {
		http.Error(w, "Failed to read request body", http.StatusBadRequest)
		return nil
	}

	var request restTypes.SubmitActionRequest
	if err := sonic.Unmarshal(body, &request); err != nil {
		http.Error(w, "Invalid JSON body", http.StatusBadRequest)
		return nil
	}

	if request.UserID == "" || request.Type == "" {
		http.Error(w, "userId and type are required", http.StatusBadRequest)
		return nil
	}

	occurredAt := time.Now()
	if request.OccurredAt != nil {
		occurredAt = *request.OccurredAt
	}

	actionScore := h.table.Score(request.Type)
	if request.Score != nil {
		if *request.Score < 0 || *request.Score > 1 {
			http.Error(w, "score must be within [0, 1]", http.StatusBadRequest)
			return nil
		}

		actionScore = *request.Score
	}

	action := &types.Action{
		ID:         uuid.New(),
		UserID:     request.UserID,
		Type:       request.Type,
		Score:      actionScore,
		OccurredAt: occurredAt,
	}

	if err := h.db.Service().Action().Append(req.Context(), action); err != nil {
		h.logger.Error("Failed to append action",
			zap.String("userID", request.UserID), zap.Error(err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)

		return nil
	}

	w.WriteHeader(http.StatusCreated)

	return bunrouter.JSON(w, restTypes.SubmitActionResponse{
		ID:         action.ID,
		UserID:     action.UserID,
		Type:       action.Type,
		Score:      action.Score,
		OccurredAt: action.OccurredAt,
	})
}
