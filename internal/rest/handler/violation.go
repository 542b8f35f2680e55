package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/bytedance/sonic"
	"github.com/lumivault/gatekeeper/internal/database"
	"github.com/lumivault/gatekeeper/internal/database/types"
	"github.com/lumivault/gatekeeper/internal/database/types/enum"
	"github.com/lumivault/gatekeeper/internal/rest/convert"
	restTypes "github.com/lumivault/gatekeeper/internal/rest/types"
	"github.com/uptrace/bunrouter"
	"go.uber.org/zap"
)

// ViolationHandler handles violation log endpoints.
type ViolationHandler struct {
	db     database.Client
	logger *zap.Logger
}

// NewViolationHandler creates a new violation handler.
func NewViolationHandler(db database.Client, logger *zap.Logger) *ViolationHandler {
	return &ViolationHandler{
		db:     db,
		logger: logger,
	}
}

// SubmitViolation records one violation. Reporting the same (userId,
// occurredAt) pair twice acknowledges the stored record instead of
// double-counting it.
func (h *ViolationHandler) SubmitViolation(w http.ResponseWriter, req bunrouter.Request) error {
	body, err := io.ReadAll(req.Body)
	if err != nil {
		http.Error(w, "Failed to read request body", http.StatusBadRequest)
		return nil
	}

	var request restTypes.SubmitViolationRequest
	if err := sonic.Unmarshal(body, &request); err != nil {
		http.Error(w, "Invalid JSON body", http.StatusBadRequest)
		return nil
	}

	if request.UserID == "" || request.OccurredAt.IsZero() {
		http.Error(w, "userId and occurredAt are required", http.StatusBadRequest)
		return nil
	}

	severity, err := enum.SeverityString(request.Severity)
	if err != nil {
		http.Error(w, "Unknown severity", http.StatusBadRequest)
		return nil
	}

	record, err := h.db.Service().Violation().Record(req.Context(), request.UserID, request.OccurredAt, severity)

	alreadyRecorded := errors.Is(err, types.ErrViolationExists)
	if err != nil && !alreadyRecorded {
		h.logger.Error("Failed to record violation",
			zap.String("userID", request.UserID), zap.Error(err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)

		return nil
	}

	if !alreadyRecorded {
		w.WriteHeader(http.StatusCreated)
	}

	return bunrouter.JSON(w, convert.Violation(record, alreadyRecorded))
}
