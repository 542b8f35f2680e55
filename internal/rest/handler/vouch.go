package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"github.com/lumivault/gatekeeper/internal/database"
	"github.com/lumivault/gatekeeper/internal/database/models"
	"github.com/lumivault/gatekeeper/internal/database/service"
	"github.com/lumivault/gatekeeper/internal/database/types/enum"
	"github.com/lumivault/gatekeeper/internal/engine"
	"github.com/lumivault/gatekeeper/internal/rest/convert"
	restTypes "github.com/lumivault/gatekeeper/internal/rest/types"
	"github.com/uptrace/bunrouter"
	"go.uber.org/zap"
)

// VouchHandler handles vouch endpoints.
type VouchHandler struct {
	db     database.Client
	engine *engine.Engine
	logger *zap.Logger
}

// NewVouchHandler creates a new vouch handler.
func NewVouchHandler(db database.Client, eng *engine.Engine, logger *zap.Logger) *VouchHandler {
	return &VouchHandler{
		db:     db,
		engine: eng,
		logger: logger,
	}
}

// CreateVouch issues a vouch from one user to another. Only issuers holding
// the top tier may vouch, subject to the quarterly quota.
func (h *VouchHandler) CreateVouch(w http.ResponseWriter, req bunrouter.Request) error {
	body, err := io.ReadAll(req.Body)
	if err != nil {
		http.Error(w, "Failed to read request body", http.StatusBadRequest)
		return nil
	}

	var request restTypes.CreateVouchRequest
	if err := sonic.Unmarshal(body, &request); err != nil {
		http.Error(w, "Invalid JSON body", http.StatusBadRequest)
		return nil
	}

	if request.FromUser == "" || request.ToUser == "" {
		http.Error(w, "fromUser and toUser are required", http.StatusBadRequest)
		return nil
	}

	if _, err := h.engine.Authorize(req.Context(), request.FromUser, enum.TierSovereign); err != nil {
		switch {
		case errors.Is(err, engine.ErrCooldownActive),
			errors.Is(err, engine.ErrAbuseDetected),
			errors.Is(err, engine.ErrInsufficientHistory),
			errors.Is(err, engine.ErrTierInsufficient):
			http.Error(w, "Vouching requires the top tier", http.StatusForbidden)
		default:
			h.logger.Error("Failed to authorize voucher",
				zap.String("fromUser", request.FromUser), zap.Error(err))
			http.Error(w, "Internal server error", http.StatusInternalServerError)
		}

		return nil
	}

	vouch, err := h.db.Service().Vouch().Create(req.Context(), request.FromUser, request.ToUser)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSelfVouch):
			http.Error(w, "Cannot vouch for yourself", http.StatusBadRequest)
		case errors.Is(err, service.ErrVouchQuotaExhausted):
			http.Error(w, "Vouch quota exhausted for this quarter", http.StatusConflict)
		default:
			h.logger.Error("Failed to create vouch",
				zap.String("fromUser", request.FromUser), zap.Error(err))
			http.Error(w, "Internal server error", http.StatusInternalServerError)
		}

		return nil
	}

	w.WriteHeader(http.StatusCreated)

	return bunrouter.JSON(w, restTypes.GetVouchResponse{Vouch: convert.Vouch(vouch)})
}

// GetVouch retrieves one vouch by ID.
func (h *VouchHandler) GetVouch(w http.ResponseWriter, req bunrouter.Request) error {
	id, err := uuid.Parse(req.Param("id"))
	if err != nil {
		http.Error(w, "Invalid vouch ID", http.StatusBadRequest)
		return nil
	}

	vouch, err := h.db.Model().Vouch().GetVouch(req.Context(), id)
	if err != nil {
		if errors.Is(err, models.ErrVouchNotFound) {
			http.Error(w, "Vouch not found", http.StatusNotFound)
			return nil
		}

		h.logger.Error("Failed to get vouch", zap.Error(err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)

		return nil
	}

	return bunrouter.JSON(w, restTypes.GetVouchResponse{Vouch: convert.Vouch(vouch)})
}

// RevokeVouch deactivates a vouch early. Only the issuer may revoke; the
// caller identifies themselves with the `by` query parameter.
func (h *VouchHandler) RevokeVouch(w http.ResponseWriter, req bunrouter.Request) error {
	id, err := uuid.Parse(req.Param("id"))
	if err != nil {
		http.Error(w, "Invalid vouch ID", http.StatusBadRequest)
		return nil
	}

	byUser := req.URL.Query().Get("by")
	if byUser == "" {
		http.Error(w, "Missing by parameter", http.StatusBadRequest)
		return nil
	}

	if err := h.db.Service().Vouch().Revoke(req.Context(), id, byUser); err != nil {
		switch {
		case errors.Is(err, models.ErrVouchNotFound):
			http.Error(w, "Vouch not found", http.StatusNotFound)
		case errors.Is(err, service.ErrNotVoucher):
			http.Error(w, "Only the issuer may revoke a vouch", http.StatusForbidden)
		default:
			h.logger.Error("Failed to revoke vouch", zap.Error(err))
			http.Error(w, "Internal server error", http.StatusInternalServerError)
		}

		return nil
	}

	w.WriteHeader(http.StatusNoContent)

	return nil
}
