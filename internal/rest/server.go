// Package rest wires the HTTP surface of the access engine.
package rest

import (
	"net/http"

	"github.com/klauspost/compress/gzhttp"
	"github.com/lumivault/gatekeeper/internal/database"
	"github.com/lumivault/gatekeeper/internal/engine"
	"github.com/lumivault/gatekeeper/internal/engine/score"
	"github.com/lumivault/gatekeeper/internal/rest/handler"
	"github.com/lumivault/gatekeeper/internal/rest/middleware/auth"
	"github.com/lumivault/gatekeeper/internal/rest/middleware/logging"
	"github.com/lumivault/gatekeeper/internal/rest/middleware/ratelimit"
	"github.com/lumivault/gatekeeper/internal/setup/config"
	"github.com/uptrace/bunrouter"
	"go.uber.org/zap"
)

// Server implements the REST API service.
type Server struct {
	decisionHandler  *handler.DecisionHandler
	actionHandler    *handler.ActionHandler
	violationHandler *handler.ViolationHandler
	vouchHandler     *handler.VouchHandler
}

// NewServer creates a new REST API server.
func NewServer(
	db database.Client, eng *engine.Engine, table *score.Table,
	cfg *config.Server, logger *zap.Logger,
) http.Handler {
	// Create server instance with handlers
	server := &Server{
		decisionHandler:  handler.NewDecisionHandler(eng, cfg.ExposeDiagnostics, logger),
		actionHandler:    handler.NewActionHandler(db, table, logger),
		violationHandler: handler.NewViolationHandler(db, logger),
		vouchHandler:     handler.NewVouchHandler(db, eng, logger),
	}

	// Create middleware instances
	loggingMiddleware := logging.New(logger)
	rateLimitMiddleware := ratelimit.New(&cfg.RateLimit, logger)
	authMiddleware := auth.New(cfg.APIKeys, logger)

	// Create base router
	router := bunrouter.New()

	// Create API routes group
	router.Use(
		loggingMiddleware.AsRESTMiddleware,
		rateLimitMiddleware.AsRESTMiddleware,
		authMiddleware.AsRESTMiddleware,
	).WithGroup("/v1", func(g *bunrouter.Group) {
		g.GET("/decision/:id", server.decisionHandler.GetDecision)
		g.POST("/actions", server.actionHandler.SubmitAction)
		g.POST("/violations", server.violationHandler.SubmitViolation)
		g.POST("/vouches", server.vouchHandler.CreateVouch)
		g.GET("/vouches/:id", server.vouchHandler.GetVouch)
		g.DELETE("/vouches/:id", server.vouchHandler.RevokeVouch)
	})

	// Add gzip compression
	return gzhttp.GzipHandler(router)
}
