// Package setup bootstraps the shared application dependencies for the API
// server and the maintenance worker.
package setup

import (
	"context"
	"log"

	"github.com/lumivault/gatekeeper/internal/chain"
	"github.com/lumivault/gatekeeper/internal/database"
	"github.com/lumivault/gatekeeper/internal/engine"
	"github.com/lumivault/gatekeeper/internal/engine/abuse"
	"github.com/lumivault/gatekeeper/internal/engine/score"
	"github.com/lumivault/gatekeeper/internal/redis"
	"github.com/lumivault/gatekeeper/internal/setup/config"
	"github.com/lumivault/gatekeeper/internal/setup/telemetry"
	"go.uber.org/zap"
)

// App bundles all core dependencies and services needed by the application.
// Each field represents a major subsystem that needs initialization and cleanup.
type App struct {
	Config       *config.Config     // Application configuration
	Logger       *zap.Logger        // Main application logger
	DBLogger     *zap.Logger        // Database-specific logger
	DB           database.Client    // Database connection pool
	RedisManager *redis.Manager     // Redis connection manager
	Statistics   *redis.Statistics  // Blocked-decision counters
	Chain        *chain.Client      // Chain observer client
	Engine       *engine.Engine     // Access decision engine
	Table        *score.Table       // Action scoring policy
	LogManager   *telemetry.Manager // Log management system
	pprofServer  *pprofServer       // Debug HTTP server for pprof
}

// InitializeApp bootstraps all application dependencies in the correct order,
// ensuring each component has its required dependencies available.
func InitializeApp(ctx context.Context, serviceType telemetry.ServiceType, logDir string) (*App, error) {
	// Load app configuration
	cfg, _, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}

	// Logging system is initialized next to capture setup issues
	logManager := telemetry.NewManager(ctx, serviceType, logDir, &cfg.Debug, &cfg.Loki)

	logger, dbLogger, err := logManager.GetLoggers()
	if err != nil {
		return nil, err
	}

	// Redis manager provides connection pools for various subsystems
	redisManager := redis.NewManager(&cfg.Redis, logger)

	// Pending migrations run automatically on startup
	db, err := database.NewConnection(ctx, &cfg.PostgreSQL, dbLogger, true)
	if err != nil {
		return nil, err
	}

	// Statistics client records blocked decisions
	statsClient, err := redisManager.GetClient(redis.StatsDBIndex)
	if err != nil {
		db.Close()
		return nil, err
	}

	statistics := redis.NewStatistics(statsClient, logger)

	// Chain observer supplies on-chain trust signals
	chainClient := chain.NewClient(
		cfg.Chain.BaseURL, cfg.Chain.APIKey, cfg.Chain.RequestTimeoutDuration(), logger,
	)

	// Build the decision engine from the scoring policy
	table, err := cfg.Scoring.BuildTable()
	if err != nil {
		db.Close()
		return nil, err
	}

	eng := engine.New(engine.Params{
		Actions:         db.Model().Action(),
		Violations:      db.Model().Violation(),
		Vouches:         db.Model().Vouch(),
		Chain:           chainClient,
		Blocked:         statistics,
		Table:           table,
		Detector:        abuse.New(cfg.Abuse.DetectorConfig(), table, logger),
		UpstreamTimeout: cfg.Engine.UpstreamTimeoutDuration(),
		Logger:          logger,
	})

	// Start pprof server if enabled
	var pprofSrv *pprofServer

	if cfg.Debug.EnablePprof {
		srv, err := startPprofServer(cfg.Debug.PprofPort, logger)
		if err != nil {
			logger.Error("Failed to start pprof server", zap.Error(err))
		} else {
			pprofSrv = srv

			logger.Warn("pprof debugging endpoint enabled - this should not be used in production!")
		}
	}

	// Bundle all initialized components
	return &App{
		Config:       cfg,
		Logger:       logger,
		DBLogger:     dbLogger.Named("database"),
		DB:           db,
		RedisManager: redisManager,
		Statistics:   statistics,
		Chain:        chainClient,
		Engine:       eng,
		Table:        table,
		LogManager:   logManager,
		pprofServer:  pprofSrv,
	}, nil
}

// Cleanup ensures graceful shutdown of all components in reverse initialization order.
// Logs but does not fail on cleanup errors to ensure all components get cleanup attempts.
func (s *App) Cleanup(ctx context.Context) {
	// Shutdown pprof server if running
	if s.pprofServer != nil {
		if err := s.pprofServer.srv.Shutdown(ctx); err != nil {
			s.Logger.Error("Failed to shutdown pprof server", zap.Error(err))
		}

		s.pprofServer.listener.Close()
	}

	// Sync buffered logs before shutdown
	if err := s.Logger.Sync(); err != nil {
		log.Printf("Failed to sync logger: %v", err)
	}

	if err := s.DBLogger.Sync(); err != nil {
		log.Printf("Failed to sync DB logger: %v", err)
	}

	// Stop telemetry manager to flush Loki logs
	s.LogManager.Stop()

	// Close database connections
	if err := s.DB.Close(); err != nil {
		log.Printf("Failed to close database connection: %v", err)
	}

	// Close Redis connections last as other components might need it during cleanup
	s.RedisManager.Close()
}
