// Package maintenance implements the periodic sweep worker. It expires
// stale vouches and surfaces blocked-decision counters; the decision path
// itself never depends on it.
package maintenance

import (
	"context"
	"time"

	"github.com/lumivault/gatekeeper/internal/database"
	gkredis "github.com/lumivault/gatekeeper/internal/redis"
	"github.com/lumivault/gatekeeper/pkg/utils"
	"go.uber.org/zap"
)

// Worker runs the periodic maintenance sweep.
type Worker struct {
	db         database.Client
	statistics *gkredis.Statistics
	interval   time.Duration
	logger     *zap.Logger
}

// New creates a new maintenance worker.
func New(db database.Client, statistics *gkredis.Statistics, interval time.Duration, logger *zap.Logger) *Worker {
	return &Worker{
		db:         db,
		statistics: statistics,
		interval:   interval,
		logger:     logger.Named("maintenance"),
	}
}

// Start begins the worker's sweep loop. It runs one sweep immediately, then
// once per interval until the context is cancelled.
func (w *Worker) Start(ctx context.Context) {
	w.logger.Info("Maintenance worker started", zap.Duration("interval", w.interval))

	for {
		w.sweep(ctx)

		if utils.ContextSleep(ctx, w.interval) == utils.SleepCancelled {
			w.logger.Info("Maintenance worker stopped")
			return
		}
	}
}

// sweep runs one maintenance pass.
func (w *Worker) sweep(ctx context.Context) {
	now := time.Now()

	// Expiry is also enforced at read time; the sweep keeps the active flag
	// in the table honest for direct queries.
	expired, err := w.db.Model().Vouch().DeactivateExpired(ctx, now)
	if err != nil {
		w.logger.Error("Failed to deactivate expired vouches", zap.Error(err))
	} else if expired > 0 {
		w.logger.Info("Deactivated expired vouches", zap.Int64("count", expired))
	}

	// Report blocked-decision volume for the past day.
	hourly, err := w.statistics.GetHourlyBlocked(ctx)
	if err != nil {
		w.logger.Error("Failed to read blocked-decision counters", zap.Error(err))
		return
	}

	var total int64
	for _, h := range hourly {
		total += h.Count
	}

	w.logger.Info("Sweep finished",
		zap.Duration("took", time.Since(now)),
		zap.Int64("blockedLast24h", total))
}
