package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/rueidis"
	"go.uber.org/zap"
)

const (
	// DailyBlockedKeyPrefix tracks blocked decisions per calendar day.
	DailyBlockedKeyPrefix = "blocked_decisions"

	// HourlyBlockedKeyPrefix tracks blocked decisions per hour for
	// short-term dashboards. Entries expire after a day.
	HourlyBlockedKeyPrefix = "hourly_blocked"
	HourlyBlockedExpiry    = 24 * time.Hour
)

// Statistics records decision counters in Redis. All writes are best effort
// so counter failures never bleed into the decision path.
type Statistics struct {
	client rueidis.Client
	logger *zap.Logger
}

// NewStatistics creates a new Statistics instance.
func NewStatistics(client rueidis.Client, logger *zap.Logger) *Statistics {
	return &Statistics{
		client: client,
		logger: logger.Named("statistics"),
	}
}

// RecordBlocked increments the daily and hourly blocked-decision counters.
func (s *Statistics) RecordBlocked(ctx context.Context, userID string) {
	now := time.Now()

	dailyKey := fmt.Sprintf("%s:%s", DailyBlockedKeyPrefix, now.Format("2006-01-02"))

	dailyCmd := s.client.B().Hincrby().Key(dailyKey).Field(userID).Increment(1).Build()
	if err := s.client.Do(ctx, dailyCmd).Error(); err != nil {
		s.logger.Warn("Failed to increment daily blocked counter",
			zap.String("userID", userID), zap.Error(err))

		return
	}

	hourlyKey := fmt.Sprintf("%s:%s", HourlyBlockedKeyPrefix, now.Format("2006-01-02-15"))

	incrCmd := s.client.B().Incr().Key(hourlyKey).Build()
	if err := s.client.Do(ctx, incrCmd).Error(); err != nil {
		s.logger.Warn("Failed to increment hourly blocked counter", zap.Error(err))

		return
	}

	expireCmd := s.client.B().Expire().Key(hourlyKey).
		Seconds(int64(HourlyBlockedExpiry.Seconds())).Build()
	if err := s.client.Do(ctx, expireCmd).Error(); err != nil {
		s.logger.Warn("Failed to set hourly counter expiry", zap.Error(err))
	}
}

// HourlyBlocked holds one hour of blocked-decision counts.
type HourlyBlocked struct {
	Timestamp time.Time
	Count     int64
}

// GetHourlyBlocked retrieves blocked-decision counts for the past 24 hours.
func (s *Statistics) GetHourlyBlocked(ctx context.Context) ([]HourlyBlocked, error) {
	currentTime := time.Now()
	stats := make([]HourlyBlocked, 24)

	for i := range 24 {
		timestamp := currentTime.Add(time.Duration(-i) * time.Hour)
		stats[23-i] = HourlyBlocked{Timestamp: timestamp}
	}

	for i, stat := range stats {
		key := fmt.Sprintf("%s:%s", HourlyBlockedKeyPrefix, stat.Timestamp.Format("2006-01-02-15"))

		result := s.client.Do(ctx, s.client.B().Get().Key(key).Build())
		if result.Error() != nil {
			if rueidis.IsRedisNil(result.Error()) {
				continue
			}

			return nil, fmt.Errorf("failed to read hourly counter: %w", result.Error())
		}

		val, err := result.AsInt64()
		if err != nil {
			return nil, fmt.Errorf("failed to parse hourly counter: %w", err)
		}

		stats[i].Count = val
	}

	return stats, nil
}
