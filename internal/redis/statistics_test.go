package redis_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	gkredis "github.com/lumivault/gatekeeper/internal/redis"
	"github.com/redis/rueidis"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupTest(t *testing.T) (*gkredis.Statistics, *miniredis.Miniredis) {
	t.Helper()

	// Start miniredis server
	mr, err := miniredis.Run()
	require.NoError(t, err)

	// Create Redis client
	client, err := rueidis.NewClient(rueidis.ClientOption{
		InitAddress:  []string{mr.Addr()},
		DisableCache: true,
	})
	require.NoError(t, err)

	stats := gkredis.NewStatistics(client, zap.NewNop())

	t.Cleanup(func() {
		client.Close()
		mr.Close()
	})

	return stats, mr
}

func TestRecordBlocked(t *testing.T) {
	t.Parallel()

	stats, mr := setupTest(t)
	ctx := t.Context()

	stats.RecordBlocked(ctx, "user-1")
	stats.RecordBlocked(ctx, "user-1")
	stats.RecordBlocked(ctx, "user-2")

	dailyKey := fmt.Sprintf("%s:%s", gkredis.DailyBlockedKeyPrefix, time.Now().Format("2006-01-02"))
	assert.Equal(t, "2", mr.HGet(dailyKey, "user-1"))
	assert.Equal(t, "1", mr.HGet(dailyKey, "user-2"))

	hourlyKey := fmt.Sprintf("%s:%s", gkredis.HourlyBlockedKeyPrefix, time.Now().Format("2006-01-02-15"))

	val, err := mr.Get(hourlyKey)
	require.NoError(t, err)
	assert.Equal(t, "3", val)

	// Hourly counters expire; daily hashes do not.
	assert.Positive(t, mr.TTL(hourlyKey))
}

func TestGetHourlyBlocked(t *testing.T) {
	t.Parallel()

	stats, _ := setupTest(t)
	ctx := t.Context()

	stats.RecordBlocked(ctx, "user-1")
	stats.RecordBlocked(ctx, "user-2")

	hourly, err := stats.GetHourlyBlocked(ctx)
	require.NoError(t, err)
	require.Len(t, hourly, 24)

	// Current hour is the last bucket.
	assert.Equal(t, int64(2), hourly[23].Count)

	var total int64
	for _, h := range hourly {
		total += h.Count
	}

	assert.Equal(t, int64(2), total)
}
