package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/lumivault/gatekeeper/internal/database/service"
	"github.com/lumivault/gatekeeper/internal/database/types"
	"github.com/lumivault/gatekeeper/internal/database/types/enum"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeViolationStore mimics the (user_id, occurred_at) primary key of the
// violation table in memory.
type fakeViolationStore struct {
	records map[string]*types.Violation
	inserts int
}

func newFakeViolationStore() *fakeViolationStore {
	return &fakeViolationStore{records: make(map[string]*types.Violation)}
}

func violationKey(userID string, occurredAt time.Time) string {
	return userID + "|" + occurredAt.UTC().Format(time.RFC3339Nano)
}

func (f *fakeViolationStore) InsertViolation(_ context.Context, record *types.Violation) error {
	f.inserts++

	key := violationKey(record.UserID, record.OccurredAt)
	if _, exists := f.records[key]; exists {
		return types.ErrViolationExists
	}

	stored := *record
	f.records[key] = &stored

	return nil
}

func (f *fakeViolationStore) GetViolation(
	_ context.Context, userID string, occurredAt time.Time,
) (*types.Violation, error) {
	stored := f.records[violationKey(userID, occurredAt)]
	return stored, nil
}

func (f *fakeViolationStore) UserViolations(_ context.Context, userID string) ([]*types.Violation, error) {
	var violations []*types.Violation
	for _, record := range f.records {
		if record.UserID == userID {
			violations = append(violations, record)
		}
	}

	return violations, nil
}

// fakeVoucherStore records penalty increments per voucher.
type fakeVoucherStore struct {
	vouchers  []string
	penalties map[string]int
}

func (f *fakeVoucherStore) ActiveVouchersFor(_ context.Context, _ string, _ time.Time) ([]string, error) {
	return f.vouchers, nil
}

func (f *fakeVoucherStore) IncrementPenalty(_ context.Context, userID string, _ time.Time) error {
	if f.penalties == nil {
		f.penalties = make(map[string]int)
	}

	f.penalties[userID]++

	return nil
}

func TestRecordViolationIdempotent(t *testing.T) {
	t.Parallel()

	store := newFakeViolationStore()
	vouchers := &fakeVoucherStore{vouchers: []string{"voucher-1"}}
	svc := service.NewViolation(store, vouchers, service.NewUserLocks(), zap.NewNop())

	occurredAt := time.Now().Add(-time.Minute)

	record, err := svc.Record(t.Context(), "user-1", occurredAt, enum.SeverityModerate)
	require.NoError(t, err)
	assert.Equal(t, enum.SeverityModerate, record.Severity)
	assert.Equal(t, 24, record.CooldownHoursApplied)
	assert.Len(t, store.records, 1)
	assert.Equal(t, 1, vouchers.penalties["voucher-1"])

	// Retrying the same occurrence must not double-count: one stored row,
	// no second voucher penalty, and the stored severity wins over the
	// resubmitted one.
	retried, err := svc.Record(t.Context(), "user-1", occurredAt, enum.SeveritySevere)
	require.ErrorIs(t, err, types.ErrViolationExists)
	assert.Equal(t, enum.SeverityModerate, retried.Severity)
	assert.Equal(t, 24, retried.CooldownHoursApplied)
	assert.Equal(t, 2, store.inserts)
	assert.Len(t, store.records, 1)
	assert.Equal(t, 1, vouchers.penalties["voucher-1"])
}

func TestRecordViolationDistinctOccurrences(t *testing.T) {
	t.Parallel()

	store := newFakeViolationStore()
	vouchers := &fakeVoucherStore{}
	svc := service.NewViolation(store, vouchers, service.NewUserLocks(), zap.NewNop())

	first := time.Now().Add(-2 * time.Hour)

	_, err := svc.Record(t.Context(), "user-1", first, enum.SeverityModerate)
	require.NoError(t, err)

	_, err = svc.Record(t.Context(), "user-1", first.Add(time.Hour), enum.SeverityModerate)
	require.NoError(t, err)

	assert.Len(t, store.records, 2)
}
