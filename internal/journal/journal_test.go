package journal

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/dayan/internal/contracts"
	"github.com/wonny/dayan/pkg/logger"
)

type fakeEngine struct{}

func (fakeEngine) Compute(t time.Time) *contracts.DayanReport {
	r := &contracts.DayanReport{
		ID:      t.UTC().Format(time.RFC3339),
		Instant: t,
		Site:    contracts.ChangAn,
	}
	r.Calculation.CurrentTermName = "冬至"
	r.DailyGua.Hexagram.Name = "中孚"
	r.DailyGua.YaoName = "初九"
	if t.Hour() == 13 {
		r.Degradations = []string{"sunrise/sunset unavailable"}
	}
	return r
}

type memoryStore struct {
	mu       sync.Mutex
	saved    map[string]*contracts.DayanReport
	failAt   string
	inFlight int
	maxSeen  int
}

func newMemoryStore() *memoryStore {
	return &memoryStore{saved: make(map[string]*contracts.DayanReport)}
}

func (m *memoryStore) Save(_ context.Context, r *contracts.DayanReport) error {
	m.mu.Lock()
	m.inFlight++
	if m.inFlight > m.maxSeen {
		m.maxSeen = m.inFlight
	}
	m.mu.Unlock()

	time.Sleep(time.Millisecond)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.inFlight--
	if r.ID == m.failAt {
		return errors.New("disk full")
	}
	m.saved[r.ID] = r
	return nil
}

func (m *memoryStore) ByDate(_ context.Context, day time.Time) ([]Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []Entry
	for _, r := range m.saved {
		if r.Instant.Format("2006-01-02") == day.Format("2006-01-02") {
			out = append(out, EntryFor(r))
		}
	}
	return out, nil
}

type countingPublisher struct {
	mu    sync.Mutex
	count int
	err   error
}

func (p *countingPublisher) Publish(context.Context, *contracts.DayanReport) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.count++
	return p.err
}

func (p *countingPublisher) Close() error { return nil }

var day = time.Date(2023, 12, 22, 0, 0, 0, 0, time.UTC)

func TestRecord_SavesAndPublishes(t *testing.T) {
	store := newMemoryStore()
	pub := &countingPublisher{}
	rec := NewRecorder(fakeEngine{}, store, pub, logger.Nop())

	r, err := rec.Record(context.Background(), day.Add(5*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, "2023-12-22T05:00:00Z", r.ID)
	assert.Contains(t, store.saved, r.ID)
	assert.Equal(t, 1, pub.count)
}

func TestRecord_PublishFailureIsNotFatal(t *testing.T) {
	store := newMemoryStore()
	rec := NewRecorder(fakeEngine{}, store, &countingPublisher{err: errors.New("broker down")}, logger.Nop())

	_, err := rec.Record(context.Background(), day)
	require.NoError(t, err)
	assert.Len(t, store.saved, 1)
}

func TestRecord_SaveFailure(t *testing.T) {
	store := newMemoryStore()
	store.failAt = day.Format(time.RFC3339)
	rec := NewRecorder(fakeEngine{}, store, nil, logger.Nop())

	_, err := rec.Record(context.Background(), day)
	assert.ErrorContains(t, err, "disk full")
}

func TestBackfill_RecordsEveryStep(t *testing.T) {
	store := newMemoryStore()
	rec := NewRecorder(fakeEngine{}, store, nil, logger.Nop())

	n, err := rec.Backfill(context.Background(), BackfillRequest{
		From:    day,
		To:      day.Add(23 * time.Hour),
		Step:    time.Hour,
		Workers: 3,
	})
	require.NoError(t, err)
	assert.Equal(t, 24, n)
	assert.Len(t, store.saved, 24)
	assert.LessOrEqual(t, store.maxSeen, 3)

	entries, err := store.ByDate(context.Background(), day)
	require.NoError(t, err)
	degraded := 0
	for _, e := range entries {
		if e.Degraded {
			degraded++
		}
	}
	assert.Equal(t, 1, degraded)
}

func TestBackfill_StopsOnFailure(t *testing.T) {
	store := newMemoryStore()
	store.failAt = day.Add(2 * time.Hour).Format(time.RFC3339)
	rec := NewRecorder(fakeEngine{}, store, nil, logger.Nop())

	n, err := rec.Backfill(context.Background(), BackfillRequest{
		From: day, To: day.Add(47 * time.Hour), Step: time.Hour, Workers: 1,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "2023-12-22T02:00:00Z")
	assert.Less(t, n, 48)
}

func TestBackfill_InvalidRequests(t *testing.T) {
	rec := NewRecorder(fakeEngine{}, newMemoryStore(), nil, logger.Nop())
	ctx := context.Background()

	_, err := rec.Backfill(ctx, BackfillRequest{From: day, To: day, Step: 0})
	assert.Error(t, err)

	_, err = rec.Backfill(ctx, BackfillRequest{From: day, To: day.Add(-time.Hour), Step: time.Hour})
	assert.Error(t, err)

	_, err = rec.Backfill(ctx, BackfillRequest{From: day, To: day.AddDate(100, 0, 0), Step: time.Minute})
	assert.Error(t, err)
}

func TestBackfill_SingleInstant(t *testing.T) {
	rec := NewRecorder(fakeEngine{}, newMemoryStore(), nil, logger.Nop())
	n, err := rec.Backfill(context.Background(), BackfillRequest{From: day, To: day, Step: time.Hour})
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestBackfill_CancelledContext(t *testing.T) {
	rec := NewRecorder(fakeEngine{}, newMemoryStore(), nil, logger.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := rec.Backfill(ctx, BackfillRequest{From: day, To: day.Add(10 * time.Hour), Step: time.Hour})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestMessage(t *testing.T) {
	r := fakeEngine{}.Compute(day)
	msg, err := Message(r)
	require.NoError(t, err)

	assert.Equal(t, []byte(r.ID), msg.Key)
	assert.Equal(t, day, msg.Time)
	require.Len(t, msg.Headers, 3)
	assert.Equal(t, "中孚", string(msg.Headers[2].Value))

	var decoded contracts.DayanReport
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	assert.Equal(t, r.ID, decoded.ID)
}

func TestEntryFor(t *testing.T) {
	e := EntryFor(fakeEngine{}.Compute(day.Add(13 * time.Hour)))
	assert.Equal(t, "长安", e.Site)
	assert.Equal(t, "冬至", e.Term)
	assert.Equal(t, "初九", e.Yao)
	assert.True(t, e.Degraded)
}
