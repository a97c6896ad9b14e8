package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/dayan/internal/contracts"
	"github.com/wonny/dayan/pkg/logger"
	"github.com/wonny/dayan/pkg/redis"
)

type stubEngine struct{}

func (stubEngine) Compute(t time.Time) *contracts.DayanReport {
	return &contracts.DayanReport{
		ID:           "stub",
		Instant:      t,
		Degradations: []string{"timekeeping: sunrise/sunset unavailable"},
	}
}

func (stubEngine) Site() contracts.Site { return contracts.ChangAn }

type countingObserver struct {
	hits, misses int
	degraded     []string
}

func (o *countingObserver) CacheHit()                 { o.hits++ }
func (o *countingObserver) CacheMiss()                { o.misses++ }
func (o *countingObserver) Degraded(reasons []string) { o.degraded = append(o.degraded, reasons...) }

func TestReportHandler_ObservesMissesAndDegradations(t *testing.T) {
	obs := &countingObserver{}
	h := NewReportHandler(stubEngine{}, redis.NewCache(redis.Disabled(), "test"), obs, 0, logger.Nop())
	assert.Equal(t, redis.TTLReport, h.ttl)

	for i := 0; i < 2; i++ {
		rec := httptest.NewRecorder()
		h.GetReport(rec, httptest.NewRequest(http.MethodGet, "/api/report?at=2024-01-01T00:00:00Z", nil))
		require.Equal(t, http.StatusOK, rec.Code)
	}

	assert.Equal(t, 0, obs.hits)
	assert.Equal(t, 2, obs.misses)
	assert.Equal(t, []string{
		"timekeeping: sunrise/sunset unavailable",
		"timekeeping: sunrise/sunset unavailable",
	}, obs.degraded)
}

func TestReportHandler_UnescapedOffset(t *testing.T) {
	h := NewReportHandler(stubEngine{}, nil, nil, time.Minute, logger.Nop())

	for _, target := range []string{
		"/api/report?at=2023-12-22T05:27:00.999+08:00",
		"/api/report?at=2023-12-22T05:27:00.999%2B08:00",
	} {
		rec := httptest.NewRecorder()
		h.GetReport(rec, httptest.NewRequest(http.MethodGet, target, nil))
		require.Equal(t, http.StatusOK, rec.Code, target)
		assert.Contains(t, rec.Body.String(), `"instant":"2023-12-22T05:27:00.999+08:00"`, target)
	}
}

func TestParseAt(t *testing.T) {
	tests := []struct {
		raw     string
		wantErr bool
	}{
		{"2023-12-22T05:27:00+08:00", false},
		{"2023-12-22T05:27:00 08:00", false},
		{"2023-12-22T05:27:00-05:00", false},
		{"2023-12-22T05:27:00Z", false},
		{"2023-12-22 05:27:00", true},
		{"now", true},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			at, err := parseAt(tt.raw)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, 2023, at.Year())
		})
	}
	at, _ := parseAt("2023-12-22T05:27:00 08:00")
	_, offset := at.Zone()
	assert.Equal(t, 8*3600, offset)
}

func TestReportHandler_GetNowUsesClock(t *testing.T) {
	h := NewReportHandler(stubEngine{}, nil, nil, time.Minute, logger.Nop())
	h.now = func() time.Time { return time.Date(2024, 1, 1, 12, 0, 0, 999, time.UTC) }

	rec := httptest.NewRecorder()
	h.GetNow(rec, httptest.NewRequest(http.MethodGet, "/api/report/now", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"instant":"2024-01-01T12:00:00Z"`)
}

func TestJournalHandler_NilStore(t *testing.T) {
	h := NewJournalHandler(nil, nil, logger.Nop())
	rec := httptest.NewRecorder()
	h.GetDay(rec, httptest.NewRequest(http.MethodGet, "/api/journal/2024-01-01", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.JSONEq(t, `{"error":"Journal is disabled"}`, rec.Body.String())
}
