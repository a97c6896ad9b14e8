package handlers

import (
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/wonny/dayan/internal/contracts"
	"github.com/wonny/dayan/internal/guaqi"
	"github.com/wonny/dayan/internal/mansion"
	"github.com/wonny/dayan/internal/report"
	"github.com/wonny/dayan/pkg/logger"
	"github.com/wonny/dayan/pkg/redis"
)

// Computer produces reports for the configured site
type Computer interface {
	Compute(t time.Time) *contracts.DayanReport
	Site() contracts.Site
}

// ReportHandler serves reports and the pure lookups behind them
type ReportHandler struct {
	engine   Computer
	cache    *redis.Cache
	observer Observer
	ttl      time.Duration
	now      func() time.Time
	logger   *logger.Logger
}

// NewReportHandler creates a report handler. ttl bounds cached reports of
// arbitrary instants; a nil cache or observer disables them.
func NewReportHandler(engine Computer, cache *redis.Cache, observer Observer, ttl time.Duration, log *logger.Logger) *ReportHandler {
	if cache == nil {
		cache = redis.NewCache(redis.Disabled(), "")
	}
	if observer == nil {
		observer = nopObserver{}
	}
	if ttl <= 0 {
		ttl = redis.TTLReport
	}
	return &ReportHandler{
		engine:   engine,
		cache:    cache,
		observer: observer,
		ttl:      ttl,
		now:      time.Now,
		logger:   log,
	}
}

// GetReport handles GET /api/report?at=RFC3339
func (h *ReportHandler) GetReport(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("at")
	if raw == "" {
		respondError(w, http.StatusBadRequest, "Missing 'at' query parameter (RFC3339)")
		return
	}
	at, err := parseAt(raw)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid 'at' (expected RFC3339, e.g. 2023-12-22T05:27:00+08:00)")
		return
	}

	// a failing cache never fails the request
	key := redis.ReportKey(report.ReportID(at, h.engine.Site()))
	rep, hit, _ := redis.GetOrSet(r.Context(), h.cache, key, h.ttl, func() (*contracts.DayanReport, error) {
		return h.compute(at), nil
	})
	observe(h.observer, hit)
	respondJSON(w, http.StatusOK, rep)
}

// parseAt parses an RFC3339 instant. An unescaped "+08:00" offset arrives
// as " 08:00" after query decoding, so a space in the offset position is read as '+'.
func parseAt(raw string) (time.Time, error) {
	if n := len(raw); n > 6 && raw[n-6] == ' ' {
		raw = raw[:n-6] + "+" + raw[n-5:]
	}
	return time.Parse(time.RFC3339, raw)
}

// GetNow handles GET /api/report/now. Clients polling within the same
// window share one report.
func (h *ReportHandler) GetNow(w http.ResponseWriter, r *http.Request) {
	rep, hit, _ := redis.GetOrSet(r.Context(), h.cache, redis.ReportKey("now"), redis.TTLNow, func() (*contracts.DayanReport, error) {
		return h.compute(h.now().Truncate(time.Second)), nil
	})
	observe(h.observer, hit)
	respondJSON(w, http.StatusOK, rep)
}

// GetGuaQi handles GET /api/guaqi?fen=N, N being fen since the solstice anchor
func (h *ReportHandler) GetGuaQi(w http.ResponseWriter, r *http.Request) {
	fen, err := strconv.ParseInt(r.URL.Query().Get("fen"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid 'fen' (expected an integer)")
		return
	}

	state, hit, _ := redis.GetOrSet(r.Context(), h.cache, redis.GuaQiKey(fen), redis.TTLReport, func() (contracts.GuaQiState, error) {
		return guaqi.Resolve(fen), nil
	})
	observe(h.observer, hit)
	respondJSON(w, http.StatusOK, state)
}

// GetMansion handles GET /api/mansion?lon=DEG
func (h *ReportHandler) GetMansion(w http.ResponseWriter, r *http.Request) {
	lon, err := strconv.ParseFloat(r.URL.Query().Get("lon"), 64)
	if err != nil || math.IsNaN(lon) || math.IsInf(lon, 0) {
		respondError(w, http.StatusBadRequest, "Invalid 'lon' (expected degrees)")
		return
	}

	pos, hit, _ := redis.GetOrSet(r.Context(), h.cache, redis.MansionKey(lon), redis.TTLReport, func() (contracts.MansionPosition, error) {
		return mansion.Locate(lon), nil
	})
	observe(h.observer, hit)
	respondJSON(w, http.StatusOK, pos)
}

func (h *ReportHandler) compute(at time.Time) *contracts.DayanReport {
	rep := h.engine.Compute(at)
	if len(rep.Degradations) > 0 {
		h.observer.Degraded(rep.Degradations)
		h.logger.WithFields(map[string]interface{}{
			"id":           rep.ID,
			"degradations": len(rep.Degradations),
		}).Warn("Serving degraded report")
	}
	return rep
}
