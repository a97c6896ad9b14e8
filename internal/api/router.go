package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	apihandlers "github.com/wonny/dayan/internal/api/handlers"
	"github.com/wonny/dayan/internal/journal"
	"github.com/wonny/dayan/pkg/config"
	"github.com/wonny/dayan/pkg/logger"
	"github.com/wonny/dayan/pkg/redis"
)

// Pinger is a dependency reported by /health
type Pinger interface {
	Ping(ctx context.Context) error
}

// Deps wires the router. Store, Cache, Limiter and Metrics may be nil.
type Deps struct {
	Config  *config.Config
	Logger  *logger.Logger
	Engine  apihandlers.Computer
	Store   journal.Store
	Cache   *redis.Cache
	Limiter *redis.RateLimiter
	Metrics *Metrics
	Checks  map[string]Pinger
}

// NewRouter creates and configures the HTTP router
// ⭐ SSOT: 라우팅 설정은 이 함수에서만
func NewRouter(d Deps) http.Handler {
	cfg := d.Config
	log := d.Logger.WithComponent("api")
	loc := time.UTC
	if tz, ok := d.Engine.(interface{ Location() *time.Location }); ok {
		loc = tz.Location()
	}

	var observer apihandlers.Observer
	if d.Metrics != nil {
		observer = d.Metrics
	}
	reportHandler := apihandlers.NewReportHandler(d.Engine, d.Cache, observer, cfg.API.CacheTTL, log)
	journalHandler := apihandlers.NewJournalHandler(d.Store, loc, log)
	stream := NewStreamHandler(d.Engine, cfg.API.StreamInterval, d.Metrics, log)

	r := mux.NewRouter()

	// Health check
	r.Handle("/health", healthHandler(d.Checks)).Methods("GET")
	if cfg.MetricsEnabled {
		r.Handle("/metrics", d.Metrics.Handler()).Methods("GET")
	}
	r.Handle("/ws/stream", stream).Methods("GET")

	// API
	api := r.PathPrefix("/api").Subrouter()

	api.HandleFunc("/report", reportHandler.GetReport).Methods("GET")
	api.HandleFunc("/report/now", reportHandler.GetNow).Methods("GET")
	api.HandleFunc("/guaqi", reportHandler.GetGuaQi).Methods("GET")
	api.HandleFunc("/mansion", reportHandler.GetMansion).Methods("GET")
	api.HandleFunc("/journal/{date}", journalHandler.GetDay).Methods("GET")

	var local *clientLimiter
	if cfg.API.RateLimit > 0 {
		local = newClientLimiter(cfg.API.RateLimit, cfg.API.RateBurst)
	}
	api.Use(rateLimitMiddleware(local, d.Limiter, d.Metrics, log))

	// Apply middleware
	r.Use(d.Metrics.Middleware)
	r.Use(loggingMiddleware(log))
	r.Use(recoveryMiddleware(log))

	var h http.Handler = r
	h = handlers.CompressHandler(h)
	h = handlers.CORS(
		handlers.AllowedOrigins([]string{"*"}),
		handlers.AllowedMethods([]string{"GET", "OPTIONS"}),
	)(h)
	return h
}

// healthHandler reports server health and each dependency.
// A failing dependency degrades the status without failing the server.
func healthHandler(checks map[string]Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		status := "ok"
		deps := make(map[string]string, len(checks))
		for name, p := range checks {
			if err := p.Ping(ctx); err != nil {
				deps[name] = err.Error()
				status = "degraded"
				continue
			}
			deps[name] = "ok"
		}

		writeJSON(w, http.StatusOK, map[string]interface{}{
			"status":       status,
			"service":      "dayan-api",
			"dependencies": deps,
		})
	}
}
