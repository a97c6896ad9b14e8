package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/wonny/dayan/internal/api"
	"github.com/wonny/dayan/pkg/redis"
)

// apiCmd represents the api command
var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "API 서버 시작",
	Long: `REST API 서버를 시작합니다.

이 명령어는:
- HTTP API 서버 시작
- 리포트 조회 엔드포인트 제공
- 웹소켓 실시간 스트림 제공

Endpoints:
  GET  /health                 - Health check
  GET  /api/report?at=RFC3339  - 지정 시각 리포트
  GET  /api/report/now         - 현재 시각 리포트
  GET  /api/guaqi?fen=N        - 괘기 조회 (동지 기점 누적 분)
  GET  /api/mansion?lon=DEG    - 이십팔수 조회
  GET  /api/journal/{date}     - 저널 조회 (JOURNAL_ENABLED)
  GET  /ws/stream              - 웹소켓 스트림
  GET  /metrics                - Prometheus (METRICS_ENABLED)

Example:
  go run ./cmd/dayan api
  go run ./cmd/dayan api --port 8080`,
	RunE: runAPIServer,
}

var (
	apiPort string
)

func init() {
	rootCmd.AddCommand(apiCmd)

	// Flags
	apiCmd.Flags().StringVar(&apiPort, "port", "", "API 서버 포트 (default PORT)")
}

func runAPIServer(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "=== Dayan API Server ===")

	// 1. Load config, logger and engine
	a, err := newApp()
	if err != nil {
		return err
	}
	cfg, log := a.cfg, a.log

	// Override port if flag is set
	if apiPort != "" {
		cfg.Port = apiPort
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	deps := api.Deps{
		Config: cfg,
		Logger: log,
		Engine: a.engine,
		Checks: map[string]api.Pinger{},
	}

	// 2. Redis (optional). An unreachable Redis disables caching only.
	rdb, err := redis.New(ctx, cfg)
	if err != nil {
		log.WithError(err).Warn("Redis unavailable, serving without cache")
		rdb = redis.Disabled()
	}
	defer rdb.Close()
	if rdb.Enabled() {
		deps.Cache = redis.NewCache(rdb, "dayan")
		deps.Limiter = redis.NewRateLimiter(rdb, "dayan")
		deps.Checks["redis"] = rdb
	}

	// 3. Journal store (optional)
	if cfg.Journal.Enabled {
		stack, err := a.openJournal(ctx)
		if err != nil {
			return err
		}
		defer stack.Close()
		deps.Store = stack.store
		deps.Checks["postgres"] = stack.db
		log.Info("Connected to journal database")
	}

	// 4. Metrics
	if cfg.MetricsEnabled {
		deps.Metrics = api.NewMetrics()
	}

	// 5. Create router and server
	server := api.New(cfg, log, api.NewRouter(deps))

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	log.Info("API server started successfully")
	fmt.Fprintf(out, "\n✅ Server running on http://localhost:%s\n", cfg.Port)
	fmt.Fprintln(out, "\nPress Ctrl+C to stop")

	// Wait for interrupt signal or a failed listener
	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("Shutting down server...")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	log.Info("Server stopped")
	return nil
}
