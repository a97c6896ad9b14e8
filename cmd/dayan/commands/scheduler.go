package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/wonny/dayan/internal/scheduler"
	"github.com/wonny/dayan/internal/scheduler/jobs"
	"github.com/wonny/dayan/pkg/redis"
)

// schedulerCmd represents the scheduler command
var schedulerCmd = &cobra.Command{
	Use:   "scheduler",
	Short: "스케줄러 관리",
	Long: `스케줄러를 시작하거나 작업을 관리합니다.

Subcommands:
  start   - 스케줄러 시작
  list    - 등록된 작업 목록
  run     - 특정 작업 즉시 실행
  status  - 작업 실행 상태 조회

Example:
  go run ./cmd/dayan scheduler start
  go run ./cmd/dayan scheduler list
  go run ./cmd/dayan scheduler run journal`,
}

var (
	schedulerStartCmd = &cobra.Command{
		Use:   "start",
		Short: "스케줄러 시작",
		Long: `스케줄러를 시작하고 등록된 모든 작업을 스케줄합니다.

등록되는 작업:
- journal: JOURNAL_SCHEDULE (기본 매시 정각, 太史监 저널 기록)
- cache_warm: 매시 50분 (다음 정각 리포트 캐시, REDIS_ENABLED)

스케줄러는 Ctrl+C로 종료할 수 있습니다.`,
		RunE: runScheduler,
	}

	schedulerListCmd = &cobra.Command{
		Use:   "list",
		Short: "등록된 작업 목록",
		RunE:  listJobs,
	}

	schedulerRunCmd = &cobra.Command{
		Use:   "run [job_name]",
		Short: "특정 작업 즉시 실행",
		Args:  cobra.ExactArgs(1),
		RunE:  runJob,
	}

	schedulerStatusCmd = &cobra.Command{
		Use:   "status",
		Short: "작업 실행 상태 조회",
		RunE:  showStatus,
	}
)

func init() {
	rootCmd.AddCommand(schedulerCmd)
	schedulerCmd.AddCommand(schedulerStartCmd)
	schedulerCmd.AddCommand(schedulerListCmd)
	schedulerCmd.AddCommand(schedulerRunCmd)
	schedulerCmd.AddCommand(schedulerStatusCmd)
}

func runScheduler(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "=== Dayan Scheduler ===")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sched, cleanup, err := initScheduler(ctx)
	if err != nil {
		return fmt.Errorf("init scheduler: %w", err)
	}
	defer cleanup()

	sched.Start()

	printSuccess(out, "Scheduler started successfully")
	fmt.Fprintln(out, "\nRegistered jobs:")
	for _, name := range sched.GetAllJobs() {
		next, _ := sched.Next(name)
		fmt.Fprintf(out, "  - %s (next %s)\n", name, next.Format("2006-01-02 15:04:05"))
	}
	fmt.Fprintln(out, "\nPress Ctrl+C to stop")

	<-ctx.Done()

	fmt.Fprintln(out, "\nShutting down scheduler...")
	sched.Stop()
	fmt.Fprintln(out, "Scheduler stopped")
	return nil
}

func listJobs(cmd *cobra.Command, args []string) error {
	sched, cleanup, err := initScheduler(cmd.Context())
	if err != nil {
		return fmt.Errorf("init scheduler: %w", err)
	}
	defer cleanup()

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Registered jobs:")
	for _, name := range sched.GetAllJobs() {
		fmt.Fprintf(out, "  - %s\n", name)
	}
	return nil
}

func runJob(cmd *cobra.Command, args []string) error {
	jobName := args[0]
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Running job: %s\n", jobName)

	sched, cleanup, err := initScheduler(cmd.Context())
	if err != nil {
		return fmt.Errorf("init scheduler: %w", err)
	}
	defer cleanup()

	// a one-shot process waits for the result instead of detaching
	result, err := sched.RunJobSync(jobName)
	if err != nil {
		return fmt.Errorf("run job: %w", err)
	}
	if !result.Success {
		return fmt.Errorf("job %s failed: %s", jobName, result.Error)
	}

	printSuccess(out, fmt.Sprintf("Job %s completed in %.2fs", jobName, result.Duration.Seconds()))
	return nil
}

func showStatus(cmd *cobra.Command, args []string) error {
	sched, cleanup, err := initScheduler(cmd.Context())
	if err != nil {
		return fmt.Errorf("init scheduler: %w", err)
	}
	defer cleanup()

	out := cmd.OutOrStdout()
	stats := sched.GetJobStats()

	fmt.Fprintln(out, "Job Statistics:")
	fmt.Fprintln(out)

	for _, name := range sched.GetAllJobs() {
		stat := stats[name]
		fmt.Fprintf(out, "📊 %s\n", name)
		printKeyValue(out, "Schedule", stat.Schedule)
		if next, err := sched.Next(name); err == nil && !next.IsZero() {
			printKeyValue(out, "Next Run", next.Format("2006-01-02 15:04:05"))
		}
		printKeyValue(out, "Total Runs", fmt.Sprintf("%d", stat.TotalRuns))
		printKeyValue(out, "Success", fmt.Sprintf("%d (%.1f%%)", stat.SuccessCount, stat.SuccessRate*100))
		printKeyValue(out, "Failures", fmt.Sprintf("%d", stat.FailureCount))

		if stat.LastRun != nil {
			printKeyValue(out, "Last Run", stat.LastRun.Format("2006-01-02 15:04:05"))
		}
		fmt.Fprintln(out)
	}
	return nil
}

// initScheduler registers the jobs the configuration enables.
// The returned cleanup closes every opened connection.
func initScheduler(ctx context.Context) (*scheduler.Scheduler, func(), error) {
	if ctx == nil {
		ctx = context.Background()
	}
	a, err := newApp()
	if err != nil {
		return nil, nil, err
	}

	cleanups := []func(){}
	cleanup := func() {
		for i := len(cleanups) - 1; i >= 0; i-- {
			cleanups[i]()
		}
	}

	sched := scheduler.New(a.log, a.engine.Location())

	if a.cfg.Journal.Enabled {
		stack, err := a.openJournal(ctx)
		if err != nil {
			cleanup()
			return nil, nil, err
		}
		cleanups = append(cleanups, stack.Close)

		job := jobs.NewJournalJob(stack.recorder, a.cfg.Journal.Schedule, a.log)
		if err := sched.AddJob(job); err != nil {
			cleanup()
			return nil, nil, err
		}
	} else {
		a.log.Info("Journal disabled (JOURNAL_ENABLED=false), journal job not registered")
	}

	if a.cfg.Redis.Enabled {
		rdb, err := redis.New(ctx, a.cfg)
		if err != nil {
			a.log.WithError(err).Warn("Redis unavailable, cache_warm not registered")
		} else {
			cleanups = append(cleanups, func() { _ = rdb.Close() })
			job := jobs.NewCacheWarmJob(a.engine, redis.NewCache(rdb, "dayan"), a.cfg.API.CacheTTL, 1, a.log)
			if err := sched.AddJob(job); err != nil {
				cleanup()
				return nil, nil, err
			}
		}
	}

	return sched, cleanup, nil
}
