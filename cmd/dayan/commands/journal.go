package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/wonny/dayan/internal/journal"
)

// journalCmd represents the journal command
var journalCmd = &cobra.Command{
	Use:   "journal",
	Short: "太史监 저널 관리",
	Long: `Postgres 저널 (dayan_journal) 을 관리합니다.

Subcommands:
  backfill  - 기간 내 리포트 일괄 기록
  show      - 특정 일자 저널 조회
  ping      - 데이터베이스 연결 확인

Example:
  go run ./cmd/dayan journal backfill --from 2024-01-01 --to 2024-01-31 --step 1h
  go run ./cmd/dayan journal show --date 2024-01-15
  go run ./cmd/dayan journal ping`,
}

var (
	backfillFrom    string
	backfillTo      string
	backfillStep    time.Duration
	backfillWorkers int
	showDate        string

	journalBackfillCmd = &cobra.Command{
		Use:   "backfill",
		Short: "기간 내 리포트 일괄 기록",
		RunE:  runBackfill,
	}

	journalShowCmd = &cobra.Command{
		Use:   "show",
		Short: "특정 일자 저널 조회",
		RunE:  runJournalShow,
	}

	journalPingCmd = &cobra.Command{
		Use:   "ping",
		Short: "데이터베이스 연결 확인",
		RunE:  runJournalPing,
	}
)

func init() {
	rootCmd.AddCommand(journalCmd)
	journalCmd.AddCommand(journalBackfillCmd)
	journalCmd.AddCommand(journalShowCmd)
	journalCmd.AddCommand(journalPingCmd)

	journalBackfillCmd.Flags().StringVar(&backfillFrom, "from", "", "시작 (YYYY-MM-DD or RFC3339)")
	journalBackfillCmd.Flags().StringVar(&backfillTo, "to", "", "종료, 포함 (YYYY-MM-DD or RFC3339)")
	journalBackfillCmd.Flags().DurationVar(&backfillStep, "step", time.Hour, "기록 간격")
	journalBackfillCmd.Flags().IntVar(&backfillWorkers, "workers", 0, "동시 기록 수 (default JOURNAL_WORKERS)")
	journalBackfillCmd.MarkFlagRequired("from")
	journalBackfillCmd.MarkFlagRequired("to")

	journalShowCmd.Flags().StringVar(&showDate, "date", "", "조회 일자 (YYYY-MM-DD, default today)")
}

func runBackfill(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	loc := a.engine.Location()

	from, err := parseInstant(backfillFrom, loc)
	if err != nil {
		return fmt.Errorf("--from: %w", err)
	}
	to, err := parseInstant(backfillTo, loc)
	if err != nil {
		return fmt.Errorf("--to: %w", err)
	}
	// a bare date as --to covers that whole day
	if len(backfillTo) == len("2006-01-02") {
		to = to.AddDate(0, 0, 1).Add(-time.Nanosecond)
	}

	workers := backfillWorkers
	if workers <= 0 {
		workers = a.cfg.Journal.Workers
	}

	ctx := cmd.Context()
	stack, err := a.openJournal(ctx)
	if err != nil {
		return err
	}
	defer stack.Close()

	out := cmd.OutOrStdout()
	printHeader(out, "Journal Backfill")
	printKeyValue(out, "Period", fmt.Sprintf("%s ~ %s", from.Format(time.RFC3339), to.Format(time.RFC3339)))
	printKeyValue(out, "Step", backfillStep.String())
	printKeyValue(out, "Workers", fmt.Sprintf("%d", workers))
	fmt.Fprintln(out, separator)

	start := time.Now()
	n, err := stack.recorder.Backfill(ctx, journal.BackfillRequest{
		From:    from,
		To:      to,
		Step:    backfillStep,
		Workers: workers,
	})
	if err != nil {
		printWarning(out, fmt.Sprintf("Backfill stopped after %d reports", n))
		return err
	}

	printSuccess(out, fmt.Sprintf("%d reports recorded in %.2fs", n, time.Since(start).Seconds()))
	return nil
}

func runJournalShow(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	loc := a.engine.Location()

	day := time.Now().In(loc)
	if showDate != "" {
		if day, err = time.ParseInLocation("2006-01-02", showDate, loc); err != nil {
			return fmt.Errorf("--date: expected YYYY-MM-DD: %w", err)
		}
	}

	ctx := cmd.Context()
	stack, err := a.openJournal(ctx)
	if err != nil {
		return err
	}
	defer stack.Close()

	entries, err := stack.store.ByDate(ctx, day)
	if err != nil {
		return fmt.Errorf("load journal: %w", err)
	}

	out := cmd.OutOrStdout()
	printHeader(out, fmt.Sprintf("太史监 Journal · %s", day.Format("2006-01-02")))
	printEntries(out, entries, loc)
	return nil
}

func runJournalPing(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
	defer cancel()

	stack, err := a.openJournal(ctx)
	if err != nil {
		return err
	}
	defer stack.Close()

	status, err := stack.db.HealthCheck(ctx)
	if err != nil {
		return fmt.Errorf("health check: %w", err)
	}

	out := cmd.OutOrStdout()
	printSuccess(out, "Database reachable")
	printKeyValue(out, "Latency", status.ResponseTime.String())
	printKeyValue(out, "Conns", fmt.Sprintf("%d total / %d idle / %d max", status.Stats.TotalConns, status.Stats.IdleConns, status.Stats.MaxConns))
	return nil
}
