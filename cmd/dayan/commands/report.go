package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

// reportCmd represents the report command
var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "리포트 계산",
	Long: `지정 시각의 大衍历 리포트를 계산합니다.

--at 을 생략하면 현재 시각을 사용합니다. 오프셋이 없는 시각은
설정된 시간대 (DAYAN_TIMEZONE) 기준으로 해석합니다.

Example:
  go run ./cmd/dayan report
  go run ./cmd/dayan report --at 2023-12-22T05:27:00+08:00
  go run ./cmd/dayan report --at "2023-12-22 05:27" --json`,
	RunE: runReport,
}

var (
	reportAt   string
	reportJSON bool
)

func init() {
	rootCmd.AddCommand(reportCmd)

	// Flags
	reportCmd.Flags().StringVar(&reportAt, "at", "", "instant (RFC3339, or local \"2006-01-02 15:04[:05]\")")
	reportCmd.Flags().BoolVar(&reportJSON, "json", false, "JSON 출력")
}

func runReport(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}

	at := time.Now()
	if reportAt != "" {
		if at, err = parseInstant(reportAt, a.engine.Location()); err != nil {
			return err
		}
	}

	report := a.engine.Compute(at)
	out := cmd.OutOrStdout()
	if reportJSON {
		return printJSON(out, report)
	}
	renderReport(out, report)
	return nil
}

// localLayouts are accepted in addition to RFC3339, read in the engine timezone
var localLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

func parseInstant(s string, loc *time.Location) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid instant %q: use RFC3339 or \"2006-01-02 15:04\"", s)
}
