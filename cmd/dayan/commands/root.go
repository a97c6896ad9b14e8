package commands

import (
	"github.com/spf13/cobra"

	"github.com/wonny/dayan/pkg/config"
)

var (
	// Global flags
	env     string
	verbose bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "dayan",
	Short: "大衍历 - Tang Dayan calendar engine",
	Long: `Dayan Unified CLI

唐 大衍历 (一行, 729) 기반 역법 엔진.
통법 3040 분 단위로 절기, 괘기, 이십팔수, 궤루를 계산합니다.

Usage:
  go run ./cmd/dayan [command]

Examples:
  go run ./cmd/dayan report
  go run ./cmd/dayan report --at 2023-12-22T05:27:00+08:00 --json
  go run ./cmd/dayan api --port 8080
  go run ./cmd/dayan journal backfill --from 2024-01-01 --to 2024-01-31`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&env, "env", "", "environment override (development|staging|production)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// loadConfig loads the configuration and applies the global flags
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if env != "" {
		cfg.Env = env
	}
	if verbose {
		cfg.LogLevel = "debug"
	}
	return cfg, nil
}
