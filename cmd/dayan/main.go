package main

import (
	"os"
	_ "time/tzdata"

	"github.com/wonny/dayan/cmd/dayan/commands"
)

// main is the entry point for the Dayan CLI
// ⭐ 통합 CLI 진입점: go run ./cmd/dayan [command]
func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
