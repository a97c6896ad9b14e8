package config_test

import (
	"fmt"

	"github.com/wonny/dayan/pkg/config"
)

// Example demonstrates how to use the config package
func Example() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		return
	}

	// Access configuration values
	fmt.Printf("Server running on port: %s\n", cfg.Port)
	fmt.Printf("Observation site: %s (%.4f, %.4f)\n", cfg.Site.Name, cfg.Site.Latitude, cfg.Site.Longitude)
	fmt.Printf("Timezone: %s\n", cfg.Site.Timezone)
	fmt.Printf("Journal enabled: %v\n", cfg.Journal.Enabled)
}
