package config

import (
	"flag"
	"fmt"
)

const HelpMessage = `tripdash - trip analytics dashboard service

Usage:
  tripdash [-config-path config.yaml]

Configuration is read from the YAML file and may be overridden through
environment variables (see config.Config tags). The dashboard password is
taken from AUTH_DASHBOARD_SECRET; when it is unset every login is denied.
`

func PrintHelp() {
	if HelpMessage != "" {
		fmt.Printf("%s", HelpMessage)
	} else {
		flag.Usage()
	}
}

// PrintConfig prints the effective non-secret configuration at startup.
func PrintConfig(cfg *Config) {
	fmt.Printf("server: %s\n", cfg.Server.Addr())
	fmt.Printf("dataset source: %s\n", cfg.Dataset.Source)
	if cfg.Dataset.SourceType() == "file" || cfg.Dataset.Source == "" {
		fmt.Printf("dataset path: %s\n", cfg.Dataset.Path)
	} else {
		fmt.Printf("dataset table: %s\n", cfg.Dataset.Table)
	}
	fmt.Printf("log level: %s\n", cfg.Logging.Level)
}
