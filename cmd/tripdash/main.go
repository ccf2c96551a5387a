package main

import (
	"context"
	"flag"
	"os"

	"github.com/citydash/tripdash/config"
	"github.com/citydash/tripdash/internal/app"
	"github.com/citydash/tripdash/pkg/logger"

	_ "github.com/citydash/tripdash/docs"
)

var (
	helpFlag   = flag.Bool("help", false, "Show help message")
	configPath = flag.String("config-path", "config.yaml", "Path to the config yaml file")
)

func main() {
	flag.Parse()
	if *helpFlag {
		config.PrintHelp()
		return
	}

	ctx := context.Background()
	log := logger.InitLogger("", logger.LevelDebug)

	cfg, err := config.NewConfig(*configPath)
	if err != nil {
		log.Error(ctx, "failed to configure application", err)
		config.PrintHelp()
		return
	}

	// Printing configuration
	config.PrintConfig(cfg)

	if logger.ValidateLogLevel(cfg.Logging.Level) {
		log = logger.InitLogger("tripdash", cfg.Logging.Level)
	}

	// Creating application
	app, err := app.New(ctx, *cfg, log)
	if err != nil {
		log.Error(ctx, "failed to init application", err)
		os.Exit(1)
	}

	// Running the application
	if err = app.Start(ctx); err != nil {
		log.Error(ctx, "failed to run application", err)
		os.Exit(1)
	}
}
