package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"go.uber.org/zap"

	"github.com/medtrack/medtrack/internal/app"
	"github.com/medtrack/medtrack/internal/config"
	"github.com/medtrack/medtrack/internal/store"
	"github.com/medtrack/medtrack/internal/tracker"
)

var (
	configPath = flag.String("config", "", "Path to config file")
	dataDir    = flag.String("data", "", "Path to data directory")
	production = flag.Bool("production", false, "Use production logging")
	version    = "dev"
)

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "version", "--version", "-v":
			fmt.Printf("medtrackd version %s\n", version)
			return
		}
	}

	flag.Parse()

	logger, err := newLogger()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	logger.Info("Starting medtrackd", zap.String("version", version))

	cfg, err := config.Load(*configPath, *dataDir)
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}

	st, err := store.Open(cfg.Storage.BadgerPath, logger)
	if err != nil {
		logger.Fatal("Failed to open store", zap.Error(err))
	}

	tr := tracker.New(st, logger, tracker.Options{
		ReminderHorizonMinutes: cfg.Tracker.ReminderHorizonMinutes,
	})
	if err := tr.Load(); err != nil {
		logger.Fatal("Failed to load tracker state", zap.Error(err))
	}

	application := app.New(cfg, st, tr, logger, version)
	application.RunServer()
}

func newLogger() (*zap.Logger, error) {
	if *production {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
