package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/faycalhabibahmatalbachar/gba-sub001/internal/infrastructure/config"
	"github.com/faycalhabibahmatalbachar/gba-sub001/internal/infrastructure/logger"
	"github.com/faycalhabibahmatalbachar/gba-sub001/internal/infrastructure/persistence"
)

func main() {
	// Parse flags
	var logLevel string
	flag.StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		printUsage()
		os.Exit(1)
	}
	command := args[0]

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:      logLevel,
		Format:     "console",
		Output:     "stdout",
		TimeFormat: "2006-01-02 15:04:05",
	}, "gba-migrate")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = log.Sync()
	}()

	if command != "up" && command != "status" {
		printUsage()
		os.Exit(1)
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration", zap.Error(err))
	}

	db, err := persistence.NewDatabase(&cfg.Database,
		persistence.WithLogger(logger.NewGormLogger(log, logger.MapGormLogLevel(logLevel))),
	)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		_ = db.Close()
	}()

	log.Info("Migration CLI started", zap.String("command", command))

	switch command {
	case "up":
		if err := persistence.AutoMigrate(db.DB); err != nil {
			log.Fatal("Migration up failed", zap.Error(err))
		}
		log.Info("Schema is up to date")

	case "status":
		missing := 0
		for _, table := range persistence.SchemaStatus(db.DB) {
			if table.Exists {
				log.Info("Table present", zap.String("table", table.Table))
				continue
			}
			missing++
			log.Warn("Table missing", zap.String("table", table.Table))
		}
		if missing > 0 {
			log.Warn("Schema incomplete; run 'migrate up'", zap.Int("missing", missing))
		}
	}
}

func printUsage() {
	fmt.Println(`GBA Database Migration Tool

Usage:
  migrate [flags] <command>

Commands:
  up        Create missing tables and columns (never drops anything)
  status    Report which tables exist

Flags:
  -log-level string   Log level (debug, info, warn, error) (default "info")

Examples:
  migrate status
  migrate -log-level debug up`)
}
