package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"options-observer/src/analysis"
	"options-observer/src/config"
	"options-observer/src/data_source/tradier"
	"options-observer/src/interfaces"
	"options-observer/src/logger"
	"options-observer/src/network"
	"options-observer/src/server"
	"options-observer/src/storage"

	"github.com/joho/godotenv"
)

// -----------------------------------------------------------------------------

func main() {

	// Parse command line flags
	configPath := flag.String("config", "config/default.yaml", "path to config file")
	flag.Parse()

	// Load .env before reading the environment; absence of the file is fine
	_ = godotenv.Load()

	// Load config from YAML file. A missing API token fails here, before
	// any listener binds.
	config, err := config.NewConfig(*configPath)
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}

	// Setup logger
	appLogger := logger.NewLogger(config.LogLevel, config.Name)

	// Setup request journal
	var db interfaces.IDatabase

	switch config.Storage.DBType {
	case "postgres":
		db, err = storage.NewPostgresDB(config.MConfig, appLogger)
	default:
		// Default to SQLite
		db, err = storage.NewSQLiteDB(config.MConfig, appLogger)
	}

	if err != nil {
		appLogger.Critical("Failed to init db: %v", err)
	}
	if err := db.Initialize(); err != nil {
		appLogger.Critical("Failed to migrate db: %v", err)
	}
	defer db.Close()

	// Setup upstream access
	netManager := network.NewAuthNetworkManager(config.MConfig, appLogger)
	var source interfaces.IQuoteSource = tradier.NewTradierSource(config.MConfig, netManager)

	analyzer := analysis.NewAnalysisFacade(config.MConfig, appLogger)
	srv := server.NewOptionsServer(config.MConfig, appLogger, source, analyzer, db)

	// Journal retention: sweep at startup, then daily
	if err := db.CleanupOldData(); err != nil {
		appLogger.Warning("Initial journal cleanup failed: %v", err)
	}
	go func() {
		ticker := time.NewTicker(24 * time.Hour)
		defer ticker.Stop()
		for range ticker.C {
			if err := db.CleanupOldData(); err != nil {
				appLogger.Warning("Journal cleanup failed: %v", err)
			}
		}
	}()

	// Start Server
	go func() {
		if err := srv.Start(); err != nil {
			appLogger.Critical("Server failed: %v", err)
		}
	}()

	appLogger.Info("Options observer started (source: %s)", source.Name())

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down...")
	srv.Stop()
}
