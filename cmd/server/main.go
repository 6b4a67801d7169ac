package main

import (
	"os"
	"time"

	"rosterhub/internal/config"
	"rosterhub/internal/config/firebase"
	"rosterhub/internal/database"
	"rosterhub/internal/logging"
	"rosterhub/internal/server"
	"rosterhub/internal/tasks"
)

func main() {
	// Set development environment variables
	if os.Getenv("ENV") != "production" {
		os.Setenv("ENV", "development")
	}

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	// Configure and get logger
	logging.Configure(&logging.Config{
		Level:      cfg.LogLevel,
		File:       cfg.LogFile,
		MaxSize:    cfg.LogMaxSizeMB,
		MaxBackups: cfg.LogMaxBackups,
		MaxAge:     cfg.LogMaxAgeDays,
	})
	logger := logging.GetLogger()
	defer logger.Close()

	logger.Info("Starting server in %s mode", cfg.Environment)

	// Initialize database connection
	db, err := database.Connect(cfg.DatabaseURL, cfg.Environment != "production")
	if err != nil {
		logger.Error("Failed to connect to database: %v", err)
		os.Exit(1)
	}
	if err := database.Migrate(db); err != nil {
		logger.Error("Failed to run migrations: %v", err)
		os.Exit(1)
	}

	// Initialize Firebase
	if err := firebase.Initialize(cfg.FirebaseCredentialsFile); err != nil {
		logger.Error("Failed to initialize Firebase: %v", err)
		os.Exit(1)
	}

	// Create and wire the server
	srv := server.NewServer(cfg, db, logger)
	if err := srv.Init(); err != nil {
		logger.Error("Failed to initialize server: %v", err)
		os.Exit(1)
	}

	// Background tasks
	eviction := tasks.NewStoreEviction(srv.Manager(), time.Duration(cfg.StoreIdleMinutes)*time.Minute)
	eviction.Start()
	defer eviction.Stop()

	pendingSweep := tasks.NewPendingSweep(db, srv.Hub())
	pendingSweep.Start()
	logger.Info("Started background tasks")

	if err := srv.Start(); err != nil {
		logger.Error("Failed to start server: %v", err)
		os.Exit(1)
	}
}
