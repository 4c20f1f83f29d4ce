package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/emilyand-i/AgileWebGroup82/internal/app"
	"github.com/emilyand-i/AgileWebGroup82/internal/middleware"
	"github.com/emilyand-i/AgileWebGroup82/pkg/config"
	"github.com/emilyand-i/AgileWebGroup82/pkg/firebase"
	"github.com/emilyand-i/AgileWebGroup82/pkg/logger"
)

func main() {
	// Load configuration
	cfg := config.Load()
	logger.Init(cfg.Env, cfg.LogLevel)
	defer logger.Sync()

	if err := cfg.Validate(); err != nil {
		logger.Fatal("Invalid configuration", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize database connections
	db, err := config.InitDB(cfg)
	if err != nil {
		logger.Fatal("Failed to initialize databases", err)
	}
	defer db.CloseDB()

	if err := config.AutoMigrate(db.SQL); err != nil {
		logger.Fatal("Failed to migrate database", err)
	}

	// Firebase is optional
	var verifier middleware.IDTokenVerifier
	firebaseApp, err := firebase.InitFirebase(ctx, cfg.FirebaseCredentialsPath)
	if err != nil {
		logger.Fatal("Failed to initialize Firebase", err)
	}
	if firebaseApp != nil {
		verifier = firebaseApp.AuthClient
	}

	application, err := app.New(ctx, cfg, db, verifier)
	if err != nil {
		logger.Fatal("Failed to build application", err)
	}

	if err := application.Start(ctx); err != nil {
		logger.Error("Server stopped with error", "error", err)
		return
	}
	logger.Info("Server stopped")
}
