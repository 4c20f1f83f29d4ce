// Package app assembles repositories, services and the HTTP server.
package app

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/emilyand-i/AgileWebGroup82/internal/middleware"
	"github.com/emilyand-i/AgileWebGroup82/internal/realtime"
	"github.com/emilyand-i/AgileWebGroup82/internal/repositories"
	"github.com/emilyand-i/AgileWebGroup82/internal/router"
	"github.com/emilyand-i/AgileWebGroup82/internal/security"
	"github.com/emilyand-i/AgileWebGroup82/internal/services"
	"github.com/emilyand-i/AgileWebGroup82/pkg/config"
	"github.com/emilyand-i/AgileWebGroup82/pkg/logger"
	"github.com/labstack/echo/v4"
	"golang.org/x/sync/errgroup"
)

type App struct {
	Echo *echo.Echo
	Hub  *realtime.Hub

	cfg    *config.Config
	cancel context.CancelFunc
	group  *errgroup.Group
}

// New wires every layer against db. verifier may be nil when Firebase is off.
func New(ctx context.Context, cfg *config.Config, db *config.DB, verifier middleware.IDTokenVerifier) (*App, error) {
	accountRepo := repositories.NewPostgresAccountRepository(db.SQL)
	plantRepo := repositories.NewPostgresPlantRepository(db.SQL)

	var photoRepo repositories.PhotoRepository
	if db.Mongo != nil {
		mongoPhotos := repositories.NewMongoPhotoRepository(db.Mongo.Database(cfg.MongoDatabase))
		if err := mongoPhotos.EnsureIndexes(ctx); err != nil {
			return nil, err
		}
		photoRepo = mongoPhotos
	} else {
		photoRepo = repositories.NewSQLPhotoRepository(db.SQL)
	}

	hub := realtime.NewHub().WithAllowedOrigins(cfg.AllowedOrigins())
	tokens := security.NewTokenIssuer(cfg.JWTSecret, time.Duration(cfg.TokenTTLHours)*time.Hour)

	visibility := services.NewVisibilityService(repositories.NewPostgresVisibilityRepository(db.SQL))
	relationships := services.NewRelationshipService(
		repositories.NewPostgresRelationshipRepository(db.SQL), accountRepo, visibility)
	notifications := services.NewNotificationService(
		db.SQL, repositories.NewPostgresNotificationRepository(db.SQL), accountRepo, hub)
	content := services.NewContentService(plantRepo, photoRepo)
	feed := services.NewFeedService(db.SQL, photoRepo, plantRepo,
		repositories.NewPostgresShareRepository(db.SQL),
		accountRepo, relationships, visibility, notifications,
	).WithDefaultLimit(cfg.DefaultFeedLimit)
	accounts := services.NewAccountService(accountRepo, tokens, visibility, relationships, content)
	if verifier != nil {
		accounts.WithFirebase(verifier)
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	config.SetupMiddleware(e, cfg)
	router.SetupRoutes(e, router.Dependencies{
		Accounts:      accounts,
		Relationships: relationships,
		Visibility:    visibility,
		Notifications: notifications,
		Feed:          feed,
		Content:       content,
		Tokens:        tokens,
		Firebase:      verifier,
		Hub:           hub,
		Pinger:        pinger(db),
	})

	return &App{Echo: e, Hub: hub, cfg: cfg}, nil
}

// Start runs the realtime hub and the HTTP server until Shutdown or ctx ends.
func (a *App) Start(ctx context.Context) error {
	ctx, a.cancel = context.WithCancel(ctx)
	a.group, ctx = errgroup.WithContext(ctx)

	a.group.Go(func() error {
		a.Hub.Run(ctx)
		return nil
	})
	a.group.Go(func() error {
		logger.Info("Server starting", "port", a.cfg.Port)
		if err := a.Echo.Start(":" + a.cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	a.group.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return a.Echo.Shutdown(shutdownCtx)
	})

	return a.group.Wait()
}

// Shutdown stops the server and the hub started by Start.
func (a *App) Shutdown() {
	if a.cancel != nil {
		a.cancel()
	}
}

func pinger(db *config.DB) func() error {
	return func() error {
		sqlDB, err := db.SQL.DB()
		if err != nil {
			return err
		}
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := sqlDB.PingContext(ctx); err != nil {
			return err
		}
		if db.Mongo != nil {
			return db.Mongo.Ping(ctx, nil)
		}
		return nil
	}
}
