package router

import (
	"github.com/emilyand-i/AgileWebGroup82/internal/handlers"
	"github.com/emilyand-i/AgileWebGroup82/internal/middleware"
	"github.com/emilyand-i/AgileWebGroup82/internal/realtime"
	"github.com/emilyand-i/AgileWebGroup82/internal/security"
	"github.com/emilyand-i/AgileWebGroup82/internal/services"
	"github.com/emilyand-i/AgileWebGroup82/pkg/logger"
	"github.com/emilyand-i/AgileWebGroup82/validators"
	"github.com/labstack/echo/v4"
)

const apiPrefix = "/api/v1"

// Dependencies are the wired services the HTTP layer talks to.
type Dependencies struct {
	Accounts      *services.AccountService
	Relationships *services.RelationshipService
	Visibility    *services.VisibilityService
	Notifications *services.NotificationService
	Feed          *services.FeedService
	Content       *services.ContentService
	Tokens        *security.TokenIssuer

	// Optional
	Firebase middleware.IDTokenVerifier
	Hub      *realtime.Hub
	Pinger   func() error
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, deps Dependencies) {
	e.HTTPErrorHandler = handlers.HTTPErrorHandler
	e.Validator = validators.NewValidator()

	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck(deps.Pinger))

	authHandler := handlers.NewAuthHandler(deps.Accounts)
	feedHandler := handlers.NewFeedHandler(deps.Feed)

	// --- Unprotected routes ---
	authGroup := e.Group(apiPrefix + "/auth")
	authHandler.RegisterAuthRoutes(authGroup)

	public := e.Group(apiPrefix)
	feedHandler.RegisterPublicFeedRoutes(public)

	// --- Protected routes (require a session token) ---
	resolvers := []middleware.IdentityResolver{middleware.JWTResolver(deps.Tokens)}
	if deps.Firebase != nil {
		resolvers = append(resolvers, middleware.FirebaseResolver(deps.Firebase, deps.Accounts))
	}
	api := e.Group(apiPrefix)
	api.Use(middleware.JWTAuthMiddlewareWithConfig(middleware.AuthConfig{
		Resolvers:       resolvers,
		QueryTokenPaths: []string{apiPrefix + handlers.NotificationStreamPath},
	}))

	handlers.NewUserHandler(deps.Accounts).RegisterUserRoutes(api)
	handlers.NewConnectionHandler(deps.Relationships).RegisterConnectionRoutes(api)
	feedHandler.RegisterFeedRoutes(api)
	handlers.NewNotificationHandler(deps.Notifications, deps.Hub).RegisterNotificationRoutes(api)
	handlers.NewSettingsHandler(deps.Visibility).RegisterSettingsRoutes(api)
	handlers.NewPlantHandler(deps.Content).RegisterPlantRoutes(api)

	logger.Info("Routes configured",
		"firebase", deps.Firebase != nil,
		"realtime", deps.Hub != nil,
	)
}
