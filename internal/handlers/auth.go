package handlers

import (
	"net/http"

	"github.com/emilyand-i/AgileWebGroup82/internal/models"
	"github.com/emilyand-i/AgileWebGroup82/internal/services"
	apperrors "github.com/emilyand-i/AgileWebGroup82/pkg/errors"
	"github.com/labstack/echo/v4"
)

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	accounts *services.AccountService
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(accounts *services.AccountService) *AuthHandler {
	return &AuthHandler{accounts: accounts}
}

// RegisterAuthRoutes registers authentication-related routes
func (h *AuthHandler) RegisterAuthRoutes(g *echo.Group) {
	g.POST("/register", h.Register)
	g.POST("/login", h.Login)
	g.POST("/firebase-login", h.FirebaseLogin)
}

// Register handles local account registration with username, email and password
func (h *AuthHandler) Register(c echo.Context) error {
	var req models.RegisterRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	account, err := h.accounts.Register(c.Request().Context(), req)
	if err != nil {
		return err
	}
	return success(c, http.StatusCreated, account)
}

// Login checks credentials and returns a signed token plus the account
func (h *AuthHandler) Login(c echo.Context) error {
	var req models.LoginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	result, err := h.accounts.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return err
	}
	return ok(c, result)
}

// FirebaseLogin exchanges a Firebase ID token for a local session token
func (h *AuthHandler) FirebaseLogin(c echo.Context) error {
	if !h.accounts.FirebaseEnabled() {
		return apperrors.New(apperrors.KindNotFound, "firebase sign-in is not configured")
	}

	var req models.FirebaseLoginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	result, err := h.accounts.FirebaseLogin(c.Request().Context(), req.IDToken)
	if err != nil {
		return err
	}
	return ok(c, result)
}
