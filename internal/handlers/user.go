package handlers

import (
	"github.com/emilyand-i/AgileWebGroup82/internal/services"
	"github.com/labstack/echo/v4"
)

// UserHandler serves the signed-in account's own data and account search
type UserHandler struct {
	accounts *services.AccountService
}

func NewUserHandler(accounts *services.AccountService) *UserHandler {
	return &UserHandler{accounts: accounts}
}

func (h *UserHandler) RegisterUserRoutes(g *echo.Group) {
	g.GET("/session", h.GetSession)
	g.GET("/users/search", h.SearchUsers)
}

// GetSession returns account, settings, plants, photos and connections
func (h *UserHandler) GetSession(c echo.Context) error {
	accountID, err := requireUserID(c)
	if err != nil {
		return err
	}

	summary, err := h.accounts.Session(c.Request().Context(), accountID)
	if err != nil {
		return err
	}
	return ok(c, summary)
}

// SearchUsers finds accounts by username substring, leaving out the caller
func (h *UserHandler) SearchUsers(c echo.Context) error {
	accountID, err := requireUserID(c)
	if err != nil {
		return err
	}

	results, err := h.accounts.Search(c.Request().Context(), c.QueryParam("q"), accountID)
	if err != nil {
		return err
	}
	return ok(c, results)
}
