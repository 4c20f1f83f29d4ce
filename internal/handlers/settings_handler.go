package handlers

import (
	"github.com/emilyand-i/AgileWebGroup82/internal/models"
	"github.com/emilyand-i/AgileWebGroup82/internal/services"
	"github.com/labstack/echo/v4"
)

// SettingsHandler exposes the caller's visibility policy and display preference
type SettingsHandler struct {
	visibility *services.VisibilityService
}

func NewSettingsHandler(visibility *services.VisibilityService) *SettingsHandler {
	return &SettingsHandler{visibility: visibility}
}

func (h *SettingsHandler) RegisterSettingsRoutes(g *echo.Group) {
	g.GET("/settings", h.GetSettings)
	g.PUT("/settings", h.UpdateSettings)
}

func (h *SettingsHandler) GetSettings(c echo.Context) error {
	accountID, err := requireUserID(c)
	if err != nil {
		return err
	}

	policy, err := h.visibility.Get(c.Request().Context(), accountID)
	if err != nil {
		return err
	}
	return ok(c, policy)
}

// UpdateSettings changes only the fields present in the body
func (h *SettingsHandler) UpdateSettings(c echo.Context) error {
	accountID, err := requireUserID(c)
	if err != nil {
		return err
	}

	var req models.PolicyUpdate
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	policy, err := h.visibility.Set(c.Request().Context(), accountID, req)
	if err != nil {
		return err
	}
	return ok(c, policy)
}
