package handlers

import (
	"net/http"

	"github.com/emilyand-i/AgileWebGroup82/internal/models"
	"github.com/emilyand-i/AgileWebGroup82/internal/services"
	"github.com/labstack/echo/v4"
)

// PlantHandler handles plant, growth log and photo HTTP requests
type PlantHandler struct {
	content *services.ContentService
}

// NewPlantHandler creates a new PlantHandler
func NewPlantHandler(content *services.ContentService) *PlantHandler {
	return &PlantHandler{content: content}
}

// RegisterPlantRoutes registers plant and photo routes
func (h *PlantHandler) RegisterPlantRoutes(g *echo.Group) {
	g.POST("/plants", h.CreatePlant)
	g.GET("/plants", h.ListPlants)
	g.DELETE("/plants/:id", h.DeletePlant)
	g.POST("/plants/:id/growth", h.AddGrowth)
	g.GET("/plants/:id/growth", h.ListGrowth)
	g.POST("/photos", h.CreatePhoto)
	g.GET("/photos", h.ListPhotos)
}

func (h *PlantHandler) CreatePlant(c echo.Context) error {
	accountID, err := requireUserID(c)
	if err != nil {
		return err
	}

	var req models.CreatePlantRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	plant, err := h.content.CreatePlant(c.Request().Context(), accountID, req)
	if err != nil {
		return err
	}
	return success(c, http.StatusCreated, plant)
}

func (h *PlantHandler) ListPlants(c echo.Context) error {
	accountID, err := requireUserID(c)
	if err != nil {
		return err
	}

	plants, err := h.content.ListPlants(c.Request().Context(), accountID)
	if err != nil {
		return err
	}
	return ok(c, plants)
}

func (h *PlantHandler) DeletePlant(c echo.Context) error {
	accountID, err := requireUserID(c)
	if err != nil {
		return err
	}
	plantID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.content.DeletePlant(c.Request().Context(), accountID, plantID); err != nil {
		return err
	}
	return ok(c, echo.Map{"message": "plant deleted"})
}

func (h *PlantHandler) AddGrowth(c echo.Context) error {
	accountID, err := requireUserID(c)
	if err != nil {
		return err
	}
	plantID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	var req models.CreateGrowthRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	entry, err := h.content.AddGrowth(c.Request().Context(), accountID, plantID, req)
	if err != nil {
		return err
	}
	return success(c, http.StatusCreated, entry)
}

func (h *PlantHandler) ListGrowth(c echo.Context) error {
	accountID, err := requireUserID(c)
	if err != nil {
		return err
	}
	plantID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	entries, err := h.content.ListGrowth(c.Request().Context(), accountID, plantID)
	if err != nil {
		return err
	}
	return ok(c, entries)
}

// CreatePhoto registers an uploaded image URL against one of the caller's plants
func (h *PlantHandler) CreatePhoto(c echo.Context) error {
	accountID, err := requireUserID(c)
	if err != nil {
		return err
	}

	var req models.CreatePhotoRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	photo, err := h.content.CreatePhoto(c.Request().Context(), accountID, req)
	if err != nil {
		return err
	}
	return success(c, http.StatusCreated, photo)
}

func (h *PlantHandler) ListPhotos(c echo.Context) error {
	accountID, err := requireUserID(c)
	if err != nil {
		return err
	}

	photos, err := h.content.ListPhotos(c.Request().Context(), accountID)
	if err != nil {
		return err
	}
	return ok(c, photos)
}
