package handlers

import (
	"net/http"

	"github.com/emilyand-i/AgileWebGroup82/internal/models"
	"github.com/emilyand-i/AgileWebGroup82/internal/services"
	"github.com/labstack/echo/v4"
)

// ConnectionHandler handles HTTP requests on the relationship graph
type ConnectionHandler struct {
	relationships *services.RelationshipService
}

// NewConnectionHandler creates a new ConnectionHandler
func NewConnectionHandler(relationships *services.RelationshipService) *ConnectionHandler {
	return &ConnectionHandler{relationships: relationships}
}

// RegisterConnectionRoutes registers connection-related routes
func (h *ConnectionHandler) RegisterConnectionRoutes(g *echo.Group) {
	g.GET("/connections", h.ListConnections)
	g.POST("/connections/request", h.RequestConnection)
	g.POST("/connections/accept", h.AcceptConnection)
	g.POST("/connections/decline", h.DeclineConnection)
	g.POST("/connections/remove", h.RemoveConnection)
}

// RequestConnection sends a connection request to the account named in the body
func (h *ConnectionHandler) RequestConnection(c echo.Context) error {
	accountID, err := requireUserID(c)
	if err != nil {
		return err
	}

	var req models.ConnectionRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	edge, err := h.relationships.Request(c.Request().Context(), accountID, req.Username)
	if err != nil {
		return err
	}
	return success(c, http.StatusCreated, edge)
}

// AcceptConnection accepts a pending request sent to the caller
func (h *ConnectionHandler) AcceptConnection(c echo.Context) error {
	accountID, err := requireUserID(c)
	if err != nil {
		return err
	}

	var req models.ConnectionDecision
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	edge, err := h.relationships.Accept(c.Request().Context(), req.RequesterID, accountID)
	if err != nil {
		return err
	}
	return ok(c, edge)
}

// DeclineConnection drops a pending request sent to the caller
func (h *ConnectionHandler) DeclineConnection(c echo.Context) error {
	accountID, err := requireUserID(c)
	if err != nil {
		return err
	}

	var req models.ConnectionDecision
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	if err := h.relationships.Decline(c.Request().Context(), req.RequesterID, accountID); err != nil {
		return err
	}
	return ok(c, echo.Map{"message": "connection request declined"})
}

// RemoveConnection ends an accepted connection whichever side asked first
func (h *ConnectionHandler) RemoveConnection(c echo.Context) error {
	accountID, err := requireUserID(c)
	if err != nil {
		return err
	}

	var req models.RemoveConnectionRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	if err := h.relationships.Remove(c.Request().Context(), accountID, req.AccountID); err != nil {
		return err
	}
	return ok(c, echo.Map{"message": "connection removed"})
}

// ListConnections returns accepted, pending and sent_pending lists
func (h *ConnectionHandler) ListConnections(c echo.Context) error {
	accountID, err := requireUserID(c)
	if err != nil {
		return err
	}

	connections, err := h.relationships.List(c.Request().Context(), accountID)
	if err != nil {
		return err
	}
	return ok(c, connections)
}
