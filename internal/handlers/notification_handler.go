package handlers

import (
	"github.com/emilyand-i/AgileWebGroup82/internal/realtime"
	"github.com/emilyand-i/AgileWebGroup82/internal/services"
	"github.com/labstack/echo/v4"
)

// NotificationStreamPath is the websocket route, relative to the API group.
const NotificationStreamPath = "/notifications/stream"

// NotificationHandler handles notification-related HTTP requests
type NotificationHandler struct {
	notifications *services.NotificationService
	hub           *realtime.Hub
}

// NewNotificationHandler creates a new NotificationHandler
func NewNotificationHandler(notifications *services.NotificationService, hub *realtime.Hub) *NotificationHandler {
	return &NotificationHandler{
		notifications: notifications,
		hub:           hub,
	}
}

// RegisterNotificationRoutes registers notification routes
func (h *NotificationHandler) RegisterNotificationRoutes(g *echo.Group) {
	g.GET("/notifications", h.GetNotifications)
	g.GET("/notifications/unread-count", h.GetUnreadCount)
	g.POST("/notifications/read-all", h.MarkAllAsRead)
	g.POST("/notifications/:id/read", h.MarkAsRead)
	if h.hub != nil {
		g.GET(NotificationStreamPath, h.Stream)
	}
}

// GetNotifications returns one newest-first page; pass next_cursor back as ?before=
func (h *NotificationHandler) GetNotifications(c echo.Context) error {
	accountID, err := requireUserID(c)
	if err != nil {
		return err
	}
	before, err := queryUint(c, "before")
	if err != nil {
		return err
	}
	limit, err := queryInt(c, "limit")
	if err != nil {
		return err
	}

	page, err := h.notifications.ListFor(c.Request().Context(), accountID, before, limit)
	if err != nil {
		return err
	}
	return ok(c, page)
}

// GetUnreadCount returns the count of unread notifications
func (h *NotificationHandler) GetUnreadCount(c echo.Context) error {
	accountID, err := requireUserID(c)
	if err != nil {
		return err
	}

	count, err := h.notifications.UnreadCount(c.Request().Context(), accountID)
	if err != nil {
		return err
	}
	return ok(c, echo.Map{"unread_count": count})
}

// MarkAsRead marks one of the caller's notifications as read
func (h *NotificationHandler) MarkAsRead(c echo.Context) error {
	accountID, err := requireUserID(c)
	if err != nil {
		return err
	}
	notificationID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.notifications.MarkRead(c.Request().Context(), notificationID, accountID); err != nil {
		return err
	}
	return ok(c, echo.Map{"message": "notification marked as read"})
}

// MarkAllAsRead marks all notifications as read
func (h *NotificationHandler) MarkAllAsRead(c echo.Context) error {
	accountID, err := requireUserID(c)
	if err != nil {
		return err
	}

	updated, err := h.notifications.MarkAllRead(c.Request().Context(), accountID)
	if err != nil {
		return err
	}
	return ok(c, echo.Map{"updated": updated})
}

// Stream upgrades to a websocket that receives new notifications as they are recorded
func (h *NotificationHandler) Stream(c echo.Context) error {
	accountID, err := requireUserID(c)
	if err != nil {
		return err
	}
	return h.hub.ServeWS(c.Response(), c.Request(), accountID)
}
