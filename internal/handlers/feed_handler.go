package handlers

import (
	"github.com/emilyand-i/AgileWebGroup82/internal/models"
	"github.com/emilyand-i/AgileWebGroup82/internal/services"
	"github.com/labstack/echo/v4"
)

// FeedHandler handles feed and sharing HTTP requests
type FeedHandler struct {
	feed *services.FeedService
}

// NewFeedHandler creates a new FeedHandler
func NewFeedHandler(feed *services.FeedService) *FeedHandler {
	return &FeedHandler{feed: feed}
}

// RegisterPublicFeedRoutes registers routes reachable without signing in
func (h *FeedHandler) RegisterPublicFeedRoutes(g *echo.Group) {
	g.GET("/feed/public", h.GetPublicFeed)
}

// RegisterFeedRoutes registers feed routes that need an account
func (h *FeedHandler) RegisterFeedRoutes(g *echo.Group) {
	g.GET("/feed/friends", h.GetFriendFeed)
	g.POST("/content/share", h.ShareContent)
}

// GetPublicFeed returns the newest photos from public profiles
func (h *FeedHandler) GetPublicFeed(c echo.Context) error {
	limit, err := queryInt(c, "limit")
	if err != nil {
		return err
	}

	items, err := h.feed.PublicFeed(c.Request().Context(), limit)
	if err != nil {
		return err
	}
	return ok(c, items)
}

// GetFriendFeed returns the newest photos from the caller's connections
func (h *FeedHandler) GetFriendFeed(c echo.Context) error {
	accountID, err := requireUserID(c)
	if err != nil {
		return err
	}
	limit, err := queryInt(c, "limit")
	if err != nil {
		return err
	}

	items, err := h.feed.FriendFeed(c.Request().Context(), accountID, limit)
	if err != nil {
		return err
	}
	return ok(c, items)
}

// ShareContent shares one of the caller's plants with another account
func (h *FeedHandler) ShareContent(c echo.Context) error {
	accountID, err := requireUserID(c)
	if err != nil {
		return err
	}

	var req models.ShareContentRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	record, err := h.feed.ShareContent(c.Request().Context(), accountID, req.ContentID, req.TargetAccountID)
	if err != nil {
		return err
	}
	return ok(c, record)
}
