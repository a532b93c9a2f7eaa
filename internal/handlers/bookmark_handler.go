package handlers

import (
	"net/http"

	"github.com/anonto42/quillpost/internal/models"
	"github.com/anonto42/quillpost/internal/services"
	"github.com/labstack/echo/v4"
)

// BookmarkHandler handles bookmark toggles
type BookmarkHandler struct {
	interactions *services.InteractionService
}

// NewBookmarkHandler creates a new BookmarkHandler
func NewBookmarkHandler(interactions *services.InteractionService) *BookmarkHandler {
	return &BookmarkHandler{interactions: interactions}
}

// RegisterBookmarkRoutes registers bookmark routes
func (h *BookmarkHandler) RegisterBookmarkRoutes(g *echo.Group, m ...echo.MiddlewareFunc) {
	g.POST("/posts/:id/bookmark/toggle", h.ToggleBookmark, m...)
	g.PUT("/posts/:id/bookmark", h.BookmarkPost, m...)
	g.DELETE("/posts/:id/bookmark", h.UnbookmarkPost, m...)
}

func (h *BookmarkHandler) ToggleBookmark(c echo.Context) error {
	var req models.ToggleBookmarkRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	post, err := h.interactions.ToggleBookmark(c.Request().Context(), getViewerFromContext(c), c.Param("id"), req.Bookmarked)
	return h.respond(c, post, err)
}

func (h *BookmarkHandler) BookmarkPost(c echo.Context) error {
	post, err := h.interactions.SetBookmark(c.Request().Context(), getViewerFromContext(c), c.Param("id"), true)
	return h.respond(c, post, err)
}

func (h *BookmarkHandler) UnbookmarkPost(c echo.Context) error {
	post, err := h.interactions.SetBookmark(c.Request().Context(), getViewerFromContext(c), c.Param("id"), false)
	return h.respond(c, post, err)
}

func (h *BookmarkHandler) respond(c echo.Context, post *models.PostView, err error) error {
	if err != nil {
		return httpError(err, "Error updating bookmark")
	}
	return success(c, http.StatusOK, echo.Map{"post": post})
}
