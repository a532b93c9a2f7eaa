package handlers

import (
	"net/http"

	"github.com/anonto42/quillpost/internal/models"
	"github.com/anonto42/quillpost/internal/services"
	"github.com/labstack/echo/v4"
)

// LikeHandler handles HTTP requests related to likes
type LikeHandler struct {
	interactions *services.InteractionService
}

// NewLikeHandler creates a new LikeHandler
func NewLikeHandler(interactions *services.InteractionService) *LikeHandler {
	return &LikeHandler{interactions: interactions}
}

// RegisterLikeRoutes registers like-related routes. Anonymous callers reach the handlers and
// get the login notification back.
func (h *LikeHandler) RegisterLikeRoutes(g *echo.Group, m ...echo.MiddlewareFunc) {
	g.POST("/posts/:id/like/toggle", h.ToggleLike, m...)
	g.PUT("/posts/:id/like", h.LikePost, m...)
	g.DELETE("/posts/:id/like", h.UnlikePost, m...)
}

// ToggleLike flips the like the client currently shows in "liked"
func (h *LikeHandler) ToggleLike(c echo.Context) error {
	var req models.ToggleLikeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	post, err := h.interactions.ToggleLike(c.Request().Context(), getViewerFromContext(c), c.Param("id"), req.Liked)
	return h.respond(c, post, err)
}

func (h *LikeHandler) LikePost(c echo.Context) error {
	post, err := h.interactions.SetLike(c.Request().Context(), getViewerFromContext(c), c.Param("id"), true)
	return h.respond(c, post, err)
}

func (h *LikeHandler) UnlikePost(c echo.Context) error {
	post, err := h.interactions.SetLike(c.Request().Context(), getViewerFromContext(c), c.Param("id"), false)
	return h.respond(c, post, err)
}

func (h *LikeHandler) respond(c echo.Context, post *models.PostView, err error) error {
	if err != nil {
		return httpError(err, "Error updating like")
	}
	return success(c, http.StatusOK, echo.Map{"post": post})
}
