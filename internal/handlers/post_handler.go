package handlers

import (
	"net/http"

	"github.com/anonto42/quillpost/internal/models"
	"github.com/anonto42/quillpost/internal/services"
	"github.com/labstack/echo/v4"
)

// PostHandler handles the post write form
type PostHandler struct {
	posts *services.PostService
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(posts *services.PostService) *PostHandler {
	return &PostHandler{posts: posts}
}

// RegisterPostRoutes registers post-related routes
func (h *PostHandler) RegisterPostRoutes(g *echo.Group, m ...echo.MiddlewareFunc) {
	g.POST("/posts", h.CreatePost, m...)
	g.PUT("/posts/:id", h.UpdatePost, m...)
	g.DELETE("/posts/:id", h.DeletePost, m...)
}

// CreatePost creates a new post
func (h *PostHandler) CreatePost(c echo.Context) error {
	var req models.CreatePostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	post, err := h.posts.Create(c.Request().Context(), getViewerFromContext(c), req)
	if err != nil {
		return httpError(err, "Failed to create post")
	}
	return success(c, http.StatusCreated, echo.Map{"post": post})
}

// UpdatePost edits a post owned by the viewer
func (h *PostHandler) UpdatePost(c echo.Context) error {
	var req models.UpdatePostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	post, err := h.posts.Update(c.Request().Context(), getViewerFromContext(c), c.Param("id"), req)
	if err != nil {
		return httpError(err, "Failed to update post")
	}
	return success(c, http.StatusOK, echo.Map{"post": post})
}

// DeletePost deletes a post owned by the viewer
func (h *PostHandler) DeletePost(c echo.Context) error {
	if err := h.posts.Delete(c.Request().Context(), getViewerFromContext(c), c.Param("id")); err != nil {
		return httpError(err, "Failed to delete post")
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "Post deleted successfully"})
}
