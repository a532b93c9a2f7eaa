package handlers

import (
	"net/http"

	"github.com/anonto42/quillpost/internal/models"
	"github.com/anonto42/quillpost/internal/services"
	"github.com/labstack/echo/v4"
)

// CommentHandler handles HTTP requests related to comments
type CommentHandler struct {
	interactions *services.InteractionService
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(interactions *services.InteractionService) *CommentHandler {
	return &CommentHandler{interactions: interactions}
}

// RegisterCommentRoutes registers comment-related routes
func (h *CommentHandler) RegisterCommentRoutes(g *echo.Group, m ...echo.MiddlewareFunc) {
	g.GET("/posts/:id/comments", h.GetCommentsForPost, m...)
	g.POST("/posts/:id/comments", h.CreateComment, m...)
}

// CreateComment adds a comment and returns the post's comments, newest first
func (h *CommentHandler) CreateComment(c echo.Context) error {
	var req models.CreateCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	comments, err := h.interactions.AddComment(c.Request().Context(), getViewerFromContext(c), c.Param("id"), req.Content)
	if err != nil {
		return httpError(err, "Error adding comment")
	}
	return success(c, http.StatusCreated, echo.Map{"comments": comments})
}

// GetCommentsForPost retrieves all comments for a specific post
func (h *CommentHandler) GetCommentsForPost(c echo.Context) error {
	comments, err := h.interactions.Comments(c.Request().Context(), c.Param("id"))
	if err != nil {
		return httpError(err, "Error loading comments")
	}
	return success(c, http.StatusOK, echo.Map{"comments": comments})
}
