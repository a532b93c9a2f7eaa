package handlers

import (
	"net/http"
	"strconv"

	"github.com/anonto42/quillpost/internal/models"
	"github.com/anonto42/quillpost/internal/services"
	"github.com/labstack/echo/v4"
)

const maxPageSize = 50

// FeedHandler serves post listings and single posts.
type FeedHandler struct {
	feed *services.FeedService
}

// NewFeedHandler creates a new FeedHandler
func NewFeedHandler(feed *services.FeedService) *FeedHandler {
	return &FeedHandler{feed: feed}
}

// RegisterFeedRoutes registers the listing routes open to anonymous viewers.
func (h *FeedHandler) RegisterFeedRoutes(g *echo.Group, m ...echo.MiddlewareFunc) {
	g.GET("/categories", h.GetCategories, m...)
	g.GET("/posts", h.GetFeed, m...)
	g.GET("/posts/:id", h.GetPost, m...)
}

// RegisterProfileTabRoutes registers the signed-in viewer's own listings.
func (h *FeedHandler) RegisterProfileTabRoutes(g *echo.Group, m ...echo.MiddlewareFunc) {
	g.GET("/me/posts", h.GetMyPosts, m...)
	g.GET("/me/bookmarks", h.GetMyBookmarks, m...)
	g.GET("/me/likes", h.GetMyLikes, m...)
}

func (h *FeedHandler) GetCategories(c echo.Context) error {
	return success(c, http.StatusOK, echo.Map{
		"categories": models.CategoryLabels(),
		"default":    models.AllCategories,
	})
}

// GetFeed returns the post feed. page and limit are optional; without limit every post is
// returned.
func (h *FeedHandler) GetFeed(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	if page < 1 {
		page = 1
	}
	if limit < 0 || limit > maxPageSize {
		limit = maxPageSize
	}

	category := c.QueryParam("category")
	posts, err := h.feed.Feed(c.Request().Context(), getViewerFromContext(c), category, services.Page{
		Limit:  limit,
		Offset: (page - 1) * limit,
	})
	if err != nil {
		return httpError(err, "Error loading posts")
	}

	meta := echo.Map{"category": category}
	if limit > 0 {
		meta["currentPage"] = page
		meta["itemsPerPage"] = limit
		meta["hasNextPage"] = len(posts) == limit
		meta["hasPreviousPage"] = page > 1
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data":    echo.Map{"posts": posts},
		"meta":    meta,
	})
}

func (h *FeedHandler) GetPost(c echo.Context) error {
	post, err := h.feed.Post(c.Request().Context(), getViewerFromContext(c), c.Param("id"))
	if err != nil {
		return httpError(err, "Error loading post")
	}
	return success(c, http.StatusOK, echo.Map{"post": post})
}

func (h *FeedHandler) GetMyPosts(c echo.Context) error {
	posts, err := h.feed.AuthorPosts(c.Request().Context(), getViewerFromContext(c), getUserIDFromContext(c))
	if err != nil {
		return httpError(err, "Error loading posts")
	}
	return success(c, http.StatusOK, echo.Map{"posts": posts})
}

func (h *FeedHandler) GetMyBookmarks(c echo.Context) error {
	posts, err := h.feed.Bookmarks(c.Request().Context(), getViewerFromContext(c))
	if err != nil {
		return httpError(err, "Error loading bookmarks")
	}
	return success(c, http.StatusOK, echo.Map{"posts": posts})
}

func (h *FeedHandler) GetMyLikes(c echo.Context) error {
	posts, err := h.feed.LikedPosts(c.Request().Context(), getViewerFromContext(c))
	if err != nil {
		return httpError(err, "Error loading liked posts")
	}
	return success(c, http.StatusOK, echo.Map{"posts": posts})
}
