package router

import (
	"log"

	"github.com/anonto42/quillpost/internal/bootstrap"
	"github.com/anonto42/quillpost/internal/handlers"
	"github.com/anonto42/quillpost/internal/middleware"
	"github.com/labstack/echo/v4"
)

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, svc *bootstrap.Services) {
	e.HTTPErrorHandler = handlers.HTTPErrorHandler

	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)

	// Middleware is attached per route. A group with its own middleware registers a catch-all
	// for its prefix, which would answer unknown /api/v1 paths with that middleware's error.
	optionalAuth := middleware.OptionalAuth(svc.Sessions)
	requireAuth := middleware.JWTAuthMiddleware(svc.Sessions)

	api := e.Group("/api/v1")

	// --- Authentication ---
	authGroup := api.Group("/auth")
	authHandler := handlers.NewAuthHandler(svc.Accounts, svc.Sessions)
	authHandler.RegisterAuthRoutes(authGroup, requireAuth)
	log.Println("Auth routes configured.")

	// --- Routes open to anonymous viewers ---
	feedHandler := handlers.NewFeedHandler(svc.Feed)
	feedHandler.RegisterFeedRoutes(api, optionalAuth)
	log.Println("Feed routes configured.")

	likeHandler := handlers.NewLikeHandler(svc.Interactions)
	likeHandler.RegisterLikeRoutes(api, optionalAuth)
	log.Println("Like routes configured.")

	bookmarkHandler := handlers.NewBookmarkHandler(svc.Interactions)
	bookmarkHandler.RegisterBookmarkRoutes(api, optionalAuth)
	log.Println("Bookmark routes configured.")

	commentHandler := handlers.NewCommentHandler(svc.Interactions)
	commentHandler.RegisterCommentRoutes(api, optionalAuth)
	log.Println("Comment routes configured.")

	// --- Protected routes (require a session token) ---
	postHandler := handlers.NewPostHandler(svc.Posts)
	postHandler.RegisterPostRoutes(api, requireAuth)
	feedHandler.RegisterProfileTabRoutes(api, requireAuth)
	log.Println("Post routes configured.")

	profileHandler := handlers.NewProfileHandler(svc.Accounts)
	profileHandler.RegisterProfileRoutes(api, requireAuth)
	log.Println("Profile routes configured.")

	log.Println("All routes configured.")
}
