package handlers

import (
	"net/http"

	"github.com/anonto42/quillpost/internal/models"
	"github.com/anonto42/quillpost/internal/services"
	"github.com/labstack/echo/v4"
)

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	accounts *services.AccountService
	sessions *services.SessionService
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(accounts *services.AccountService, sessions *services.SessionService) *AuthHandler {
	return &AuthHandler{accounts: accounts, sessions: sessions}
}

// RegisterAuthRoutes registers authentication-related routes. requireAuth guards the routes
// that act on an existing session.
func (h *AuthHandler) RegisterAuthRoutes(g *echo.Group, requireAuth echo.MiddlewareFunc) {
	g.POST("/signup", h.Signup)
	g.POST("/signin", h.SignIn)
	g.POST("/firebase-login", h.FirebaseLogin)
	g.GET("/callback", h.Callback)
	g.POST("/signout", h.SignOut, requireAuth)
	g.POST("/codes", h.CreateAuthCode, requireAuth)
}

// Signup registers an identity and its profile
func (h *AuthHandler) Signup(c echo.Context) error {
	var req models.SignUpRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	session, profile, err := h.accounts.SignUp(c.Request().Context(), req)
	if err != nil {
		return httpError(err, "Error creating account")
	}
	return success(c, http.StatusCreated, echo.Map{"session": session, "profile": profile})
}

// SignIn handles email and password authentication
func (h *AuthHandler) SignIn(c echo.Context) error {
	var req models.SignInRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	session, err := h.accounts.SignIn(c.Request().Context(), req)
	if err != nil {
		return httpError(err, "Error signing in")
	}
	return success(c, http.StatusOK, echo.Map{"session": session})
}

// FirebaseLogin verifies a Firebase ID token and issues a session
func (h *AuthHandler) FirebaseLogin(c echo.Context) error {
	var req models.FirebaseLoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	session, profile, err := h.accounts.FirebaseLogin(c.Request().Context(), req)
	if err != nil {
		return httpError(err, "Error signing in")
	}
	return success(c, http.StatusOK, echo.Map{"session": session, "profile": profile})
}

// Callback exchanges a one-time code from a redirect for a session
func (h *AuthHandler) Callback(c echo.Context) error {
	code := c.QueryParam("code")
	if code == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Missing code")
	}
	session, err := h.sessions.ExchangeCode(c.Request().Context(), code)
	if err != nil {
		return httpError(err, "Error exchanging code")
	}
	return success(c, http.StatusOK, echo.Map{"session": session})
}

func (h *AuthHandler) CreateAuthCode(c echo.Context) error {
	code, err := h.sessions.IssueAuthCode(c.Request().Context(), getViewerFromContext(c))
	if err != nil {
		return httpError(err, "Error creating code")
	}
	return success(c, http.StatusCreated, echo.Map{"code": code.Code, "expires_at": code.ExpiresAt})
}

func (h *AuthHandler) SignOut(c echo.Context) error {
	if err := h.accounts.SignOut(c.Request().Context(), getViewerFromContext(c)); err != nil {
		return httpError(err, "Error signing out")
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "Signed out"})
}
