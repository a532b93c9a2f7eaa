package handlers

import (
	"net/http"

	"github.com/anonto42/quillpost/internal/models"
	"github.com/anonto42/quillpost/internal/services"
	"github.com/labstack/echo/v4"
)

// ProfileHandler handles the settings screen: display fields, password and deletion.
type ProfileHandler struct {
	accounts *services.AccountService
}

// NewProfileHandler creates a new ProfileHandler
func NewProfileHandler(accounts *services.AccountService) *ProfileHandler {
	return &ProfileHandler{accounts: accounts}
}

// RegisterProfileRoutes registers user profile-related routes
func (h *ProfileHandler) RegisterProfileRoutes(g *echo.Group, m ...echo.MiddlewareFunc) {
	g.GET("/profile", h.GetProfile, m...)
	g.PUT("/profile", h.UpdateProfile, m...)
	g.PUT("/profile/password", h.ChangePassword, m...)
	g.DELETE("/profile", h.DeleteAccount, m...)
}

// GetProfile retrieves the authenticated user's profile
func (h *ProfileHandler) GetProfile(c echo.Context) error {
	profile, err := h.accounts.Profile(c.Request().Context(), getViewerFromContext(c))
	if err != nil {
		return httpError(err, "Error loading profile")
	}
	return success(c, http.StatusOK, echo.Map{"profile": profile})
}

func (h *ProfileHandler) UpdateProfile(c echo.Context) error {
	var req models.UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	profile, err := h.accounts.UpdateProfile(c.Request().Context(), getViewerFromContext(c), req)
	if err != nil {
		return httpError(err, "Error updating profile")
	}
	return success(c, http.StatusOK, echo.Map{"profile": profile})
}

// ChangePassword checks the confirmation before validating the rest of the form.
func (h *ProfileHandler) ChangePassword(c echo.Context) error {
	var req models.ChangePasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if req.NewPassword != req.ConfirmPassword {
		return httpError(services.ErrPasswordMismatch, "")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if err := h.accounts.ChangePassword(c.Request().Context(), getViewerFromContext(c), req); err != nil {
		return httpError(err, "Error updating password")
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "Password updated successfully"})
}

func (h *ProfileHandler) DeleteAccount(c echo.Context) error {
	if err := h.accounts.DeleteAccount(c.Request().Context(), getViewerFromContext(c)); err != nil {
		return httpError(err, "Error deleting account")
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "Account deleted successfully"})
}
