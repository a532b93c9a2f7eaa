package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/anonto42/quillpost/internal/models"
	"github.com/anonto42/quillpost/internal/repositories"
	"github.com/anonto42/quillpost/internal/services"
	"github.com/labstack/echo/v4"
)

// httpError turns a service or repository error into the notification the client shows.
// Unrecognised errors become a 500 carrying fallback as the message.
func httpError(err error, fallback string) *echo.HTTPError {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he
	}

	code := http.StatusInternalServerError
	message := fallback
	switch {
	case errors.Is(err, services.ErrLoginRequired),
		errors.Is(err, services.ErrInvalidCredentials),
		errors.Is(err, services.ErrInvalidSession):
		code, message = http.StatusUnauthorized, err.Error()
	case errors.Is(err, services.ErrEmptyComment),
		errors.Is(err, services.ErrPasswordMismatch),
		errors.Is(err, services.ErrUnsupportedProvider):
		code, message = http.StatusBadRequest, err.Error()
	case errors.Is(err, models.ErrUnknownCategory):
		code, message = http.StatusBadRequest, "Unknown category"
	case errors.Is(err, services.ErrNotPostAuthor):
		code, message = http.StatusForbidden, err.Error()
	case errors.Is(err, repositories.ErrPostNotFound):
		code, message = http.StatusNotFound, "Post not found"
	case errors.Is(err, repositories.ErrProfileNotFound):
		code, message = http.StatusNotFound, "Profile not found"
	case errors.Is(err, repositories.ErrIdentityNotFound):
		code, message = http.StatusNotFound, "Account not found"
	case errors.Is(err, repositories.ErrUsernameTaken):
		code, message = http.StatusConflict, "Username already taken"
	case errors.Is(err, repositories.ErrEmailTaken):
		code, message = http.StatusConflict, "Email already registered"
	}
	return echo.NewHTTPError(code, message).SetInternal(err)
}

// HTTPErrorHandler writes every error as {"success":false,"message":...}. Server-side causes
// are logged, never sent.
func HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	he := httpError(err, "Internal server error")
	if he.Internal != nil && he.Code >= http.StatusInternalServerError {
		log.Printf("Error handling %s %s: %v", c.Request().Method, c.Path(), he.Internal)
	}

	message, ok := he.Message.(string)
	if !ok {
		message = http.StatusText(he.Code)
	}

	if c.Request().Method == http.MethodHead {
		err = c.NoContent(he.Code)
	} else {
		err = c.JSON(he.Code, echo.Map{"success": false, "message": message})
	}
	if err != nil {
		log.Printf("Error writing error response: %v", err)
	}
}
