package handlers

import (
	"github.com/anonto42/quillpost/internal/middleware"
	"github.com/anonto42/quillpost/internal/models"
	"github.com/labstack/echo/v4"
)

func getViewerFromContext(c echo.Context) models.Viewer {
	return middleware.ViewerFromContext(c)
}

func getUserIDFromContext(c echo.Context) string {
	return getViewerFromContext(c).UserID
}

// success writes the standard {"success":true,"data":...} envelope.
func success(c echo.Context, code int, data interface{}) error {
	return c.JSON(code, echo.Map{"success": true, "data": data})
}
