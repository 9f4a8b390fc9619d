package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sedp-portal/backend/internal/models"
)

// CategoryHandler handles category image changes
type CategoryHandler struct {
	hooks HookFactory
}

func NewCategoryHandler(hooks HookFactory) *CategoryHandler {
	return &CategoryHandler{hooks: hooks}
}

func (h *CategoryHandler) RegisterCategoryRoutes(g *echo.Group) {
	g.PUT("/categories/:name/image", h.UpdateImage)
	g.POST("/categories/:name/image", h.UploadImage)
}

// UpdateImage points a category at an existing image URL
func (h *CategoryHandler) UpdateImage(c echo.Context) error {
	var req models.UpdateCategoryImageRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	hook, err := h.hooks.forRequest(c)
	if err != nil {
		return err
	}

	if !hook.UpdateCategoryImage(c.Request().Context(), c.Param("name"), req.ImageURL) {
		return hook.failed(c, true)
	}
	return hook.respond(c, http.StatusOK, true, mutationResult{State: hook.Snapshot()})
}

// UploadImage stores the multipart "image" file and assigns it to the category
func (h *CategoryHandler) UploadImage(c echo.Context) error {
	file, err := c.FormFile("image")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Multipart field 'image' is required")
	}

	hook, err := h.hooks.forRequest(c)
	if err != nil {
		return err
	}

	src, err := file.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Could not read uploaded file")
	}
	defer src.Close()

	if !hook.UploadCategoryImage(c.Request().Context(), c.Param("name"), file.Filename, src) {
		return hook.failed(c, true)
	}
	return hook.respond(c, http.StatusOK, true, mutationResult{State: hook.Snapshot()})
}
