package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sedp-portal/backend/internal/models"
)

// NotificationHandler handles push notification authoring
type NotificationHandler struct {
	hooks HookFactory
}

// NewNotificationHandler creates a new NotificationHandler
func NewNotificationHandler(hooks HookFactory) *NotificationHandler {
	return &NotificationHandler{hooks: hooks}
}

// RegisterNotificationRoutes registers notification routes
func (h *NotificationHandler) RegisterNotificationRoutes(g *echo.Group) {
	g.POST("/notifications", h.CreateNotification)
}

// CreateNotification stores a notification and sends it unless it is scheduled
func (h *NotificationHandler) CreateNotification(c echo.Context) error {
	var req models.NewNotification
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	hook, err := h.hooks.forRequest(c)
	if err != nil {
		return err
	}

	notification := hook.CreateNotification(c.Request().Context(), req)
	if notification == nil {
		return hook.failed(c, true)
	}
	return hook.respond(c, http.StatusCreated, true, mutationResult{Result: notification, State: hook.Snapshot()})
}
