package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sedp-portal/backend/internal/models"
)

// RegistrationHandler handles registration submissions and admin decisions
type RegistrationHandler struct {
	hooks HookFactory
}

// NewRegistrationHandler creates a new RegistrationHandler
func NewRegistrationHandler(hooks HookFactory) *RegistrationHandler {
	return &RegistrationHandler{hooks: hooks}
}

// RegisterRegistrationRoutes registers registration routes
func (h *RegistrationHandler) RegisterRegistrationRoutes(g *echo.Group) {
	g.POST("/registrations", h.CreateRegistration)
	g.PUT("/registrations/:id/status", h.UpdateStatus)
	g.DELETE("/registrations/:id", h.DeleteRegistration)
}

// CreateRegistration submits a registration for the signed-in user
func (h *RegistrationHandler) CreateRegistration(c echo.Context) error {
	var req models.NewRegistration
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	hook, err := h.hooks.forRequest(c)
	if err != nil {
		return err
	}

	registration := hook.CreateRegistration(c.Request().Context(), req)
	if registration == nil {
		return hook.failed(c, false)
	}
	return hook.respond(c, http.StatusCreated, true, mutationResult{Result: registration, State: hook.Snapshot()})
}

// UpdateStatus approves or rejects a registration
func (h *RegistrationHandler) UpdateStatus(c echo.Context) error {
	var req models.UpdateRegistrationStatusRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	hook, err := h.hooks.forRequest(c)
	if err != nil {
		return err
	}

	if !hook.UpdateRegistrationStatus(c.Request().Context(), c.Param("id"), req.Status, req.UniqueID) {
		return hook.failed(c, true)
	}
	return hook.respond(c, http.StatusOK, true, mutationResult{State: hook.Snapshot()})
}

// DeleteRegistration removes a registration
func (h *RegistrationHandler) DeleteRegistration(c echo.Context) error {
	hook, err := h.hooks.forRequest(c)
	if err != nil {
		return err
	}

	if !hook.DeleteRegistration(c.Request().Context(), c.Param("id")) {
		return hook.failed(c, true)
	}
	return hook.respond(c, http.StatusOK, true, mutationResult{State: hook.Snapshot()})
}
