package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sedp-portal/backend/internal/adminsetup"
	"github.com/sedp-portal/backend/internal/middleware"
	"github.com/sedp-portal/backend/internal/models"
	"github.com/sedp-portal/backend/internal/session"
)

// AdminDirectory reports whether any administrator exists
type AdminDirectory interface {
	HasAdmins(ctx context.Context) (bool, error)
}

// AdminSetupHandler serves the admin bootstrap flow
type AdminSetupHandler struct {
	setup     *adminsetup.Setup
	directory AdminDirectory
}

func NewAdminSetupHandler(setup *adminsetup.Setup, directory AdminDirectory) *AdminSetupHandler {
	return &AdminSetupHandler{setup: setup, directory: directory}
}

func (h *AdminSetupHandler) RegisterAdminSetupRoutes(g *echo.Group) {
	g.GET("/admin/setup", h.GetStatus)
	g.POST("/admin/setup/initialize", h.Initialize)
	g.POST("/admin/setup/self", h.MakeSelfAdmin)
	g.POST("/admin/setup/promote", h.Promote)
}

// GetStatus returns the bootstrap state
func (h *AdminSetupHandler) GetStatus(c echo.Context) error {
	hasAdmins, err := h.directory.HasAdmins(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data": echo.Map{
			"setup":      h.setup.Status(),
			"has_admins": hasAdmins,
		},
	})
}

func (h *AdminSetupHandler) Initialize(c echo.Context) error {
	return h.act(c, false, func(ctx context.Context, sess session.Session) error {
		return h.setup.Initialize(ctx, sess)
	})
}

func (h *AdminSetupHandler) MakeSelfAdmin(c echo.Context) error {
	return h.act(c, true, func(ctx context.Context, sess session.Session) error {
		return h.setup.MakeSelfAdmin(ctx, sess)
	})
}

func (h *AdminSetupHandler) Promote(c echo.Context) error {
	var req models.PromoteAdminRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	return h.act(c, true, func(ctx context.Context, sess session.Session) error {
		return h.setup.MakeAdmin(ctx, sess, req.Email)
	})
}

// act runs a bootstrap action. Setup is open while no admin exists; afterwards only admins may use
// it. Promotions need a signed-in user. Action failures are not surfaced beyond the success flag.
func (h *AdminSetupHandler) act(c echo.Context, needsUser bool, action func(context.Context, session.Session) error) error {
	sess := middleware.SessionFrom(c)
	if sess == nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Session not resolved")
	}
	if needsUser && sess.CurrentUser() == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Sign in to promote an admin")
	}
	ctx := c.Request().Context()

	hasAdmins, err := h.directory.HasAdmins(ctx)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if hasAdmins && !sess.IsAdmin() {
		return echo.NewHTTPError(http.StatusForbidden, "Admin setup is already complete")
	}

	err = action(ctx, sess)
	if errors.Is(err, adminsetup.ErrBusy) {
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success": err == nil,
		"data":    echo.Map{"setup": h.setup.Status()},
	})
}
