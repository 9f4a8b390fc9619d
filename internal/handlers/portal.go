package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sedp-portal/backend/internal/datasync"
	"github.com/sedp-portal/backend/internal/middleware"
	"github.com/sedp-portal/backend/internal/session"
)

// HookFactory builds a data-sync hook for one request
type HookFactory func(sess session.Session, notifier datasync.Notifier) *datasync.Hook

// NewHookFactory binds the shared repositories and options to a HookFactory
func NewHookFactory(repos datasync.Repositories, opts ...datasync.Option) HookFactory {
	return func(sess session.Session, notifier datasync.Notifier) *datasync.Hook {
		return datasync.New(repos, sess, notifier, opts...)
	}
}

// requestHook is a hook together with the notices it records during the request
type requestHook struct {
	*datasync.Hook
	session session.Session
	notices *datasync.NoticeRecorder
}

func (f HookFactory) forRequest(c echo.Context) (*requestHook, error) {
	sess := middleware.SessionFrom(c)
	if sess == nil {
		return nil, echo.NewHTTPError(http.StatusInternalServerError, "Session not resolved")
	}
	notices := &datasync.NoticeRecorder{}
	return &requestHook{Hook: f(sess, notices), session: sess, notices: notices}, nil
}

// respond writes the envelope shared by every portal endpoint
func (h *requestHook) respond(c echo.Context, status int, ok bool, data interface{}) error {
	return c.JSON(status, echo.Map{
		"success": ok,
		"data":    data,
		"notices": h.notices.Notices(),
	})
}

// failed responds to a mutation that returned its failure sentinel
func (h *requestHook) failed(c echo.Context, adminOnly bool) error {
	status := http.StatusUnprocessableEntity
	switch {
	case h.session.CurrentUser() == nil:
		status = http.StatusUnauthorized
	case adminOnly && !h.session.IsAdmin():
		status = http.StatusForbidden
	}
	return h.respond(c, status, false, nil)
}

// mutationResult pairs the mutated row with the refreshed snapshot
type mutationResult struct {
	Result interface{}    `json:"result,omitempty"`
	State  datasync.State `json:"state"`
}

func bindAndValidate(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}

// DataHandler serves the collection snapshot
type DataHandler struct {
	hooks HookFactory
}

func NewDataHandler(hooks HookFactory) *DataHandler {
	return &DataHandler{hooks: hooks}
}

func (h *DataHandler) RegisterDataRoutes(g *echo.Group) {
	g.GET("/data", h.GetData)
}

// GetData fetches every collection visible to the caller
func (h *DataHandler) GetData(c echo.Context) error {
	hook, err := h.hooks.forRequest(c)
	if err != nil {
		return err
	}
	hook.FetchData(c.Request().Context())
	return hook.respond(c, http.StatusOK, true, hook.Snapshot())
}
