package authz

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/TreeNut-KR/jmedu-admin-sub000/internal/platform/httpx"
)

// Handler exposes the permission registry over HTTP.
type Handler struct {
	logger   *slog.Logger
	registry *Registry
	mw       Middleware
	validate *validator.Validate
}

// NewHandler builds a Handler instance.
func NewHandler(logger *slog.Logger, registry *Registry, mw Middleware) *Handler {
	return &Handler{logger: logger, registry: registry, mw: mw, validate: validator.New()}
}

// MountRoutes registers permission routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(h.mw.Require(TaskPermissionsView))
		r.Get("/", h.list)
	})
	r.Group(func(r chi.Router) {
		r.Use(h.mw.Require(TaskPermissionEdit))
		r.Put("/{task}", h.setLevel)
	})
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	records, err := h.registry.List(r.Context())
	if err != nil {
		h.logger.Error("list permissions", slog.Any("error", err))
		httpx.RespondError(w, httpx.ErrBackend)
		return
	}
	if records == nil {
		records = []PermissionRecord{}
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"permissions": records})
}

type setLevelRequest struct {
	Level *int `json:"level" validate:"required,gte=0,lte=3"`
}

func (h *Handler) setLevel(w http.ResponseWriter, r *http.Request) {
	task := Task(chi.URLParam(r, "task"))

	var req setLevelRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "malformed JSON body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Problem(w, http.StatusUnprocessableEntity, "Validation Failed", err.Error())
		return
	}

	principal, _ := PrincipalFromContext(r.Context())
	err := h.registry.SetRequiredLevel(r.Context(), principal.ID, task, Level(*req.Level))
	switch {
	case err == nil:
		httpx.JSON(w, http.StatusOK, map[string]any{"task": task, "level": *req.Level})
	case errors.Is(err, ErrImmutableTask):
		httpx.Problem(w, http.StatusForbidden, "Forbidden", "this task's level cannot be changed")
	case errors.Is(err, ErrInvalidLevel):
		httpx.Problem(w, http.StatusUnprocessableEntity, "Validation Failed", "level must be between 0 and 3")
	case errors.Is(err, ErrTaskNotRegistered):
		httpx.Problem(w, http.StatusNotFound, "Not Found", "unknown task")
	default:
		h.logger.Error("set required level", slog.String("task", string(task)), slog.Any("error", err))
		httpx.RespondError(w, httpx.ErrBackend)
	}
}
