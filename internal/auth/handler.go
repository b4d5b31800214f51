package auth

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/TreeNut-KR/jmedu-admin-sub000/internal/authz"
	"github.com/TreeNut-KR/jmedu-admin-sub000/internal/capability"
	"github.com/TreeNut-KR/jmedu-admin-sub000/internal/platform/httpx"
)

// Handler wires HTTP endpoints for authentication flows.
type Handler struct {
	logger     *slog.Logger
	service    *Service
	codec      *Codec
	resolver   *authz.Resolver
	registry   *authz.Registry
	cookieName string
	secure     bool
	validate   *validator.Validate
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, service *Service, codec *Codec, resolver *authz.Resolver, registry *authz.Registry, cookieName string, secure bool) *Handler {
	return &Handler{
		logger:     logger,
		service:    service,
		codec:      codec,
		resolver:   resolver,
		registry:   registry,
		cookieName: cookieName,
		secure:     secure,
		validate:   validator.New(),
	}
}

// MountRoutes registers auth routes on the provided router. None of them
// carry a task requirement; /auth/status and /auth/capabilities bootstrap the
// dashboard's capability filter.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/login", h.handleLogin)
	r.Post("/logout", h.handleLogout)
	r.Get("/status", h.handleStatus)
	r.Get("/capabilities", h.handleCapabilities)
}

type loginRequest struct {
	Username string `json:"username" validate:"required,max=100"`
	Password string `json:"password" validate:"required,min=8"`
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "malformed JSON body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Problem(w, http.StatusUnprocessableEntity, "Validation Failed", err.Error())
		return
	}

	acc, err := h.service.Authenticate(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			httpx.Problem(w, http.StatusUnauthorized, "Unauthorized", "invalid username or password")
			return
		}
		h.logger.Error("authenticate", slog.Any("error", err))
		httpx.RespondError(w, httpx.ErrBackend)
		return
	}

	credential, err := h.codec.Issue(acc.ID, acc.Username)
	if err != nil {
		h.logger.Error("issue credential", slog.Any("error", err))
		httpx.RespondError(w, httpx.ErrBackend)
		return
	}

	http.SetCookie(w, h.sessionCookie(credential, h.codec.TTL()))
	httpx.JSON(w, http.StatusOK, map[string]any{
		"id":       acc.ID,
		"username": acc.Username,
		"name":     acc.Name,
		"level":    acc.Level,
	})
}

func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, h.sessionCookie("", -time.Second))
	w.WriteHeader(http.StatusNoContent)
}

// handleStatus resolves the current principal with a fresh store read. The
// response feeds the dashboard's capability filter alongside /permissions.
func (h *Handler) handleStatus(w http.ResponseWriter, r *http.Request) {
	principal, err := h.resolvePrincipal(r)
	if err != nil {
		h.respondResolveError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, principal)
}

// handleCapabilities returns the per-task allow/deny map for the current
// principal, computed server-side with the same rule the gate uses. Advisory
// data for UI affordance hiding; the gate still re-checks every call.
func (h *Handler) handleCapabilities(w http.ResponseWriter, r *http.Request) {
	principal, err := h.resolvePrincipal(r)
	if err != nil {
		h.respondResolveError(w, err)
		return
	}
	records, err := h.registry.List(r.Context())
	if err != nil {
		h.logger.Error("list permissions for capabilities", slog.Any("error", err))
		httpx.RespondError(w, httpx.ErrBackend)
		return
	}
	snapshot := capability.Ready(principal.Level, records)
	tasks := make([]authz.Task, 0, len(records))
	for _, rec := range records {
		tasks = append(tasks, rec.Task)
	}
	httpx.JSON(w, http.StatusOK, map[string]any{
		"level":        principal.Level,
		"capabilities": snapshot.Map(tasks),
	})
}

func (h *Handler) resolvePrincipal(r *http.Request) (authz.Principal, error) {
	credential := ""
	if cookie, err := r.Cookie(h.cookieName); err == nil {
		credential = cookie.Value
	}
	return h.resolver.Resolve(r.Context(), credential)
}

func (h *Handler) respondResolveError(w http.ResponseWriter, err error) {
	switch {
	case authz.IsAuthentication(err):
		httpx.Problem(w, http.StatusUnauthorized, "Unauthorized", "authentication required")
	case errors.Is(err, authz.ErrAmbiguousPrincipal):
		h.logger.Error("ambiguous principal", slog.Any("error", err))
		httpx.Problem(w, http.StatusConflict, "Conflict", "principal records are inconsistent")
	default:
		h.logger.Error("resolve principal", slog.Any("error", err))
		httpx.RespondError(w, httpx.ErrBackend)
	}
}

func (h *Handler) sessionCookie(value string, ttl time.Duration) *http.Cookie {
	cookie := &http.Cookie{
		Name:     h.cookieName,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.secure,
		SameSite: http.SameSiteStrictMode,
	}
	if ttl < 0 {
		cookie.MaxAge = -1
	} else {
		cookie.Expires = time.Now().Add(ttl)
	}
	return cookie
}
