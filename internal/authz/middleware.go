package authz

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/TreeNut-KR/jmedu-admin-sub000/internal/platform/httpx"
)

// Middleware wires the gate in front of HTTP handlers.
type Middleware struct {
	Gate       *Gate
	CookieName string
	Logger     *slog.Logger
}

// Require ensures the credential holder satisfies every listed task before
// the handler body executes. On success the resolved principal is placed in
// the request context.
func (m Middleware) Require(tasks ...Task) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, err := m.Gate.AuthorizeAll(r.Context(), tasks, m.credential(r))
			if err != nil {
				m.respond(w, r, err)
				return
			}
			next.ServeHTTP(w, r.WithContext(ContextWithPrincipal(r.Context(), principal)))
		})
	}
}

func (m Middleware) credential(r *http.Request) string {
	cookie, err := r.Cookie(m.CookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}

// respond maps gate failures to statuses. Authentication failures answer 401,
// authorization failures 403, integrity faults 409, unknown tasks 500.
func (m Middleware) respond(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case IsAuthentication(err):
		httpx.Problem(w, http.StatusUnauthorized, "Unauthorized", "authentication required")
	case errors.Is(err, ErrLevelTooLow):
		httpx.Problem(w, http.StatusForbidden, "Forbidden", "insufficient level")
	case errors.Is(err, ErrAmbiguousPrincipal):
		if m.Logger != nil {
			m.Logger.Error("ambiguous principal", slog.String("path", r.URL.Path), slog.Any("error", err))
		}
		httpx.Problem(w, http.StatusConflict, "Conflict", "principal records are inconsistent")
	case errors.Is(err, ErrTaskNotRegistered):
		if m.Logger != nil {
			m.Logger.Error("unregistered task at gate", slog.String("path", r.URL.Path), slog.Any("error", err))
		}
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
	default:
		if m.Logger != nil {
			m.Logger.Error("authorization check failed", slog.String("path", r.URL.Path), slog.Any("error", err))
		}
		httpx.Problem(w, http.StatusBadGateway, "Backend Fault", "")
	}
}
