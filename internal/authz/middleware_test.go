package authz

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testCookie = "session_test"

func newTestRouter(t *testing.T) (chi.Router, *fakeStore) {
	t.Helper()
	gate, store := newTestGate(t)
	mw := Middleware{Gate: gate, CookieName: testCookie, Logger: slog.New(slog.DiscardHandler)}

	r := chi.NewRouter()
	r.Group(func(r chi.Router) {
		r.Use(mw.Require(TaskStudentView))
		r.Get("/students", func(w http.ResponseWriter, r *http.Request) {
			principal, ok := PrincipalFromContext(r.Context())
			require.True(t, ok)
			w.Write([]byte(principal.Username))
		})
	})
	r.Group(func(r chi.Router) {
		r.Use(mw.Require(TaskStudentDelete))
		r.Delete("/students/1", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		})
	})
	r.Group(func(r chi.Router) {
		r.Use(mw.Require(Task("not_a_task")))
		r.Get("/broken", func(w http.ResponseWriter, r *http.Request) {})
	})
	return r, store
}

func request(router http.Handler, method, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.AddCookie(&http.Cookie{Name: testCookie, Value: token})
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestMiddlewareRequire(t *testing.T) {
	t.Run("no cookie answers 401", func(t *testing.T) {
		router, _ := newTestRouter(t)
		rec := request(router, http.MethodGet, "/students", "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("bad token answers 401", func(t *testing.T) {
		router, _ := newTestRouter(t)
		rec := request(router, http.MethodGet, "/students", "token-forged")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("sufficient level passes and exposes the principal", func(t *testing.T) {
		router, _ := newTestRouter(t)
		rec := request(router, http.MethodGet, "/students", "token-alice")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "alice", rec.Body.String())
	})

	t.Run("insufficient level answers 403", func(t *testing.T) {
		router, _ := newTestRouter(t)
		rec := request(router, http.MethodDelete, "/students/1", "token-alice")
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("unregistered task answers 500", func(t *testing.T) {
		router, _ := newTestRouter(t)
		rec := request(router, http.MethodGet, "/broken", "token-alice")
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})

	t.Run("ambiguous principal answers 409", func(t *testing.T) {
		router, store := newTestRouter(t)
		store.principals["alice"] = append(store.principals["alice"],
			Principal{ID: 7, Username: "alice", Level: 3})
		rec := request(router, http.MethodGet, "/students", "token-alice")
		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("deactivation applies on the next request", func(t *testing.T) {
		router, store := newTestRouter(t)
		rec := request(router, http.MethodGet, "/students", "token-alice")
		require.Equal(t, http.StatusOK, rec.Code)

		store.findPrincErr = ErrPrincipalInactive
		rec = request(router, http.MethodGet, "/students", "token-alice")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestPermissionsHandler(t *testing.T) {
	newPermRouter := func(t *testing.T) (chi.Router, *fakeStore) {
		t.Helper()
		gate, store := newTestGate(t)
		store.principals["root"] = []Principal{{ID: 99, Username: "root", Level: 3}}
		gateStoreVerifier := fakeVerifier{identities: map[string]string{
			"token-alice": "alice",
			"token-bob":   "bob",
			"token-root":  "root",
		}}
		resolver := NewResolver(gateStoreVerifier, store)
		registry := NewRegistry(store, nil, nil)
		gate = NewGate(registry, resolver)
		mw := Middleware{Gate: gate, CookieName: testCookie, Logger: slog.New(slog.DiscardHandler)}
		handler := NewHandler(slog.New(slog.DiscardHandler), registry, mw)

		r := chi.NewRouter()
		r.Route("/permissions", handler.MountRoutes)
		return r, store
	}

	t.Run("level zero principal can list the registry", func(t *testing.T) {
		router, _ := newPermRouter(t)
		rec := request(router, http.MethodGet, "/permissions/", "token-bob")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "student_view")
	})

	t.Run("editing requires level three", func(t *testing.T) {
		router, _ := newPermRouter(t)
		req := httptest.NewRequest(http.MethodPut, "/permissions/student_view", strings.NewReader(`{"level":2}`))
		req.AddCookie(&http.Cookie{Name: testCookie, Value: "token-alice"})
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("admin edits a task level", func(t *testing.T) {
		router, store := newPermRouter(t)
		req := httptest.NewRequest(http.MethodPut, "/permissions/student_view", strings.NewReader(`{"level":2}`))
		req.AddCookie(&http.Cookie{Name: testCookie, Value: "token-root"})
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, Level(2), store.levels[TaskStudentView])
	})

	t.Run("permissions_view edit answers 403", func(t *testing.T) {
		router, _ := newPermRouter(t)
		req := httptest.NewRequest(http.MethodPut, "/permissions/permissions_view", strings.NewReader(`{"level":0}`))
		req.AddCookie(&http.Cookie{Name: testCookie, Value: "token-root"})
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("unknown task answers 404", func(t *testing.T) {
		router, _ := newPermRouter(t)
		req := httptest.NewRequest(http.MethodPut, "/permissions/ghost_task", strings.NewReader(`{"level":1}`))
		req.AddCookie(&http.Cookie{Name: testCookie, Value: "token-root"})
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("out-of-range level answers 422", func(t *testing.T) {
		router, _ := newPermRouter(t)
		req := httptest.NewRequest(http.MethodPut, "/permissions/student_view", strings.NewReader(`{"level":4}`))
		req.AddCookie(&http.Cookie{Name: testCookie, Value: "token-root"})
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})
}
