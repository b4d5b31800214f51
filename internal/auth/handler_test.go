package auth

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/TreeNut-KR/jmedu-admin-sub000/internal/authz"
)

// fakeAuthzStore backs the resolver and registry with in-memory data.
type fakeAuthzStore struct {
	levels     map[authz.Task]authz.Level
	principals map[string]authz.Principal
}

func (f *fakeAuthzStore) GetLevel(ctx context.Context, task authz.Task) (authz.Level, error) {
	level, ok := f.levels[task]
	if !ok {
		return 0, authz.ErrTaskNotRegistered
	}
	return level, nil
}

func (f *fakeAuthzStore) SetLevel(ctx context.Context, task authz.Task, level authz.Level) error {
	f.levels[task] = level
	return nil
}

func (f *fakeAuthzStore) List(ctx context.Context) ([]authz.PermissionRecord, error) {
	records := make([]authz.PermissionRecord, 0, len(f.levels))
	for task, level := range f.levels {
		records = append(records, authz.PermissionRecord{Task: task, Level: level})
	}
	return records, nil
}

func (f *fakeAuthzStore) InsertDefault(ctx context.Context, task authz.Task, level authz.Level) error {
	if _, ok := f.levels[task]; !ok {
		f.levels[task] = level
	}
	return nil
}

func (f *fakeAuthzStore) FindPrincipal(ctx context.Context, username string) (authz.Principal, error) {
	p, ok := f.principals[username]
	if !ok {
		return authz.Principal{}, authz.ErrPrincipalNotFound
	}
	return p, nil
}

func newTestHandler(t *testing.T) (chi.Router, *Codec) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("correct-horse"), bcrypt.MinCost)
	require.NoError(t, err)

	repo := &fakeRepository{accounts: map[string]*Account{
		"alice": {ID: 1, Username: "alice", Name: "Alice", PasswordHash: string(hash), Level: 2, IsActive: true},
	}}
	store := &fakeAuthzStore{
		levels: map[authz.Task]authz.Level{
			authz.TaskPermissionsView: 0,
			authz.TaskStudentView:     1,
			authz.TaskStudentDelete:   3,
		},
		principals: map[string]authz.Principal{
			"alice": {ID: 1, Username: "alice", Name: "Alice", Level: 2},
		},
	}

	logger := slog.New(slog.DiscardHandler)
	codec := NewCodec("handler-test-secret", 30*time.Minute)
	resolver := authz.NewResolver(codec, store)
	registry := authz.NewRegistry(store, nil, logger)
	handler := NewHandler(logger, NewService(repo), codec, resolver, registry, "session_test", false)

	r := chi.NewRouter()
	r.Route("/auth", handler.MountRoutes)
	return r, codec
}

func sessionCookieFrom(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == "session_test" {
			return c
		}
	}
	t.Fatal("no session cookie set")
	return nil
}

func TestHandlerLogin(t *testing.T) {
	t.Run("valid login sets an http-only cookie", func(t *testing.T) {
		router, codec := newTestHandler(t)
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/auth/login",
			strings.NewReader(`{"username":"alice","password":"correct-horse"}`))
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		cookie := sessionCookieFrom(t, rec)
		assert.True(t, cookie.HttpOnly)
		assert.NotEmpty(t, cookie.Value)

		username, err := codec.Verify(cookie.Value)
		require.NoError(t, err)
		assert.Equal(t, "alice", username)
	})

	t.Run("wrong password answers 401 without a cookie", func(t *testing.T) {
		router, _ := newTestHandler(t)
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/auth/login",
			strings.NewReader(`{"username":"alice","password":"wrong-horse"}`))
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Empty(t, rec.Result().Cookies())
	})

	t.Run("short password is rejected before the store", func(t *testing.T) {
		router, _ := newTestHandler(t)
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/auth/login",
			strings.NewReader(`{"username":"alice","password":"short"}`))
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})
}

func TestHandlerLogout(t *testing.T) {
	router, _ := newTestHandler(t)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	cookie := sessionCookieFrom(t, rec)
	assert.Empty(t, cookie.Value)
	assert.Equal(t, -1, cookie.MaxAge)
}

func TestHandlerStatus(t *testing.T) {
	t.Run("valid session returns the principal with its current level", func(t *testing.T) {
		router, codec := newTestHandler(t)
		credential, err := codec.Issue(1, "alice")
		require.NoError(t, err)

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/auth/status", nil)
		req.AddCookie(&http.Cookie{Name: "session_test", Value: credential})
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		var principal authz.Principal
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &principal))
		assert.Equal(t, "alice", principal.Username)
		assert.Equal(t, authz.Level(2), principal.Level)
	})

	t.Run("no session answers 401", func(t *testing.T) {
		router, _ := newTestHandler(t)
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/auth/status", nil)
		router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestHandlerCapabilities(t *testing.T) {
	router, codec := newTestHandler(t)
	credential, err := codec.Issue(1, "alice")
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/auth/capabilities", nil)
	req.AddCookie(&http.Cookie{Name: "session_test", Value: credential})
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Level        int             `json:"level"`
		Capabilities map[string]bool `json:"capabilities"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	assert.Equal(t, 2, body.Level)
	assert.True(t, body.Capabilities["permissions_view"])
	assert.True(t, body.Capabilities["student_view"])
	assert.False(t, body.Capabilities["student_delete"])
}
