package auth_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/printeez/backend/internal/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "test-secret"

func protected(t *testing.T, handler http.Handler, token string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestMiddleware(t *testing.T) {
	var got auth.Identity
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = auth.FromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	})
	handler := auth.Middleware(secret)(inner)

	t.Run("valid token", func(t *testing.T) {
		token, err := auth.NewToken(secret, auth.Identity{UserID: "u-1", Email: "u@printeez.test", Admin: true}, time.Minute)
		require.NoError(t, err)

		rec := protected(t, handler, token)
		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Equal(t, "u-1", got.UserID)
		assert.Equal(t, "u@printeez.test", got.Email)
		assert.True(t, got.Admin)
	})

	t.Run("missing token", func(t *testing.T) {
		rec := protected(t, handler, "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("wrong secret", func(t *testing.T) {
		token, err := auth.NewToken("other-secret", auth.Identity{UserID: "u-1"}, time.Minute)
		require.NoError(t, err)

		rec := protected(t, handler, token)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("expired token", func(t *testing.T) {
		token, err := auth.NewToken(secret, auth.Identity{UserID: "u-1"}, -time.Minute)
		require.NoError(t, err)

		rec := protected(t, handler, token)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestRequireAdmin(t *testing.T) {
	inner := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	handler := auth.Middleware(secret)(auth.RequireAdmin(inner))

	t.Run("admin passes", func(t *testing.T) {
		token, err := auth.NewToken(secret, auth.Identity{UserID: "a-1", Admin: true}, time.Minute)
		require.NoError(t, err)

		rec := protected(t, handler, token)
		assert.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("non-admin forbidden", func(t *testing.T) {
		token, err := auth.NewToken(secret, auth.Identity{UserID: "u-1"}, time.Minute)
		require.NoError(t, err)

		rec := protected(t, handler, token)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}
