package auth_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/enertech-th/fieldforms/internal/http/auth"
	"github.com/enertech-th/fieldforms/internal/user"
)

func TestTokens_IssueParse(t *testing.T) {
	tokens := auth.NewTokens("test-secret", time.Hour)

	signed, err := tokens.Issue("somchai", user.RoleManager, time.Now())
	require.NoError(t, err)
	require.NotEmpty(t, signed)

	identity, err := tokens.Parse(signed)
	require.NoError(t, err)
	assert.Equal(t, "somchai", identity.Username)
	assert.Equal(t, user.RoleManager, identity.Role)
}

func TestTokens_Parse_WrongSecret(t *testing.T) {
	signed, err := auth.NewTokens("secret-one", time.Hour).Issue("somchai", user.RoleUser, time.Now())
	require.NoError(t, err)

	_, err = auth.NewTokens("secret-two", time.Hour).Parse(signed)
	assert.Error(t, err)
}

func TestTokens_Parse_Expired(t *testing.T) {
	tokens := auth.NewTokens("test-secret", time.Hour)

	signed, err := tokens.Issue("somchai", user.RoleUser, time.Now().Add(-2*time.Hour))
	require.NoError(t, err)

	_, err = tokens.Parse(signed)
	assert.Error(t, err)
}

func TestTokens_Middleware(t *testing.T) {
	tokens := auth.NewTokens("test-secret", time.Hour)

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, ok := auth.FromContext(r.Context())
		require.True(t, ok)
		assert.Equal(t, "somchai", identity.Username)
		w.WriteHeader(http.StatusOK)
	})

	handler := tokens.Middleware(next)

	t.Run("ValidToken", func(t *testing.T) {
		signed, err := tokens.Issue("somchai", user.RoleUser, time.Now())
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+signed)

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("MissingHeader", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("MalformedToken", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer not-a-token")

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestRequireRole(t *testing.T) {
	tokens := auth.NewTokens("test-secret", time.Hour)

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	handler := tokens.Middleware(auth.RequireRole(user.RoleAdmin)(next))

	request := func(role string) int {
		signed, err := tokens.Issue("somchai", role, time.Now())
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+signed)

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		return rec.Code
	}

	assert.Equal(t, http.StatusOK, request(user.RoleAdmin))
	assert.Equal(t, http.StatusForbidden, request(user.RoleUser))
}
