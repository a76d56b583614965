package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupGate(t *testing.T, tokens *JWTService) (*echo.Echo, *int, *uuid.UUID) {
	t.Helper()
	e := echo.New()
	calls := 0
	var seen uuid.UUID
	e.GET("/protected", func(c echo.Context) error {
		calls++
		id, ok := UserIDFromContext(c.Request().Context())
		require.True(t, ok)
		seen = id
		return c.String(http.StatusOK, "ok")
	}, RequireAuth(tokens))
	return e, &calls, &seen
}

func TestRequireAuth_NoHeader(t *testing.T) {
	tokens := NewJWTService("test-secret", time.Hour)
	e, calls, _ := setupGate(t, tokens)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "no token")
	assert.Equal(t, 0, *calls, "handler must not run after a rejection")
}

func TestRequireAuth_MalformedScheme(t *testing.T) {
	tokens := NewJWTService("test-secret", time.Hour)
	e, calls, _ := setupGate(t, tokens)

	token, err := tokens.Issue(uuid.New())
	require.NoError(t, err)

	for _, header := range []string{
		"Token " + token,
		"bearer " + token, // scheme is case-sensitive
		"Bearer",          // no space, no token
		token,             // bare token without scheme
	} {
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set(echo.HeaderAuthorization, header)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code, "header %q", header)
		assert.Contains(t, rec.Body.String(), "no token", "header %q", header)
	}
	assert.Equal(t, 0, *calls)
}

func TestRequireAuth_BadToken(t *testing.T) {
	tokens := NewJWTService("test-secret", time.Hour)
	e, calls, _ := setupGate(t, tokens)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer garbage")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "token failed")
	assert.Equal(t, 0, *calls)
}

func TestRequireAuth_ExpiredToken(t *testing.T) {
	expired := NewJWTService("test-secret", -time.Minute)
	tokens := NewJWTService("test-secret", time.Hour)
	e, calls, _ := setupGate(t, tokens)

	token, err := expired.Issue(uuid.New())
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	// The response must not say whether the token was expired or tampered.
	assert.Contains(t, rec.Body.String(), "token failed")
	assert.NotContains(t, rec.Body.String(), "expired")
	assert.Equal(t, 0, *calls)
}

func TestRequireAuth_Success(t *testing.T) {
	tokens := NewJWTService("test-secret", time.Hour)
	e, calls, seen := setupGate(t, tokens)

	userID := uuid.New()
	token, err := tokens.Issue(userID)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, *calls)
	assert.Equal(t, userID, *seen)
}
