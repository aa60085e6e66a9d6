package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"rihla/globals"

	"github.com/golang-jwt/jwt/v5"
	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signToken(t *testing.T, roles []string, expiry time.Duration) string {
	t.Helper()
	claims := &Claims{
		Username: "tester",
		UserID:   "u123",
		Role:     roles,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiry)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(globals.JwtSecret)
	require.NoError(t, err)
	return token
}

func okHandler(called *bool) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		*called = true
		w.WriteHeader(http.StatusOK)
	}
}

func TestAuthenticateValidToken(t *testing.T) {
	var called bool
	var gotUserID string
	handler := Authenticate(func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		called = true
		gotUserID, _ = r.Context().Value(globals.UserIDKey).(string)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/bookings", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, []string{"user"}, time.Hour))
	rec := httptest.NewRecorder()
	handler(rec, req, nil)

	assert.True(t, called)
	assert.Equal(t, "u123", gotUserID)
}

func TestAuthenticateMissingToken(t *testing.T) {
	var called bool
	handler := Authenticate(okHandler(&called))

	rec := httptest.NewRecorder()
	handler(rec, httptest.NewRequest(http.MethodGet, "/api/bookings", nil), nil)

	assert.False(t, called)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthenticateExpiredToken(t *testing.T) {
	var called bool
	handler := Authenticate(okHandler(&called))

	req := httptest.NewRequest(http.MethodGet, "/api/bookings", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, []string{"user"}, -time.Hour))
	rec := httptest.NewRecorder()
	handler(rec, req, nil)

	assert.False(t, called)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAdminRejectsPlainUser(t *testing.T) {
	var called bool
	handler := Authenticate(RequireAdmin(okHandler(&called)))

	req := httptest.NewRequest(http.MethodGet, "/api/stats", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, []string{"user"}, time.Hour))
	rec := httptest.NewRecorder()
	handler(rec, req, nil)

	assert.False(t, called)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRequireAdminAllowsAdmin(t *testing.T) {
	var called bool
	handler := Authenticate(RequireAdmin(okHandler(&called)))

	req := httptest.NewRequest(http.MethodGet, "/api/stats", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, []string{"user", "admin"}, time.Hour))
	rec := httptest.NewRecorder()
	handler(rec, req, nil)

	assert.True(t, called)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestValidateJWTAcceptsBearerToken(t *testing.T) {
	claims, err := ValidateJWT("Bearer " + signToken(t, []string{"user"}, time.Hour))
	require.NoError(t, err)
	assert.Equal(t, "u123", claims.UserID)
}

func TestValidateJWTRejectsNonBearer(t *testing.T) {
	// a bare token must not have its first bytes eaten as a scheme prefix
	for _, token := range []string{
		signToken(t, []string{"user"}, time.Hour),
		"Basic " + signToken(t, []string{"user"}, time.Hour),
		"",
		"Bearer",
	} {
		_, err := ValidateJWT(token)
		assert.Error(t, err)
	}
}

func TestOptionalAuthWithoutToken(t *testing.T) {
	var called bool
	handler := OptionalAuth(okHandler(&called))

	rec := httptest.NewRecorder()
	handler(rec, httptest.NewRequest(http.MethodGet, "/api/trips", nil), nil)

	assert.True(t, called)
	assert.Equal(t, http.StatusOK, rec.Code)
}
