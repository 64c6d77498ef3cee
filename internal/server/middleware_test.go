package server

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"bakehouse/internal/domain"
)

const testSecret = "test-secret"

func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

func protectedHandler(t *testing.T, sawRequest *bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*sawRequest = true
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	saw := false
	handler := AuthMiddleware(testSecret, zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		saw = true
		assert.Equal(t, uint(7), r.Context().Value(UserIDCtxKey))
		assert.Equal(t, domain.RoleAdmin, r.Context().Value(RoleCtxKey))
	}))

	token := signToken(t, jwt.MapClaims{
		"user_id": 7,
		"role":    domain.RoleAdmin,
		"exp":     jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})

	req := httptest.NewRequest(http.MethodGet, "/api/reports", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, saw)
}

func TestAuthMiddleware_RejectsMissingAndMalformedHeaders(t *testing.T) {
	saw := false
	handler := AuthMiddleware(testSecret, zap.NewNop())(protectedHandler(t, &saw))

	for _, header := range []string{"", "Token abc", "Bearer"} {
		req := httptest.NewRequest(http.MethodGet, "/api/reports", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code, "header %q", header)
	}
	assert.False(t, saw)
}

func TestAuthMiddleware_RejectsExpiredToken(t *testing.T) {
	saw := false
	handler := AuthMiddleware(testSecret, zap.NewNop())(protectedHandler(t, &saw))

	token := signToken(t, jwt.MapClaims{
		"user_id": 7,
		"role":    domain.RoleStaff,
		"exp":     jwt.NewNumericDate(time.Now().Add(-time.Hour)),
	})

	req := httptest.NewRequest(http.MethodGet, "/api/reports", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, saw)
}

func TestRequireRole_ForbidsOtherRoles(t *testing.T) {
	saw := false
	handler := AuthMiddleware(testSecret, zap.NewNop())(
		RequireRole(domain.RoleAdmin)(protectedHandler(t, &saw)))

	token := signToken(t, jwt.MapClaims{
		"user_id": 7,
		"role":    domain.RoleStaff,
		"exp":     jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})

	req := httptest.NewRequest(http.MethodGet, "/api/reports", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.False(t, saw)
}
