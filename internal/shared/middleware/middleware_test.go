package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"stepperslife/internal/shared/config"
	"stepperslife/internal/shared/identity"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return tok
}

func newEngine(handlers ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	chain := append(handlers, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"role": identity.FromContext(c).Role})
	})
	r.GET("/x", chain...)
	return r
}

func do(r *gin.Engine, header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestJWTAuth(t *testing.T) {
	cfg := &config.Config{JWT: config.JWTConfig{Secret: testSecret}}
	r := newEngine(JWTAuthWithConfig(cfg))

	valid := signToken(t, jwt.MapClaims{
		"user_id": "6f1c7a52-8a48-4c1e-9d7c-1d1f4f0b2a10",
		"role":    "ORGANIZER",
		"type":    "access",
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
	refresh := signToken(t, jwt.MapClaims{"type": "refresh", "exp": time.Now().Add(time.Hour).Unix()})
	expired := signToken(t, jwt.MapClaims{"type": "access", "exp": time.Now().Add(-time.Hour).Unix()})

	assert.Equal(t, http.StatusOK, do(r, "Bearer "+valid).Code)
	assert.Equal(t, http.StatusUnauthorized, do(r, "").Code)
	assert.Equal(t, http.StatusUnauthorized, do(r, "Token "+valid).Code)
	assert.Equal(t, http.StatusUnauthorized, do(r, "Bearer "+refresh).Code)
	assert.Equal(t, http.StatusUnauthorized, do(r, "Bearer "+expired).Code)
}

func TestRequireRoles(t *testing.T) {
	cfg := &config.Config{JWT: config.JWTConfig{Secret: testSecret}}
	r := newEngine(JWTAuthWithConfig(cfg), RequireRoles(identity.RoleAdmin, identity.RoleService))

	svc := signToken(t, jwt.MapClaims{"user_id": "6f1c7a52-8a48-4c1e-9d7c-1d1f4f0b2a10", "role": "SERVICE", "type": "access"})
	user := signToken(t, jwt.MapClaims{"user_id": "6f1c7a52-8a48-4c1e-9d7c-1d1f4f0b2a10", "role": "USER", "type": "access"})

	assert.Equal(t, http.StatusOK, do(r, "Bearer "+svc).Code)
	assert.Equal(t, http.StatusForbidden, do(r, "Bearer "+user).Code)
}

func TestOptionalAuth_AnonymousPassesThrough(t *testing.T) {
	cfg := &config.Config{JWT: config.JWTConfig{Secret: testSecret}}
	r := newEngine(OptionalAuthWithConfig(cfg))

	assert.Equal(t, http.StatusOK, do(r, "").Code)
	assert.Equal(t, http.StatusOK, do(r, "Bearer garbage").Code)
}
