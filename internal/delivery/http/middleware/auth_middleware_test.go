package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func newAdminRouter(secret string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/admin/submissions", AdminAuth(secret), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"subject": c.GetString("AdminSubject")})
	})
	return r
}

func getWithToken(r *gin.Engine, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/admin/submissions", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func TestAdminAuthValidToken(t *testing.T) {
	r := newAdminRouter(testSecret)
	token := signToken(t, testSecret, jwt.MapClaims{
		"sub": "praticienne",
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	w := getWithToken(r, token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "praticienne")
}

func TestAdminAuthMissingHeader(t *testing.T) {
	r := newAdminRouter(testSecret)
	assert.Equal(t, http.StatusUnauthorized, getWithToken(r, "").Code)
}

func TestAdminAuthWrongSecret(t *testing.T) {
	r := newAdminRouter(testSecret)
	token := signToken(t, "other-secret", jwt.MapClaims{"sub": "praticienne"})
	assert.Equal(t, http.StatusUnauthorized, getWithToken(r, token).Code)
}

func TestAdminAuthExpiredToken(t *testing.T) {
	r := newAdminRouter(testSecret)
	token := signToken(t, testSecret, jwt.MapClaims{
		"sub": "praticienne",
		"exp": time.Now().Add(-time.Hour).Unix(),
	})
	assert.Equal(t, http.StatusUnauthorized, getWithToken(r, token).Code)
}

func TestAdminAuthNotConfigured(t *testing.T) {
	r := newAdminRouter("")
	token := signToken(t, testSecret, jwt.MapClaims{"sub": "praticienne"})
	assert.Equal(t, http.StatusUnauthorized, getWithToken(r, token).Code)
}
