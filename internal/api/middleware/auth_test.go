package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"aquafarm-hrm-api-server/internal/auth"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupProtectedRouter(roles ...string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	group := router.Group("/")
	group.Use(Authenticate())
	if len(roles) > 0 {
		group.Use(Authorize(roles...))
	}
	group.GET("/protected", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"userId": c.GetString("user_id"),
			"role":   c.GetString("user_role"),
		})
	})
	return router
}

func TestAuthenticate(t *testing.T) {
	auth.SetSecret("middleware-test-secret")
	router := setupProtectedRouter()

	t.Run("missing header is rejected", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("header without Bearer prefix is rejected", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "just-a-token")
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("garbage token is rejected", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer garbage")
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("valid token passes and claims land in context", func(t *testing.T) {
		token, err := auth.GenerateJWT("admin@example.com", "admin", "admin@example.com", "SITE-01", time.Hour)
		require.NoError(t, err)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "admin@example.com")
	})
}

func TestAuthorize(t *testing.T) {
	auth.SetSecret("middleware-test-secret")
	router := setupProtectedRouter("admin", "superadmin")

	request := func(role string) *httptest.ResponseRecorder {
		token, err := auth.GenerateJWT("u@example.com", role, "u@example.com", "", time.Hour)
		require.NoError(t, err)
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		router.ServeHTTP(w, req)
		return w
	}

	assert.Equal(t, http.StatusOK, request("admin").Code)
	assert.Equal(t, http.StatusOK, request("superadmin").Code)
	assert.Equal(t, http.StatusForbidden, request("employee").Code)
	assert.Equal(t, http.StatusForbidden, request("").Code)
}
