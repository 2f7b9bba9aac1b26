package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestRateLimitFallsBackToMemoryStore(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	// rdb nil: limiter dùng memory store.
	router.POST("/login", RateLimit(nil, "3-M"), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	hit := func() int {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/login", nil)
		router.ServeHTTP(w, req)
		return w.Code
	}

	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusOK, hit())
	}
	// Vượt hạn mức trong cùng cửa sổ thì bị chặn.
	assert.Equal(t, http.StatusTooManyRequests, hit())
}
