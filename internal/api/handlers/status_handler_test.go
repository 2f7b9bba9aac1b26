package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"aquafarm-hrm-api-server/internal/status"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetStatuses(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	handler := &StatusHandler{}
	router.GET("/statuses", handler.GetStatuses)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/statuses", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var body map[string][]status.DisplayMetadata
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))

	assert.Len(t, body["request"], 6)
	assert.Len(t, body["procurement"], 4)
	for _, m := range body["request"] {
		assert.NotEmpty(t, m.Status)
		assert.NotEmpty(t, m.Label)
		assert.NotEmpty(t, m.Color)
	}
}
