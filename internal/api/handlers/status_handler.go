// server/internal/api/handlers/status_handler.go
package handlers

import (
	"net/http"

	"aquafarm-hrm-api-server/internal/status"

	"github.com/gin-gonic/gin"
)

type StatusHandler struct{}

// GetStatuses trả về bảng metadata hiển thị cho mọi trạng thái,
// để client render nhãn và màu mà không cần hardcode.
func (h *StatusHandler) GetStatuses(c *gin.Context) {
	c.JSON(http.StatusOK, status.AllDisplayMetadata())
}
