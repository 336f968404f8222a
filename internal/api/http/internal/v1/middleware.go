package v1

import (
	"crypto/subtle"
	"net/http"

	"github.com/aetherdigital/backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const adminKeyHeader = "X-Admin-Key"

// adminMiddleware closes operator routes unless X-Admin-Key matches the configured key.
// With no key configured every admin request is refused.
func (h *Handler) adminMiddleware(c *gin.Context) {
	expected := h.config.Auth.AdminAPIKey
	provided := c.GetHeader(adminKeyHeader)

	if expected == "" || subtle.ConstantTimeCompare([]byte(expected), []byte(provided)) != 1 {
		logger.Warn("admin request refused", zap.String("path", c.FullPath()), zap.String("ip", c.ClientIP()))
		errorResponse(c, http.StatusForbidden, AdminKeyInvalidCode)
		return
	}

	c.Next()
}
