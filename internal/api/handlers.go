package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"movingday/internal/config"
)

// GET /health
func healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}

// GET /config
func configHandler(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Only return non-sensitive config fields
		c.JSON(http.StatusOK, gin.H{
			"server": gin.H{
				"host":    cfg.Server.Host,
				"port":    cfg.Server.Port,
				"subpath": cfg.Server.Subpath,
			},
			"catalog": gin.H{
				"cache_ttl_minutes": cfg.Catalog.CacheTTLMinutes,
			},
		})
	}
}

// currentUserID returns the authenticated user's id as the string key the
// engine and stores work with.
func currentUserID(c *gin.Context) (string, bool) {
	v, exists := c.Get("userId")
	if !exists {
		return "", false
	}
	id, ok := v.(uint)
	if !ok {
		return "", false
	}
	return fmt.Sprintf("%d", id), true
}
