package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// ReadyFunc reports dependency readiness by name.
type ReadyFunc func() map[string]bool

// RegisterHealth registers /health (liveness) and /ready, which answers 503
// until every dependency reported by ready is true.
func RegisterHealth(r *gin.Engine, started time.Time, ready ReadyFunc) {
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "healthy")
	})

	r.GET("/ready", func(c *gin.Context) {
		deps := map[string]bool{}
		if ready != nil {
			deps = ready()
		}
		status, code := "ready", http.StatusOK
		for _, ok := range deps {
			if !ok {
				status, code = "not_ready", http.StatusServiceUnavailable
				break
			}
		}
		c.JSON(code, gin.H{"status": status, "deps": deps, "uptime": time.Since(started).String()})
	})
}
