package storefrontserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/xtremepizzaria/storefront/internal/platform/statestore"
)

// HealthAPI reports liveness and persistence readiness.
type HealthAPI struct {
	health *statestore.Health
}

func NewHealthAPI(health *statestore.Health) HealthAPI {
	return HealthAPI{health: health}
}

// Get /healthz
func (api *HealthAPI) Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Get /readyz
// A failed durable write reports degraded; requests are still served from memory.
func (api *HealthAPI) Readyz(c *gin.Context) {
	degraded, err := api.health.Degraded()
	if degraded {
		reason := "durable write failed"
		if err != nil {
			reason = err.Error()
		}
		c.JSON(http.StatusOK, gin.H{"status": "degraded", "reason": reason})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}
