package exerciseserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// HealthAPI reports liveness and which backends the process runs with.
type HealthAPI struct {
	sessionStore string
	reviews      string
}

// NewHealthAPI records the backend names shown by /healthz.
func NewHealthAPI(sessionStore, reviews string) HealthAPI {
	return HealthAPI{sessionStore: sessionStore, reviews: reviews}
}

// Get /healthz
func (api *HealthAPI) Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":       "ok",
		"sessionStore": api.sessionStore,
		"reviews":      api.reviews,
	})
}
