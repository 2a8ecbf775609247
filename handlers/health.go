package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"s7scheduling/scheduling"
)

func HealthCheck(svc *scheduling.Service, storeKind, version string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svc.Ping(c.Request.Context()); err != nil {
			_ = c.Error(err)
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status": "unavailable",
				"store":  storeKind,
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"store":   storeKind,
			"version": version,
		})
	}
}
