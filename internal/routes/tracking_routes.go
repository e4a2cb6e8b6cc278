package routes

import (
	"fleetdesk/internal/controllers"

	"github.com/gin-gonic/gin"
)

func TrackingRoutes(r *gin.Engine) {
	// Auth is via a JWT query token inside the handler; browsers cannot set
	// headers on WebSocket upgrades.
	r.GET("/ws/tracking", controllers.HandleTrackingWebSocket)
}
