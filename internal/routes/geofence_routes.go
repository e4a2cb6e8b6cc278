package routes

import (
	"fleetdesk/internal/controllers"
	"fleetdesk/internal/middleware"

	"github.com/gin-gonic/gin"
)

func GeofenceRoutes(r *gin.Engine) {
	fences := r.Group("/geofences")
	fences.Use(middleware.RequireAuth())
	{
		fences.POST("/", controllers.CreateGeofence)
		fences.GET("/", controllers.ListGeofences)
		fences.DELETE("/:id", controllers.DeleteGeofence)
		fences.POST("/:id/check", controllers.CheckGeofence)
	}
}
