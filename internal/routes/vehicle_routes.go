package routes

import (
	"fleetdesk/internal/controllers"
	"fleetdesk/internal/middleware"

	"github.com/gin-gonic/gin"
)

func VehicleRoutes(r *gin.Engine) {
	vehicle := r.Group("/vehicles")
	vehicle.Use(middleware.RequireAuth())
	{
		vehicle.POST("/", controllers.CreateVehicle)
		vehicle.GET("/", controllers.GetMyVehicles)
		vehicle.PUT("/:id", controllers.UpdateVehicle)
		vehicle.DELETE("/:id", controllers.DeleteVehicle)
	}

	admin := r.Group("/admin/vehicles")
	admin.Use(middleware.RequireRole("admin"))
	{
		admin.GET("/", controllers.ListVehicles)
	}
}
