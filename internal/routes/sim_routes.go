package routes

import (
	"fleetdesk/internal/controllers"
	"fleetdesk/internal/middleware"

	"github.com/gin-gonic/gin"
)

func SimRoutes(r *gin.Engine) {
	sims := r.Group("/sim-cards")
	sims.Use(middleware.RequireAuth())
	{
		sims.POST("/", controllers.CreateSimCard)
		sims.GET("/", controllers.ListSimCards)
		sims.PUT("/:id", controllers.UpdateSimCard)
		sims.DELETE("/:id", controllers.DeleteSimCard)
	}
}
