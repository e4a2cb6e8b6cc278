package routes

import (
	"fleetdesk/internal/controllers"
	"fleetdesk/internal/middleware"

	"github.com/gin-gonic/gin"
)

func HistoryRoutes(r *gin.Engine) {
	hist := r.Group("/history")
	hist.Use(middleware.RequireAuth())
	{
		hist.GET("/", controllers.GetHistory)
	}

	ingest := r.Group("/ingest")
	ingest.Use(middleware.RequireRole("operator", "admin"))
	{
		ingest.POST("/", controllers.IngestPosition)
	}
}
