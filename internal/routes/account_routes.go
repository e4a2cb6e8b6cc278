package routes

import (
	"fleetdesk/internal/controllers"
	"fleetdesk/internal/middleware"

	"github.com/gin-gonic/gin"
)

func AccountRoutes(r *gin.Engine) {
	accounts := r.Group("/accounts")
	accounts.Use(middleware.RequireRole("admin"))
	{
		accounts.POST("/", controllers.CreateAccount)
		accounts.GET("/", controllers.ListAccounts)
	}

	plans := r.Group("/billing-plans")
	plans.Use(middleware.RequireAuth())
	{
		plans.GET("/", controllers.ListBillingPlans)
		plans.POST("/", middleware.RequireRole("admin"), controllers.CreateBillingPlan)
	}
}
