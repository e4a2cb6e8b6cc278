package routes

import (
	"fleetdesk/internal/controllers"
	"fleetdesk/internal/middleware"

	"github.com/gin-gonic/gin"
)

func AuthRoutes(r *gin.Engine) {
	auth := r.Group("/auth")
	{
		auth.POST("/signup", controllers.SignupUser)
		auth.POST("/login", controllers.LoginUser)
	}

	users := r.Group("/users")
	users.Use(middleware.RequireRole("admin"))
	{
		users.GET("/", controllers.ListUsers)
	}
}
