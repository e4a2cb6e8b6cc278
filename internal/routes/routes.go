package routes

import (
	ginlog "github.com/gin-contrib/logger"
	"github.com/gin-gonic/gin"

	"fleetdesk/internal/middleware"
)

func SetupRouter() *gin.Engine {
	r := gin.New()

	// Middleware must be installed before any route is registered.
	r.Use(gin.Recovery())
	r.Use(ginlog.SetLogger())
	r.Use(middleware.CORS())

	AuthRoutes(r)
	AccountRoutes(r)
	VehicleRoutes(r)
	DriverRoutes(r)
	SimRoutes(r)
	GeofenceRoutes(r)
	HistoryRoutes(r)
	TrackingRoutes(r)

	return r
}
