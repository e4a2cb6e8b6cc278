package main

import (
	"log"
	"net/http"

	"fleetdesk/internal/config"
	"fleetdesk/internal/logger"
	"fleetdesk/internal/routes"
)

func main() {
	// Initialize structured logging to file
	logger.Setup()

	// Connect to the database
	config.InitDB()

	// Router carries recovery, request logging and CORS middleware.
	r := routes.SetupRouter()

	log.Println("🚀 Server running at :8080")
	log.Fatal(http.ListenAndServe("0.0.0.0:8080", r))
}
