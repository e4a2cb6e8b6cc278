package controllers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"fleetdesk/internal/config"
	"fleetdesk/internal/geo"
	"fleetdesk/internal/models"
)

type geofenceInput struct {
	Name         string           `json:"name" binding:"required"`
	Shape        string           `json:"shape" binding:"required"`
	CenterLat    float64          `json:"center_lat"`
	CenterLng    float64          `json:"center_lng"`
	RadiusMeters float64          `json:"radius_meters"`
	Vertices     []geo.Coordinate `json:"vertices"`
}

func CreateGeofence(c *gin.Context) {
	var input geofenceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid geofence input: " + err.Error()})
		return
	}

	shape := strings.ToLower(input.Shape)
	switch shape {
	case "circle":
		if input.RadiusMeters <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "circle geofence requires a positive radius_meters"})
			return
		}
	case "polygon":
		if len(input.Vertices) < 3 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "polygon geofence requires at least 3 vertices"})
			return
		}
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "shape must be 'circle' or 'polygon'"})
		return
	}

	fence := models.Geofence{
		Name:         input.Name,
		AccountID:    c.GetUint("account_id"),
		Shape:        shape,
		CenterLat:    input.CenterLat,
		CenterLng:    input.CenterLng,
		RadiusMeters: input.RadiusMeters,
	}
	if shape == "polygon" {
		raw, err := json.Marshal(input.Vertices)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "could not encode vertices"})
			return
		}
		fence.Vertices = raw
	}

	if err := config.DB.Create(&fence).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create geofence: " + err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"geofence": fence})
}

func ListGeofences(c *gin.Context) {
	accountID := c.GetUint("account_id")

	var fences []models.Geofence
	if err := config.DB.Where("account_id = ?", accountID).Find(&fences).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error listing geofences: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": fences})
}

func DeleteGeofence(c *gin.Context) {
	accountID := c.GetUint("account_id")
	id := c.Param("id")

	var fence models.Geofence
	if err := config.DB.Where("id = ? AND account_id = ?", id, accountID).First(&fence).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Geofence not found"})
		return
	}

	config.DB.Delete(&fence)
	c.JSON(http.StatusOK, gin.H{"message": "Geofence deleted"})
}

// CheckGeofence reports whether a position lies inside the named geofence.
func CheckGeofence(c *gin.Context) {
	accountID := c.GetUint("account_id")
	id := c.Param("id")

	var body struct {
		Lat float64 `json:"lat" binding:"required"`
		Lng float64 `json:"lng" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid position: " + err.Error()})
		return
	}

	var fence models.Geofence
	if err := config.DB.Where("id = ? AND account_id = ?", id, accountID).First(&fence).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Geofence not found"})
		return
	}

	p := geo.Coordinate{Lat: body.Lat, Lng: body.Lng}
	var inside bool
	switch fence.Shape {
	case "circle":
		inside = geo.InCircle(p, geo.Coordinate{Lat: fence.CenterLat, Lng: fence.CenterLng}, fence.RadiusMeters)
	case "polygon":
		var vertices []geo.Coordinate
		if err := json.Unmarshal(fence.Vertices, &vertices); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "stored vertices are corrupt"})
			return
		}
		inside = geo.InPolygon(p, vertices)
	}

	c.JSON(http.StatusOK, gin.H{"geofence_id": fence.ID, "inside": inside})
}
