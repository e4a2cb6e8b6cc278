package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fleetdesk/internal/config"
	"fleetdesk/internal/models"
)

// CreateVehicle registers a new vehicle under the caller's account.
func CreateVehicle(c *gin.Context) {
	var input struct {
		Registration string `json:"registration" binding:"required"`
		DeviceID     string `json:"device_id" binding:"required"`
		Make         string `json:"make"`
		VehicleType  string `json:"vehicle_type"`
		SimCardID    uint   `json:"sim_card_id"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid vehicle input: " + err.Error()})
		return
	}

	accountID := c.GetUint("account_id")

	vehicle := models.Vehicle{
		Registration: input.Registration,
		DeviceID:     input.DeviceID,
		Make:         input.Make,
		VehicleType:  input.VehicleType,
		SimCardID:    input.SimCardID,
		AccountID:    accountID,
		InService:    true,
	}

	if err := config.DB.Create(&vehicle).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create vehicle: " + err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"vehicle": vehicle})
}

func GetMyVehicles(c *gin.Context) {
	accountID := c.GetUint("account_id")

	var vehicles []models.Vehicle
	if err := config.DB.Where("account_id = ?", accountID).Preload("SimCard").Find(&vehicles).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching vehicles"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"vehicles": vehicles})
}

// ListVehicles is for administrative use and returns every vehicle.
func ListVehicles(c *gin.Context) {
	var vehicles []models.Vehicle
	if err := config.DB.Preload("SimCard").Find(&vehicles).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error listing vehicles: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": vehicles})
}

func UpdateVehicle(c *gin.Context) {
	accountID := c.GetUint("account_id")
	id := c.Param("id")

	var vehicle models.Vehicle
	if err := config.DB.Where("id = ? AND account_id = ?", id, accountID).First(&vehicle).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Vehicle not found"})
		return
	}

	if err := c.ShouldBindJSON(&vehicle); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid update"})
		return
	}

	config.DB.Save(&vehicle)
	c.JSON(http.StatusOK, gin.H{"vehicle": vehicle})
}

func DeleteVehicle(c *gin.Context) {
	accountID := c.GetUint("account_id")
	id := c.Param("id")

	var vehicle models.Vehicle
	if err := config.DB.Where("id = ? AND account_id = ?", id, accountID).First(&vehicle).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Vehicle not found"})
		return
	}

	config.DB.Delete(&vehicle)
	c.JSON(http.StatusOK, gin.H{"message": "Vehicle deleted"})
}
