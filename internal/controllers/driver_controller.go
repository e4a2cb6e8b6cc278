package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fleetdesk/internal/config"
	"fleetdesk/internal/models"
)

func CreateDriver(c *gin.Context) {
	var input struct {
		Name          string `json:"name" binding:"required"`
		Phone         string `json:"phone"`
		LicenseNumber string `json:"license_number" binding:"required"`
		VehicleID     uint   `json:"vehicle_id"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid driver input: " + err.Error()})
		return
	}

	accountID := c.GetUint("account_id")

	if input.VehicleID != 0 {
		var vehicle models.Vehicle
		if err := config.DB.Where("id = ? AND account_id = ?", input.VehicleID, accountID).First(&vehicle).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "vehicle_id does not belong to this account"})
			return
		}
	}

	driver := models.Driver{
		Name:          input.Name,
		Phone:         input.Phone,
		LicenseNumber: input.LicenseNumber,
		VehicleID:     input.VehicleID,
		AccountID:     accountID,
	}
	if err := config.DB.Create(&driver).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create driver: " + err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"driver": driver})
}

func ListDrivers(c *gin.Context) {
	accountID := c.GetUint("account_id")

	var drivers []models.Driver
	if err := config.DB.Where("account_id = ?", accountID).Find(&drivers).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error listing drivers: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": drivers})
}

func UpdateDriver(c *gin.Context) {
	accountID := c.GetUint("account_id")
	id := c.Param("id")

	var driver models.Driver
	if err := config.DB.Where("id = ? AND account_id = ?", id, accountID).First(&driver).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Driver not found"})
		return
	}

	if err := c.ShouldBindJSON(&driver); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid update"})
		return
	}

	config.DB.Save(&driver)
	c.JSON(http.StatusOK, gin.H{"driver": driver})
}

func DeleteDriver(c *gin.Context) {
	accountID := c.GetUint("account_id")
	id := c.Param("id")

	var driver models.Driver
	if err := config.DB.Where("id = ? AND account_id = ?", id, accountID).First(&driver).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Driver not found"})
		return
	}

	config.DB.Delete(&driver)
	c.JSON(http.StatusOK, gin.H{"message": "Driver deleted"})
}
