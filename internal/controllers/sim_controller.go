package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lib/pq"

	"fleetdesk/internal/config"
	"fleetdesk/internal/models"
)

func CreateSimCard(c *gin.Context) {
	var input struct {
		ICCID    string `json:"iccid" binding:"required"`
		MSISDN   string `json:"msisdn"`
		Provider string `json:"provider"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid SIM input: " + err.Error()})
		return
	}

	sim := models.SimCard{
		ICCID:     input.ICCID,
		MSISDN:    input.MSISDN,
		Provider:  input.Provider,
		AccountID: c.GetUint("account_id"),
		Active:    true,
	}
	if err := config.DB.Create(&sim).Error; err != nil {
		if pgErr, ok := err.(*pq.Error); ok && pgErr.Code == "23505" {
			c.JSON(http.StatusConflict, gin.H{"error": "ICCID already registered"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create SIM card: " + err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"sim_card": sim})
}

func ListSimCards(c *gin.Context) {
	accountID := c.GetUint("account_id")

	var sims []models.SimCard
	if err := config.DB.Where("account_id = ?", accountID).Find(&sims).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error listing SIM cards: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": sims})
}

func UpdateSimCard(c *gin.Context) {
	accountID := c.GetUint("account_id")
	id := c.Param("id")

	var sim models.SimCard
	if err := config.DB.Where("id = ? AND account_id = ?", id, accountID).First(&sim).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "SIM card not found"})
		return
	}

	if err := c.ShouldBindJSON(&sim); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid update"})
		return
	}

	config.DB.Save(&sim)
	c.JSON(http.StatusOK, gin.H{"sim_card": sim})
}

func DeleteSimCard(c *gin.Context) {
	accountID := c.GetUint("account_id")
	id := c.Param("id")

	var sim models.SimCard
	if err := config.DB.Where("id = ? AND account_id = ?", id, accountID).First(&sim).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "SIM card not found"})
		return
	}

	config.DB.Delete(&sim)
	c.JSON(http.StatusOK, gin.H{"message": "SIM card deleted"})
}
