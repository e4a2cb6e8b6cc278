package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lib/pq"

	"fleetdesk/internal/config"
	"fleetdesk/internal/models"
)

func CreateAccount(c *gin.Context) {
	var input struct {
		Name          string `json:"name" binding:"required"`
		Contact       string `json:"contact"`
		Email         string `json:"email" binding:"required,email"`
		Phone         string `json:"phone"`
		Address       string `json:"address"`
		BillingPlanID uint   `json:"billing_plan_id"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid account input: " + err.Error()})
		return
	}

	account := models.Account{
		Name:          input.Name,
		Contact:       input.Contact,
		Email:         input.Email,
		Phone:         input.Phone,
		Address:       input.Address,
		BillingPlanID: input.BillingPlanID,
	}
	if err := config.DB.Create(&account).Error; err != nil {
		if pgErr, ok := err.(*pq.Error); ok && pgErr.Code == "23505" {
			c.JSON(http.StatusConflict, gin.H{"error": "account email already in use"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create account: " + err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"account": account})
}

func ListAccounts(c *gin.Context) {
	var accounts []models.Account
	if err := config.DB.Preload("BillingPlan").Find(&accounts).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error listing accounts: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": accounts})
}

func CreateBillingPlan(c *gin.Context) {
	var input struct {
		Name         string  `json:"name" binding:"required"`
		MonthlyPrice float64 `json:"monthly_price"`
		MaxVehicles  int     `json:"max_vehicles"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid billing plan input: " + err.Error()})
		return
	}

	plan := models.BillingPlan{
		Name:         input.Name,
		MonthlyPrice: input.MonthlyPrice,
		MaxVehicles:  input.MaxVehicles,
	}
	if err := config.DB.Create(&plan).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create billing plan: " + err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"billing_plan": plan})
}

func ListBillingPlans(c *gin.Context) {
	var plans []models.BillingPlan
	if err := config.DB.Find(&plans).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error listing billing plans: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": plans})
}
