package models

import "gorm.io/gorm"

// Account represents a fleet customer organisation. Vehicles, drivers and
// geofences all hang off an account.
type Account struct {
	gorm.Model
	Name    string `json:"name" binding:"required"`
	Contact string `json:"contact"`
	Email   string `gorm:"unique;not null" json:"email" binding:"required,email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`

	BillingPlanID uint         `json:"billing_plan_id"`
	BillingPlan   *BillingPlan `gorm:"foreignKey:BillingPlanID" json:"billing_plan,omitempty"`

	Vehicles []Vehicle `gorm:"foreignKey:AccountID" json:"vehicles,omitempty"`
}

// BillingPlan is a priced tier an account subscribes to.
type BillingPlan struct {
	gorm.Model
	Name         string  `json:"name" binding:"required"`
	MonthlyPrice float64 `json:"monthly_price"`
	MaxVehicles  int     `json:"max_vehicles"`
}
