package models

import "gorm.io/gorm"

type Vehicle struct {
	gorm.Model
	Registration string `json:"registration" gorm:"uniqueIndex"`
	DeviceID     string `json:"device_id" gorm:"index"`
	Make         string `json:"make"`
	VehicleType  string `json:"vehicle_type"`
	AccountID    uint   `json:"account_id" gorm:"index"`
	DriverID     uint   `json:"driver_id"`
	SimCardID    uint   `json:"sim_card_id"`
	InService    bool   `json:"in_service" gorm:"default:true"`

	SimCard *SimCard `gorm:"foreignKey:SimCardID" json:"sim_card,omitempty"`
}
