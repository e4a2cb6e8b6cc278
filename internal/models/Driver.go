package models

import "gorm.io/gorm"

type Driver struct {
	gorm.Model
	Name          string `json:"name"`
	Phone         string `json:"phone"`
	LicenseNumber string `json:"license_number"`
	AccountID     uint   `json:"account_id" gorm:"index"`
	VehicleID     uint   `json:"vehicle_id" gorm:"index"`
}
