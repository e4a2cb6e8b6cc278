package models

import "gorm.io/gorm"

// SimCard is the data SIM fitted to a tracking device.
type SimCard struct {
	gorm.Model
	ICCID     string `json:"iccid" gorm:"uniqueIndex"`
	MSISDN    string `json:"msisdn"`
	Provider  string `json:"provider"`
	AccountID uint   `json:"account_id" gorm:"index"`
	Active    bool   `json:"active" gorm:"default:true"`
}
