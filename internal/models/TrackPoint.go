package models

import (
	"time"

	"gorm.io/gorm"
)

// TrackPoint is one persisted GPS fix for a vehicle device.
type TrackPoint struct {
	gorm.Model
	DeviceID  string    `json:"device_id" gorm:"index:idx_track_device_time"`
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	SpeedKph  float64   `json:"speed"`
	Heading   float64   `json:"heading"`
	Timestamp time.Time `json:"timestamp" gorm:"index:idx_track_device_time"`

	Ignition  bool `json:"ignition"`
	DoorOpen  bool `json:"door_open"`
	Fault     bool `json:"fault"`
	OverSpeed bool `json:"over_speed"`
	Collision bool `json:"collision"`
	Fatigue   bool `json:"fatigue"`
}
