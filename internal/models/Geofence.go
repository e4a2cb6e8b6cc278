package models

import "gorm.io/gorm"

// Geofence is either a circle (center + radius) or a polygon. Polygon
// vertices are stored as a JSON array of {lat,lng} objects.
type Geofence struct {
	gorm.Model
	Name      string `json:"name" binding:"required"`
	AccountID uint   `json:"account_id" gorm:"index"`
	Shape     string `json:"shape"` // "circle" or "polygon"

	CenterLat    float64 `json:"center_lat"`
	CenterLng    float64 `json:"center_lng"`
	RadiusMeters float64 `json:"radius_meters"`

	Vertices []byte `gorm:"type:bytea" json:"vertices,omitempty"`
}
