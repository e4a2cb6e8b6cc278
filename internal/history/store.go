package history

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"fleetdesk/internal/models"
)

// Store persists and queries track points in the back-office database.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Save persists one fix.
func (s *Store) Save(p Point) error {
	record := models.TrackPoint{
		DeviceID:  p.Device,
		Latitude:  p.Lat,
		Longitude: p.Lng,
		SpeedKph:  p.SpeedKph,
		Heading:   p.Heading,
		Timestamp: p.Timestamp,
		Ignition:  p.Ignition,
		DoorOpen:  p.DoorOpen,
		Fault:     p.Fault,
		OverSpeed: p.OverSpeed,
		Collision: p.Collision,
		Fatigue:   p.Fatigue,
	}
	if err := s.db.Create(&record).Error; err != nil {
		return fmt.Errorf("history: save point: %w", err)
	}
	return nil
}

// Range returns the sanitized, timestamp-ascending sequence for one device
// between start and end inclusive.
func (s *Store) Range(device string, start, end time.Time) ([]Point, error) {
	var records []models.TrackPoint
	err := s.db.
		Where("device_id = ? AND timestamp BETWEEN ? AND ?", device, start, end).
		Order("timestamp asc").
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("history: range query: %w", err)
	}

	points := make([]Point, 0, len(records))
	for _, r := range records {
		points = append(points, Point{
			Device:    r.DeviceID,
			Lat:       r.Latitude,
			Lng:       r.Longitude,
			SpeedKph:  r.SpeedKph,
			Heading:   r.Heading,
			Timestamp: r.Timestamp,
			Ignition:  r.Ignition,
			DoorOpen:  r.DoorOpen,
			Fault:     r.Fault,
			OverSpeed: r.OverSpeed,
			Collision: r.Collision,
			Fatigue:   r.Fatigue,
		})
	}
	return Sanitize(points), nil
}
