package history

import (
	"encoding/json"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPointUnmarshalNumericStrings(t *testing.T) {
	raw := `{"device_id":"DL8CAF5031","latitude":"28.6139","longitude":"77.2090","speed":"42.5","heading":"180","timestamp":"2024-03-01T10:00:00"}`

	var p Point
	require.NoError(t, json.Unmarshal([]byte(raw), &p))

	assert.Equal(t, "DL8CAF5031", p.Device)
	assert.InDelta(t, 28.6139, p.Lat, 1e-9)
	assert.InDelta(t, 77.2090, p.Lng, 1e-9)
	assert.InDelta(t, 42.5, p.SpeedKph, 1e-9)
	assert.InDelta(t, 180, p.Heading, 1e-9)
	// Bare local timestamp is treated as UTC.
	assert.Equal(t, time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC), p.Timestamp)
	assert.True(t, p.Valid())
}

func TestPointUnmarshalMissingCoordinates(t *testing.T) {
	raw := `{"device_id":"KA01AB1234","speed":12,"timestamp":"2024-03-01T10:00:00Z"}`

	var p Point
	require.NoError(t, json.Unmarshal([]byte(raw), &p))

	assert.True(t, math.IsNaN(p.Lat))
	assert.True(t, math.IsNaN(p.Lng))
	assert.False(t, p.Valid())
}

func TestPointUnmarshalGarbageCoordinates(t *testing.T) {
	raw := `{"device_id":"KA01AB1234","latitude":"not-a-number","longitude":77.1}`

	var p Point
	require.NoError(t, json.Unmarshal([]byte(raw), &p))
	assert.False(t, p.Valid())
}

func TestPointUnmarshalNegativeSpeedClamped(t *testing.T) {
	raw := `{"device_id":"X","latitude":1,"longitude":1,"speed":-4}`

	var p Point
	require.NoError(t, json.Unmarshal([]byte(raw), &p))
	assert.Equal(t, 0.0, p.SpeedKph)
}

func TestSanitizeDropsMalformed(t *testing.T) {
	points := []Point{
		{Device: "A", Lat: 1, Lng: 1},
		{Device: "A", Lat: math.NaN(), Lng: 1},
		{Device: "A", Lat: 2, Lng: math.Inf(1)},
		{Device: "A", Lat: 2, Lng: 2},
	}

	clean := Sanitize(points)
	require.Len(t, clean, 2)
	assert.Equal(t, 1.0, clean[0].Lat)
	assert.Equal(t, 2.0, clean[1].Lat)
}

func TestViolationsPreserveOriginalIndices(t *testing.T) {
	points := make([]Point, 5)
	for i := range points {
		points[i] = Point{Device: "DL8CAF5031", Lat: float64(i), Lng: float64(i)}
	}
	points[2].OverSpeed = true

	violations := Violations(points)
	require.Len(t, violations, 1)
	assert.Equal(t, 2, violations[0].Index)
	assert.Equal(t, points[2].Lat, violations[0].Lat)
}

func TestViolationsAnyFlagAscendingOrder(t *testing.T) {
	points := []Point{
		{},
		{Fatigue: true},
		{},
		{Collision: true},
		{OverSpeed: true, Fatigue: true},
		{Ignition: true, DoorOpen: true, Fault: true}, // not violation flags
	}

	violations := Violations(points)
	require.Len(t, violations, 3)
	assert.Equal(t, []int{1, 3, 4}, []int{violations[0].Index, violations[1].Index, violations[2].Index})
}
