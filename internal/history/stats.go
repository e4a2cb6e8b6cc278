package history

import (
	"fmt"
	"time"

	"fleetdesk/internal/geo"
)

// Summary is the derived trip statistics object handed to the view layer.
type Summary struct {
	DistanceKm     string `json:"distance_km"`
	MovingTime     string `json:"moving_time"`
	ViolationCount int    `json:"violation_count"`
}

// TotalDistanceKm sums the haversine distance over consecutive fix pairs.
// Sequences shorter than two points travel nowhere. Fixes with malformed
// coordinates contribute no segment.
func TotalDistanceKm(points []Point) float64 {
	if len(points) < 2 {
		return 0
	}
	var total float64
	for i := 1; i < len(points); i++ {
		if !points[i-1].Valid() || !points[i].Valid() {
			continue
		}
		total += geo.DistanceKm(points[i-1].Coordinate(), points[i].Coordinate())
	}
	return total
}

// Span returns the wall-clock difference between the last and first fix.
// This is elapsed calendar time, not stop-excluded moving time; the trip
// screens have always labelled it "moving time" and that reading is kept.
func Span(points []Point) time.Duration {
	if len(points) < 2 {
		return 0
	}
	return points[len(points)-1].Timestamp.Sub(points[0].Timestamp)
}

// FormatSpan renders a duration as whole hours and whole remainder minutes,
// truncating rather than rounding.
func FormatSpan(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	minutes := int(d.Minutes())
	return fmt.Sprintf("%dh %dm", minutes/60, minutes%60)
}

// Summarize derives the trip summary for one fetched sequence.
func Summarize(points []Point) Summary {
	return Summary{
		DistanceKm:     fmt.Sprintf("%.1f", TotalDistanceKm(points)),
		MovingTime:     FormatSpan(Span(points)),
		ViolationCount: len(Violations(points)),
	}
}
