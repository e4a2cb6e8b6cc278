package history

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"fleetdesk/internal/geo"
)

// Point is a single GPS fix reported by a vehicle device.
type Point struct {
	Device    string    `json:"device_id"`
	Lat       float64   `json:"latitude"`
	Lng       float64   `json:"longitude"`
	SpeedKph  float64   `json:"speed"`
	Heading   float64   `json:"heading"`
	Timestamp time.Time `json:"timestamp"`

	Ignition  bool `json:"ignition"`
	DoorOpen  bool `json:"door_open"`
	Fault     bool `json:"fault"`
	OverSpeed bool `json:"over_speed"`
	Collision bool `json:"collision"`
	Fatigue   bool `json:"fatigue"`
}

// looseFloat tolerates numbers arriving as JSON strings, a common quirk of
// tracker feeds. Anything unparseable decodes to NaN instead of failing the
// whole payload.
type looseFloat float64

func (f *looseFloat) UnmarshalJSON(data []byte) error {
	s := strings.Trim(strings.TrimSpace(string(data)), `"`)
	if s == "" || s == "null" {
		*f = looseFloat(math.NaN())
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		*f = looseFloat(math.NaN())
		return nil
	}
	*f = looseFloat(v)
	return nil
}

// UnmarshalJSON coerces coordinates and motion fields leniently and accepts
// device timestamps with or without a timezone suffix (a bare local time is
// treated as UTC).
func (p *Point) UnmarshalJSON(data []byte) error {
	type alias Point
	aux := &struct {
		Lat       *looseFloat `json:"latitude"`
		Lng       *looseFloat `json:"longitude"`
		SpeedKph  *looseFloat `json:"speed"`
		Heading   *looseFloat `json:"heading"`
		Timestamp string      `json:"timestamp"`
		*alias
	}{alias: (*alias)(p)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	p.Lat = looseValue(aux.Lat)
	p.Lng = looseValue(aux.Lng)
	p.SpeedKph = looseValue(aux.SpeedKph)
	if math.IsNaN(p.SpeedKph) || p.SpeedKph < 0 {
		p.SpeedKph = 0
	}
	p.Heading = looseValue(aux.Heading)
	if math.IsNaN(p.Heading) {
		p.Heading = 0
	}

	ts := aux.Timestamp
	if ts != "" {
		if !(strings.HasSuffix(ts, "Z") || (len(ts) >= 6 && strings.ContainsAny(ts[len(ts)-6:], "+-"))) {
			ts += "Z"
		}
		t, err := time.Parse(time.RFC3339Nano, ts)
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"raw_timestamp": aux.Timestamp,
				"parse_error":   err,
			}).Warn("Unparseable fix timestamp, leaving zero.")
		} else {
			p.Timestamp = t
		}
	}
	return nil
}

func looseValue(f *looseFloat) float64 {
	if f == nil {
		return math.NaN()
	}
	return float64(*f)
}

// Coordinate returns the fix position as a geo coordinate.
func (p Point) Coordinate() geo.Coordinate {
	return geo.Coordinate{Lat: p.Lat, Lng: p.Lng}
}

// Valid reports whether the fix carries usable coordinates.
func (p Point) Valid() bool {
	return !math.IsNaN(p.Lat) && !math.IsInf(p.Lat, 0) &&
		!math.IsNaN(p.Lng) && !math.IsInf(p.Lng, 0)
}

// Violating reports whether any violation flag is set on the fix.
func (p Point) Violating() bool {
	return p.OverSpeed || p.Collision || p.Fatigue
}

// Sanitize drops fixes with missing or non-numeric coordinates so NaN never
// reaches distance accumulation or playback. Order is preserved.
func Sanitize(points []Point) []Point {
	out := points[:0:0]
	dropped := 0
	for _, p := range points {
		if !p.Valid() {
			dropped++
			continue
		}
		out = append(out, p)
	}
	if dropped > 0 {
		logrus.WithField("dropped", dropped).Debug("Discarded fixes with malformed coordinates.")
	}
	return out
}

// Violation pairs a violating fix with its original index in the sequence,
// so playback can be sought directly to it.
type Violation struct {
	Point
	Index int `json:"index"`
}

// Violations filters the sequence for fixes with at least one violation flag
// set, retaining original indices in ascending order.
func Violations(points []Point) []Violation {
	var out []Violation
	for i, p := range points {
		if p.Violating() {
			out = append(out, Violation{Point: p, Index: i})
		}
	}
	return out
}
