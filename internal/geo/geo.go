package geo

import "math"

// EarthRadiusKm is the mean Earth radius used for great-circle math.
const EarthRadiusKm = 6371.0

// Coordinate is a WGS84 position in decimal degrees.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// DistanceKm returns the great-circle distance between two coordinates in
// kilometers using the haversine formula. Inputs are not range-checked.
func DistanceKm(a, b Coordinate) float64 {
	dLat := toRadians(b.Lat - a.Lat)
	dLng := toRadians(b.Lng - a.Lng)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRadians(a.Lat))*math.Cos(toRadians(b.Lat))*
			math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return EarthRadiusKm * c
}

// BearingDegrees returns the initial compass bearing from one coordinate to
// another, normalized to [0, 360). Coincident inputs yield 0; callers that
// need a meaningful heading for a zero-length segment should substitute the
// device-reported heading themselves.
func BearingDegrees(from, to Coordinate) float64 {
	lat1 := toRadians(from.Lat)
	lat2 := toRadians(to.Lat)
	deltaLng := toRadians(to.Lng - from.Lng)

	y := math.Sin(deltaLng) * math.Cos(lat2)
	x := math.Cos(lat1)*math.Sin(lat2) -
		math.Sin(lat1)*math.Cos(lat2)*math.Cos(deltaLng)
	bearing := toDegrees(math.Atan2(y, x))

	return math.Mod(bearing+360, 360)
}

// Coincident reports whether two coordinates are exactly equal.
func Coincident(a, b Coordinate) bool {
	return a.Lat == b.Lat && a.Lng == b.Lng
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}

func toDegrees(rad float64) float64 {
	return rad * 180 / math.Pi
}
