package geo

import (
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/xy"
)

// InCircle reports whether p lies within radiusMeters of center.
func InCircle(p, center Coordinate, radiusMeters float64) bool {
	return DistanceKm(p, center)*1000 <= radiusMeters
}

// InPolygon reports whether p lies inside the polygon described by vertices.
// The ring is closed automatically if the caller did not repeat the first
// vertex. Fewer than three vertices never contain anything.
func InPolygon(p Coordinate, vertices []Coordinate) bool {
	if len(vertices) < 3 {
		return false
	}

	ring := make([]float64, 0, (len(vertices)+1)*2)
	for _, v := range vertices {
		ring = append(ring, v.Lng, v.Lat)
	}
	if vertices[0] != vertices[len(vertices)-1] {
		ring = append(ring, vertices[0].Lng, vertices[0].Lat)
	}

	return xy.IsPointInRing(geom.XY, geom.Coord{p.Lng, p.Lat}, ring)
}
