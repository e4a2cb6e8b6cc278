package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInCircle(t *testing.T) {
	center := Coordinate{Lat: 28.6139, Lng: 77.2090}
	near := Coordinate{Lat: 28.6149, Lng: 77.2090} // ~111m north
	far := Coordinate{Lat: 28.7139, Lng: 77.2090}  // ~11km north

	assert.True(t, InCircle(near, center, 200))
	assert.False(t, InCircle(far, center, 200))
	assert.True(t, InCircle(center, center, 1))
}

func TestInPolygon(t *testing.T) {
	square := []Coordinate{
		{Lat: 0, Lng: 0},
		{Lat: 0, Lng: 2},
		{Lat: 2, Lng: 2},
		{Lat: 2, Lng: 0},
	}

	assert.True(t, InPolygon(Coordinate{Lat: 1, Lng: 1}, square))
	assert.False(t, InPolygon(Coordinate{Lat: 3, Lng: 1}, square))
	assert.False(t, InPolygon(Coordinate{Lat: -0.1, Lng: -0.1}, square))
}

func TestInPolygonClosedRing(t *testing.T) {
	// Explicitly closed ring behaves the same as an open one.
	triangle := []Coordinate{
		{Lat: 0, Lng: 0},
		{Lat: 0, Lng: 4},
		{Lat: 4, Lng: 0},
		{Lat: 0, Lng: 0},
	}
	assert.True(t, InPolygon(Coordinate{Lat: 1, Lng: 1}, triangle))
	assert.False(t, InPolygon(Coordinate{Lat: 3, Lng: 3}, triangle))
}

func TestInPolygonDegenerate(t *testing.T) {
	assert.False(t, InPolygon(Coordinate{Lat: 1, Lng: 1}, nil))
	assert.False(t, InPolygon(Coordinate{Lat: 1, Lng: 1}, []Coordinate{{Lat: 0, Lng: 0}, {Lat: 1, Lng: 0}}))
}
