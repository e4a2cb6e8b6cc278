package history

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fix(lat, lng float64, at time.Time) Point {
	return Point{Device: "DL8CAF5031", Lat: lat, Lng: lng, Timestamp: at}
}

func TestTotalDistanceKmShortSequences(t *testing.T) {
	assert.Equal(t, 0.0, TotalDistanceKm(nil))
	assert.Equal(t, 0.0, TotalDistanceKm([]Point{fix(1, 1, time.Now())}))
}

func TestTotalDistanceKmPrefixMonotonic(t *testing.T) {
	start := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)
	points := []Point{
		fix(28.6139, 77.2090, start),
		fix(28.6200, 77.2150, start.Add(time.Minute)),
		fix(28.6300, 77.2100, start.Add(2*time.Minute)),
		fix(28.6250, 77.2000, start.Add(3*time.Minute)),
		fix(28.6400, 77.2050, start.Add(4*time.Minute)),
	}

	prev := 0.0
	for k := 0; k <= len(points); k++ {
		d := TotalDistanceKm(points[:k])
		assert.GreaterOrEqual(t, d, prev, "prefix of length %d", k)
		prev = d
	}
}

func TestTotalDistanceKmSkipsMalformedSegments(t *testing.T) {
	start := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)
	clean := []Point{
		fix(28.6139, 77.2090, start),
		fix(28.6200, 77.2150, start.Add(time.Minute)),
	}
	dirty := []Point{
		clean[0],
		{Device: "DL8CAF5031", Lat: math.NaN(), Lng: 77.0, Timestamp: start.Add(30 * time.Second)},
		clean[1],
	}

	// The malformed middle point contributes no segment and no NaN.
	assert.False(t, math.IsNaN(TotalDistanceKm(dirty)))
}

func TestOutAndBackDistanceAndSpan(t *testing.T) {
	start := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)
	origin := fix(28.6139, 77.2090, start)
	// ~1km due north of origin.
	north := fix(28.6139+1.0/111.1949, 77.2090, start.Add(time.Minute))
	back := fix(28.6139, 77.2090, start.Add(2*time.Minute))

	points := []Point{origin, north, back}

	oneLeg := TotalDistanceKm(points[:2])
	total := TotalDistanceKm(points)
	assert.InDelta(t, 1.0, oneLeg, 0.01)
	assert.InDelta(t, 2*oneLeg, total, 1e-9)

	assert.Equal(t, "0h 2m", FormatSpan(Span(points)))
}

func TestSpanShortSequences(t *testing.T) {
	assert.Equal(t, time.Duration(0), Span(nil))
	assert.Equal(t, "0h 0m", FormatSpan(Span([]Point{fix(1, 1, time.Now())})))
}

func TestFormatSpanTruncates(t *testing.T) {
	assert.Equal(t, "1h 59m", FormatSpan(time.Hour+59*time.Minute+59*time.Second))
	assert.Equal(t, "2h 5m", FormatSpan(125*time.Minute))
	assert.Equal(t, "0h 0m", FormatSpan(59*time.Second))
	assert.Equal(t, "0h 0m", FormatSpan(-time.Minute))
}

func TestSummarize(t *testing.T) {
	start := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)
	points := []Point{
		fix(28.6139, 77.2090, start),
		fix(28.6139+1.0/111.1949, 77.2090, start.Add(45*time.Minute)),
	}
	points[1].OverSpeed = true

	s := Summarize(points)
	assert.Equal(t, "1.0", s.DistanceKm)
	assert.Equal(t, "0h 45m", s.MovingTime)
	assert.Equal(t, 1, s.ViolationCount)
	require.Len(t, Violations(points), 1)
}
