package playback

import "fleetdesk/internal/geo"

// Frame is one rendered playback instant: an animated position (nil when no
// sequence is loaded), the vehicle icon heading and the current fix index.
type Frame struct {
	Position *geo.Coordinate `json:"position"`
	Heading  float64         `json:"heading"`
	Index    int             `json:"index"`
	State    string          `json:"state"`
}

// MapSink receives playback output for rendering. Implementations must not
// call back into the Session from within these methods.
type MapSink interface {
	// UpdatePath is invoked once per loaded sequence with the full polyline.
	UpdatePath(path []geo.Coordinate)
	// PublishFrame is invoked on every snap and on every animation step.
	PublishFrame(Frame)
}
