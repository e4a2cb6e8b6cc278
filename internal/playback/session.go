// Package playback drives a time-scrubbable replay of a recorded GPS
// sequence: play/pause with a speed multiplier, direct seeks, and a smooth
// interpolated position between discrete fixes.
package playback

import (
	"fmt"
	"sync"
	"time"

	"fleetdesk/internal/geo"
	"fleetdesk/internal/history"
)

// State is the playback lifecycle state.
type State int

const (
	// Idle means no sequence is loaded; all controls are disabled.
	Idle State = iota
	// Paused means a sequence is loaded but the index is not advancing.
	Paused
	// Playing means the index advances automatically on the autoplay tick.
	Playing
)

func (s State) String() string {
	switch s {
	case Paused:
		return "paused"
	case Playing:
		return "playing"
	default:
		return "idle"
	}
}

const (
	// stepDuration is the animation length for a manual single step.
	stepDuration = 220 * time.Millisecond
	// minPlayingStep keeps fast multipliers visible instead of instant.
	minPlayingStep = 120 * time.Millisecond
)

// Status is a point-in-time snapshot of a session.
type Status struct {
	State    string          `json:"state"`
	Index    int             `json:"index"`
	Length   int             `json:"length"`
	Speed    int             `json:"speed"`
	Position *geo.Coordinate `json:"position"`
	Heading  float64         `json:"heading"`
}

// Session owns the playback state for one loaded sequence. All methods are
// safe for concurrent use; internally the session is serialized by a single
// mutex, with generation counters fencing off callbacks from cancelled
// tickers and animations.
type Session struct {
	mu    sync.Mutex
	sched Scheduler
	sink  MapSink

	points   []history.Point
	state    State
	current  int
	previous int
	speed    int

	pos     *geo.Coordinate
	heading float64

	tickGen  uint64
	stopTick func()
	animGen  uint64
	stopAnim func()

	closed bool
}

// NewSession returns an idle session. sink may be nil for headless use.
func NewSession(sched Scheduler, sink MapSink) *Session {
	return &Session{sched: sched, sink: sink, speed: 1}
}

// Load replaces the active sequence. Any running autoplay tick and any
// in-flight animation are cancelled first; no callback from the old
// sequence can mutate state afterwards. An empty sequence leaves the
// session idle with a nil position.
func (s *Session) Load(points []history.Point) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.cancelTickLocked()
	s.cancelAnimLocked()

	s.points = points
	s.current = 0
	s.previous = 0

	if len(points) == 0 {
		s.state = Idle
		s.pos = nil
		s.heading = 0
		if s.sink != nil {
			s.sink.UpdatePath(nil)
		}
		s.publishLocked()
		return
	}

	s.state = Paused
	first := points[0].Coordinate()
	s.pos = &first
	s.heading = s.headingAtLocked(0)

	if s.sink != nil {
		path := make([]geo.Coordinate, len(points))
		for i, p := range points {
			path[i] = p.Coordinate()
		}
		s.sink.UpdatePath(path)
	}
	s.publishLocked()
}

// Clear unloads the sequence entirely, e.g. after a failed fetch.
func (s *Session) Clear() {
	s.Load(nil)
}

// Play starts automatic advancement. It is a no-op unless the session is
// paused somewhere short of the final fix.
func (s *Session) Play() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || s.state != Paused || s.current >= len(s.points)-1 {
		return
	}
	s.state = Playing
	s.startTickLocked()
	s.publishLocked()
}

// Pause stops automatic advancement.
func (s *Session) Pause() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.pauseLocked()
	s.publishLocked()
}

// SetSpeed changes the playback multiplier. While playing, the autoplay
// interval is restarted at the new rate.
func (s *Session) SetSpeed(multiplier int) error {
	if multiplier != 1 && multiplier != 2 && multiplier != 4 {
		return fmt.Errorf("playback: invalid speed multiplier %d", multiplier)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.speed = multiplier
	if s.state == Playing {
		s.cancelTickLocked()
		s.startTickLocked()
	}
	return nil
}

// Seek jumps directly to index i. A manual seek always pauses playback;
// a multi-step jump snaps the animated position with no transition.
func (s *Session) Seek(i int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	if s.state == Idle {
		return fmt.Errorf("playback: no sequence loaded")
	}
	if i < 0 || i >= len(s.points) {
		return fmt.Errorf("playback: index %d out of range [0,%d)", i, len(s.points))
	}
	s.pauseLocked()
	s.setIndexLocked(i, false)
	return nil
}

// SeekViolation seeks to a violation's original index in the sequence.
func (s *Session) SeekViolation(v history.Violation) error {
	return s.Seek(v.Index)
}

// Step advances or rewinds by a single fix while paused, with the fixed
// short animation.
func (s *Session) Step(delta int) error {
	if delta != 1 && delta != -1 {
		return fmt.Errorf("playback: step must be +1 or -1")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || s.state == Idle {
		return fmt.Errorf("playback: no sequence loaded")
	}
	i := s.current + delta
	if i < 0 || i >= len(s.points) {
		return fmt.Errorf("playback: index %d out of range [0,%d)", i, len(s.points))
	}
	s.pauseLocked()
	s.setIndexLocked(i, false)
	return nil
}

// Snapshot returns the current playback status.
func (s *Session) Snapshot() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := Status{
		State:   s.state.String(),
		Index:   s.current,
		Length:  len(s.points),
		Speed:   s.speed,
		Heading: s.heading,
	}
	if s.pos != nil {
		pos := *s.pos
		st.Position = &pos
	}
	return st
}

// Close releases the session. Every timer and animation is cancelled; the
// session accepts no further transitions.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	s.cancelTickLocked()
	s.cancelAnimLocked()
	s.points = nil
	s.state = Idle
	s.pos = nil
}

func (s *Session) pauseLocked() {
	s.cancelTickLocked()
	if s.state == Playing {
		s.state = Paused
	}
}

func (s *Session) startTickLocked() {
	s.tickGen++
	gen := s.tickGen
	interval := time.Second / time.Duration(s.speed)
	s.stopTick = s.sched.Every(interval, func() { s.tick(gen) })
}

func (s *Session) cancelTickLocked() {
	s.tickGen++
	if s.stopTick != nil {
		s.stopTick()
		s.stopTick = nil
	}
}

func (s *Session) cancelAnimLocked() {
	s.animGen++
	if s.stopAnim != nil {
		s.stopAnim()
		s.stopAnim = nil
	}
}

// tick advances the index by one while playing. It is the only writer of
// the index during autoplay; a stale generation means the tick was
// cancelled after this callback was already in flight.
func (s *Session) tick(gen uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || gen != s.tickGen || s.state != Playing {
		return
	}
	next := s.current + 1
	if next >= len(s.points) {
		s.pauseLocked()
		return
	}
	s.setIndexLocked(next, true)
	if s.current >= len(s.points)-1 {
		s.pauseLocked()
		s.publishLocked()
	}
}

// setIndexLocked applies an index change and decides between snapping and
// animating, per the step distance from the last settled index.
func (s *Session) setIndexLocked(i int, playing bool) {
	s.cancelAnimLocked()
	prev := s.previous
	s.current = i
	s.heading = s.headingAtLocked(i)

	delta := i - prev
	if delta > 1 || delta < -1 || delta == 0 {
		// Jump or no movement: snap, no animation.
		target := s.points[i].Coordinate()
		s.pos = &target
		s.previous = i
		s.publishLocked()
		return
	}

	from := s.points[prev].Coordinate()
	to := s.points[i].Coordinate()

	duration := stepDuration
	if playing {
		duration = time.Second / time.Duration(s.speed)
		if duration < minPlayingStep {
			duration = minPlayingStep
		}
	}

	start := s.sched.Now()
	gen := s.animGen
	s.stopAnim = s.sched.Frames(func(now time.Time) {
		s.animate(gen, i, from, to, start, duration, now)
	})
}

// animate performs one linear interpolation step. On completion it settles
// exactly on the target fix and records it as the new previous index.
func (s *Session) animate(gen uint64, target int, from, to geo.Coordinate, start time.Time, duration time.Duration, now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || gen != s.animGen {
		return
	}

	progress := float64(now.Sub(start)) / float64(duration)
	if progress < 0 {
		progress = 0
	}
	if progress >= 1 {
		s.pos = &to
		s.previous = target
		if s.stopAnim != nil {
			s.stopAnim()
			s.stopAnim = nil
		}
		s.publishLocked()
		return
	}

	pos := geo.Coordinate{
		Lat: from.Lat + (to.Lat-from.Lat)*progress,
		Lng: from.Lng + (to.Lng-from.Lng)*progress,
	}
	s.pos = &pos
	s.publishLocked()
}

// headingAtLocked synthesizes the icon heading for index i: the bearing of
// the segment arriving at i (or leaving it, at the trip start), falling
// back to the device-reported heading when the segment has zero length.
func (s *Session) headingAtLocked(i int) float64 {
	n := len(s.points)
	if n == 0 {
		return 0
	}
	if n == 1 {
		return s.points[0].Heading
	}
	a, b := i-1, i
	if i == 0 {
		a, b = 0, 1
	}
	pa := s.points[a].Coordinate()
	pb := s.points[b].Coordinate()
	if geo.Coincident(pa, pb) {
		return s.points[i].Heading
	}
	return geo.BearingDegrees(pa, pb)
}

func (s *Session) publishLocked() {
	if s.sink == nil {
		return
	}
	frame := Frame{
		Heading: s.heading,
		Index:   s.current,
		State:   s.state.String(),
	}
	if s.pos != nil {
		pos := *s.pos
		frame.Position = &pos
	}
	s.sink.PublishFrame(frame)
}
