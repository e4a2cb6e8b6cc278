package playback

import (
	"sync"
	"time"
)

// Scheduler abstracts the two timing primitives playback needs: a fixed
// interval tick for autoplay and a redraw-cadence callback for animation.
// Both return a stop handle that is safe to call more than once and from
// inside a callback.
type Scheduler interface {
	Now() time.Time
	Every(d time.Duration, fn func()) (stop func())
	Frames(fn func(now time.Time)) (stop func())
}

// TickScheduler is the production Scheduler: plain tickers, with animation
// frames delivered at a fixed rate approximating a display's redraw cadence.
type TickScheduler struct {
	FrameInterval time.Duration
}

// NewTickScheduler returns a scheduler with a 60Hz frame cadence.
func NewTickScheduler() *TickScheduler {
	return &TickScheduler{FrameInterval: time.Second / 60}
}

func (s *TickScheduler) Now() time.Time {
	return time.Now()
}

func (s *TickScheduler) Every(d time.Duration, fn func()) func() {
	return s.spawn(d, func(time.Time) { fn() })
}

func (s *TickScheduler) Frames(fn func(now time.Time)) func() {
	interval := s.FrameInterval
	if interval <= 0 {
		interval = time.Second / 60
	}
	return s.spawn(interval, fn)
}

func (s *TickScheduler) spawn(d time.Duration, fn func(time.Time)) func() {
	ticker := time.NewTicker(d)
	done := make(chan struct{})
	go func() {
		defer ticker.Stop()
		for {
			select {
			case now := <-ticker.C:
				fn(now)
			case <-done:
				return
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() { close(done) })
	}
}
