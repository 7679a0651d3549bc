package game

import (
	"time"
)

// DefaultRefreshPeriod is the display refresh period frame callbacks align to.
const DefaultRefreshPeriod = time.Second / 60

// Cancel stops a scheduled callback. Calling it after the callback ran, or
// more than once, is harmless.
type Cancel func()

// Scheduler defers callbacks for the animation loop. After runs fn once the
// delay elapsed; NextFrame runs fn at the next display frame boundary.
type Scheduler interface {
	After(d time.Duration, fn func()) Cancel
	NextFrame(fn func()) Cancel
}

// RealScheduler schedules callbacks on runtime timers. Frame callbacks fire on
// boundaries of a fixed refresh period measured from the scheduler creation.
type RealScheduler struct {
	period time.Duration
	origin time.Time
}

// NewRealScheduler creates a scheduler aligned to the given refresh period
func NewRealScheduler(period time.Duration) *RealScheduler {
	if period <= 0 {
		period = DefaultRefreshPeriod
	}
	return &RealScheduler{period: period, origin: time.Now()}
}

// After runs fn on its own goroutine once d elapsed
func (s *RealScheduler) After(d time.Duration, fn func()) Cancel {
	t := time.AfterFunc(d, fn)
	return func() { t.Stop() }
}

// NextFrame runs fn at the next refresh boundary
func (s *RealScheduler) NextFrame(fn func()) Cancel {
	return s.After(s.untilNextFrame(time.Now()), fn)
}

func (s *RealScheduler) untilNextFrame(now time.Time) time.Duration {
	elapsed := now.Sub(s.origin)
	return s.period - elapsed%s.period
}
