package game

import (
	"sync"
	"time"
)

// CallKind tells which Scheduler method queued a callback.
type CallKind int

const (
	CallAfter CallKind = iota
	CallFrame
)

func (k CallKind) String() string {
	if k == CallFrame {
		return "frame"
	}
	return "after"
}

// Call describes a queued callback
type Call struct {
	Kind  CallKind
	Delay time.Duration
}

type manualCall struct {
	Call
	fn        func()
	cancelled bool
}

// ManualScheduler queues callbacks until the caller fires them. It makes the
// animation loop deterministic in tests and headless runs.
type ManualScheduler struct {
	mu    sync.Mutex
	queue []*manualCall

	// FireCancelled makes Fire run callbacks even after they were cancelled,
	// as happens when a timer already fired before Cancel was called.
	FireCancelled bool
}

// NewManualScheduler creates an empty scheduler
func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{}
}

// After queues fn with the given delay
func (s *ManualScheduler) After(d time.Duration, fn func()) Cancel {
	return s.push(Call{Kind: CallAfter, Delay: d}, fn)
}

// NextFrame queues fn as a frame callback
func (s *ManualScheduler) NextFrame(fn func()) Cancel {
	return s.push(Call{Kind: CallFrame}, fn)
}

func (s *ManualScheduler) push(c Call, fn func()) Cancel {
	call := &manualCall{Call: c, fn: fn}

	s.mu.Lock()
	s.queue = append(s.queue, call)
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		call.cancelled = true
		s.mu.Unlock()
	}
}

// Pending returns the queued callbacks that were not cancelled
func (s *ManualScheduler) Pending() []Call {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []Call
	for _, c := range s.queue {
		if !c.cancelled {
			out = append(out, c.Call)
		}
	}
	return out
}

// Fire runs the oldest runnable callback. It reports false when nothing was
// left to run.
func (s *ManualScheduler) Fire() bool {
	s.mu.Lock()
	var next *manualCall
	for len(s.queue) > 0 {
		c := s.queue[0]
		s.queue = s.queue[1:]
		if !c.cancelled || s.FireCancelled {
			next = c
			break
		}
	}
	s.mu.Unlock()

	if next == nil {
		return false
	}
	next.fn()
	return true
}

// FireN runs up to n callbacks and returns how many ran
func (s *ManualScheduler) FireN(n int) int {
	fired := 0
	for fired < n && s.Fire() {
		fired++
	}
	return fired
}
