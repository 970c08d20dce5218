// Package clock abstracts time so operation reports and journal entries can
// be stamped deterministically in tests.
package clock

import (
	"sync"
	"time"
)

// Clock returns the current time.
type Clock interface {
	Now() time.Time
}

// RealClock reads the system clock in UTC.
type RealClock struct{}

// Now returns the current UTC time.
func (RealClock) Now() time.Time {
	return time.Now().UTC()
}

// Stepping returns Start on the first call and advances by Step on each
// subsequent call. The zero Step yields a fixed clock.
type Stepping struct {
	mu    sync.Mutex
	next  time.Time
	step  time.Duration
	begun bool
}

// NewStepping creates a Stepping clock.
func NewStepping(start time.Time, step time.Duration) *Stepping {
	return &Stepping{next: start, step: step}
}

// Now returns the next tick.
func (s *Stepping) Now() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.begun {
		s.next = s.next.Add(s.step)
	}
	s.begun = true
	return s.next
}

var (
	_ Clock = RealClock{}
	_ Clock = (*Stepping)(nil)
)
