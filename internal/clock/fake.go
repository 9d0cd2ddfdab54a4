package clock

import (
	"sync"
	"time"
)

// FakeClock is a Clock pinned to a fixed instant, so tests can place
// documents inside a known month and financial year. Only Advance and
// Set move it.
type FakeClock struct {
	mu      sync.Mutex
	current time.Time
}

// NewFakeClock pins the clock at the given instant, normalised to UTC.
func NewFakeClock(at time.Time) *FakeClock {
	return &FakeClock{current: at.UTC()}
}

func (f *FakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.current
}

// Advance moves the clock by d; a negative duration moves it back.
func (f *FakeClock) Advance(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.current = f.current.Add(d)
}

// Set re-pins the clock to a new instant, normalised to UTC.
func (f *FakeClock) Set(at time.Time) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.current = at.UTC()
}
