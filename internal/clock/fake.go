package clock

import "time"

// FakeClock serves a programmable instant so date guards in the
// cancellation flow can be pinned by tests.
type FakeClock struct {
	now time.Time
}

func NewFakeClock(at time.Time) *FakeClock {
	return &FakeClock{now: at.UTC()}
}

func (f *FakeClock) Now() time.Time {
	return f.now
}

// Advance moves the clock forward by d.
func (f *FakeClock) Advance(d time.Duration) {
	f.now = f.now.Add(d)
}

// SetNow jumps the clock to an absolute instant.
func (f *FakeClock) SetNow(at time.Time) {
	f.now = at.UTC()
}
