package core

import "time"

// Throttle caps how often an event-driven loop redraws. A frame is allowed
// once at least one interval has passed since the previous allowed frame;
// requests in between are coalesced by the caller.
type Throttle struct {
	interval time.Duration
	last     time.Time
	now      func() time.Time
}

// NewThrottle allows at most fps frames per second. Non-positive rates fall
// back to 30.
func NewThrottle(fps int) *Throttle {
	if fps <= 0 {
		fps = 30
	}
	return &Throttle{interval: time.Second / time.Duration(fps), now: time.Now}
}

// Interval returns the minimum spacing between frames.
func (t *Throttle) Interval() time.Duration { return t.interval }

// Wait returns how long until the next frame is allowed; zero when one is
// allowed now.
func (t *Throttle) Wait() time.Duration {
	if t.last.IsZero() {
		return 0
	}
	return max(t.last.Add(t.interval).Sub(t.now()), 0)
}

// Allow reports whether a frame may be drawn now and, when it may, starts a
// new interval.
func (t *Throttle) Allow() bool {
	if t.Wait() > 0 {
		return false
	}
	t.last = t.now()
	return true
}
