package ratelimit

import "context"

// Limiter throttles login attempts per key. Allow reports whether another
// attempt fits inside the current window.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// WindowSource yields the current throttle settings; it is satisfied by the
// hot-reloadable portal config so operators can tighten the window live.
type WindowSource interface {
	LoginLimits() (maxAttempts int, windowMillis int64)
}
