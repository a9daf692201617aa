package ratelimit

import (
	"context"
	"strings"
	"sync"
	"time"
)

type windowEntry struct {
	count   int
	resetAt time.Time
}

// memoryLimiter is the single-process fallback used when no redis address
// is configured.
type memoryLimiter struct {
	mu      sync.Mutex
	windows map[string]windowEntry
	limits  WindowSource
}

func NewMemoryLimiter(limits WindowSource) Limiter {
	return &memoryLimiter{
		windows: make(map[string]windowEntry),
		limits:  limits,
	}
}

func (l *memoryLimiter) Allow(_ context.Context, key string) (bool, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return true, nil
	}

	maxAttempts, windowMillis := l.limits.LoginLimits()
	window := time.Duration(windowMillis) * time.Millisecond
	now := time.Now()

	l.mu.Lock()
	defer l.mu.Unlock()

	entry, ok := l.windows[key]
	if !ok || now.After(entry.resetAt) {
		l.windows[key] = windowEntry{count: 1, resetAt: now.Add(window)}
		return true, nil
	}

	entry.count++
	l.windows[key] = entry
	return entry.count <= maxAttempts, nil
}
