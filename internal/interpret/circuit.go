package interpret

import (
	"sync"
	"time"
)

// circuit tracks rate-limit backoff for the generation service. While open,
// interpretations skip the service and go straight to the fallback.
type circuit struct {
	mu      sync.RWMutex
	resetAt time.Time // zero value = closed (healthy)
}

func (c *circuit) isOpen(now time.Time) (time.Time, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.resetAt, !c.resetAt.IsZero() && now.Before(c.resetAt)
}

func (c *circuit) open(resetAt time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if resetAt.After(c.resetAt) {
		c.resetAt = resetAt
	}
}
