// Package ticker is a monotonic millisecond clock.
package ticker

import "time"

type Ticker struct {
	start time.Time
}

// New starts a clock at zero.
func New() *Ticker {
	return &Ticker{start: time.Now()}
}

// Get is the time elapsed since the clock started.
func (t *Ticker) Get() time.Duration {
	return time.Since(t.start)
}

// GetAsMS is Get in whole milliseconds, truncated to 32 bits like the
// timestamps carried by wayland events.
func (t *Ticker) GetAsMS() uint32 {
	return uint32(t.Get() / time.Millisecond)
}
