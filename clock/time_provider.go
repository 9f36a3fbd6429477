package clock

import (
	"sync"
	"time"
)

// TimeProvider supplies the current time to frame loops.
type TimeProvider interface {
	Now() time.Time
}

// SystemTime provides the real system time with monotonic clock readings.
type SystemTime struct{}

// Now returns the current time.
func (SystemTime) Now() time.Time {
	return time.Now()
}

// ManualTime is a controllable time source for headless runs and tests.
type ManualTime struct {
	mu          sync.RWMutex
	currentTime time.Time
}

// NewManualTime creates a manual time source starting at start.
func NewManualTime(start time.Time) *ManualTime {
	return &ManualTime{currentTime: start}
}

// Now returns the current manual time.
func (m *ManualTime) Now() time.Time {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.currentTime
}

// Advance moves the manual time forward by d.
func (m *ManualTime) Advance(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.currentTime = m.currentTime.Add(d)
}

// FrameTimer turns successive provider readings into per-frame deltas.
type FrameTimer struct {
	provider TimeProvider
	start    time.Time
	last     time.Time
	frame    int64
}

// NewFrameTimer starts timing frames at the provider's current time.
func NewFrameTimer(provider TimeProvider) *FrameTimer {
	now := provider.Now()
	return &FrameTimer{provider: provider, start: now, last: now}
}

// Tick records a frame and returns its number (from 1), the time since the
// previous tick and the time since the timer started.
func (f *FrameTimer) Tick() (frame int64, delta, elapsed time.Duration) {
	now := f.provider.Now()
	delta = now.Sub(f.last)
	f.last = now
	f.frame++
	return f.frame, delta, now.Sub(f.start)
}

// Reset restarts frame numbering and elapsed time from now.
func (f *FrameTimer) Reset() {
	now := f.provider.Now()
	f.start, f.last, f.frame = now, now, 0
}
