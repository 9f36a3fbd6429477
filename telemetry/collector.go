package telemetry

// Collector accumulates events within frame windows and produces WindowStats.
type Collector struct {
	windowFrames     int64
	windowStartFrame int64

	// Event counters for current window
	respawns int
}

// NewCollector creates a collector that closes a window every windowFrames frames.
func NewCollector(windowFrames int) *Collector {
	if windowFrames < 1 {
		windowFrames = 1
	}
	return &Collector{windowFrames: int64(windowFrames)}
}

// RecordRespawns records particles replaced after leaving the canvas.
func (c *Collector) RecordRespawns(n int) {
	c.respawns += n
}

// ShouldFlush reports whether the current window is complete.
func (c *Collector) ShouldFlush(frame int64) bool {
	return frame-c.windowStartFrame >= c.windowFrames
}

// Flush closes the window at frame, summarizing sample, and starts a new one.
func (c *Collector) Flush(frame int64, millis float64, sample Sample) WindowStats {
	stats := WindowStats{
		WindowStartFrame: c.windowStartFrame,
		WindowEndFrame:   frame,
		Millis:           millis,
		Respawns:         c.respawns,
	}
	stats.Summarize(sample)

	c.windowStartFrame = frame
	c.respawns = 0
	return stats
}

// Reset discards the current window, starting a new one at frame.
func (c *Collector) Reset(frame int64) {
	c.windowStartFrame = frame
	c.respawns = 0
}

// WindowFrames returns the window length.
func (c *Collector) WindowFrames() int64 {
	return c.windowFrames
}
