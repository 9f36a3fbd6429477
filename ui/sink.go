// Package ui holds the text targets the countdown writes to and the
// raylib HUD that draws them.
package ui

// Sink receives text and visibility updates for named targets.
type Sink interface {
	SetText(id, value string)
	SetVisible(id string, visible bool)
}

// Prober is implemented by sinks that can report whether a target exists.
type Prober interface {
	Has(id string) bool
}

// Target IDs written by the countdown and the frame loop.
const (
	TargetDays    = "days"
	TargetHours   = "hours"
	TargetMinutes = "minutes"
	TargetSeconds = "seconds"
	TargetFPS     = "fps"
)

// HasTarget reports whether sink accepts writes to id. Sinks that cannot
// be probed are assumed to accept everything.
func HasTarget(sink Sink, id string) bool {
	if p, ok := sink.(Prober); ok {
		return p.Has(id)
	}
	return true
}
