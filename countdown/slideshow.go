package countdown

import (
	"time"

	"github.com/pthm-cable/lemniscate/clock"
	"github.com/pthm-cable/lemniscate/ui"
)

// Slideshow shows one target at a time. Every period the current target
// is hidden, and after the stagger delay the next one is shown.
type Slideshow struct {
	ids     []string
	index   int
	period  time.Duration
	stagger time.Duration
	sink    ui.Sink
	sched   *clock.Scheduler
}

// NewSlideshow creates a slideshow over ids.
func NewSlideshow(ids []string, period, stagger time.Duration, sink ui.Sink) *Slideshow {
	return &Slideshow{
		ids:     append([]string(nil), ids...),
		period:  period,
		stagger: stagger,
		sink:    sink,
	}
}

// Start shows the first target and schedules the rotation on s.
func (sl *Slideshow) Start(s *clock.Scheduler) *clock.Task {
	sl.sched = s
	sl.sink.SetVisible(sl.ids[sl.index], true)
	return s.Every(sl.period, sl.hideCurrent)
}

// Current returns the index of the target being shown or about to be shown.
func (sl *Slideshow) Current() int {
	return sl.index
}

func (sl *Slideshow) hideCurrent() {
	sl.sink.SetVisible(sl.ids[sl.index], false)
	sl.sched.After(sl.stagger, sl.showNext)
}

func (sl *Slideshow) showNext() {
	sl.index = (sl.index + 1) % len(sl.ids)
	sl.sink.SetVisible(sl.ids[sl.index], true)
}
