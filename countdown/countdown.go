// Package countdown drives the countdown text and the slideshow that
// cycles which unit is on screen.
package countdown

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/pthm-cable/lemniscate/clock"
	"github.com/pthm-cable/lemniscate/config"
	"github.com/pthm-cable/lemniscate/ui"
)

// Values holds the remaining time expressed in each unit independently.
// The units are not derived from each other; each is decremented by its
// own step, so no borrowing happens between them.
type Values struct {
	Days    float64
	Hours   float64
	Minutes float64
	Seconds float64
}

// Sub returns v minus step, unit by unit.
func (v Values) Sub(step Values) Values {
	return Values{
		Days:    v.Days - step.Days,
		Hours:   v.Hours - step.Hours,
		Minutes: v.Minutes - step.Minutes,
		Seconds: v.Seconds - step.Seconds,
	}
}

// Countdown decrements its values on every tick and publishes them.
type Countdown struct {
	values Values
	step   Values
	period time.Duration
	sink   ui.Sink
	ticks  int
}

// New creates a countdown from config, writing into sink.
func New(cfg config.CountdownConfig, sink ui.Sink) *Countdown {
	return &Countdown{
		values: Values{Days: cfg.Days, Hours: cfg.Hours, Minutes: cfg.Minutes, Seconds: cfg.Seconds},
		step: Values{
			Days:    cfg.DaysStep,
			Hours:   cfg.HoursStep,
			Minutes: cfg.MinutesStep,
			Seconds: cfg.SecondsStep,
		},
		period: time.Duration(cfg.PeriodMS) * time.Millisecond,
		sink:   sink,
	}
}

// Start schedules the periodic tick. With publish set, the starting values
// are written immediately.
func (c *Countdown) Start(s *clock.Scheduler, publish bool) *clock.Task {
	if publish {
		c.Publish()
	}
	return s.Every(c.period, c.Tick)
}

// Tick applies one decrement and publishes the result.
func (c *Countdown) Tick() {
	c.values = c.values.Sub(c.step)
	c.ticks++
	c.Publish()
}

// Publish writes the current values to the sink.
func (c *Countdown) Publish() {
	days, hours, minutes, seconds := Format(c.values)
	c.sink.SetText(ui.TargetDays, days)
	c.sink.SetText(ui.TargetHours, hours)
	c.sink.SetText(ui.TargetMinutes, minutes)
	c.sink.SetText(ui.TargetSeconds, seconds)
}

// Values returns the current values.
func (c *Countdown) Values() Values {
	return c.values
}

// Ticks returns the number of ticks applied.
func (c *Countdown) Ticks() int {
	return c.ticks
}

// Format renders each unit: whole days, hours to two decimals, whole
// minutes and whole seconds. Whole units are floored.
func Format(v Values) (days, hours, minutes, seconds string) {
	days = fmt.Sprintf("%d Days", int64(math.Floor(v.Days)))
	hours = strconv.FormatFloat(v.Hours, 'f', 2, 64) + " Hours"
	minutes = fmt.Sprintf("%d Minutes", int64(math.Floor(v.Minutes)))
	seconds = fmt.Sprintf("%d Seconds", int64(math.Floor(v.Seconds)))
	return days, hours, minutes, seconds
}
