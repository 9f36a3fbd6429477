package countdown

import (
	"testing"
	"time"

	"github.com/pthm-cable/lemniscate/clock"
	"github.com/pthm-cable/lemniscate/config"
	"github.com/pthm-cable/lemniscate/ui"
)

func newBoard() *ui.Board {
	return ui.NewBoard(ui.TargetDays, ui.TargetHours, ui.TargetMinutes, ui.TargetSeconds)
}

func TestFormat(t *testing.T) {
	days, hours, minutes, seconds := Format(Values{
		Days:    2238,
		Hours:   53722.5,
		Minutes: 3223350,
		Seconds: 193401000,
	})

	want := []string{"2238 Days", "53722.50 Hours", "3223350 Minutes", "193401000 Seconds"}
	got := []string{days, hours, minutes, seconds}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("expected %q, got %q", want[i], got[i])
		}
	}
}

func TestPublishOnStart(t *testing.T) {
	board := newBoard()
	s := clock.NewScheduler()
	New(config.Defaults().Countdown, board).Start(s, true)

	if board.Text(ui.TargetMinutes) != "3223350 Minutes" {
		t.Errorf("expected initial minutes, got %q", board.Text(ui.TargetMinutes))
	}
}

func TestOneTickSubtractsDirectly(t *testing.T) {
	board := newBoard()
	s := clock.NewScheduler()
	c := New(config.Defaults().Countdown, board)
	c.Start(s, true)

	s.Advance(59999 * time.Millisecond)
	if c.Ticks() != 0 {
		t.Fatalf("ticked early")
	}

	s.Advance(time.Millisecond)
	if c.Ticks() != 1 {
		t.Fatalf("expected 1 tick, got %d", c.Ticks())
	}

	cases := map[string]string{
		ui.TargetDays:    "2237 Days", // 2238 - 0.000694444 floors down
		ui.TargetHours:   "53722.48 Hours",
		ui.TargetMinutes: "3223349 Minutes",
		ui.TargetSeconds: "193400940 Seconds",
	}
	for id, want := range cases {
		if got := board.Text(id); got != want {
			t.Errorf("%s: expected %q, got %q", id, want, got)
		}
	}
}

func TestManyTicksNoBorrow(t *testing.T) {
	board := newBoard()
	s := clock.NewScheduler()
	c := New(config.Defaults().Countdown, board)
	c.Start(s, false)

	s.Advance(10 * time.Minute)

	v := c.Values()
	if v.Minutes != 3223340 {
		t.Errorf("expected minutes 3223340, got %v", v.Minutes)
	}
	if v.Seconds != 193400400 {
		t.Errorf("expected seconds 193400400, got %v", v.Seconds)
	}
	if board.Text(ui.TargetSeconds) != "193400400 Seconds" {
		t.Errorf("unexpected seconds text %q", board.Text(ui.TargetSeconds))
	}
}

func TestNoPublishBeforeFirstTick(t *testing.T) {
	board := newBoard()
	s := clock.NewScheduler()
	New(config.Defaults().Countdown, board).Start(s, false)

	if board.Text(ui.TargetDays) != "" {
		t.Errorf("expected blank before first tick, got %q", board.Text(ui.TargetDays))
	}
}
