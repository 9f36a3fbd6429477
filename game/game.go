// Package game drives the particle animation: an explicit simulation
// state advanced one frame at a time, plus the timers and telemetry a host
// needs around it.
package game

import (
	"fmt"
	"log/slog"
	"math/rand"
	"strconv"
	"time"

	"github.com/pthm-cable/lemniscate/clock"
	"github.com/pthm-cable/lemniscate/components"
	"github.com/pthm-cable/lemniscate/config"
	"github.com/pthm-cable/lemniscate/countdown"
	"github.com/pthm-cable/lemniscate/systems"
	"github.com/pthm-cable/lemniscate/telemetry"
	"github.com/pthm-cable/lemniscate/ui"
)

// Options configures a Game beyond what the config file holds.
type Options struct {
	Seed          int64
	Width, Height float64 // canvas size; zero means the configured screen size
	OutputDir     string  // CSV logs and config snapshot; empty disables output
	LogStats      bool
	ShowFPS       bool               // give the board an fps target
	Clock         clock.TimeProvider // perf timing source; nil means system time
}

// Game owns the simulation state together with the scheduler that runs the
// countdown and slideshow, and the telemetry around each frame.
type Game struct {
	cfg   *config.Config
	state *State

	sched     *clock.Scheduler
	board     *ui.Board
	countdown *countdown.Countdown
	slideshow *countdown.Slideshow

	perf      *telemetry.PerfCollector
	collector *telemetry.Collector
	output    *telemetry.OutputManager
	logStats  bool

	statsCallback func(telemetry.WindowStats)
	lastStats     telemetry.WindowStats

	frame   int64
	elapsed time.Duration
	last    FrameOutput
}

// New creates a game from cfg. The countdown and slideshow are started
// immediately on the game's scheduler.
func New(cfg *config.Config, opts Options) (*Game, error) {
	src, err := systems.NewNoise(cfg.Noise.Kind, opts.Seed)
	if err != nil {
		return nil, fmt.Errorf("creating noise source: %w", err)
	}
	noise := systems.NewFractal(src, cfg.Noise.Octaves, cfg.Noise.Falloff)

	bounds := components.Bounds{Width: opts.Width, Height: opts.Height}
	if bounds.Width <= 0 || bounds.Height <= 0 {
		bounds = components.Bounds{Width: float64(cfg.Screen.Width), Height: float64(cfg.Screen.Height)}
	}

	rng := rand.New(rand.NewSource(opts.Seed))

	targets := []string{ui.TargetDays, ui.TargetHours, ui.TargetMinutes, ui.TargetSeconds}
	if opts.ShowFPS {
		targets = append(targets, ui.TargetFPS)
	}

	g := &Game{
		cfg:       cfg,
		state:     NewState(ParamsFromConfig(cfg), bounds, rng, noise),
		sched:     clock.NewScheduler(),
		board:     ui.NewBoard(targets...),
		perf:      telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow, opts.Clock),
		collector: telemetry.NewCollector(cfg.Telemetry.WindowFrames),
		logStats:  opts.LogStats,
	}

	g.output, err = telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("creating output manager: %w", err)
	}
	if err := g.output.WriteConfig(cfg); err != nil {
		slog.Error("failed to write config snapshot", "error", err)
	}

	g.countdown = countdown.New(cfg.Countdown, g.board)
	g.countdown.Start(g.sched, cfg.Countdown.PublishOnStart)

	g.slideshow = countdown.NewSlideshow(
		cfg.Slideshow.Elements,
		time.Duration(cfg.Slideshow.PeriodMS)*time.Millisecond,
		time.Duration(cfg.Slideshow.StaggerMS)*time.Millisecond,
		g.board,
	)
	g.slideshow.Start(g.sched)

	slog.Info("game created",
		"seed", opts.Seed,
		"width", bounds.Width,
		"height", bounds.Height,
		"particles", len(g.state.Particles),
		"noise", cfg.Noise.Kind,
		"debug", cfg.Debug,
	)

	return g, nil
}

// Advance runs one frame that took delta. Timers fire first, then the
// simulation steps. draw, if non-nil, is called with the frame's output
// inside the render phase of the perf window.
func (g *Game) Advance(delta time.Duration, draw func(*State, FrameOutput)) FrameOutput {
	if delta < 0 {
		delta = 0
	}
	g.perf.RecordFrame()
	g.perf.StartTick()

	g.perf.StartPhase(telemetry.PhaseTimers)
	g.sched.Advance(delta)

	g.frame++
	g.elapsed += delta
	out := Step(g.state, FrameInput{
		Frame:   g.frame,
		DeltaMS: millis(delta),
		Millis:  millis(g.elapsed),
	}, g.perf)

	g.perf.StartPhase(telemetry.PhaseTelemetry)
	g.publishFPS(delta)
	g.collector.RecordRespawns(out.Respawned)
	g.flushTelemetry(out)

	if draw != nil {
		g.perf.StartPhase(telemetry.PhaseRender)
		draw(g.state, out)
	}
	g.perf.EndTick()

	g.last = out
	return out
}

// Resize re-initializes the animation for a new canvas size. The frame
// counter and timers keep running.
func (g *Game) Resize(width, height float64) {
	if width <= 0 || height <= 0 {
		return
	}
	if width == g.state.Bounds.Width && height == g.state.Bounds.Height {
		return
	}
	g.state.Reset(components.Bounds{Width: width, Height: height})
	g.collector.Reset(g.frame)
	slog.Info("canvas resized", "width", width, "height", height, "frame", g.frame)
}

// SetDebug switches debug mode. The population size and alpha depend on
// it, so the animation restarts.
func (g *Game) SetDebug(on bool) {
	if g.cfg.Debug == on {
		return
	}
	g.cfg.Debug = on
	g.cfg.ComputeDerived()
	g.state.Params = ParamsFromConfig(g.cfg)
	g.state.Reset(g.state.Bounds)
	g.collector.Reset(g.frame)
	slog.Info("debug mode changed", "debug", on, "particles", len(g.state.Particles))
}

// publishFPS writes the instantaneous frame rate, if the board shows it.
func (g *Game) publishFPS(delta time.Duration) {
	if delta <= 0 || !ui.HasTarget(g.board, ui.TargetFPS) {
		return
	}
	fps := roundFPS(float64(time.Second) / float64(delta))
	g.board.SetText(ui.TargetFPS, strconv.FormatFloat(fps, 'f', -1, 64))
}

// SetStatsCallback registers fn to receive every flushed stats window.
func (g *Game) SetStatsCallback(fn func(telemetry.WindowStats)) {
	g.statsCallback = fn
}

// State returns the simulation state.
func (g *Game) State() *State { return g.state }

// Board returns the text targets the countdown and slideshow write to.
func (g *Game) Board() *ui.Board { return g.board }

// Perf returns the frame performance collector.
func (g *Game) Perf() *telemetry.PerfCollector { return g.perf }

// Output returns the output manager, nil when output is disabled.
func (g *Game) Output() *telemetry.OutputManager { return g.output }

// Config returns the configuration the game was built from.
func (g *Game) Config() *config.Config { return g.cfg }

// Frame returns the number of frames advanced.
func (g *Game) Frame() int64 { return g.frame }

// Elapsed returns the summed frame deltas.
func (g *Game) Elapsed() time.Duration { return g.elapsed }

// Last returns the output of the most recent frame.
func (g *Game) Last() FrameOutput { return g.last }

// LastStats returns the most recently flushed stats window.
func (g *Game) LastStats() telemetry.WindowStats { return g.lastStats }

// Close flushes and closes output files.
func (g *Game) Close() error {
	return g.output.Close()
}

func millis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
