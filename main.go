package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/lemniscate/clock"
	"github.com/pthm-cable/lemniscate/config"
	"github.com/pthm-cable/lemniscate/game"
	"github.com/pthm-cable/lemniscate/renderer"
	"github.com/pthm-cable/lemniscate/snapshot"
	"github.com/pthm-cable/lemniscate/terminal"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	host := flag.String("host", "raylib", "Display host: raylib, terminal or headless")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	maxFrames := flag.Int64("max-frames", 0, "Stop after N frames (0 = unlimited)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs, config snapshot and PNG frames")
	snapshotEvery := flag.Int64("snapshot-every", 0, "Headless: write a PNG every N frames (0 = never)")
	logStats := flag.Bool("log-stats", false, "Output stats via slog")
	debug := flag.Bool("debug", false, "Start in debug mode (flow tiles, opaque particles)")
	showFPS := flag.Bool("fps", false, "Show the frame rate")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()
	if *debug {
		cfg.Debug = true
		cfg.ComputeDerived()
	}

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	opts := game.Options{
		Seed:      rngSeed,
		OutputDir: *outputDir,
		LogStats:  *logStats,
		ShowFPS:   *showFPS,
	}

	var err error
	switch *host {
	case "raylib":
		err = runRaylib(cfg, opts, *maxFrames)
	case "terminal":
		err = runTerminal(cfg, opts, *maxFrames)
	case "headless":
		err = runHeadless(cfg, opts, *maxFrames, *snapshotEvery)
	default:
		err = fmt.Errorf("unknown host %q", *host)
	}
	if err != nil {
		slog.Error("run failed", "host", *host, "error", err)
		os.Exit(1)
	}
}

func runRaylib(cfg *config.Config, opts game.Options, maxFrames int64) error {
	if cfg.Screen.Resizable {
		rl.SetConfigFlags(rl.FlagWindowResizable)
	}
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), "Lemniscate")
	defer rl.CloseWindow()
	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	width, height := int32(rl.GetScreenWidth()), int32(rl.GetScreenHeight())
	opts.Width, opts.Height = float64(width), float64(height)

	g, err := game.New(cfg, opts)
	if err != nil {
		return err
	}
	defer g.Close()

	canvas := renderer.NewParticleCanvas(width, height)
	canvas.Init()
	defer canvas.Unload()
	hud := renderer.NewHUD()

	for !rl.WindowShouldClose() {
		if rl.IsWindowResized() {
			width, height = int32(rl.GetScreenWidth()), int32(rl.GetScreenHeight())
			canvas.Resize(width, height)
			g.Resize(float64(width), float64(height))
		}

		delta := time.Duration(float64(rl.GetFrameTime()) * float64(time.Second))
		g.Advance(delta, canvas.Paint)

		rl.BeginDrawing()
		rl.ClearBackground(rl.Black)
		canvas.Draw()
		hud.DrawBoard(g.Board(), width, height)
		hud.DrawPerf(g.Perf().Stats(), 10, 80)

		if on := hud.DebugButton(cfg.Debug, float32(width-120), 10); on != cfg.Debug {
			g.SetDebug(on)
			canvas.Clear()
		}
		hud.PerfButton(float32(width-120), 42)
		rl.EndDrawing()

		if maxFrames > 0 && g.Frame() >= maxFrames {
			slog.Info("max frames reached", "frame", g.Frame())
			break
		}
	}
	return nil
}

func runTerminal(cfg *config.Config, opts game.Options, maxFrames int64) error {
	// The screen owns stdout; logs go to a file or nowhere.
	var logOut io.Writer = io.Discard
	if cfg.Terminal.LogFile != "" {
		f, err := os.OpenFile(cfg.Terminal.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return fmt.Errorf("opening log file: %w", err)
		}
		defer f.Close()
		logOut = f
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(logOut, nil)))

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("creating screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("initializing screen: %w", err)
	}
	defer screen.Fini()

	g, err := game.New(cfg, opts)
	if err != nil {
		return err
	}
	defer g.Close()

	terminal.NewHost(screen, g, cfg.Terminal, nil).Run(maxFrames)
	return nil
}

func runHeadless(cfg *config.Config, opts game.Options, maxFrames, snapshotEvery int64) error {
	manual := clock.NewManualTime(time.Unix(0, 0))
	opts.Clock = manual

	g, err := game.New(cfg, opts)
	if err != nil {
		return err
	}
	defer g.Close()

	if snapshotEvery > 0 && g.Output() == nil {
		slog.Warn("snapshots need -output-dir, none will be written")
		snapshotEvery = 0
	}

	canvas := snapshot.NewCanvas(cfg.Screen.Width, cfg.Screen.Height)
	step := time.Second / time.Duration(cfg.Screen.TargetFPS)

	slog.Info("starting headless run",
		"seed", opts.Seed,
		"max_frames", maxFrames,
		"snapshot_every", snapshotEvery,
	)

	for maxFrames <= 0 || g.Frame() < maxFrames {
		manual.Advance(step)
		g.Advance(step, canvas.Paint)

		if snapshotEvery > 0 && g.Frame()%snapshotEvery == 0 {
			path := g.Output().Path(fmt.Sprintf("frame_%06d.png", g.Frame()))
			if err := canvas.WritePNG(path); err != nil {
				return fmt.Errorf("writing snapshot: %w", err)
			}
			slog.Info("snapshot written", "frame", g.Frame(), "path", path)
		}
	}
	slog.Info("max frames reached", "frame", g.Frame())
	return nil
}
