// Flow field preview tool - interactive tile heading visualization with sliders.
//
// Usage: go run ./cmd/fieldpreview [-config path]
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/stat"
	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/lemniscate/components"
	"github.com/pthm-cable/lemniscate/config"
	"github.com/pthm-cable/lemniscate/renderer"
	"github.com/pthm-cable/lemniscate/systems"
)

const (
	windowWidth  = 1000
	windowHeight = 720
	previewSize  = 512
	panelWidth   = windowWidth - previewSize - 30
)

// FieldParams holds the tunable flow field settings.
type FieldParams struct {
	Kind       string  `yaml:"kind"`
	Octaves    int     `yaml:"octaves"`
	Falloff    float32 `yaml:"falloff"`
	TileSize   float32 `yaml:"tile_size"`
	NoiseScale float32 `yaml:"noise_scale"`
	TimeStep   float32 `yaml:"time_step"`
	NoiseLow   float32 `yaml:"noise_low"`
	NoiseHigh  float32 `yaml:"noise_high"`
	Seed       int64   `yaml:"-"`
}

func paramsFromConfig(cfg *config.Config) FieldParams {
	return FieldParams{
		Kind:       cfg.Noise.Kind,
		Octaves:    cfg.Noise.Octaves,
		Falloff:    float32(cfg.Noise.Falloff),
		TileSize:   float32(cfg.Flow.TileSize),
		NoiseScale: float32(cfg.Flow.NoiseScale),
		TimeStep:   float32(cfg.Flow.TimeStep),
		NoiseLow:   float32(cfg.Flow.NoiseLow),
		NoiseHigh:  float32(cfg.Flow.NoiseHigh),
		Seed:       12345,
	}
}

func buildField(p FieldParams, noiseTime float64) (*systems.FlowField, error) {
	src, err := systems.NewNoise(p.Kind, p.Seed)
	if err != nil {
		return nil, err
	}
	noise := systems.NewFractal(src, p.Octaves, float64(p.Falloff))
	bounds := components.Bounds{Width: previewSize, Height: previewSize}
	return systems.NewFlowField(bounds, systems.FlowFieldParams{
		TileSize:   float64(p.TileSize),
		NoiseScale: float64(p.NoiseScale),
		NoiseLow:   float64(p.NoiseLow),
		NoiseHigh:  float64(p.NoiseHigh),
	}, noise, noiseTime), nil
}

func fieldYAML(p FieldParams) string {
	out, err := yaml.Marshal(map[string]any{
		"noise": map[string]any{"kind": p.Kind, "octaves": p.Octaves, "falloff": p.Falloff},
		"flow": map[string]any{
			"tile_size":   p.TileSize,
			"noise_scale": p.NoiseScale,
			"time_step":   p.TimeStep,
			"noise_low":   p.NoiseLow,
			"noise_high":  p.NoiseHigh,
		},
	})
	if err != nil {
		return err.Error()
	}
	return string(out)
}

func main() {
	configPath := flag.String("config", "", "Path to config file (uses embedded defaults if not specified)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	rl.InitWindow(windowWidth, windowHeight, "Flow Field Preview")
	defer rl.CloseWindow()
	rl.SetTargetFPS(30)

	defaults := paramsFromConfig(cfg)
	params := defaults

	var frame int64
	animating := false
	needsRegen := true
	var field *systems.FlowField

	camera := rl.Camera2D{Offset: rl.Vector2{X: 10, Y: 10}, Zoom: 1}

	for !rl.WindowShouldClose() {
		if animating {
			frame++
			needsRegen = true
		}

		if needsRegen {
			f, err := buildField(params, float64(frame)*float64(params.TimeStep))
			if err != nil {
				slog.Error("failed to build flow field", "error", err)
				os.Exit(1)
			}
			field = f
			needsRegen = false
		}

		rl.BeginDrawing()
		rl.ClearBackground(rl.RayWhite)

		rl.DrawRectangle(10, 10, previewSize, previewSize, rl.Black)
		rl.BeginScissorMode(10, 10, previewSize, previewSize)
		rl.BeginMode2D(camera)
		renderer.DrawFlowTiles(field)
		rl.EndMode2D()
		rl.EndScissorMode()
		rl.DrawRectangleLines(10, 10, previewSize, previewSize, rl.DarkGray)

		// Heading stats
		var angles []float64
		for c := range field.Tiles {
			for r := range field.Tiles[c] {
				angles = append(angles, field.Tiles[c][r].Angle)
			}
		}
		mean, std := stat.MeanStdDev(angles, nil)
		cols, rows := field.Size()

		statsY := int32(previewSize + 25)
		rl.DrawText(fmt.Sprintf("Tiles: %dx%d  Mean angle: %.3f  Std: %.3f", cols, rows, mean, std), 15, statsY, 16, rl.DarkGray)
		rl.DrawText(fmt.Sprintf("Frame: %d  Noise time: %.4f", frame, float64(frame)*float64(params.TimeStep)), 15, statsY+20, 16, rl.DarkGray)

		panelX := float32(previewSize + 20)
		panelY := float32(10)

		rl.DrawText("Flow Field Parameters", int32(panelX), int32(panelY), 20, rl.DarkGray)
		panelY += 35

		slider := func(label, format string, value, lo, hi float32) float32 {
			rl.DrawText(label, int32(panelX), int32(panelY), 14, rl.Gray)
			panelY += 18
			next := gui.SliderBar(
				rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
				fmt.Sprintf(format, lo), fmt.Sprintf(format, hi),
				value, lo, hi,
			)
			rl.DrawText(fmt.Sprintf(format, value), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.DarkGray)
			panelY += 35
			if next != value {
				needsRegen = true
			}
			return next
		}

		params.TileSize = slider("Tile size (canvas units)", "%.0f", params.TileSize, 5, 60)
		params.NoiseScale = slider("Noise scale (spatial frequency)", "%.4f", params.NoiseScale, 0.0005, 0.02)
		params.TimeStep = slider("Time step (noise drift per frame)", "%.4f", params.TimeStep, 0, 0.01)
		params.Octaves = int(slider("Octaves", "%.0f", float32(params.Octaves), 1, 8))
		params.Falloff = slider("Falloff (octave amplitude)", "%.2f", params.Falloff, 0.1, 0.9)
		params.NoiseLow = slider("Noise low (maps to 0)", "%.2f", params.NoiseLow, 0, 0.5)
		params.NoiseHigh = slider("Noise high (maps to a full turn)", "%.2f", params.NoiseHigh, 0.5, 1)

		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, toggleText(animating, "Stop", "Animate")) {
			animating = !animating
		}
		if gui.Button(rl.Rectangle{X: panelX + 130, Y: panelY, Width: 120, Height: 30}, "Noise: "+params.Kind) {
			params.Kind = toggleText(params.Kind == "simplex", "perlin", "simplex")
			needsRegen = true
		}
		panelY += 40

		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, "Random Seed") {
			params.Seed = int64(rl.GetRandomValue(0, 99999))
			needsRegen = true
		}
		if gui.Button(rl.Rectangle{X: panelX + 130, Y: panelY, Width: 120, Height: 30}, "Reset All") {
			params = defaults
			frame = 0
			needsRegen = true
		}
		panelY += 45

		snippet := fieldYAML(params)
		rl.DrawText("YAML Config:", int32(panelX), int32(panelY), 16, rl.DarkGray)
		panelY += 22
		for _, line := range strings.Split(strings.TrimRight(snippet, "\n"), "\n") {
			rl.DrawText(line, int32(panelX), int32(panelY), 14, rl.Gray)
			panelY += 16
		}

		rl.DrawText("Press C to copy YAML to clipboard", int32(panelX), int32(windowHeight-30), 12, rl.LightGray)
		if rl.IsKeyPressed(rl.KeyC) {
			rl.SetClipboardText(snippet)
		}

		rl.EndDrawing()
	}
}

func toggleText(cond bool, ifTrue, ifFalse string) string {
	if cond {
		return ifTrue
	}
	return ifFalse
}
