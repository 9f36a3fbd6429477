package renderer

import (
	"fmt"
	"time"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/lemniscate/telemetry"
	"github.com/pthm-cable/lemniscate/ui"
)

// Theme holds HUD styling constants.
type Theme struct {
	PanelBg       rl.Color
	PanelBorder   rl.Color
	Header        rl.Color
	Label         rl.Color
	Hot           rl.Color
	Warm          rl.Color
	Countdown     rl.Color
	Padding       int32
	LineHeight    int32
	FontSize      int32
	HeaderSize    int32
	CountdownSize int32
}

// DefaultTheme returns the default HUD theme.
func DefaultTheme() Theme {
	return Theme{
		PanelBg:       rl.Color{R: 20, G: 25, B: 30, A: 200},
		PanelBorder:   rl.Color{R: 60, G: 70, B: 80, A: 255},
		Header:        rl.Yellow,
		Label:         rl.LightGray,
		Hot:           rl.Red,
		Warm:          rl.Orange,
		Countdown:     rl.RayWhite,
		Padding:       10,
		LineHeight:    16,
		FontSize:      12,
		HeaderSize:    14,
		CountdownSize: 48,
	}
}

// HUD draws the text board over the canvas, plus an optional perf panel.
type HUD struct {
	Theme    Theme
	ShowPerf bool
}

// NewHUD creates a HUD with the default theme.
func NewHUD() *HUD {
	return &HUD{Theme: DefaultTheme()}
}

// DrawBoard draws the visible countdown targets centered below the canvas middle.
func (h *HUD) DrawBoard(board *ui.Board, width, height int32) {
	size := h.Theme.CountdownSize
	y := height/2 + height/4
	for _, id := range board.IDs() {
		if id == ui.TargetFPS || !board.Visible(id) {
			continue
		}
		text := board.Text(id)
		x := (width - rl.MeasureText(text, size)) / 2
		rl.DrawText(text, x, y, size, h.Theme.Countdown)
		y += size + 4
	}

	if board.Has(ui.TargetFPS) {
		rl.DrawText(board.Text(ui.TargetFPS), h.Theme.Padding, h.Theme.Padding, h.Theme.HeaderSize, h.Theme.Label)
	}
}

// DrawPerf renders the frame phase breakdown at (x, y).
func (h *HUD) DrawPerf(stats telemetry.PerfStats, x, y int32) {
	if !h.ShowPerf {
		return
	}
	t := h.Theme
	phases := telemetry.PhaseNames()
	w := int32(230)
	hgt := t.Padding*2 + t.LineHeight*int32(len(phases)+2)

	rl.DrawRectangle(x, y, w, hgt, t.PanelBg)
	rl.DrawRectangleLines(x, y, w, hgt, t.PanelBorder)

	x += t.Padding
	y += t.Padding
	rl.DrawText("Frame Performance", x, y, t.HeaderSize, t.Header)
	y += t.LineHeight

	rl.DrawText(fmt.Sprintf("Avg: %s  FPS: %.0f", stats.AvgTickDuration.Round(time.Microsecond), stats.FPS),
		x, y, t.FontSize, t.Label)
	y += t.LineHeight

	for _, phase := range phases {
		pct := stats.PhasePct[phase]
		color := t.Label
		if pct > 50 {
			color = t.Hot
		} else if pct > 25 {
			color = t.Warm
		}
		rl.DrawText(fmt.Sprintf("%-12s %8s %5.1f%%", phase, stats.PhaseAvg[phase].Round(time.Microsecond), pct),
			x, y, t.FontSize, color)
		y += t.LineHeight
	}
}

// DebugButton draws a toggle for debug mode and returns the requested state.
func (h *HUD) DebugButton(debug bool, x, y float32) bool {
	label := "Debug: OFF"
	if debug {
		label = "Debug: ON"
	}
	if gui.Button(rl.Rectangle{X: x, Y: y, Width: 110, Height: 26}, label) {
		return !debug
	}
	return debug
}

// PerfButton toggles the perf panel.
func (h *HUD) PerfButton(x, y float32) {
	label := "Perf: OFF"
	if h.ShowPerf {
		label = "Perf: ON"
	}
	if gui.Button(rl.Rectangle{X: x, Y: y, Width: 110, Height: 26}, label) {
		h.ShowPerf = !h.ShowPerf
	}
}
