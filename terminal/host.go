package terminal

import (
	"log/slog"
	"math"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/pthm-cable/lemniscate/clock"
	"github.com/pthm-cable/lemniscate/config"
	"github.com/pthm-cable/lemniscate/game"
	"github.com/pthm-cable/lemniscate/systems"
	"github.com/pthm-cable/lemniscate/ui"
)

var (
	styleBackground = tcell.StyleDefault.Background(tcell.ColorBlack)
	styleText       = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlack).Bold(true)
	styleDim        = tcell.StyleDefault.Foreground(tcell.ColorGray).Background(tcell.ColorBlack)
	styleTile       = tcell.StyleDefault.Foreground(tcell.NewRGBColor(64, 64, 64)).Background(tcell.ColorBlack)
)

// arrows indexed by heading octant, starting east and turning clockwise
// (canvas y points down).
var arrows = []rune{'→', '↘', '↓', '↙', '←', '↖', '↑', '↗'}

// Host drives a game on a tcell screen.
type Host struct {
	screen tcell.Screen
	game   *game.Game
	cfg    config.TerminalConfig
	cells  *Cells
	timer  *clock.FrameTimer
}

// NewHost sizes the game's canvas to the screen. The screen must already
// be initialized.
func NewHost(screen tcell.Screen, g *game.Game, cfg config.TerminalConfig, provider clock.TimeProvider) *Host {
	if provider == nil {
		provider = clock.SystemTime{}
	}
	cols, rows := screen.Size()
	h := &Host{
		screen: screen,
		game:   g,
		cfg:    cfg,
		cells:  NewCells(cols, rows, cfg.CellWidth, cfg.CellHeight, cfg.Fade),
		timer:  clock.NewFrameTimer(provider),
	}
	g.Resize(h.cells.CanvasSize())
	screen.SetStyle(styleBackground)
	screen.Clear()
	return h
}

// Run renders frames on a fixed ticker until the user quits or maxFrames
// frames have run (0 means no limit).
func (h *Host) Run(maxFrames int64) {
	ticker := time.NewTicker(time.Duration(h.cfg.FrameMS) * time.Millisecond)
	defer ticker.Stop()

	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := h.screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			events <- ev
		}
	}()

	for {
		select {
		case ev, ok := <-events:
			if !ok || !h.HandleEvent(ev) {
				return
			}
		case <-ticker.C:
			h.Frame()
			if maxFrames > 0 && h.game.Frame() >= maxFrames {
				slog.Info("max frames reached", "frame", h.game.Frame())
				return
			}
		}
	}
}

// Frame advances the game by the time since the previous frame and draws it.
func (h *Host) Frame() {
	_, delta, _ := h.timer.Tick()
	h.game.Advance(delta, func(s *game.State, out game.FrameOutput) {
		h.cells.Paint(s, out)
		h.draw(s)
	})
}

// HandleEvent reacts to input; it returns false when the host should stop.
func (h *Host) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return h.handleKey(ev.Key(), ev.Rune())
	case *tcell.EventResize:
		h.screen.Sync()
		h.resize()
	}
	return true
}

func (h *Host) handleKey(key tcell.Key, r rune) bool {
	switch key {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyRune:
		switch r {
		case 'q':
			return false
		case 'd':
			h.game.SetDebug(!h.game.Config().Debug)
			h.cells.Clear()
		}
	}
	return true
}

func (h *Host) resize() {
	cols, rows := h.screen.Size()
	if c, r := h.cells.Size(); c == cols && r == rows {
		return
	}
	h.cells.Resize(cols, rows)
	h.game.Resize(h.cells.CanvasSize())
}

// Cells returns the trail buffer.
func (h *Host) Cells() *Cells {
	return h.cells
}

func (h *Host) draw(s *game.State) {
	h.screen.Clear()
	cols, rows := h.cells.Size()

	if s.Params.Debug {
		h.drawTiles(s.Field)
	}

	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			l := h.cells.At(col, row)
			g := glyph(l)
			if g == 0 {
				continue
			}
			r, gr, b := l.Clamped().RGB255()
			style := tcell.StyleDefault.Foreground(tcell.NewRGBColor(int32(r), int32(gr), int32(b))).Background(tcell.ColorBlack)
			h.screen.SetContent(col, row, g, nil, style)
		}
	}

	h.drawBoard(h.game.Board(), cols, rows)
	h.screen.Show()
}

func (h *Host) drawTiles(f *systems.FlowField) {
	for c := range f.Tiles {
		for r := range f.Tiles[c] {
			t := &f.Tiles[c][r]
			col := int(t.Center.X / h.cfg.CellWidth)
			row := int(t.Center.Y / h.cfg.CellHeight)
			octant := int(math.Round(t.Angle/(math.Pi/4))) % len(arrows)
			h.screen.SetContent(col, row, arrows[octant], nil, styleTile)
		}
	}
}

func (h *Host) drawBoard(b *ui.Board, cols, rows int) {
	row := rows * 3 / 4
	for _, id := range b.IDs() {
		if id == ui.TargetFPS || !b.Visible(id) {
			continue
		}
		text := []rune(b.Text(id))
		drawText(h.screen, (cols-len(text))/2, row, text, styleText)
		row++
	}

	if b.Has(ui.TargetFPS) {
		drawText(h.screen, 0, 0, []rune(b.Text(ui.TargetFPS)), styleDim)
	}
}

func drawText(screen tcell.Screen, x, y int, text []rune, style tcell.Style) {
	for i, r := range text {
		screen.SetContent(x+i, y, r, nil, style)
	}
}
