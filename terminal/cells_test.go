package terminal

import (
	"math"
	"testing"

	colorful "github.com/lucasb-eyer/go-colorful"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/lemniscate/components"
	"github.com/pthm-cable/lemniscate/game"
)

var white = components.Tint{Brightness: 100, Alpha: 1}

func segment(x0, y0, x1, y1 float64, tint components.Tint) components.Segment {
	return components.Segment{From: r2.Vec{X: x0, Y: y0}, To: r2.Vec{X: x1, Y: y1}, Tint: tint}
}

func TestCellsPaintSegment(t *testing.T) {
	c := NewCells(20, 10, 8, 16, 0.9)
	c.Paint(&game.State{}, game.FrameOutput{
		Segments: []components.Segment{segment(0, 0, 80, 0, white)},
	})

	if got := c.Lit(); got != 11 {
		t.Errorf("lit %d cells, want 11", got)
	}
	if l := c.At(10, 0); l.R != 1 || l.G != 1 || l.B != 1 {
		t.Errorf("end cell %+v, want white", l)
	}
	if l := c.At(11, 0); l != (colorful.Color{}) {
		t.Errorf("cell past the end lit: %+v", l)
	}
}

func TestCellsAlphaScalesLight(t *testing.T) {
	c := NewCells(4, 4, 8, 16, 1)
	half := white
	half.Alpha = 0.5
	c.Paint(&game.State{}, game.FrameOutput{
		Segments: []components.Segment{segment(4, 4, 4, 4, half)},
	})

	if l := c.At(0, 0); math.Abs(l.R-0.5) > 1e-9 {
		t.Errorf("half alpha cell %+v, want 0.5", l)
	}
}

func TestCellsBlendKeepsBrightest(t *testing.T) {
	c := NewCells(4, 4, 8, 16, 1)
	dim := white
	dim.Brightness = 20
	c.Paint(&game.State{}, game.FrameOutput{
		Segments: []components.Segment{
			segment(1, 1, 1, 1, white),
			segment(1, 1, 1, 1, dim),
		},
	})

	if l := c.At(0, 0); l.R != 1 {
		t.Errorf("dimmer segment darkened the cell: %+v", l)
	}
}

func TestCellsFade(t *testing.T) {
	c := NewCells(4, 4, 8, 16, 0.5)
	s := &game.State{}
	c.Paint(s, game.FrameOutput{Segments: []components.Segment{segment(1, 1, 1, 1, white)}})
	c.Paint(s, game.FrameOutput{})

	if l := c.At(0, 0); math.Abs(l.R-0.5) > 1e-9 {
		t.Errorf("faded cell %+v, want 0.5", l)
	}
}

func TestCellsDebugClears(t *testing.T) {
	c := NewCells(4, 4, 8, 16, 1)
	s := &game.State{}
	c.Paint(s, game.FrameOutput{Segments: []components.Segment{segment(1, 1, 1, 1, white)}})

	s.Params.Debug = true
	c.Paint(s, game.FrameOutput{})
	if c.Lit() != 0 {
		t.Errorf("debug frame kept %d lit cells", c.Lit())
	}
}

func TestCellsMarkerIsBlack(t *testing.T) {
	c := NewCells(4, 4, 8, 16, 1)
	c.Paint(&game.State{}, game.FrameOutput{
		Segments:  []components.Segment{segment(9, 17, 9, 17, white)},
		Marker:    components.Point{At: r2.Vec{X: 9, Y: 17}, Tint: components.Black},
		HasMarker: true,
	})

	if l := c.At(1, 1); l != (colorful.Color{}) {
		t.Errorf("marker cell %+v, want black", l)
	}
}

func TestCellsResize(t *testing.T) {
	c := NewCells(4, 4, 8, 16, 1)
	c.Paint(&game.State{}, game.FrameOutput{Segments: []components.Segment{segment(1, 1, 1, 1, white)}})
	c.Resize(10, 5)

	if cols, rows := c.Size(); cols != 10 || rows != 5 {
		t.Errorf("size %dx%d", cols, rows)
	}
	if w, h := c.CanvasSize(); w != 80 || h != 80 {
		t.Errorf("canvas %gx%g, want 80x80", w, h)
	}
	if c.Lit() != 0 {
		t.Error("resize should start dark")
	}
	if l := c.At(-1, 0); l != (colorful.Color{}) {
		t.Error("out of range cells are dark")
	}
}

func TestGlyph(t *testing.T) {
	tests := []struct {
		v    float64
		want rune
	}{
		{0, 0},
		{0.02, 0},
		{0.05, '░'},
		{0.2, '▒'},
		{0.5, '▓'},
		{1, '█'},
	}
	for _, tt := range tests {
		if got := glyph(colorful.Color{G: tt.v}); got != tt.want {
			t.Errorf("glyph(%g) = %q, want %q", tt.v, got, tt.want)
		}
	}
}
