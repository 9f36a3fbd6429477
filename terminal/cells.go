// Package terminal runs the animation in a terminal with tcell, one
// character cell standing in for a block of canvas pixels.
package terminal

import (
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/pthm-cable/lemniscate/game"
)

// Cells is the terminal's trail buffer. Segments are blended in with a
// per-channel max and every frame the buffer fades, since a terminal has
// too few cells to let trails build up forever.
type Cells struct {
	cols, rows   int
	cellW, cellH float64
	fade         float64
	lit          []colorful.Color
}

// NewCells creates a buffer of cols x rows cells, each covering
// cellW x cellH canvas units.
func NewCells(cols, rows int, cellW, cellH, fade float64) *Cells {
	c := &Cells{cellW: cellW, cellH: cellH, fade: fade}
	c.Resize(cols, rows)
	return c
}

// Resize discards the buffer and allocates a dark one.
func (c *Cells) Resize(cols, rows int) {
	c.cols, c.rows = max(cols, 0), max(rows, 0)
	c.lit = make([]colorful.Color, c.cols*c.rows)
}

// Size returns the buffer dimensions in cells.
func (c *Cells) Size() (cols, rows int) {
	return c.cols, c.rows
}

// CanvasSize returns the canvas the buffer covers.
func (c *Cells) CanvasSize() (width, height float64) {
	return float64(c.cols) * c.cellW, float64(c.rows) * c.cellH
}

// Clear darkens every cell.
func (c *Cells) Clear() {
	clear(c.lit)
}

// Fade dims every cell by the fade factor.
func (c *Cells) Fade() {
	for i := range c.lit {
		l := &c.lit[i]
		l.R *= c.fade
		l.G *= c.fade
		l.B *= c.fade
	}
}

// Paint blends one frame into the buffer.
func (c *Cells) Paint(s *game.State, out game.FrameOutput) {
	if s.Params.Debug {
		c.Clear()
	} else {
		c.Fade()
	}

	for _, seg := range out.Segments {
		col := seg.Tint.Color()
		a := seg.Tint.Alpha
		col = colorful.Color{R: col.R * a, G: col.G * a, B: col.B * a}

		x0, y0 := seg.From.X/c.cellW, seg.From.Y/c.cellH
		x1, y1 := seg.To.X/c.cellW, seg.To.Y/c.cellH
		steps := int(math.Ceil(math.Max(math.Abs(x1-x0), math.Abs(y1-y0))))
		for i := 0; i <= steps; i++ {
			f := 0.0
			if steps > 0 {
				f = float64(i) / float64(steps)
			}
			c.lighten(int(x0+(x1-x0)*f), int(y0+(y1-y0)*f), col)
		}
	}

	if out.HasMarker {
		if i, ok := c.index(int(out.Marker.At.X/c.cellW), int(out.Marker.At.Y/c.cellH)); ok {
			c.lit[i] = out.Marker.Tint.Color()
		}
	}
}

// At returns the color of a cell; cells outside the buffer are dark.
func (c *Cells) At(col, row int) colorful.Color {
	if i, ok := c.index(col, row); ok {
		return c.lit[i]
	}
	return colorful.Color{}
}

// Lit returns the number of cells with any light in them.
func (c *Cells) Lit() int {
	n := 0
	for _, l := range c.lit {
		if l.R > 0 || l.G > 0 || l.B > 0 {
			n++
		}
	}
	return n
}

func (c *Cells) lighten(col, row int, with colorful.Color) {
	i, ok := c.index(col, row)
	if !ok {
		return
	}
	l := &c.lit[i]
	l.R = math.Max(l.R, with.R)
	l.G = math.Max(l.G, with.G)
	l.B = math.Max(l.B, with.B)
}

func (c *Cells) index(col, row int) (int, bool) {
	if col < 0 || row < 0 || col >= c.cols || row >= c.rows {
		return 0, false
	}
	return row*c.cols + col, true
}

// glyph picks a shade block for a cell's brightness, or 0 for dark cells.
func glyph(l colorful.Color) rune {
	v := math.Max(l.R, math.Max(l.G, l.B))
	switch {
	case v > 0.6:
		return '█'
	case v > 0.3:
		return '▓'
	case v > 0.1:
		return '▒'
	case v > 0.02:
		return '░'
	}
	return 0
}
