// Package snapshot rasterizes animation frames in software so headless runs
// can save what the window would show.
package snapshot

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"
	"os"

	"github.com/pthm-cable/lemniscate/components"
	"github.com/pthm-cable/lemniscate/game"
	"github.com/pthm-cable/lemniscate/systems"
)

var (
	background = color.RGBA{A: 255}
	tileColor  = color.RGBA{R: 64, G: 64, B: 64, A: 255}
)

// Canvas is a persistent RGBA surface painted with a per-channel max blend,
// the software twin of the raylib particle canvas.
type Canvas struct {
	img *image.RGBA
}

// NewCanvas creates a black canvas.
func NewCanvas(width, height int) *Canvas {
	c := &Canvas{}
	c.Resize(width, height)
	return c
}

// Resize replaces the surface with a black one of the new size.
func (c *Canvas) Resize(width, height int) {
	c.img = image.NewRGBA(image.Rect(0, 0, width, height))
	c.Clear()
}

// Clear paints the canvas black.
func (c *Canvas) Clear() {
	draw.Draw(c.img, c.img.Bounds(), &image.Uniform{C: background}, image.Point{}, draw.Src)
}

// Paint adds one frame. In debug mode the canvas is cleared and the flow
// tiles are drawn underneath opaque segments.
func (c *Canvas) Paint(s *game.State, out game.FrameOutput) {
	if s.Params.Debug {
		c.Clear()
		c.drawTiles(s.Field)
		for _, seg := range out.Segments {
			c.line(seg.From.X, seg.From.Y, seg.To.X, seg.To.Y, premultiplied(seg.Tint), c.set)
		}
	} else {
		for _, seg := range out.Segments {
			c.line(seg.From.X, seg.From.Y, seg.To.X, seg.To.Y, premultiplied(seg.Tint), c.lighten)
		}
	}

	if out.HasMarker {
		c.set(int(math.Round(out.Marker.At.X)), int(math.Round(out.Marker.At.Y)), premultiplied(out.Marker.Tint))
	}
}

// Image returns the canvas surface.
func (c *Canvas) Image() *image.RGBA {
	return c.img
}

// Lit returns the number of pixels that are not black.
func (c *Canvas) Lit() int {
	n := 0
	pix := c.img.Pix
	for i := 0; i+3 < len(pix); i += 4 {
		if pix[i] != 0 || pix[i+1] != 0 || pix[i+2] != 0 {
			n++
		}
	}
	return n
}

// WritePNG encodes the canvas to path.
func (c *Canvas) WritePNG(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating snapshot: %w", err)
	}
	if err := png.Encode(f, c.img); err != nil {
		f.Close()
		return fmt.Errorf("encoding snapshot: %w", err)
	}
	return f.Close()
}

func (c *Canvas) drawTiles(f *systems.FlowField) {
	size := f.TileSize()
	half := size / 2
	for col := range f.Tiles {
		for row := range f.Tiles[col] {
			t := &f.Tiles[col][row]
			x0, y0 := t.Position.X, t.Position.Y
			x1, y1 := x0+size, y0+size
			c.line(x0, y0, x1, y0, tileColor, c.set)
			c.line(x1, y0, x1, y1, tileColor, c.set)
			c.line(x1, y1, x0, y1, tileColor, c.set)
			c.line(x0, y1, x0, y0, tileColor, c.set)
			c.line(t.Center.X, t.Center.Y, t.Center.X+t.Direction.X*half, t.Center.Y+t.Direction.Y*half, tileColor, c.set)
		}
	}
}

// line walks the pixels between two points with Bresenham's algorithm.
func (c *Canvas) line(fx0, fy0, fx1, fy1 float64, col color.RGBA, plot func(x, y int, col color.RGBA)) {
	x0, y0 := int(math.Round(fx0)), int(math.Round(fy0))
	x1, y1 := int(math.Round(fx1)), int(math.Round(fy1))

	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	e := dx + dy

	for {
		plot(x0, y0, col)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x0 += sx
		}
		if e2 <= dx {
			e += dx
			y0 += sy
		}
	}
}

func (c *Canvas) set(x, y int, col color.RGBA) {
	if !(image.Point{X: x, Y: y}.In(c.img.Rect)) {
		return
	}
	c.img.SetRGBA(x, y, col)
}

func (c *Canvas) lighten(x, y int, col color.RGBA) {
	if !(image.Point{X: x, Y: y}.In(c.img.Rect)) {
		return
	}
	i := c.img.PixOffset(x, y)
	p := c.img.Pix[i : i+4 : i+4]
	p[0] = max(p[0], col.R)
	p[1] = max(p[1], col.G)
	p[2] = max(p[2], col.B)
	p[3] = 255
}

// premultiplied folds alpha into the channels, which is the tint composited
// over black. The max blend has no alpha term of its own.
func premultiplied(t components.Tint) color.RGBA {
	n := t.RGBA()
	a := uint32(n.A)
	return color.RGBA{
		R: uint8(uint32(n.R) * a / 255),
		G: uint8(uint32(n.G) * a / 255),
		B: uint8(uint32(n.B) * a / 255),
		A: 255,
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
