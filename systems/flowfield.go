package systems

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/lemniscate/components"
)

// FlowFieldParams controls how tile headings are derived from noise.
type FlowFieldParams struct {
	TileSize   float64
	NoiseScale float64
	NoiseLow   float64 // expected noise output range, mapped onto a full turn
	NoiseHigh  float64
}

// FlowField is a grid of tiles covering [0,width] x [0,height], final
// partial row and column included. Headings are recomputed every frame
// from noise; nothing in the particle motion reads them.
type FlowField struct {
	Tiles  [][]components.FlowTile // [column][row]
	params FlowFieldParams
	noise  *Fractal
}

// NewFlowField builds the grid for the given canvas and computes initial headings.
func NewFlowField(bounds components.Bounds, params FlowFieldParams, noise *Fractal, noiseTime float64) *FlowField {
	cols := int(math.Floor(bounds.Width/params.TileSize)) + 1
	rows := int(math.Floor(bounds.Height/params.TileSize)) + 1
	half := params.TileSize / 2

	f := &FlowField{
		Tiles:  make([][]components.FlowTile, cols),
		params: params,
		noise:  noise,
	}
	for c := 0; c < cols; c++ {
		column := make([]components.FlowTile, rows)
		for r := 0; r < rows; r++ {
			pos := r2.Vec{X: float64(c) * params.TileSize, Y: float64(r) * params.TileSize}
			column[r] = components.FlowTile{
				Position: pos,
				Center:   r2.Vec{X: pos.X + half, Y: pos.Y + half},
			}
			f.updateTile(&column[r], noiseTime)
		}
		f.Tiles[c] = column
	}
	return f
}

// Update recomputes every tile heading at the given noise time.
// Tiles are independent, so order does not matter.
func (f *FlowField) Update(noiseTime float64) {
	for c := range f.Tiles {
		column := f.Tiles[c]
		for r := range column {
			f.updateTile(&column[r], noiseTime)
		}
	}
}

// TileFor returns the tile containing (x, y), or false outside the grid.
func (f *FlowField) TileFor(x, y float64) (*components.FlowTile, bool) {
	c := int(math.Floor(x / f.params.TileSize))
	r := int(math.Floor(y / f.params.TileSize))
	if c < 0 || c >= len(f.Tiles) {
		return nil, false
	}
	if r < 0 || r >= len(f.Tiles[c]) {
		return nil, false
	}
	return &f.Tiles[c][r], true
}

// Size returns the number of columns and rows.
func (f *FlowField) Size() (cols, rows int) {
	if len(f.Tiles) == 0 {
		return 0, 0
	}
	return len(f.Tiles), len(f.Tiles[0])
}

// TileSize returns the edge length of a tile.
func (f *FlowField) TileSize() float64 {
	return f.params.TileSize
}

// Rotation returns the heading for a point at the given noise time.
func (f *FlowField) Rotation(x, y, noiseTime float64) float64 {
	s := f.params.NoiseScale
	n := f.noise.Sample(x*s, y*s, noiseTime)
	angle := math.Mod(Remap(n, f.params.NoiseLow, f.params.NoiseHigh, 0, 2*math.Pi), 2*math.Pi)
	if angle < 0 {
		angle += 2 * math.Pi
	}
	return angle
}

func (f *FlowField) updateTile(t *components.FlowTile, noiseTime float64) {
	t.Angle = f.Rotation(t.Center.X, t.Center.Y, noiseTime)
	t.Direction = r2.Vec{X: math.Cos(t.Angle), Y: math.Sin(t.Angle)}
}
