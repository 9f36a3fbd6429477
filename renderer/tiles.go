package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/lemniscate/systems"
)

var tileColor = rl.NewColor(64, 64, 64, 255)

// DrawFlowTiles outlines every tile and draws a half-tile line along its heading.
func DrawFlowTiles(f *systems.FlowField) {
	size := f.TileSize()
	half := size / 2
	for c := range f.Tiles {
		for r := range f.Tiles[c] {
			t := &f.Tiles[c][r]
			rl.DrawRectangleLines(int32(t.Position.X), int32(t.Position.Y), int32(size), int32(size), tileColor)
			end := vec(t.Center.X+t.Direction.X*half, t.Center.Y+t.Direction.Y*half)
			rl.DrawLineV(vec(t.Center.X, t.Center.Y), end, tileColor)
		}
	}
}
