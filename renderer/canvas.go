// Package renderer draws the animation with raylib.
package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/lemniscate/components"
	"github.com/pthm-cable/lemniscate/game"
)

// GL blend values for a per-channel max ("lightest") blend.
const (
	glOne = 1
	glMax = 0x8008
)

// ParticleCanvas accumulates particle segments in a render texture that is
// never cleared between frames, so trails build up over time.
type ParticleCanvas struct {
	target        rl.RenderTexture2D
	width, height int32
	initialized   bool
}

// NewParticleCanvas creates a canvas of the given size.
func NewParticleCanvas(width, height int32) *ParticleCanvas {
	return &ParticleCanvas{width: width, height: height}
}

// Init allocates the render texture (must be called after the raylib window is created).
func (c *ParticleCanvas) Init() {
	if c.initialized {
		return
	}
	c.target = rl.LoadRenderTexture(c.width, c.height)
	c.initialized = true
	c.Clear()
}

// Resize reallocates the canvas, discarding its trails.
func (c *ParticleCanvas) Resize(width, height int32) {
	if width == c.width && height == c.height {
		return
	}
	c.Unload()
	c.width, c.height = width, height
	c.Init()
}

// Clear paints the canvas black.
func (c *ParticleCanvas) Clear() {
	rl.BeginTextureMode(c.target)
	rl.ClearBackground(rl.Black)
	rl.EndTextureMode()
}

// Paint adds one frame to the canvas. In debug mode the canvas is cleared
// first and the flow tiles are drawn underneath opaque segments.
func (c *ParticleCanvas) Paint(s *game.State, out game.FrameOutput) {
	if !c.initialized {
		c.Init()
	}

	rl.BeginTextureMode(c.target)

	if s.Params.Debug {
		rl.ClearBackground(rl.Black)
		DrawFlowTiles(s.Field)
		for _, seg := range out.Segments {
			rl.DrawLineV(vec(seg.From.X, seg.From.Y), vec(seg.To.X, seg.To.Y), straightColor(seg.Tint))
		}
	} else {
		rl.SetBlendFactors(glOne, glOne, glMax)
		rl.BeginBlendMode(rl.BlendCustom)
		for _, seg := range out.Segments {
			rl.DrawLineV(vec(seg.From.X, seg.From.Y), vec(seg.To.X, seg.To.Y), premultiplied(seg.Tint))
		}
		rl.EndBlendMode()
	}

	if out.HasMarker {
		rl.DrawPixelV(vec(out.Marker.At.X, out.Marker.At.Y), straightColor(out.Marker.Tint))
	}

	rl.EndTextureMode()
}

// Draw blits the canvas to the screen.
func (c *ParticleCanvas) Draw() {
	if !c.initialized {
		return
	}
	// Render textures are stored upside down
	src := rl.Rectangle{X: 0, Y: 0, Width: float32(c.width), Height: -float32(c.height)}
	rl.DrawTextureRec(c.target.Texture, src, rl.Vector2{}, rl.White)
}

// Unload frees the render texture.
func (c *ParticleCanvas) Unload() {
	if c.initialized {
		rl.UnloadRenderTexture(c.target)
		c.initialized = false
	}
}

// premultiplied folds alpha into the color channels. The max blend ignores
// alpha, so this is how translucent segments stay dim.
func premultiplied(t components.Tint) rl.Color {
	c := t.RGBA()
	a := uint32(c.A)
	return rl.NewColor(
		uint8(uint32(c.R)*a/255),
		uint8(uint32(c.G)*a/255),
		uint8(uint32(c.B)*a/255),
		255,
	)
}

func straightColor(t components.Tint) rl.Color {
	c := t.RGBA()
	return rl.NewColor(c.R, c.G, c.B, c.A)
}

func vec(x, y float64) rl.Vector2 {
	return rl.Vector2{X: float32(x), Y: float32(y)}
}
