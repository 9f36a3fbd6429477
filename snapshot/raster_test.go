package snapshot

import (
	"image/color"
	"image/png"
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/pthm-cable/lemniscate/components"
	"github.com/pthm-cable/lemniscate/config"
	"github.com/pthm-cable/lemniscate/game"
	"github.com/pthm-cable/lemniscate/systems"
)

func newState(t *testing.T, tweak func(*game.Params)) *game.State {
	t.Helper()
	params := game.ParamsFromConfig(config.Defaults())
	if tweak != nil {
		tweak(&params)
	}
	noise := systems.NewFractal(systems.NewPerlinNoise(3), 4, 0.5)
	return game.NewState(params, components.Bounds{Width: 64, Height: 48}, rand.New(rand.NewSource(3)), noise)
}

func TestLightenKeepsBrightestChannel(t *testing.T) {
	c := NewCanvas(4, 4)
	c.lighten(1, 1, color.RGBA{R: 100, G: 50, A: 255})
	c.lighten(1, 1, color.RGBA{R: 50, G: 80, B: 10, A: 255})

	got := c.Image().RGBAAt(1, 1)
	want := color.RGBA{R: 100, G: 80, B: 10, A: 255}
	if got != want {
		t.Errorf("got %v, want %v", got, want)
	}

	// Out of bounds writes are dropped
	c.lighten(-1, 7, color.RGBA{R: 255, A: 255})
	if c.Lit() != 1 {
		t.Errorf("expected 1 lit pixel, got %d", c.Lit())
	}
}

func TestLineCoversEndpoints(t *testing.T) {
	c := NewCanvas(10, 10)
	white := color.RGBA{R: 255, G: 255, B: 255, A: 255}
	c.line(0, 0, 5, 3, white, c.set)

	if c.Image().RGBAAt(0, 0) != white || c.Image().RGBAAt(5, 3) != white {
		t.Error("line should include both endpoints")
	}
	if c.Lit() != 6 {
		t.Errorf("expected 6 pixels for a 5x3 line, got %d", c.Lit())
	}
}

func TestPremultipliedHalvesHalfAlpha(t *testing.T) {
	full := premultiplied(components.Tint{Hue: 0, Saturation: 100, Brightness: 100, Alpha: 1})
	half := premultiplied(components.Tint{Hue: 0, Saturation: 100, Brightness: 100, Alpha: 0.5})
	if full.R != 255 {
		t.Fatalf("full red %v", full)
	}
	if half.R != 128 {
		t.Errorf("half alpha red %d, want 128", half.R)
	}
}

func TestPaintFrame(t *testing.T) {
	s := newState(t, nil)
	out := game.Step(s, game.FrameInput{Frame: 1, DeltaMS: 16, Millis: 16}, nil)

	c := NewCanvas(64, 48)
	c.Paint(s, out)

	if c.Lit() == 0 {
		t.Fatal("expected particle segments on the canvas")
	}
	// The marker overwrites whatever is under it with black
	if got := c.Image().RGBAAt(62, 26); got != (color.RGBA{A: 255}) {
		t.Errorf("marker pixel %v, want black", got)
	}
}

func TestPaintDebugClearsAndDrawsTiles(t *testing.T) {
	s := newState(t, func(p *game.Params) {
		p.Debug = true
		p.ParticleCount = 0
	})
	c := NewCanvas(64, 48)
	c.Image().SetRGBA(1, 1, color.RGBA{R: 255, G: 255, B: 255, A: 255})

	out := game.Step(s, game.FrameInput{Frame: 1, DeltaMS: 16, Millis: 16}, nil)
	c.Paint(s, out)

	if got := c.Image().RGBAAt(1, 1); got != (color.RGBA{A: 255}) {
		t.Errorf("debug paint should clear old trails, got %v", got)
	}
	if got := c.Image().RGBAAt(0, 0); got != tileColor {
		t.Errorf("tile corner %v, want %v", got, tileColor)
	}
}

func TestWritePNG(t *testing.T) {
	c := NewCanvas(8, 6)
	c.lighten(2, 3, color.RGBA{G: 200, A: 255})

	path := filepath.Join(t.TempDir(), "frame.png")
	if err := c.WritePNG(path); err != nil {
		t.Fatal(err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 8 || b.Dy() != 6 {
		t.Errorf("decoded size %v", b)
	}
	if _, g, _, _ := img.At(2, 3).RGBA(); g>>8 != 200 {
		t.Errorf("decoded green %d, want 200", g>>8)
	}
}
