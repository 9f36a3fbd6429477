package components

import (
	"image/color"
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Tint is a color in hue/saturation/brightness space.
// Hue is in degrees, saturation and brightness on a 0-100 scale, alpha in [0,1].
type Tint struct {
	Hue        float64
	Saturation float64
	Brightness float64
	Alpha      float64
}

// Black is the tint of the center marker.
var Black = Tint{Alpha: 1}

// Color converts the tint to RGB. Saturation and brightness above 100 are clipped.
func (t Tint) Color() colorful.Color {
	hue := math.Mod(t.Hue, 360)
	if hue < 0 {
		hue += 360
	}
	return colorful.Hsv(hue, unit(t.Saturation/100), unit(t.Brightness/100)).Clamped()
}

// RGBA returns the tint as a non-premultiplied 8-bit color.
func (t Tint) RGBA() color.NRGBA {
	r, g, b := t.Color().RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: uint8(unit(t.Alpha)*255 + 0.5)}
}

func unit(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
