package systems

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// LemniscatePoint returns the point at parameter theta on a lemniscate of
// Bernoulli with half-width scale, centered on center.
func LemniscatePoint(theta, scale float64, center r2.Vec) r2.Vec {
	sin, cos := math.Sincos(theta)
	denom := 1 + sin*sin
	return r2.Vec{
		X: scale*cos/denom + center.X,
		Y: scale*sin*cos/denom + center.Y,
	}
}

// LissajousPoint returns the point of a lissajous figure at time t.
func LissajousPoint(t, radiusX, radiusY, freqX, freqY float64, center r2.Vec) r2.Vec {
	return r2.Vec{
		X: radiusX*math.Cos(t*freqX) + center.X,
		Y: radiusY*math.Sin(t*freqY) + center.Y,
	}
}
