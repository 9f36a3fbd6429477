package systems

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/lemniscate/components"
)

// ParticleParams controls particle creation and random movement.
type ParticleParams struct {
	MinMagnitude   float64
	MaxMagnitude   float64
	RedirectChance float64
	TintScale      float64
	TintLow        float64 // expected noise range mapped onto [HueMin, HueMax]
	TintHigh       float64
	HueMin         float64
	HueMax         float64
	Saturation     float64
	Brightness     float64
	Alpha          float64
}

// NewParticle creates a particle at a uniform random position on the canvas.
// Its hue comes from the noise field at that position and time.
func NewParticle(rng *rand.Rand, bounds components.Bounds, params ParticleParams, noise *Fractal, noiseTime float64) components.Particle {
	pos := r2.Vec{X: rng.Float64() * bounds.Width, Y: rng.Float64() * bounds.Height}
	return NewParticleAt(rng, pos, params, noise, noiseTime)
}

// NewParticleAt creates a particle at pos with a random heading and magnitude.
func NewParticleAt(rng *rand.Rand, pos r2.Vec, params ParticleParams, noise *Fractal, noiseTime float64) components.Particle {
	n := noise.Sample(pos.X*params.TintScale, pos.Y*params.TintScale, noiseTime)
	hue := Remap(n, params.TintLow, params.TintHigh, params.HueMin, params.HueMax)
	hue = math.Max(params.HueMin, math.Min(params.HueMax, hue))

	mag := params.MinMagnitude + rng.Float64()*(params.MaxMagnitude-params.MinMagnitude)

	return components.Particle{
		Position:     pos,
		PrevPosition: pos,
		Direction:    RandomDirection(rng, mag),
		Magnitude:    mag,
		Tint: components.Tint{
			Hue:        hue,
			Saturation: params.Saturation,
			Brightness: params.Brightness,
			Alpha:      params.Alpha,
		},
	}
}

// RandomDirection returns a uniformly oriented vector of length mag.
func RandomDirection(rng *rand.Rand, mag float64) r2.Vec {
	angle := rng.Float64() * 2 * math.Pi
	return r2.Vec{X: math.Cos(angle) * mag, Y: math.Sin(angle) * mag}
}

// StepRandom advances p along its direction, then redraws the direction
// with probability chance.
func StepRandom(p *components.Particle, rng *rand.Rand, chance float64) {
	p.Position = r2.Add(p.Position, p.Direction)
	if rng.Float64() < chance {
		p.Direction = RandomDirection(rng, p.Magnitude)
	}
}

// StepToward points p at target with its fixed magnitude and advances it.
// A particle sitting exactly on the target keeps its previous heading.
// Progress t at or above 1 marks the transition completed.
func StepToward(p *components.Particle, target r2.Vec, t float64) {
	delta := r2.Sub(target, p.Position)
	if dist := r2.Norm(delta); dist > 0 {
		p.Direction = r2.Scale(p.Magnitude/dist, delta)
	}
	p.Position = r2.Add(p.Position, p.Direction)

	if t >= 1 {
		p.TransitionCompleted = true
	}
}

// IsDead reports whether p has left the canvas on any side.
func IsDead(p *components.Particle, bounds components.Bounds) bool {
	return !bounds.Contains(p.Position)
}

// TakeSegment returns the line from the previous to the current position
// and moves the trail anchor forward.
func TakeSegment(p *components.Particle) components.Segment {
	seg := components.Segment{From: p.PrevPosition, To: p.Position, Tint: p.Tint}
	p.PrevPosition = p.Position
	return seg
}
