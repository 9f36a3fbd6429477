package game

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/lemniscate/components"
	"github.com/pthm-cable/lemniscate/systems"
)

// Phase is the animation mode all particles share.
type Phase uint8

const (
	PhaseRandom Phase = iota
	PhaseTransition
)

func (p Phase) String() string {
	switch p {
	case PhaseRandom:
		return "random"
	case PhaseTransition:
		return "transition"
	default:
		return "unknown"
	}
}

// State is the whole simulation. Step is the only thing that mutates it
// after construction, apart from Reset.
type State struct {
	Params Params
	Bounds components.Bounds

	Field     *systems.FlowField
	Particles []components.Particle

	NoiseTime       float64
	PhaseTimer      float64 // accumulated frame deltas in ms
	TransitionStart float64 // host millis when the transition phase began
	Transitioning   bool
	Frame           int64

	Respawns int // total replacements since the last reset

	rng      *rand.Rand
	noise    *systems.Fractal
	segments []components.Segment
}

// NewState builds a populated state over bounds. The same rng seed and
// noise source always produce the same animation.
func NewState(params Params, bounds components.Bounds, rng *rand.Rand, noise *systems.Fractal) *State {
	s := &State{
		Params: params,
		rng:    rng,
		noise:  noise,
	}
	s.Reset(bounds)
	return s
}

// Reset re-initializes the state for a canvas of the given size: new flow
// field, new population, phase timing back to the start.
func (s *State) Reset(bounds components.Bounds) {
	s.Bounds = bounds
	s.NoiseTime = 0
	s.PhaseTimer = 0
	s.TransitionStart = 0
	s.Transitioning = false
	s.Frame = 0
	s.Respawns = 0

	s.Field = systems.NewFlowField(bounds, s.Params.Flow, s.noise, s.NoiseTime)

	s.Particles = make([]components.Particle, s.Params.ParticleCount)
	for i := range s.Particles {
		s.Particles[i] = s.spawn()
	}
	s.segments = make([]components.Segment, 0, s.Params.ParticleCount)
}

// Phase returns the current animation phase.
func (s *State) Phase() Phase {
	if s.Transitioning {
		return PhaseTransition
	}
	return PhaseRandom
}

// Progress returns the transition fraction at host time millis, in [0,1].
// It is 0 during the random phase.
func (s *State) Progress(millis float64) float64 {
	if !s.Transitioning {
		return 0
	}
	t := (millis - s.TransitionStart) / s.Params.TransitionMS
	return math.Max(0, math.Min(1, t))
}

// CurveScale returns the lemniscate half-width for the current canvas.
func (s *State) CurveScale() float64 {
	return s.Bounds.MinSide() * s.Params.CurveRatio
}

// Target returns the lemniscate point every particle chases at frame.
func (s *State) Target(frame int64) r2.Vec {
	theta := float64(frame) * s.Params.AngleStep
	return systems.LemniscatePoint(theta, s.CurveScale(), s.Bounds.Center())
}

// Completed returns the number of particles that finished the transition.
func (s *State) Completed() int {
	n := 0
	for i := range s.Particles {
		if s.Particles[i].TransitionCompleted {
			n++
		}
	}
	return n
}

// Noise returns the fractal noise shared by the field and particle tints.
func (s *State) Noise() *systems.Fractal {
	return s.noise
}

func (s *State) spawn() components.Particle {
	return systems.NewParticle(s.rng, s.Bounds, s.Params.Particle, s.noise, s.NoiseTime)
}
