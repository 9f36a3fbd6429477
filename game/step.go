package game

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/lemniscate/components"
	"github.com/pthm-cable/lemniscate/systems"
	"github.com/pthm-cable/lemniscate/telemetry"
)

// FrameInput is what the host supplies for one frame.
type FrameInput struct {
	Frame   int64   // frame counter, starting at 1
	DeltaMS float64 // time since the previous frame
	Millis  float64 // time since the host started
}

// FrameOutput describes what a frame produced. Segments aliases a buffer
// owned by the state and is only valid until the next Step.
type FrameOutput struct {
	Frame     int64
	Segments  []components.Segment
	Marker    components.Point
	HasMarker bool
	Phase     Phase
	Progress  float64
	Target    r2.Vec
	Respawned int
}

// Profiler receives phase boundaries inside a frame. PerfCollector
// satisfies it.
type Profiler interface {
	StartPhase(phase string)
}

// Step advances s by one frame. prof may be nil.
func Step(s *State, in FrameInput, prof Profiler) FrameOutput {
	s.Frame = in.Frame
	s.NoiseTime = float64(in.Frame) * s.Params.TimeStep

	s.PhaseTimer += in.DeltaMS
	if s.PhaseTimer >= s.Params.RandomPhaseMS && !s.Transitioning {
		s.Transitioning = true
		s.TransitionStart = in.Millis
	}

	if prof != nil {
		prof.StartPhase(telemetry.PhaseFlowField)
	}
	s.Field.Update(s.NoiseTime)

	if prof != nil {
		prof.StartPhase(telemetry.PhaseParticles)
	}

	out := FrameOutput{
		Frame:    in.Frame,
		Phase:    s.Phase(),
		Progress: s.Progress(in.Millis),
		Target:   s.Target(in.Frame),
	}

	s.segments = s.segments[:0]
	for i := range s.Particles {
		p := &s.Particles[i]
		if systems.IsDead(p, s.Bounds) {
			// The replacement starts moving next frame.
			*p = s.spawn()
			out.Respawned++
			continue
		}

		if s.Transitioning {
			systems.StepToward(p, out.Target, out.Progress)
		} else {
			systems.StepRandom(p, s.rng, s.Params.Particle.RedirectChance)
		}
		s.segments = append(s.segments, systems.TakeSegment(p))
	}
	s.Respawns += out.Respawned
	out.Segments = s.segments

	if s.Params.Marker.Enabled {
		m := s.Params.Marker
		out.Marker = components.Point{
			At:   systems.LissajousPoint(float64(in.Frame), m.RadiusX, m.RadiusY, m.FrequencyX, m.FrequencyY, s.Bounds.Center()),
			Tint: components.Black,
		}
		out.HasMarker = true
	}

	return out
}

// Sample collects the population snapshot telemetry summarizes.
func (s *State) Sample(out FrameOutput) telemetry.Sample {
	sample := telemetry.Sample{
		Phase:           out.Phase.String(),
		Progress:        out.Progress,
		Completed:       s.Completed(),
		Speeds:          make([]float64, len(s.Particles)),
		TargetDistances: make([]float64, len(s.Particles)),
		Hues:            make([]float64, len(s.Particles)),
	}
	for i := range s.Particles {
		p := &s.Particles[i]
		sample.Speeds[i] = r2.Norm(p.Direction)
		sample.TargetDistances[i] = r2.Norm(r2.Sub(out.Target, p.Position))
		sample.Hues[i] = p.Tint.Hue
	}

	cols, rows := s.Field.Size()
	sample.FlowAngles = make([]float64, 0, cols*rows)
	for c := range s.Field.Tiles {
		for r := range s.Field.Tiles[c] {
			sample.FlowAngles = append(sample.FlowAngles, s.Field.Tiles[c][r].Angle)
		}
	}
	return sample
}

// roundFPS rounds to two decimals for display.
func roundFPS(fps float64) float64 {
	return math.Round(fps*100) / 100
}
