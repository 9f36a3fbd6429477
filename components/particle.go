// Package components defines the plain data types of the animation.
package components

import "gonum.org/v1/gonum/spatial/r2"

// Particle is a moving point that leaves a line trail.
// Direction always has length Magnitude once the particle has moved.
type Particle struct {
	Position     r2.Vec
	PrevPosition r2.Vec
	Direction    r2.Vec
	Magnitude    float64
	Tint         Tint

	// Set once the convergence progress reaches 1. Informational only.
	TransitionCompleted bool
}

// FlowTile is one cell of the flow field grid.
type FlowTile struct {
	Position  r2.Vec // grid-aligned top-left corner
	Center    r2.Vec
	Angle     float64 // heading in [0, 2π)
	Direction r2.Vec  // unit vector at Angle
}
