package components

import "gonum.org/v1/gonum/spatial/r2"

// Bounds is the canvas rectangle particles live in.
type Bounds struct {
	Width, Height float64
}

// Contains reports whether p lies inside the canvas, edges included.
func (b Bounds) Contains(p r2.Vec) bool {
	return p.X >= 0 && p.Y >= 0 && p.X <= b.Width && p.Y <= b.Height
}

// Center returns the middle of the canvas.
func (b Bounds) Center() r2.Vec {
	return r2.Vec{X: b.Width / 2, Y: b.Height / 2}
}

// MinSide returns the smaller canvas dimension.
func (b Bounds) MinSide() float64 {
	if b.Width < b.Height {
		return b.Width
	}
	return b.Height
}

// Segment is a line drawn between two consecutive particle positions.
type Segment struct {
	From, To r2.Vec
	Tint     Tint
}

// Point is a single dot drawn in canvas space.
type Point struct {
	At   r2.Vec
	Tint Tint
}
