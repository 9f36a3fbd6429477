package systems

import (
	"math"
	"math/rand"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/lemniscate/components"
)

func testParticleParams() ParticleParams {
	return ParticleParams{
		MinMagnitude:   1,
		MaxMagnitude:   4,
		RedirectChance: 0.05,
		TintScale:      0.01,
		TintLow:        0.3,
		TintHigh:       0.7,
		HueMin:         180,
		HueMax:         360,
		Saturation:     100,
		Brightness:     150,
		Alpha:          0.5,
	}
}

func newTestParticle(t *testing.T, seed int64) (components.Particle, *rand.Rand) {
	t.Helper()
	rng := rand.New(rand.NewSource(seed))
	noise := NewFractal(NewPerlinNoise(seed), 4, 0.5)
	bounds := components.Bounds{Width: 800, Height: 600}
	return NewParticle(rng, bounds, testParticleParams(), noise, 0), rng
}

func TestNewParticleInvariants(t *testing.T) {
	bounds := components.Bounds{Width: 800, Height: 600}
	for seed := int64(1); seed <= 50; seed++ {
		p, _ := newTestParticle(t, seed)

		if !bounds.Contains(p.Position) {
			t.Errorf("seed %d: spawned outside canvas at %v", seed, p.Position)
		}
		if p.PrevPosition != p.Position {
			t.Errorf("seed %d: trail anchor should start at position", seed)
		}
		if p.Magnitude < 1 || p.Magnitude >= 4 {
			t.Errorf("seed %d: magnitude %f out of [1,4)", seed, p.Magnitude)
		}
		if math.Abs(r2.Norm(p.Direction)-p.Magnitude) > 1e-9 {
			t.Errorf("seed %d: |direction| %f != magnitude %f", seed, r2.Norm(p.Direction), p.Magnitude)
		}
		if p.Tint.Hue < 180 || p.Tint.Hue > 360 {
			t.Errorf("seed %d: hue %f out of [180,360]", seed, p.Tint.Hue)
		}
		if p.TransitionCompleted {
			t.Errorf("seed %d: new particle should not be completed", seed)
		}
	}
}

func TestStepRandomWithoutRedirectIsLinear(t *testing.T) {
	p, rng := newTestParticle(t, 4)
	start := p.Position
	dir := p.Direction

	const n = 25
	for i := 0; i < n; i++ {
		StepRandom(&p, rng, 0)
	}

	want := r2.Add(start, r2.Scale(n, dir))
	if math.Abs(p.Position.X-want.X) > 1e-9 || math.Abs(p.Position.Y-want.Y) > 1e-9 {
		t.Errorf("expected %v after %d steps, got %v", want, n, p.Position)
	}
	if p.Direction != dir {
		t.Error("direction changed without a redirect draw")
	}
}

func TestStepRandomKeepsMagnitude(t *testing.T) {
	p, rng := newTestParticle(t, 8)
	for i := 0; i < 100; i++ {
		StepRandom(&p, rng, 1) // redirect every step
		if math.Abs(r2.Norm(p.Direction)-p.Magnitude) > 1e-9 {
			t.Fatalf("step %d: |direction| %f != magnitude %f", i, r2.Norm(p.Direction), p.Magnitude)
		}
	}
}

func TestStepRandomRedirectRate(t *testing.T) {
	p, rng := newTestParticle(t, 12)
	redirects := 0
	const steps = 20000
	for i := 0; i < steps; i++ {
		before := p.Direction
		StepRandom(&p, rng, 0.05)
		if p.Direction != before {
			redirects++
		}
	}
	rate := float64(redirects) / steps
	if rate < 0.04 || rate > 0.06 {
		t.Errorf("expected redirect rate near 0.05, got %f", rate)
	}
}

func TestStepTowardMovesByMagnitude(t *testing.T) {
	p, _ := newTestParticle(t, 21)
	target := r2.Vec{X: 400, Y: 300}

	for i := 0; i < 10; i++ {
		before := r2.Norm(r2.Sub(target, p.Position))
		StepToward(&p, target, 0.5)

		if math.Abs(r2.Norm(p.Direction)-p.Magnitude) > 1e-9 {
			t.Fatalf("step %d: |direction| %f != magnitude %f", i, r2.Norm(p.Direction), p.Magnitude)
		}
		after := r2.Norm(r2.Sub(target, p.Position))
		if before > p.Magnitude && math.Abs((before-after)-p.Magnitude) > 1e-9 {
			t.Fatalf("step %d: expected to close distance by %f, closed %f", i, p.Magnitude, before-after)
		}
	}
	if p.TransitionCompleted {
		t.Error("transition should not complete below t=1")
	}
}

func TestStepTowardOnTargetKeepsHeading(t *testing.T) {
	p, _ := newTestParticle(t, 2)
	dir := p.Direction
	StepToward(&p, p.Position, 1)

	if p.Direction != dir {
		t.Errorf("expected heading kept, got %v", p.Direction)
	}
	if !p.TransitionCompleted {
		t.Error("t=1 should mark the transition completed")
	}
}

func TestIsDead(t *testing.T) {
	bounds := components.Bounds{Width: 100, Height: 100}
	cases := []struct {
		pos  r2.Vec
		dead bool
	}{
		{r2.Vec{X: 50, Y: 50}, false},
		{r2.Vec{X: 0, Y: 100}, false},
		{r2.Vec{X: -0.001, Y: 50}, true},
		{r2.Vec{X: 50, Y: -2}, true},
		{r2.Vec{X: 100.1, Y: 50}, true},
		{r2.Vec{X: 50, Y: 101}, true},
	}
	for _, tc := range cases {
		p := components.Particle{Position: tc.pos}
		if got := IsDead(&p, bounds); got != tc.dead {
			t.Errorf("IsDead(%v) = %v, want %v", tc.pos, got, tc.dead)
		}
	}
}

func TestTakeSegment(t *testing.T) {
	p, rng := newTestParticle(t, 5)
	start := p.Position
	StepRandom(&p, rng, 0)

	seg := TakeSegment(&p)
	if seg.From != start || seg.To != p.Position {
		t.Errorf("unexpected segment %+v", seg)
	}
	if p.PrevPosition != p.Position {
		t.Error("trail anchor should advance after drawing")
	}
	if seg.Tint != p.Tint {
		t.Error("segment should carry the particle tint")
	}
}
