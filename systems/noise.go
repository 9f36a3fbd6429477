package systems

import (
	"math"
	"math/rand"
)

// Noise3 is a coherent noise source returning values in about [-1, 1].
type Noise3 interface {
	Noise3D(x, y, z float64) float64
}

// PerlinNoise generates coherent noise values.
type PerlinNoise struct {
	perm [512]int
}

// NewPerlinNoise creates a new Perlin noise generator.
func NewPerlinNoise(seed int64) *PerlinNoise {
	p := &PerlinNoise{}
	rng := rand.New(rand.NewSource(seed))

	// Initialize permutation table
	var perm [256]int
	for i := range perm {
		perm[i] = i
	}

	// Shuffle
	for i := len(perm) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		perm[i], perm[j] = perm[j], perm[i]
	}

	// Duplicate
	for i := 0; i < 256; i++ {
		p.perm[i] = perm[i]
		p.perm[i+256] = perm[i]
	}

	return p
}

// Noise3D returns a noise value for 3D coordinates.
func (p *PerlinNoise) Noise3D(x, y, z float64) float64 {
	// Find unit cube
	X := int(math.Floor(x)) & 255
	Y := int(math.Floor(y)) & 255
	Z := int(math.Floor(z)) & 255

	// Find relative position in cube
	x -= math.Floor(x)
	y -= math.Floor(y)
	z -= math.Floor(z)

	// Compute fade curves
	u := fade(x)
	v := fade(y)
	w := fade(z)

	// Hash coordinates of cube corners
	A := p.perm[X] + Y
	AA := p.perm[A] + Z
	AB := p.perm[A+1] + Z
	B := p.perm[X+1] + Y
	BA := p.perm[B] + Z
	BB := p.perm[B+1] + Z

	// Blend results from 8 corners
	return lerp(w, lerp(v, lerp(u, grad3D(p.perm[AA], x, y, z),
		grad3D(p.perm[BA], x-1, y, z)),
		lerp(u, grad3D(p.perm[AB], x, y-1, z),
			grad3D(p.perm[BB], x-1, y-1, z))),
		lerp(v, lerp(u, grad3D(p.perm[AA+1], x, y, z-1),
			grad3D(p.perm[BA+1], x-1, y, z-1)),
			lerp(u, grad3D(p.perm[AB+1], x, y-1, z-1),
				grad3D(p.perm[BB+1], x-1, y-1, z-1))))
}

// Fractal sums octaves of a Noise3 source into [0, 1].
// Each octave doubles the frequency and scales the amplitude by Falloff.
type Fractal struct {
	src     Noise3
	octaves int
	falloff float64
	norm    float64
}

// NewFractal wraps src. Octaves below 1 are treated as 1.
func NewFractal(src Noise3, octaves int, falloff float64) *Fractal {
	if octaves < 1 {
		octaves = 1
	}
	f := &Fractal{src: src, octaves: octaves, falloff: falloff}
	amp := 1.0
	for i := 0; i < octaves; i++ {
		f.norm += amp
		amp *= falloff
	}
	return f
}

// Sample returns the fractal noise value at (x, y, z), in [0, 1].
func (f *Fractal) Sample(x, y, z float64) float64 {
	var total float64
	amp, freq := 1.0, 1.0
	for i := 0; i < f.octaves; i++ {
		n := (f.src.Noise3D(x*freq, y*freq, z*freq) + 1) * 0.5
		total += n * amp
		amp *= f.falloff
		freq *= 2
	}
	v := total / f.norm
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Remap linearly maps v from [inLow, inHigh] onto [outLow, outHigh] without clamping.
func Remap(v, inLow, inHigh, outLow, outHigh float64) float64 {
	return outLow + (v-inLow)/(inHigh-inLow)*(outHigh-outLow)
}

func fade(t float64) float64 {
	return t * t * t * (t*(t*6-15) + 10)
}

func lerp(t, a, b float64) float64 {
	return a + t*(b-a)
}

func grad3D(hash int, x, y, z float64) float64 {
	h := hash & 15
	u := x
	if h >= 8 {
		u = y
	}
	v := y
	if h >= 4 {
		if h == 12 || h == 14 {
			v = x
		} else {
			v = z
		}
	}
	if h&1 != 0 {
		u = -u
	}
	if h&2 != 0 {
		v = -v
	}
	return u + v
}
