package systems

import (
	"fmt"

	"github.com/ojrac/opensimplex-go"
)

// SimplexNoise adapts OpenSimplex to the Noise3 interface.
type SimplexNoise struct {
	noise opensimplex.Noise
}

// NewSimplexNoise creates a seeded OpenSimplex source.
func NewSimplexNoise(seed int64) *SimplexNoise {
	return &SimplexNoise{noise: opensimplex.New(seed)}
}

// Noise3D returns a noise value for 3D coordinates.
func (s *SimplexNoise) Noise3D(x, y, z float64) float64 {
	return s.noise.Eval3(x, y, z)
}

// NewNoise builds the named noise source ("perlin" or "simplex").
func NewNoise(kind string, seed int64) (Noise3, error) {
	switch kind {
	case "perlin", "":
		return NewPerlinNoise(seed), nil
	case "simplex":
		return NewSimplexNoise(seed), nil
	}
	return nil, fmt.Errorf("unknown noise kind %q", kind)
}
