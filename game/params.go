package game

import (
	"github.com/pthm-cable/lemniscate/config"
	"github.com/pthm-cable/lemniscate/systems"
)

// Params holds everything Step needs from the configuration, resolved once
// so the frame loop never touches the config package.
type Params struct {
	ParticleCount int
	Debug         bool

	Flow     systems.FlowFieldParams
	TimeStep float64 // noise time per frame

	Particle systems.ParticleParams

	RandomPhaseMS float64
	TransitionMS  float64

	CurveRatio float64 // lemniscate scale as a fraction of the shorter side
	AngleStep  float64 // curve parameter per frame

	Marker config.MarkerConfig
}

// ParamsFromConfig resolves Params from a loaded configuration.
func ParamsFromConfig(cfg *config.Config) Params {
	return Params{
		ParticleCount: cfg.Derived.ParticleCount,
		Debug:         cfg.Debug,
		Flow: systems.FlowFieldParams{
			TileSize:   cfg.Flow.TileSize,
			NoiseScale: cfg.Flow.NoiseScale,
			NoiseLow:   cfg.Flow.NoiseLow,
			NoiseHigh:  cfg.Flow.NoiseHigh,
		},
		TimeStep: cfg.Flow.TimeStep,
		Particle: systems.ParticleParams{
			MinMagnitude:   cfg.Particles.MinMagnitude,
			MaxMagnitude:   cfg.Particles.MaxMagnitude,
			RedirectChance: cfg.Particles.RedirectChance,
			TintScale:      cfg.Particles.TintScale,
			TintLow:        cfg.Flow.NoiseLow,
			TintHigh:       cfg.Flow.NoiseHigh,
			HueMin:         cfg.Particles.HueMin,
			HueMax:         cfg.Particles.HueMax,
			Saturation:     cfg.Particles.Saturation,
			Brightness:     cfg.Particles.Brightness,
			Alpha:          cfg.Derived.ParticleAlpha,
		},
		RandomPhaseMS: cfg.Phases.RandomMS,
		TransitionMS:  cfg.Phases.TransitionMS,
		CurveRatio:    cfg.Lemniscate.ScaleRatio,
		AngleStep:     cfg.Lemniscate.AngleStep,
		Marker:        cfg.Marker,
	}
}
