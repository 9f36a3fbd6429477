// Package config provides configuration loading and access for the animation.
package config

import (
	_ "embed"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all animation configuration parameters.
type Config struct {
	Screen     ScreenConfig     `yaml:"screen"`
	Debug      bool             `yaml:"debug"`
	Noise      NoiseConfig      `yaml:"noise"`
	Flow       FlowConfig       `yaml:"flow"`
	Particles  ParticlesConfig  `yaml:"particles"`
	Phases     PhasesConfig     `yaml:"phases"`
	Lemniscate LemniscateConfig `yaml:"lemniscate"`
	Marker     MarkerConfig     `yaml:"marker"`
	Countdown  CountdownConfig  `yaml:"countdown"`
	Slideshow  SlideshowConfig  `yaml:"slideshow"`
	Terminal   TerminalConfig   `yaml:"terminal"`
	Telemetry  TelemetryConfig  `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int  `yaml:"width"`
	Height    int  `yaml:"height"`
	TargetFPS int  `yaml:"target_fps"`
	Resizable bool `yaml:"resizable"`
}

// NoiseConfig selects the coherent noise source shared by tiles and tints.
type NoiseConfig struct {
	Kind    string  `yaml:"kind"`    // "perlin" or "simplex"
	Octaves int     `yaml:"octaves"` // Fractal octaves summed into [0,1]
	Falloff float64 `yaml:"falloff"` // Amplitude multiplier per octave
}

// FlowConfig holds flow field parameters.
type FlowConfig struct {
	TileSize   float64 `yaml:"tile_size"`
	NoiseScale float64 `yaml:"noise_scale"` // Spatial scale of the tile rotation sample
	TimeStep   float64 `yaml:"time_step"`   // Noise time advance per frame
	Influence  float64 `yaml:"influence"`   // Steering weight; particles do not read the field
	NoiseLow   float64 `yaml:"noise_low"`   // Expected noise output range mapped onto a full turn
	NoiseHigh  float64 `yaml:"noise_high"`
}

// ParticlesConfig holds particle population parameters.
type ParticlesConfig struct {
	Count          int     `yaml:"count"`
	DebugCount     int     `yaml:"debug_count"`
	MinMagnitude   float64 `yaml:"min_magnitude"`
	MaxMagnitude   float64 `yaml:"max_magnitude"`
	RedirectChance float64 `yaml:"redirect_chance"` // Per-frame probability of a new random heading
	TintScale      float64 `yaml:"tint_scale"`      // Spatial scale of the hue noise sample
	HueMin         float64 `yaml:"hue_min"`
	HueMax         float64 `yaml:"hue_max"`
	Saturation     float64 `yaml:"saturation"`
	Brightness     float64 `yaml:"brightness"`
	Alpha          float64 `yaml:"alpha"`
	DebugAlpha     float64 `yaml:"debug_alpha"`
}

// PhasesConfig holds phase timing in milliseconds.
type PhasesConfig struct {
	RandomMS     float64 `yaml:"random_ms"`
	TransitionMS float64 `yaml:"transition_ms"`
}

// LemniscateConfig holds the convergence target curve parameters.
type LemniscateConfig struct {
	ScaleRatio float64 `yaml:"scale_ratio"` // Curve scale as a fraction of min(width, height)
	AngleStep  float64 `yaml:"angle_step"`  // Curve parameter advance per frame
}

// MarkerConfig holds the center marker lissajous parameters.
type MarkerConfig struct {
	Enabled    bool    `yaml:"enabled"`
	RadiusX    float64 `yaml:"radius_x"`
	RadiusY    float64 `yaml:"radius_y"`
	FrequencyX float64 `yaml:"frequency_x"`
	FrequencyY float64 `yaml:"frequency_y"`
}

// CountdownConfig holds the countdown start values and per-tick decrements.
type CountdownConfig struct {
	PeriodMS       int     `yaml:"period_ms"`
	Days           float64 `yaml:"days"`
	Hours          float64 `yaml:"hours"`
	Minutes        float64 `yaml:"minutes"`
	Seconds        float64 `yaml:"seconds"`
	DaysStep       float64 `yaml:"days_step"`
	HoursStep      float64 `yaml:"hours_step"`
	MinutesStep    float64 `yaml:"minutes_step"`
	SecondsStep    float64 `yaml:"seconds_step"`
	PublishOnStart bool    `yaml:"publish_on_start"`
}

// SlideshowConfig holds the element rotation timing.
type SlideshowConfig struct {
	Elements  []string `yaml:"elements"`
	PeriodMS  int      `yaml:"period_ms"`
	StaggerMS int      `yaml:"stagger_ms"`
}

// TerminalConfig holds the tcell host settings.
type TerminalConfig struct {
	CellWidth  float64 `yaml:"cell_width"`  // Canvas units per terminal column
	CellHeight float64 `yaml:"cell_height"` // Canvas units per terminal row
	FrameMS    int     `yaml:"frame_ms"`
	Fade       float64 `yaml:"fade"` // Per-frame brightness retained by trail cells
	LogFile    string  `yaml:"log_file"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	WindowFrames        int `yaml:"window_frames"`
	PerfCollectorWindow int `yaml:"perf_collector_window"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	ParticleCount int     // Count or DebugCount depending on Debug
	ParticleAlpha float64 // Alpha or DebugAlpha depending on Debug
	TileHalf      float64 // Flow.TileSize / 2
	NoiseSpan     float64 // Flow.NoiseHigh - Flow.NoiseLow
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Defaults returns a fresh copy of the embedded defaults.
func Defaults() *Config {
	cfg, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("config: embedded defaults invalid: %v", err))
	}
	return cfg
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.ComputeDerived()

	return cfg, nil
}

// Validate rejects values the animation cannot run with.
func (c *Config) Validate() error {
	if c.Screen.Width <= 0 || c.Screen.Height <= 0 {
		return fmt.Errorf("screen size must be positive, got %dx%d", c.Screen.Width, c.Screen.Height)
	}
	if c.Screen.TargetFPS <= 0 {
		return fmt.Errorf("screen.target_fps must be positive, got %d", c.Screen.TargetFPS)
	}
	if c.Terminal.CellWidth <= 0 || c.Terminal.CellHeight <= 0 || c.Terminal.FrameMS <= 0 {
		return fmt.Errorf("terminal cell size and frame_ms must be positive")
	}
	if c.Flow.TileSize <= 0 {
		return fmt.Errorf("flow.tile_size must be positive, got %v", c.Flow.TileSize)
	}
	if c.Flow.NoiseHigh <= c.Flow.NoiseLow {
		return fmt.Errorf("flow noise range [%v, %v] is empty", c.Flow.NoiseLow, c.Flow.NoiseHigh)
	}
	if c.Particles.MinMagnitude <= 0 || c.Particles.MaxMagnitude < c.Particles.MinMagnitude {
		return fmt.Errorf("particle magnitude range [%v, %v] is invalid",
			c.Particles.MinMagnitude, c.Particles.MaxMagnitude)
	}
	if c.Particles.RedirectChance < 0 || c.Particles.RedirectChance > 1 {
		return fmt.Errorf("particles.redirect_chance must be in [0,1], got %v", c.Particles.RedirectChance)
	}
	if c.Phases.RandomMS < 0 {
		return fmt.Errorf("phases.random_ms must not be negative, got %v", c.Phases.RandomMS)
	}
	if c.Phases.TransitionMS <= 0 {
		return fmt.Errorf("phases.transition_ms must be positive, got %v", c.Phases.TransitionMS)
	}
	if c.Countdown.PeriodMS <= 0 {
		return fmt.Errorf("countdown.period_ms must be positive, got %d", c.Countdown.PeriodMS)
	}
	if c.Slideshow.PeriodMS <= 0 || c.Slideshow.StaggerMS < 0 {
		return fmt.Errorf("slideshow timing invalid: period %d, stagger %d",
			c.Slideshow.PeriodMS, c.Slideshow.StaggerMS)
	}
	if len(c.Slideshow.Elements) == 0 {
		return fmt.Errorf("slideshow.elements must not be empty")
	}
	switch c.Noise.Kind {
	case "perlin", "simplex":
	default:
		return fmt.Errorf("noise.kind must be perlin or simplex, got %q", c.Noise.Kind)
	}
	return nil
}

// ComputeDerived calculates values derived from loaded config.
// Call again after mutating Debug or the flow settings.
func (c *Config) ComputeDerived() {
	c.Derived.ParticleCount = c.Particles.Count
	c.Derived.ParticleAlpha = c.Particles.Alpha
	if c.Debug {
		c.Derived.ParticleCount = c.Particles.DebugCount
		c.Derived.ParticleAlpha = c.Particles.DebugAlpha
	}
	c.Derived.TileHalf = c.Flow.TileSize / 2
	c.Derived.NoiseSpan = c.Flow.NoiseHigh - c.Flow.NoiseLow
}

// CurveScale returns the lemniscate scale for a canvas of the given size.
func (c *Config) CurveScale(width, height float64) float64 {
	return math.Min(width, height) * c.Lemniscate.ScaleRatio
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
