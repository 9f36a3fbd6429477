package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for a window of frames.
type WindowStats struct {
	WindowStartFrame int64   `csv:"-"`
	WindowEndFrame   int64   `csv:"window_end"`
	Millis           float64 `csv:"millis"`

	// Phase at window end
	Phase    string  `csv:"phase"`
	Progress float64 `csv:"progress"`

	// Population
	Particles int `csv:"particles"`
	Respawns  int `csv:"respawns"`
	Completed int `csv:"completed"`

	// Motion sampled at window end
	SpeedMean      float64 `csv:"speed_mean"`
	SpeedStd       float64 `csv:"speed_std"`
	TargetDistMean float64 `csv:"target_dist_mean"`
	TargetDistP50  float64 `csv:"target_dist_p50"`
	TargetDistP90  float64 `csv:"target_dist_p90"`

	// Color and field
	HueMean       float64 `csv:"hue_mean"`
	FlowAngleMean float64 `csv:"flow_angle_mean"`
}

// Sample is the population snapshot a window is summarized from.
type Sample struct {
	Phase           string
	Progress        float64
	Completed       int
	Speeds          []float64
	TargetDistances []float64
	Hues            []float64
	FlowAngles      []float64
}

// Summarize fills the distribution fields of s from sample.
func (s *WindowStats) Summarize(sample Sample) {
	s.Phase = sample.Phase
	s.Progress = sample.Progress
	s.Completed = sample.Completed
	s.Particles = len(sample.Speeds)

	if len(sample.Speeds) > 0 {
		s.SpeedMean, s.SpeedStd = stat.MeanStdDev(sample.Speeds, nil)
	}
	if len(sample.TargetDistances) > 0 {
		sorted := append([]float64(nil), sample.TargetDistances...)
		sort.Float64s(sorted)
		s.TargetDistMean = stat.Mean(sorted, nil)
		s.TargetDistP50 = stat.Quantile(0.5, stat.Empirical, sorted, nil)
		s.TargetDistP90 = stat.Quantile(0.9, stat.Empirical, sorted, nil)
	}
	if len(sample.Hues) > 0 {
		s.HueMean = stat.Mean(sample.Hues, nil)
	}
	if len(sample.FlowAngles) > 0 {
		s.FlowAngleMean = stat.CircularMean(sample.FlowAngles, nil)
	}
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int64("window_start", s.WindowStartFrame),
		slog.Int64("window_end", s.WindowEndFrame),
		slog.Float64("millis", s.Millis),
		slog.String("phase", s.Phase),
		slog.Float64("progress", s.Progress),
		slog.Int("particles", s.Particles),
		slog.Int("respawns", s.Respawns),
		slog.Int("completed", s.Completed),
		slog.Float64("speed_mean", s.SpeedMean),
		slog.Float64("speed_std", s.SpeedStd),
		slog.Float64("target_dist_mean", s.TargetDistMean),
		slog.Float64("target_dist_p50", s.TargetDistP50),
		slog.Float64("target_dist_p90", s.TargetDistP90),
		slog.Float64("hue_mean", s.HueMean),
		slog.Float64("flow_angle_mean", s.FlowAngleMean),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats",
		"window_end", s.WindowEndFrame,
		"phase", s.Phase,
		"progress", s.Progress,
		"particles", s.Particles,
		"respawns", s.Respawns,
		"target_dist_p50", s.TargetDistP50,
	)
}
