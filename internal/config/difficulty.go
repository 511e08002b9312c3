package config

import (
	"math"
	"time"
)

// ApplyPreset modifies the speed curve based on a difficulty preset.
// Normal keeps the configured curve; fixed keeps the initial speed forever.
func ApplyPreset(cfg *Config, preset DifficultyPreset) {
	cfg.Difficulty.Preset = preset

	switch preset {
	case DifficultyEasy:
		cfg.Speed.InitialMs = cfg.Speed.InitialMs * 6 / 5
		cfg.Speed.Rate = math.Min(1, cfg.Speed.Rate+0.03)
	case DifficultyHard:
		cfg.Speed.InitialMs = cfg.Speed.InitialMs * 7 / 10
		cfg.Speed.Rate = math.Max(0.5, cfg.Speed.Rate-0.05)
	case DifficultyFixed:
		cfg.Speed.Rate = 1
	}
	if cfg.Speed.MinMs > cfg.Speed.InitialMs {
		cfg.Speed.MinMs = cfg.Speed.InitialMs
	}
}

// FallInterval returns the gravity interval for a level:
// initial_ms * rate^(level-1), floored at min_ms.
func (s SpeedConfig) FallInterval(level int) time.Duration {
	if level < 1 {
		level = 1
	}
	ms := float64(s.InitialMs) * math.Pow(s.Rate, float64(level-1))
	ms = math.Max(ms, float64(s.MinMs))
	return time.Duration(ms * float64(time.Millisecond))
}
