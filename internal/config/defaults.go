package config

import (
	_ "embed"
)

//go:embed defaults/polytris.yaml
var defaultYAML []byte

// DefaultPalette is the standard twelve-color piece palette.
var DefaultPalette = []string{
	"#FF1493", "#00CED1", "#7FFF00", "#FFD700",
	"#9370DB", "#FF6347", "#FF69B4", "#00FA9A",
	"#FFA500", "#8A2BE2", "#00FFFF", "#FF4500",
}

// DefaultConfig returns the default Polytris configuration.
func DefaultConfig() Config {
	return Config{
		Field: FieldConfig{
			Width:  20,
			Height: 40,
		},
		Pieces: PiecesConfig{
			MinSize: 4,
			MaxSize: 8,
		},
		Generator: GeneratorConfig{
			MaxAttempts:  2000,
			RecentWindow: 3,
			RecentBias:   0.8,
			MomentumBias: 0.6,
			BranchChance: 0.1,
			WalkBudget:   10,
		},
		Speed: SpeedConfig{
			InitialMs: 1000,
			Rate:      0.9,
			MinMs:     100,
		},
		Palette: append([]string(nil), DefaultPalette...),
		Sound: SoundConfig{
			Enabled: true,
			Volume:  0.3,
		},
		Difficulty: DifficultyConfig{
			Preset: DifficultyNormal,
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultYAML
}
