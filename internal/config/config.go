// Package config provides YAML-based game configuration loading, validation
// and difficulty presets for Polytris.
package config

import (
	"fmt"
	"strings"
)

// Config contains all static game parameters. It is read once at startup
// and never changed while a game runs.
type Config struct {
	Field      FieldConfig      `yaml:"field"`
	Pieces     PiecesConfig     `yaml:"pieces"`
	Generator  GeneratorConfig  `yaml:"generator"`
	Speed      SpeedConfig      `yaml:"speed"`
	Palette    []string         `yaml:"palette"` // "#RRGGBB" colors indexed by piece color
	Sound      SoundConfig      `yaml:"sound"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// FieldConfig defines the playfield dimensions in cells.
type FieldConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// PiecesConfig bounds the bounding box side of generated pieces.
type PiecesConfig struct {
	MinSize int `yaml:"min_size"`
	MaxSize int `yaml:"max_size"`
}

// GeneratorConfig tunes the random-walk shape generator.
type GeneratorConfig struct {
	MaxAttempts  int     `yaml:"max_attempts"` // Regrow budget before the fallback shape; 0 always falls back
	RecentWindow int     `yaml:"recent_window"`
	RecentBias   float64 `yaml:"recent_bias"`
	MomentumBias float64 `yaml:"momentum_bias"`
	BranchChance float64 `yaml:"branch_chance"`
	WalkBudget   int     `yaml:"walk_budget"` // Walk attempts per target cell
}

// SpeedConfig defines the gravity curve: initial_ms * rate^(level-1),
// never faster than min_ms.
type SpeedConfig struct {
	InitialMs int     `yaml:"initial_ms"`
	Rate      float64 `yaml:"rate"`
	MinMs     int     `yaml:"min_ms"`
}

// SoundConfig controls the bell notifier.
type SoundConfig struct {
	Enabled bool    `yaml:"enabled"`
	Volume  float64 `yaml:"volume"` // 0.0 to 1.0
}

// DifficultyConfig records which preset shaped the speed curve.
type DifficultyConfig struct {
	Preset DifficultyPreset `yaml:"preset"`
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// Presets lists all difficulty presets in menu order.
var Presets = []DifficultyPreset{DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed}

// ParsePreset converts a name to a preset. An empty name means normal.
func ParsePreset(name string) (DifficultyPreset, error) {
	p := DifficultyPreset(strings.ToLower(strings.TrimSpace(name)))
	if p == "" {
		return DifficultyNormal, nil
	}
	for _, known := range Presets {
		if p == known {
			return p, nil
		}
	}
	return "", fmt.Errorf("unknown difficulty %q (want easy, normal, hard or fixed)", name)
}

// Title returns the preset name with an upper-case first letter, as shown
// in menus and score tables.
func (p DifficultyPreset) Title() string {
	s := string(p)
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// Validate checks that the configuration describes a playable game.
// It reports the first invalid field.
func (c Config) Validate() error {
	switch {
	case c.Pieces.MinSize < 1:
		return fmt.Errorf("pieces.min_size must be at least 1, got %d", c.Pieces.MinSize)
	case c.Pieces.MaxSize < c.Pieces.MinSize:
		return fmt.Errorf("pieces.max_size (%d) must not be below min_size (%d)", c.Pieces.MaxSize, c.Pieces.MinSize)
	case c.Field.Width < c.Pieces.MaxSize:
		return fmt.Errorf("field.width (%d) must fit the largest piece (%d)", c.Field.Width, c.Pieces.MaxSize)
	case c.Field.Height < c.Pieces.MaxSize:
		return fmt.Errorf("field.height (%d) must fit the largest piece (%d)", c.Field.Height, c.Pieces.MaxSize)
	case c.Generator.MaxAttempts < 0:
		return fmt.Errorf("generator.max_attempts must not be negative, got %d", c.Generator.MaxAttempts)
	case c.Generator.RecentWindow < 1:
		return fmt.Errorf("generator.recent_window must be positive, got %d", c.Generator.RecentWindow)
	case c.Generator.WalkBudget < 1:
		return fmt.Errorf("generator.walk_budget must be positive, got %d", c.Generator.WalkBudget)
	case !isProbability(c.Generator.RecentBias):
		return fmt.Errorf("generator.recent_bias must be in [0, 1], got %g", c.Generator.RecentBias)
	case !isProbability(c.Generator.MomentumBias):
		return fmt.Errorf("generator.momentum_bias must be in [0, 1], got %g", c.Generator.MomentumBias)
	case !isProbability(c.Generator.BranchChance):
		return fmt.Errorf("generator.branch_chance must be in [0, 1], got %g", c.Generator.BranchChance)
	case c.Speed.InitialMs <= 0:
		return fmt.Errorf("speed.initial_ms must be positive, got %d", c.Speed.InitialMs)
	case c.Speed.Rate <= 0 || c.Speed.Rate > 1:
		return fmt.Errorf("speed.rate must be in (0, 1], got %g", c.Speed.Rate)
	case c.Speed.MinMs <= 0 || c.Speed.MinMs > c.Speed.InitialMs:
		return fmt.Errorf("speed.min_ms must be in (0, initial_ms], got %d", c.Speed.MinMs)
	case len(c.Palette) == 0:
		return fmt.Errorf("palette must not be empty")
	case len(c.Palette) > 256:
		return fmt.Errorf("palette has %d colors, at most 256 allowed", len(c.Palette))
	case !isProbability(c.Sound.Volume):
		return fmt.Errorf("sound.volume must be in [0, 1], got %g", c.Sound.Volume)
	}

	for i, color := range c.Palette {
		if !isHexColor(color) {
			return fmt.Errorf("palette[%d] %q is not a #RRGGBB color", i, color)
		}
	}
	if c.Difficulty.Preset != "" {
		if _, err := ParsePreset(string(c.Difficulty.Preset)); err != nil {
			return fmt.Errorf("difficulty.preset: %w", err)
		}
	}
	return nil
}

func isProbability(v float64) bool {
	return v >= 0 && v <= 1
}

func isHexColor(s string) bool {
	if len(s) != 7 || s[0] != '#' {
		return false
	}
	for _, r := range s[1:] {
		switch {
		case r >= '0' && r <= '9', r >= 'a' && r <= 'f', r >= 'A' && r <= 'F':
		default:
			return false
		}
	}
	return true
}
