package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// isolate points HOME and the working directory at empty temp dirs so the
// user and local config files cannot leak into a test.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Chdir(t.TempDir())
	return home
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func TestDefaultConfigValid(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("DefaultConfig().Validate() = %v", err)
	}
}

func TestLoadEmbeddedMatchesDefault(t *testing.T) {
	isolate(t)

	cfg, source, err := LoadWithSource("")
	if err != nil {
		t.Fatalf("LoadWithSource() error = %v", err)
	}
	if source != "embedded" {
		t.Errorf("source = %q, expected %q", source, "embedded")
	}

	def := DefaultConfig()
	if cfg.Field != def.Field || cfg.Pieces != def.Pieces || cfg.Generator != def.Generator ||
		cfg.Speed != def.Speed || cfg.Sound != def.Sound || cfg.Difficulty != def.Difficulty {
		t.Errorf("embedded config = %+v, expected %+v", cfg, def)
	}
	if strings.Join(cfg.Palette, ",") != strings.Join(def.Palette, ",") {
		t.Errorf("embedded palette = %v, expected %v", cfg.Palette, def.Palette)
	}
}

func TestLoadSearchOrder(t *testing.T) {
	home := isolate(t)

	writeFile(t, filepath.Join("configs", ConfigFile), "field:\n  width: 24\n")
	cfg, source, err := LoadWithSource("")
	if err != nil {
		t.Fatalf("LoadWithSource() error = %v", err)
	}
	if cfg.Field.Width != 24 || source != filepath.Join("configs", ConfigFile) {
		t.Errorf("local config not used: width=%d source=%q", cfg.Field.Width, source)
	}

	userPath := filepath.Join(home, ".polytris", "config.yaml")
	writeFile(t, userPath, "field:\n  width: 30\n")
	cfg, source, err = LoadWithSource("")
	if err != nil {
		t.Fatalf("LoadWithSource() error = %v", err)
	}
	if cfg.Field.Width != 30 || source != userPath {
		t.Errorf("user config should win: width=%d source=%q", cfg.Field.Width, source)
	}

	custom := filepath.Join(t.TempDir(), "custom.yaml")
	writeFile(t, custom, "field:\n  width: 16\n")
	cfg, err = Load(custom)
	if err != nil {
		t.Fatalf("Load(custom) error = %v", err)
	}
	if cfg.Field.Width != 16 {
		t.Errorf("custom config should win: width=%d", cfg.Field.Width)
	}
}

func TestLoadMalformedSearchedFile(t *testing.T) {
	home := isolate(t)
	local := filepath.Join("configs", ConfigFile)
	writeFile(t, local, "field: [1, 2\n")

	_, source, err := LoadWithSource("")
	if err == nil || !strings.Contains(err.Error(), "failed to parse") {
		t.Fatalf("LoadWithSource() error = %v, expected a parse error", err)
	}
	if source != local {
		t.Errorf("source = %q, expected %q", source, local)
	}

	// A broken user file must not be skipped in favour of a good local one
	writeFile(t, local, "field:\n  width: 24\n")
	userPath := filepath.Join(home, ".polytris", "config.yaml")
	writeFile(t, userPath, "speed: {initial_ms: fast}\n")

	_, source, err = LoadWithSource("")
	if err == nil || !strings.Contains(err.Error(), "failed to parse") {
		t.Fatalf("LoadWithSource() error = %v, expected a parse error", err)
	}
	if source != userPath {
		t.Errorf("source = %q, expected %q", source, userPath)
	}
}

func TestLoadPartialKeepsDefaults(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "partial.yaml")
	writeFile(t, path, "speed:\n  initial_ms: 800\nsound:\n  enabled: false\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Speed.InitialMs != 800 || cfg.Speed.Rate != 0.9 || cfg.Speed.MinMs != 100 {
		t.Errorf("speed = %+v, expected initial 800 with default rate and min", cfg.Speed)
	}
	if cfg.Sound.Enabled {
		t.Error("sound should be disabled")
	}
	if cfg.Sound.Volume != 0.3 {
		t.Errorf("volume = %g, expected default 0.3", cfg.Sound.Volume)
	}
	if len(cfg.Palette) != 12 {
		t.Errorf("palette has %d colors, expected 12", len(cfg.Palette))
	}
}

func TestLoadErrors(t *testing.T) {
	isolate(t)
	dir := t.TempDir()

	bad := filepath.Join(dir, "bad.yaml")
	writeFile(t, bad, "field: [1, 2\n")
	invalid := filepath.Join(dir, "invalid.yaml")
	writeFile(t, invalid, "pieces:\n  min_size: 9\n")

	tests := []struct {
		name string
		path string
		want string
	}{
		{"missing", filepath.Join(dir, "nope.yaml"), "failed to read"},
		{"malformed", bad, "failed to parse"},
		{"invalid", invalid, "invalid config"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Load(tc.path)
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Errorf("Load() error = %v, expected to contain %q", err, tc.want)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"min size", func(c *Config) { c.Pieces.MinSize = 0 }, "min_size"},
		{"max below min", func(c *Config) { c.Pieces.MaxSize = 3 }, "max_size"},
		{"narrow field", func(c *Config) { c.Field.Width = 6 }, "field.width"},
		{"short field", func(c *Config) { c.Field.Height = 7 }, "field.height"},
		{"attempts", func(c *Config) { c.Generator.MaxAttempts = -1 }, "max_attempts"},
		{"bias", func(c *Config) { c.Generator.RecentBias = 1.5 }, "recent_bias"},
		{"rate zero", func(c *Config) { c.Speed.Rate = 0 }, "speed.rate"},
		{"rate above one", func(c *Config) { c.Speed.Rate = 1.1 }, "speed.rate"},
		{"min above initial", func(c *Config) { c.Speed.MinMs = 2000 }, "min_ms"},
		{"empty palette", func(c *Config) { c.Palette = nil }, "palette"},
		{"bad color", func(c *Config) { c.Palette[3] = "gold" }, "palette[3]"},
		{"volume", func(c *Config) { c.Sound.Volume = -0.1 }, "volume"},
		{"preset", func(c *Config) { c.Difficulty.Preset = "insane" }, "difficulty"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Errorf("Validate() = %v, expected error mentioning %q", err, tc.want)
			}
		})
	}
}

func TestFallInterval(t *testing.T) {
	s := SpeedConfig{InitialMs: 1000, Rate: 0.9, MinMs: 100}

	tests := []struct {
		level    int
		expected time.Duration
	}{
		{0, 1000 * time.Millisecond},
		{1, 1000 * time.Millisecond},
		{2, 900 * time.Millisecond},
		{3, 810 * time.Millisecond},
		{5, 656 * time.Millisecond},
		{22, 109 * time.Millisecond},
		{23, 100 * time.Millisecond},
		{100, 100 * time.Millisecond},
	}

	for _, tc := range tests {
		got := s.FallInterval(tc.level).Round(time.Millisecond)
		if got != tc.expected {
			t.Errorf("FallInterval(%d) = %v, expected %v", tc.level, got, tc.expected)
		}
	}
}

func TestFallIntervalMonotonic(t *testing.T) {
	s := DefaultConfig().Speed
	prev := s.FallInterval(1)
	for level := 2; level <= 50; level++ {
		cur := s.FallInterval(level)
		if cur > prev {
			t.Fatalf("FallInterval(%d) = %v is slower than level %d (%v)", level, cur, level-1, prev)
		}
		prev = cur
	}
}

func TestApplyPreset(t *testing.T) {
	tests := []struct {
		preset  DifficultyPreset
		initial int
		rate    float64
	}{
		{DifficultyEasy, 1200, 0.93},
		{DifficultyNormal, 1000, 0.9},
		{DifficultyHard, 700, 0.85},
		{DifficultyFixed, 1000, 1},
	}

	for _, tc := range tests {
		t.Run(string(tc.preset), func(t *testing.T) {
			cfg := DefaultConfig()
			ApplyPreset(&cfg, tc.preset)

			if cfg.Difficulty.Preset != tc.preset {
				t.Errorf("Preset = %q, expected %q", cfg.Difficulty.Preset, tc.preset)
			}
			if cfg.Speed.InitialMs != tc.initial {
				t.Errorf("InitialMs = %d, expected %d", cfg.Speed.InitialMs, tc.initial)
			}
			if diff := cfg.Speed.Rate - tc.rate; diff > 1e-9 || diff < -1e-9 {
				t.Errorf("Rate = %g, expected %g", cfg.Speed.Rate, tc.rate)
			}
			if err := cfg.Validate(); err != nil {
				t.Errorf("Validate() after preset = %v", err)
			}
		})
	}
}

func TestFixedPresetNeverSpeedsUp(t *testing.T) {
	cfg := DefaultConfig()
	ApplyPreset(&cfg, DifficultyFixed)

	if cfg.Speed.FallInterval(1) != cfg.Speed.FallInterval(40) {
		t.Error("fixed preset must keep the initial interval")
	}
}

func TestZeroMaxAttemptsIsValid(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Generator.MaxAttempts = 0

	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() with max_attempts 0 = %v, expected nil", err)
	}
}

func TestPresetTitle(t *testing.T) {
	tests := []struct {
		preset   DifficultyPreset
		expected string
	}{
		{DifficultyEasy, "Easy"},
		{DifficultyHard, "Hard"},
		{DifficultyFixed, "Fixed"},
		{"", ""},
	}

	for _, tc := range tests {
		if got := tc.preset.Title(); got != tc.expected {
			t.Errorf("%q.Title() = %q, expected %q", tc.preset, got, tc.expected)
		}
	}
}

func TestParsePreset(t *testing.T) {
	tests := []struct {
		in       string
		expected DifficultyPreset
		wantErr  bool
	}{
		{"", DifficultyNormal, false},
		{"easy", DifficultyEasy, false},
		{" Hard ", DifficultyHard, false},
		{"FIXED", DifficultyFixed, false},
		{"nightmare", "", true},
	}

	for _, tc := range tests {
		got, err := ParsePreset(tc.in)
		if (err != nil) != tc.wantErr {
			t.Errorf("ParsePreset(%q) error = %v, wantErr %v", tc.in, err, tc.wantErr)
			continue
		}
		if got != tc.expected {
			t.Errorf("ParsePreset(%q) = %q, expected %q", tc.in, got, tc.expected)
		}
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	isolate(t)
	cfg := DefaultConfig()
	ApplyPreset(&cfg, DifficultyHard)

	data, err := Marshal(cfg)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	path := filepath.Join(t.TempDir(), "out.yaml")
	writeFile(t, path, string(data))

	back, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if back.Speed != cfg.Speed || back.Difficulty != cfg.Difficulty {
		t.Errorf("round trip = %+v, expected %+v", back, cfg)
	}
}
