package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/polytris/internal/config"
)

// isolate points HOME and the working directory at an empty temp dir so
// config lookup falls through to the embedded defaults.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Chdir(dir)

	// Flag values outlive a single Execute call
	difficulty, dbPath := flagDifficulty, flagDBPath
	t.Cleanup(func() {
		flagDifficulty, flagDBPath = difficulty, dbPath
	})
	return dir
}

func execute(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	require.NoError(t, rootCmd.Execute())
	return out.String()
}

func TestEnvName(t *testing.T) {
	assert.Equal(t, "POLYTRIS_FPS", envName("fps"))
	assert.Equal(t, "POLYTRIS_LOG_LEVEL", envName("log-level"))
}

func TestApplyEnv(t *testing.T) {
	var fps int
	var level string
	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().IntVar(&fps, "fps", 60, "")
	cmd.Flags().StringVar(&level, "log-level", "info", "")
	require.NoError(t, cmd.Flags().Parse([]string{"--log-level", "debug"}))

	t.Setenv("POLYTRIS_FPS", "30")
	t.Setenv("POLYTRIS_LOG_LEVEL", "error")
	require.NoError(t, applyEnv(cmd))

	assert.Equal(t, 30, fps)
	assert.Equal(t, "debug", level, "explicit flags win over the environment")
}

func TestApplyEnvInvalid(t *testing.T) {
	var fps int
	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().IntVar(&fps, "fps", 60, "")

	t.Setenv("POLYTRIS_FPS", "fast")
	err := applyEnv(cmd)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "POLYTRIS_FPS")
}

func TestWithPresetCopiesConfig(t *testing.T) {
	base := config.DefaultConfig()
	hard := withPreset(base, config.DifficultyHard)

	assert.Equal(t, config.DefaultConfig().Speed, base.Speed, "base config must not change")
	assert.Less(t, hard.Speed.InitialMs, base.Speed.InitialMs)
	assert.Equal(t, config.DifficultyHard, hard.Difficulty.Preset)
}

func TestConfigCommand(t *testing.T) {
	isolate(t)

	out := execute(t, "config", "--difficulty", "fixed")
	assert.True(t, strings.HasPrefix(out, "# source: embedded\n"), out)
	assert.Contains(t, out, "width: 20")
	assert.Contains(t, out, "preset: fixed")
	assert.Contains(t, out, "initial_ms: 1000")
}

func TestConfigCommandPrintsShippedDefaults(t *testing.T) {
	isolate(t)

	out := execute(t, "config")
	assert.Equal(t, "# source: embedded\n"+string(config.DefaultYAML()), out)
	assert.Contains(t, out, "# Polytris default configuration.")
}

func TestMenuHelpDescribesReturn(t *testing.T) {
	assert.Contains(t, menuCmd.Long, "Quitting a game (Q) returns you to the menu")
}

func TestScoresCommandEmpty(t *testing.T) {
	dir := isolate(t)

	out := execute(t, "scores", "hard", "--db", filepath.Join(dir, "scores.db"))
	assert.Contains(t, out, "High Scores - Hard")
	assert.Contains(t, out, "No scores recorded yet.")
}
