package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

func TestDefaultRunnerConfigMatchesEmbed(t *testing.T) {
	var embedded RunnerConfig
	if err := yaml.Unmarshal(DefaultRunnerYAML(), &embedded); err != nil {
		t.Fatalf("embedded runner.yaml does not parse: %v", err)
	}
	if embedded != DefaultRunnerConfig() {
		t.Errorf("embedded config %+v differs from hard-coded default %+v", embedded, DefaultRunnerConfig())
	}
	if err := embedded.Validate(); err != nil {
		t.Errorf("default config should be valid: %v", err)
	}
}

func TestRunnerBand(t *testing.T) {
	cfg := DefaultRunnerConfig()
	if cfg.BandTop() != 600 || cfg.BandBottom() != 860 {
		t.Errorf("band = (%.0f, %.0f), expected (600, 860)", cfg.BandTop(), cfg.BandBottom())
	}
}

func TestRunnerValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *RunnerConfig)
	}{
		{"zero speed", func(c *RunnerConfig) { c.Obstacle.Speed = 0 }},
		{"band narrower than a frame", func(c *RunnerConfig) { c.Obstacle.Speed = 300 }},
		{"far offset too close", func(c *RunnerConfig) { c.Obstacle.FarOffset = 599 }},
		{"release inside band", func(c *RunnerConfig) { c.Obstacle.ReleaseOffset = 700 }},
		{"far closer than release", func(c *RunnerConfig) { c.Obstacle.FarOffset = -100 }},
		{"player off track", func(c *RunnerConfig) { c.Track.PlayerDepth = 1200 }},
		{"negative delay", func(c *RunnerConfig) { c.Timing.FeedbackDelay = -time.Second }},
		{"no watchdog", func(c *RunnerConfig) { c.Timing.NarrationTimeout = 0 }},
		{"zero spacing", func(c *RunnerConfig) { c.Background.Spacing = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultRunnerConfig()
			tt.mutate(&cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalidRunner) {
				t.Errorf("Validate() = %v, expected ErrInvalidRunner", err)
			}
		})
	}
}

func TestLoadRunnerCustomPathPartialOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runner.yaml")
	content := "obstacle:\n  speed: 4.5\ntiming:\n  feedback_delay: 1500ms\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadRunner(path)
	if err != nil {
		t.Fatalf("LoadRunner() error: %v", err)
	}
	if cfg.Obstacle.Speed != 4.5 {
		t.Errorf("speed = %v, expected 4.5", cfg.Obstacle.Speed)
	}
	if cfg.Timing.FeedbackDelay != 1500*time.Millisecond {
		t.Errorf("feedback delay = %v", cfg.Timing.FeedbackDelay)
	}
	if cfg.Obstacle.FarOffset != -3500 {
		t.Errorf("unset keys should keep defaults, far offset = %v", cfg.Obstacle.FarOffset)
	}
}

func TestLoadRunnerRejectsInvalidCustomFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runner.yaml")
	if err := os.WriteFile(path, []byte("obstacle:\n  speed: 500\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadRunner(path); !errors.Is(err, ErrInvalidRunner) {
		t.Errorf("LoadRunner() = %v, expected ErrInvalidRunner", err)
	}
}

func TestLoadRunnerMissingCustomFile(t *testing.T) {
	if _, err := LoadRunner(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing custom config")
	}
}

func TestApplyRunnerPreset(t *testing.T) {
	base := DefaultRunnerConfig()

	tests := []struct {
		preset DifficultyPreset
		speed  float64
	}{
		{DifficultyFixed, base.Obstacle.Speed},
		{DifficultyNormal, base.Obstacle.Speed},
		{DifficultyEasy, base.Obstacle.Speed * 0.75},
		{DifficultyHard, base.Obstacle.Speed * 1.5},
	}

	for _, tt := range tests {
		t.Run(string(tt.preset), func(t *testing.T) {
			cfg := DefaultRunnerConfig()
			ApplyRunnerPreset(&cfg, tt.preset)
			if cfg.Obstacle.Speed != tt.speed {
				t.Errorf("speed = %v, expected %v", cfg.Obstacle.Speed, tt.speed)
			}
			if err := cfg.Validate(); err != nil {
				t.Errorf("preset %s produced invalid config: %v", tt.preset, err)
			}
		})
	}
}

func TestLoadRunnerPresetRevalidates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runner.yaml")
	// Valid as written: band 3.0 is wider than speed 2.5. Hard scales the
	// speed to 3.75, which would step over the band.
	content := "obstacle:\n  speed: 2.5\n  release_offset: -802\ncollision:\n  band_above: 1.5\n  band_below: 1.5\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadRunner(path); err != nil {
		t.Fatalf("base config should be valid: %v", err)
	}
	if _, err := LoadRunnerPreset(path, DifficultyFixed); err != nil {
		t.Errorf("fixed preset should keep the config valid: %v", err)
	}
	if _, err := LoadRunnerPreset(path, DifficultyHard); !errors.Is(err, ErrInvalidRunner) {
		t.Errorf("LoadRunnerPreset(hard) = %v, expected ErrInvalidRunner", err)
	}
}

func TestLoadRunnerPresetDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())

	for _, p := range []DifficultyPreset{DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed} {
		if _, err := LoadRunnerPreset("", p); err != nil {
			t.Errorf("LoadRunnerPreset(%s) on defaults: %v", p, err)
		}
	}
}

func TestParsePreset(t *testing.T) {
	if p, err := ParsePreset(""); err != nil || p != DifficultyFixed {
		t.Errorf("ParsePreset(\"\") = %v, %v", p, err)
	}
	if _, err := ParsePreset("nightmare"); err == nil {
		t.Error("expected error for unknown preset")
	}
}

func TestLoadAppDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())

	cfg, err := LoadApp("", nil)
	if err != nil {
		t.Fatalf("LoadApp() error: %v", err)
	}
	if cfg.FPS != 60 || cfg.Theme != "dark" || cfg.Speech.Mode != "auto" {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if cfg.SSH.IdleTimeout != 30*time.Minute {
		t.Errorf("idle timeout = %v", cfg.SSH.IdleTimeout)
	}
	if cfg.Quiz.Limit != 6 || !cfg.Quiz.Progressive {
		t.Errorf("quiz defaults = %+v", cfg.Quiz)
	}
	if cfg.Level() != log.InfoLevel {
		t.Errorf("Level() = %v", cfg.Level())
	}
}

func TestLoadAppSourcesPrecedence(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("HOME", t.TempDir())

	file := filepath.Join(dir, "custom.yaml")
	content := "theme: light\nfps: 30\nspeech:\n  mode: captions\n  wpm: 200\n"
	if err := os.WriteFile(file, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("RECALL_SPEECH_WPM", "240")
	t.Setenv("RECALL_LOG_LEVEL", "debug")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.Int("fps", 60, "")
	flags.String("db", "~/.recall/results.db", "")
	if err := flags.Parse([]string{"--fps", "45"}); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadApp(file, flags)
	if err != nil {
		t.Fatalf("LoadApp() error: %v", err)
	}
	if cfg.Theme != "light" || cfg.Speech.Mode != "captions" {
		t.Errorf("file values not applied: %+v", cfg)
	}
	if cfg.Speech.WPM != 240 {
		t.Errorf("env should override file, wpm = %d", cfg.Speech.WPM)
	}
	if cfg.FPS != 45 {
		t.Errorf("flag should override file, fps = %d", cfg.FPS)
	}
	if cfg.Level() != log.DebugLevel {
		t.Errorf("Level() = %v, expected debug", cfg.Level())
	}
}

func TestLoadAppDotEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("HOME", t.TempDir())
	t.Setenv("RECALL_THEME", "")
	os.Unsetenv("RECALL_THEME")

	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("RECALL_THEME=light\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadApp("", nil)
	if err != nil {
		t.Fatalf("LoadApp() error: %v", err)
	}
	if cfg.Theme != "light" {
		t.Errorf("theme = %q, expected value from .env", cfg.Theme)
	}
}

func TestLoadAppRejectsBadValues(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())
	t.Setenv("RECALL_THEME", "neon")

	if _, err := LoadApp("", nil); err == nil {
		t.Error("expected error for unknown theme")
	}
}

func TestLoadAppCuesVolume(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())

	cfg, err := LoadApp("", nil)
	if err != nil {
		t.Fatalf("LoadApp() error: %v", err)
	}
	if cfg.CuesVolume != 0 {
		t.Errorf("default cues volume = %f, expected 0", cfg.CuesVolume)
	}

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.Float64("cues-volume", 0, "")
	if err := flags.Parse([]string{"--cues-volume", "-1.5"}); err != nil {
		t.Fatal(err)
	}
	cfg, err = LoadApp("", flags)
	if err != nil {
		t.Fatalf("LoadApp() error: %v", err)
	}
	if cfg.CuesVolume != -1.5 {
		t.Errorf("cues volume = %f, expected flag value -1.5", cfg.CuesVolume)
	}

	t.Setenv("RECALL_CUES_VOLUME", "5")
	if _, err := LoadApp("", nil); err == nil {
		t.Error("expected error for cues volume out of range")
	}
}

func TestLoadAppMissingExplicitFile(t *testing.T) {
	t.Chdir(t.TempDir())
	if _, err := LoadApp(filepath.Join(t.TempDir(), "nope.yaml"), nil); err == nil {
		t.Error("explicit config file that does not exist should fail")
	}
}
