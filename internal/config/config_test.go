package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/olivier-w/bounce/internal/ball"
)

func TestDefaultMatchesStockTuning(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected defaults to validate, got %v", err)
	}
	if got, want := cfg.Tuning(), ball.DefaultTuning(); got != want {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
}

func TestLoadOverridesOnlyPresentKeys(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bounce.yaml")
	data := "fps: 60\nradius: 15\nsound: thud.wav\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.FPS != 60 || cfg.Radius != 15 {
		t.Fatalf("expected fps=60 radius=15, got fps=%d radius=%v", cfg.FPS, cfg.Radius)
	}
	if cfg.InitialY != 30 || cfg.BounceDurationMs != 300 || cfg.MaxDeformation != 0.75 {
		t.Fatalf("expected untouched defaults, got %+v", cfg)
	}
	if want := filepath.Join(dir, "thud.wav"); cfg.Sound != want {
		t.Fatalf("expected sound resolved to %s, got %s", want, cfg.Sound)
	}

	tn := cfg.Tuning()
	if tn.FrameDuration() != 16*time.Millisecond {
		t.Fatalf("expected 16ms frames at 60fps, got %v", tn.FrameDuration())
	}
}

func TestLoadReportsMissingFileAndBadYAML(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("fps: [1, 2"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	_, err := Load(path)
	if err == nil || !strings.Contains(err.Error(), "parsing config") {
		t.Fatalf("expected parse error, got %v", err)
	}
}

func TestValidateRejectsBadKnobs(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"zero fps", func(c *Config) { c.FPS = 0 }, "fps"},
		{"huge fps", func(c *Config) { c.FPS = 2000 }, "fps"},
		{"negative radius", func(c *Config) { c.Radius = -1 }, "radius"},
		{"no room to fall", func(c *Config) { c.InitialY = 190 }, "room to fall"},
		{"zero fall", func(c *Config) { c.FallDurationMs = 0 }, "fall_duration_ms"},
		{"short bounce", func(c *Config) { c.BounceDurationMs = 10 }, "bounce_duration_ms"},
		{"full deformation", func(c *Config) { c.MaxDeformation = 1 }, "max_deformation"},
		{"loud", func(c *Config) { c.Volume = 2 }, "volume"},
		{"bad sound", func(c *Config) { c.Sound = "cue.aac" }, "sound format"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("expected error mentioning %q, got %v", tt.want, err)
			}
		})
	}
}
