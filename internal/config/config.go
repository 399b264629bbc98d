package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/olivier-w/bounce/internal/ball"
	"github.com/olivier-w/bounce/internal/player"
	"gopkg.in/yaml.v3"
)

// Config is the on-disk widget configuration.
type Config struct {
	FPS              int     `yaml:"fps"`
	InitialY         float64 `yaml:"initial_y"`
	Radius           float64 `yaml:"radius"`
	FallDurationMs   int     `yaml:"fall_duration_ms"`
	BounceDurationMs int     `yaml:"bounce_duration_ms"`
	MaxDeformation   float64 `yaml:"max_deformation"`
	Sound            string  `yaml:"sound"`  // cue file; empty uses the built-in thud
	Volume           float64 `yaml:"volume"` // 0..1
	Mute             bool    `yaml:"mute"`
}

// Default returns the stock configuration.
func Default() Config {
	t := ball.DefaultTuning()
	return Config{
		FPS:              t.FPS,
		InitialY:         t.InitialY,
		Radius:           t.Radius,
		FallDurationMs:   int(t.FallDuration / time.Millisecond),
		BounceDurationMs: int(t.BounceDuration / time.Millisecond),
		MaxDeformation:   t.MaxDeformation,
		Volume:           0.8,
	}
}

// Load reads a YAML file over the defaults. Keys missing from the file keep
// their default value.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if cfg.Sound != "" && !filepath.IsAbs(cfg.Sound) {
		cfg.Sound = filepath.Join(filepath.Dir(path), cfg.Sound)
	}
	return cfg, nil
}

// Validate checks that the knobs describe an animation that can run.
func (c Config) Validate() error {
	var errs []error
	if c.FPS < 1 || c.FPS > 1000 {
		errs = append(errs, fmt.Errorf("fps must be between 1 and 1000, got %d", c.FPS))
	}
	if c.Radius <= 0 {
		errs = append(errs, fmt.Errorf("radius must be positive, got %v", c.Radius))
	}
	if c.InitialY < 0 {
		errs = append(errs, fmt.Errorf("initial_y must not be negative, got %v", c.InitialY))
	}
	if c.InitialY+c.Radius+ball.StrokeWidth >= ball.ContainerHeight {
		errs = append(errs, fmt.Errorf("initial_y + radius must leave room to fall in a %dpx container", ball.ContainerHeight))
	}
	if c.FallDurationMs <= 0 {
		errs = append(errs, fmt.Errorf("fall_duration_ms must be positive, got %d", c.FallDurationMs))
	}
	if c.FPS >= 1 && c.FPS <= 1000 && c.BounceDurationMs < 1000/c.FPS {
		errs = append(errs, fmt.Errorf("bounce_duration_ms must cover at least one frame (%dms), got %d", 1000/c.FPS, c.BounceDurationMs))
	}
	if c.MaxDeformation < 0 || c.MaxDeformation >= 1 {
		errs = append(errs, fmt.Errorf("max_deformation must be in [0, 1), got %v", c.MaxDeformation))
	}
	if c.Volume < 0 || c.Volume > 1 {
		errs = append(errs, fmt.Errorf("volume must be in [0, 1], got %v", c.Volume))
	}
	if c.Sound != "" && !player.IsSupportedExt(filepath.Ext(c.Sound)) {
		errs = append(errs, fmt.Errorf("unsupported sound format %q", filepath.Ext(c.Sound)))
	}
	return errors.Join(errs...)
}

// Tuning converts the configuration into animation knobs.
func (c Config) Tuning() ball.Tuning {
	return ball.Tuning{
		FPS:            c.FPS,
		InitialY:       c.InitialY,
		Radius:         c.Radius,
		FallDuration:   time.Duration(c.FallDurationMs) * time.Millisecond,
		BounceDuration: time.Duration(c.BounceDurationMs) * time.Millisecond,
		MaxDeformation: c.MaxDeformation,
	}
}
