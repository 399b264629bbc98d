package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/olivier-w/bounce/internal/config"
	"github.com/olivier-w/bounce/internal/player"
	"github.com/olivier-w/bounce/internal/scheduler"
	"github.com/olivier-w/bounce/internal/ui"
)

type options struct {
	configPath string
	exportDir  string
	frames     int
	format     string
	scale      int
	debugPath  string

	fps      int
	radius   float64
	initialY float64
	fall     time.Duration
	bounce   time.Duration
	deform   float64
	sound    string
	volume   float64
	mute     bool
}

func parseFlags(args []string) (options, map[string]bool, error) {
	var o options
	fs := flag.NewFlagSet("bounce", flag.ContinueOnError)
	fs.StringVar(&o.configPath, "config", "", "path to a YAML tuning file")
	fs.StringVar(&o.exportDir, "export", "", "write SVG frames to this directory instead of running the UI")
	fs.IntVar(&o.frames, "frames", 90, "frames to play before stopping when exporting")
	fs.StringVar(&o.format, "format", "svg", "export format: svg or png")
	fs.IntVar(&o.scale, "scale", 2, "pixel scale of exported png frames")
	fs.StringVar(&o.debugPath, "debug", "", "append diagnostic logs to this file")

	fs.IntVar(&o.fps, "fps", 0, "frames per second")
	fs.Float64Var(&o.radius, "radius", 0, "ball radius in pixels, excluding stroke")
	fs.Float64Var(&o.initialY, "initial-y", 0, "resting centre y in pixels")
	fs.DurationVar(&o.fall, "fall", 0, "duration of the fall from rest to the floor")
	fs.DurationVar(&o.bounce, "bounce", 0, "duration of the squash on the floor")
	fs.Float64Var(&o.deform, "deform", 0, "maximum squash as a fraction of the radius")
	fs.StringVar(&o.sound, "sound", "", "bounce cue file (.wav, .mp3, .ogg, .flac)")
	fs.Float64Var(&o.volume, "volume", 0, "cue volume from 0 to 1")
	fs.BoolVar(&o.mute, "mute", false, "disable the bounce cue")

	if err := fs.Parse(args); err != nil {
		return o, nil, err
	}
	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	return o, set, nil
}

// loadConfig reads the optional file and applies explicitly set flags on top.
func loadConfig(o options, set map[string]bool) (config.Config, error) {
	cfg := config.Default()
	if o.configPath != "" {
		var err error
		cfg, err = config.Load(o.configPath)
		if err != nil {
			return cfg, err
		}
	}

	if set["fps"] {
		cfg.FPS = o.fps
	}
	if set["radius"] {
		cfg.Radius = o.radius
	}
	if set["initial-y"] {
		cfg.InitialY = o.initialY
	}
	if set["fall"] {
		cfg.FallDurationMs = int(o.fall / time.Millisecond)
	}
	if set["bounce"] {
		cfg.BounceDurationMs = int(o.bounce / time.Millisecond)
	}
	if set["deform"] {
		cfg.MaxDeformation = o.deform
	}
	if set["sound"] {
		cfg.Sound = o.sound
	}
	if set["volume"] {
		cfg.Volume = o.volume
	}
	if set["mute"] {
		cfg.Mute = o.mute
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func main() {
	o, set, err := parseFlags(os.Args[1:])
	if err != nil {
		os.Exit(2)
	}

	cfg, err := loadConfig(o, set)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if o.debugPath != "" {
		f, err := tea.LogToFile(o.debugPath, "bounce")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
	} else {
		log.SetOutput(io.Discard)
	}

	if o.exportDir != "" {
		eo := exportOptions{dir: o.exportDir, frames: o.frames, format: o.format, scale: o.scale}
		n, err := exportFrames(eo, cfg.Tuning())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("wrote %d frames to %s\n", n, o.exportDir)
		return
	}

	var opts []scheduler.Option
	var sound ui.SoundStatus
	if !cfg.Mute {
		cue := player.NewCue(cfg.Sound, cfg.Volume)
		opts = append(opts, scheduler.WithSound(cue))
		sound = cue
	}
	s := scheduler.New(cfg.Tuning(), opts...)
	log.Printf("starting: %+v", cfg)

	program := tea.NewProgram(ui.New(s, sound), tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := program.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
