package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/olivier-w/bounce/internal/ball"
	"github.com/olivier-w/bounce/internal/render"
	"github.com/olivier-w/bounce/internal/scheduler"
)

// maxDisposeTicks bounds the wind-down so a bad tuning cannot loop forever.
const maxDisposeTicks = 10000

// stepClock advances only when told to, one frame per tick.
type stepClock struct {
	now time.Time
}

func (c *stepClock) Now() time.Time { return c.now }

type exportOptions struct {
	dir    string
	frames int    // steps played before the stop
	format string // "svg" or "png"
	scale  int    // png only
}

func (o exportOptions) writer() (func(path string, s render.Scene) error, error) {
	switch o.format {
	case "", "svg":
		return func(path string, s render.Scene) error {
			return os.WriteFile(path, []byte(render.SVG(s)), 0o644)
		}, nil
	case "png":
		return func(path string, s render.Scene) error {
			return render.SavePNG(path, s, o.scale)
		}, nil
	default:
		return nil, fmt.Errorf("unsupported export format %q (want svg or png)", o.format)
	}
}

// exportFrames plays one cycle headlessly: o.frames steps while playing, then
// a stop and the wind-down until the ball is back at rest. Every applied step
// is written to o.dir as frame_0001.svg, frame_0002.svg, ...
func exportFrames(o exportOptions, t ball.Tuning) (int, error) {
	write, err := o.writer()
	if err != nil {
		return 0, err
	}
	ext := o.format
	if ext == "" {
		ext = "svg"
	}
	if err := os.MkdirAll(o.dir, 0o755); err != nil {
		return 0, fmt.Errorf("creating export directory: %w", err)
	}

	clk := &stepClock{now: time.Unix(0, 0)}
	s := scheduler.New(t, scheduler.WithClock(clk))

	written := 0
	tick := func() (bool, error) {
		before := s.Frames()
		more := s.Tick()
		clk.now = clk.now.Add(s.FrameDuration())
		if s.Frames() == before {
			return more, nil
		}
		written++
		name := filepath.Join(o.dir, fmt.Sprintf("frame_%04d.%s", written, ext))
		if err := write(name, render.Scene{Ball: s.Ball(), Disposing: s.Disposing()}); err != nil {
			return false, fmt.Errorf("writing frame: %w", err)
		}
		return more, nil
	}

	s.Handle(scheduler.ToggleClicked)
	for range o.frames {
		if _, err := tick(); err != nil {
			return written, err
		}
	}

	s.Handle(scheduler.ToggleClicked)
	for range maxDisposeTicks {
		more, err := tick()
		if err != nil {
			return written, err
		}
		if !more {
			return written, nil
		}
	}
	return written, fmt.Errorf("ball did not come to rest after %d ticks", maxDisposeTicks)
}
