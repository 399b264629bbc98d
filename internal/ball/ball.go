package ball

import (
	"math"
	"time"
)

// Container geometry. These are fixed for the widget.
const (
	ContainerWidth  = 150
	ContainerHeight = 200
	StrokeWidth     = 2
)

// Direction is the sign of the ball's vertical velocity.
type Direction int

const (
	Down Direction = iota
	Up
)

func (d Direction) String() string {
	if d == Up {
		return "up"
	}
	return "down"
}

// Tuning holds the instance-configurable knobs.
type Tuning struct {
	FPS            int
	InitialY       float64 // centre y at rest
	Radius         float64 // excluding stroke width
	FallDuration   time.Duration
	BounceDuration time.Duration
	MaxDeformation float64 // fraction of Radius the ball squashes by
}

// DefaultTuning returns the stock widget tuning.
func DefaultTuning() Tuning {
	return Tuning{
		FPS:            30,
		InitialY:       30,
		Radius:         20,
		FallDuration:   1000 * time.Millisecond,
		BounceDuration: 300 * time.Millisecond,
		MaxDeformation: 0.75,
	}
}

// FrameDuration is floor(1000/FPS) milliseconds.
func (t Tuning) FrameDuration() time.Duration {
	if t.FPS <= 0 {
		return 0
	}
	return time.Duration(1000/t.FPS) * time.Millisecond
}

// Session holds the per-cycle values derived from a Tuning.
type Session struct {
	FrameDuration time.Duration
	BounceFrames  int
	DeltaRadius   float64
	FallDistance  float64
	UniformDeltaY float64
}

// NewSession derives the per-cycle constants.
func NewSession(t Tuning) Session {
	frameMs := float64(t.FrameDuration() / time.Millisecond)
	s := Session{FrameDuration: t.FrameDuration()}
	if frameMs > 0 {
		s.BounceFrames = int(float64(t.BounceDuration/time.Millisecond) / frameMs)
	}
	if s.BounceFrames > 0 {
		s.DeltaRadius = t.Radius * t.MaxDeformation / float64(s.BounceFrames) / 2
	}
	s.FallDistance = math.Floor(ContainerHeight - t.InitialY - t.Radius)
	if fallMs := float64(t.FallDuration / time.Millisecond); fallMs > 0 {
		s.UniformDeltaY = math.Floor(s.FallDistance * frameMs / fallMs)
	}
	return s
}

// State is one visual snapshot of the ball.
type State struct {
	CenterX   float64
	CenterY   float64
	RadiusX   float64
	RadiusY   float64
	Direction Direction
	Bouncing  bool
}

// Rest returns the ball at the top of the container, undeformed.
func Rest(t Tuning) State {
	return State{
		CenterX: ContainerWidth / 2,
		CenterY: t.InitialY,
		RadiusX: t.Radius,
		RadiusY: t.Radius,
	}
}

// FloorY is the centre y at which a round ball touches the floor.
func FloorY(radius float64) float64 {
	return Decimal2(ContainerHeight - radius - StrokeWidth)
}

// Decimal2 rounds v to two decimals.
func Decimal2(v float64) float64 {
	return math.Round(v*100) / 100
}
