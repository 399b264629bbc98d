package scheduler

import (
	"time"

	"github.com/olivier-w/bounce/internal/ball"
)

// Status is the playback lifecycle: Stopped -> Playing -> Disposing -> Stopped.
type Status int

const (
	Stopped Status = iota
	Playing
	Disposing
)

func (s Status) String() string {
	switch s {
	case Playing:
		return "playing"
	case Disposing:
		return "disposing"
	default:
		return "stopped"
	}
}

// Command is a user input the scheduler reacts to.
type Command int

const (
	ToggleClicked Command = iota
)

func (c Command) String() string {
	switch c {
	case ToggleClicked:
		return "toggle"
	default:
		return "unknown"
	}
}

// Action marker values. An empty marker means the attribute is absent and
// the widget is not clickable.
const (
	ActionStart = "start"
	ActionStop  = "stop"
)

// Sound plays the floor-contact cue. Prepare is called only in direct
// response to a user toggle and must be safe to call more than once.
type Sound interface {
	Prepare()
	Play()
}

type silent struct{}

func (silent) Prepare() {}
func (silent) Play()    {}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithClock replaces the system clock.
func WithClock(c Clock) Option {
	return func(s *Scheduler) { s.clock = c }
}

// WithSound sets the contact cue.
func WithSound(snd Sound) Option {
	return func(s *Scheduler) { s.sound = snd }
}

// Scheduler gates the animation to the configured frame rate and owns the
// playback status. It is not safe for concurrent use; a single event loop
// drives it.
type Scheduler struct {
	tuning ball.Tuning
	clock  Clock
	sound  Sound

	status    Status
	action    string
	disposing bool // visual fade class

	anim      *ball.Animation
	ballState ball.State
	lastFrame time.Time
	started   time.Time
	frames    int
}

// New returns a stopped scheduler showing the ball at rest.
func New(t ball.Tuning, opts ...Option) *Scheduler {
	s := &Scheduler{
		tuning:    t,
		clock:     SystemClock,
		sound:     silent{},
		action:    ActionStart,
		ballState: ball.Rest(t),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handle applies a user command and reports whether the status changed.
// Toggles while disposing are ignored.
func (s *Scheduler) Handle(cmd Command) bool {
	if cmd != ToggleClicked {
		return false
	}
	switch s.status {
	case Stopped:
		s.start()
		return true
	case Playing:
		s.stop()
		return true
	default:
		return false
	}
}

func (s *Scheduler) start() {
	s.status = Playing
	s.action = ActionStop
	s.sound.Prepare()

	s.anim = ball.NewAnimation(s.tuning)
	s.ballState = s.anim.State()
	s.frames = 0

	// Seed one frame back so the first tick steps immediately.
	now := s.clock.Now()
	s.started = now
	s.lastFrame = now.Add(-s.FrameDuration())
}

func (s *Scheduler) stop() {
	s.status = Disposing
	s.disposing = true
	s.action = ""
	if s.anim != nil {
		s.anim.Rise()
	}
}

// Tick is one display-refresh callback. It steps the animation once a full
// frame has elapsed since the last step and returns true while more refresh
// callbacks are wanted.
func (s *Scheduler) Tick() bool {
	if s.status == Stopped || s.anim == nil {
		return false
	}

	now := s.clock.Now()
	if now.Sub(s.lastFrame) >= s.FrameDuration() {
		f := s.anim.Step(s.status == Disposing)
		s.ballState = f.State
		s.lastFrame = now
		s.frames++
		if f.Contact {
			s.sound.Play()
		}
		if f.Done {
			s.status = Stopped
		}
	}

	if s.status == Stopped {
		s.reset()
		return false
	}
	return true
}

func (s *Scheduler) reset() {
	s.action = ActionStart
	s.disposing = false
	s.anim = nil
}

// Status returns the playback status.
func (s *Scheduler) Status() Status { return s.status }

// Action returns the interaction marker: ActionStart, ActionStop, or "".
func (s *Scheduler) Action() string { return s.action }

// Disposing reports whether the fading class is applied.
func (s *Scheduler) Disposing() bool { return s.disposing }

// Ball returns the most recently applied ball state.
func (s *Scheduler) Ball() ball.State { return s.ballState }

// Tuning returns the knobs the scheduler was built with.
func (s *Scheduler) Tuning() ball.Tuning { return s.tuning }

// Session returns the derived constants of the running cycle, or of a fresh
// cycle when stopped.
func (s *Scheduler) Session() ball.Session {
	if s.anim != nil {
		return s.anim.Session()
	}
	return ball.NewSession(s.tuning)
}

// FrameDuration is the minimum gap between two steps.
func (s *Scheduler) FrameDuration() time.Duration { return s.tuning.FrameDuration() }

// Frames returns the number of steps applied in the current cycle.
func (s *Scheduler) Frames() int { return s.frames }

// Elapsed returns the time since the current cycle started.
func (s *Scheduler) Elapsed() time.Duration {
	if s.status == Stopped {
		return 0
	}
	return s.clock.Now().Sub(s.started)
}
