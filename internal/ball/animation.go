package ball

import "math"

// accelDivisor scales how quickly the fall speeds up with distance fallen.
const accelDivisor = 7

// Frame is the outcome of one animation step.
type Frame struct {
	State   State
	Contact bool // the ball hit the floor on this step
	Done    bool // the ball is back at rest and the sequence has ended
}

// Animation is the resumable per-frame state machine for one play cycle.
// Each call to Step advances exactly one tick; a bounce is spread over
// Session.BounceFrames consecutive steps.
type Animation struct {
	tuning  Tuning
	session Session
	state   State
	substep int // bounce sub-steps applied so far
	done    bool
}

// NewAnimation starts a fresh cycle with the ball at rest.
func NewAnimation(t Tuning) *Animation {
	return &Animation{
		tuning:  t,
		session: NewSession(t),
		state:   Rest(t),
	}
}

// State returns the current snapshot.
func (a *Animation) State() State { return a.state }

// Session returns the constants derived for this cycle.
func (a *Animation) Session() Session { return a.session }

// Done reports whether the sequence has terminated.
func (a *Animation) Done() bool { return a.done }

// Rise turns the ball upward. The scheduler calls it when a stop is requested.
func (a *Animation) Rise() {
	a.state.Direction = Up
}

// Step advances one tick. While disposing the ball moves at constant speed
// and the sequence ends once it is back at the top. Calling Step after the
// sequence has ended returns the final frame unchanged.
func (a *Animation) Step(disposing bool) Frame {
	if a.done {
		return Frame{State: a.state, Done: true}
	}

	if a.state.Bouncing {
		if a.substep < a.session.BounceFrames {
			a.squash()
			return Frame{State: a.state}
		}
		a.state.RadiusX = a.tuning.Radius
		a.state.RadiusY = a.tuning.Radius
		a.state.Bouncing = false
		a.state.Direction = Up
	}

	return a.move(disposing)
}

// squash applies one bounce sub-step: compress for the first half, recover
// for the second, keeping rx*ry at Radius² and the ball resting on the floor.
func (a *Animation) squash() {
	a.substep++
	ry := a.state.RadiusY
	if float64(a.substep) <= float64(a.session.BounceFrames)/2 {
		ry -= a.session.DeltaRadius
	} else {
		ry += a.session.DeltaRadius
	}
	rx := a.tuning.Radius * a.tuning.Radius / ry

	a.state.RadiusX = Decimal2(rx)
	a.state.RadiusY = Decimal2(ry)
	a.state.CenterY = Decimal2(ContainerHeight - a.state.RadiusY - StrokeWidth)
}

func (a *Animation) move(disposing bool) Frame {
	cy := a.state.CenterY
	u := a.session.UniformDeltaY

	var dy float64
	if disposing {
		dy = math.Max(1, 2*u)
	} else {
		dy = math.Max(1, math.Floor(u*(cy-a.tuning.InitialY)/accelDivisor))
	}
	if a.state.Direction == Up {
		dy = -dy
	}

	if cy+a.tuning.Radius+dy > ContainerHeight {
		a.state.CenterY = FloorY(a.tuning.Radius)
		a.state.Bouncing = true
		a.substep = 0
		return Frame{State: a.state, Contact: true}
	}

	// Back at the top: settle there and head down again, or finish.
	next := Decimal2(cy + dy)
	if next < a.tuning.InitialY {
		a.state.CenterY = a.tuning.InitialY
		a.state.Direction = Down
		a.done = disposing
		return Frame{State: a.state, Done: a.done}
	}
	a.state.CenterY = next
	return Frame{State: a.state}
}
