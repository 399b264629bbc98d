package ui

import (
	"fmt"

	"github.com/olivier-w/bounce/internal/scheduler"
	"github.com/olivier-w/bounce/internal/util"
)

func statusIcon(st scheduler.Status) string {
	switch st {
	case scheduler.Playing:
		return "▶"
	case scheduler.Disposing:
		return "◌"
	default:
		return "■"
	}
}

// cursorHint mirrors the action marker: clickable while a marker is set.
func cursorHint(action string) string {
	if action == "" {
		return "not-allowed"
	}
	return "pointer"
}

func renderAction(action string) string {
	if action == "" {
		return "action=-"
	}
	return "action=" + action
}

func (m Model) statusLine() string {
	st := m.sched.Status()
	b := m.sched.Ball()

	text := fmt.Sprintf("%s %s  %s (%s)  cy %s rx %s ry %s  frame %d  %s",
		statusIcon(st), st,
		renderAction(m.sched.Action()), cursorHint(m.sched.Action()),
		util.FormatCoord(b.CenterY), util.FormatCoord(b.RadiusX), util.FormatCoord(b.RadiusY),
		m.sched.Frames(), util.FormatDuration(m.sched.Elapsed()))

	line := statusStyle.Render(text)
	if m.sound == nil {
		line += "  " + mutedStyle.Render("muted")
	} else if m.soundErr != nil {
		line += "  " + mutedStyle.Render("muted (sound unavailable)")
	}
	return line
}
