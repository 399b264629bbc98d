package ui

import (
	"log"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/olivier-w/bounce/internal/render"
	"github.com/olivier-w/bounce/internal/scheduler"
)

// SoundStatus reports whether the bounce cue could be set up.
type SoundStatus interface {
	Err() error
}

// Layout offsets of the first ball cell inside the view: a blank line, the
// header, a blank line and the box border above it; two spaces of indent and
// the border to its left.
const (
	boxTop  = 4
	boxLeft = 3
)

// Model is the Bubbletea model for the bouncing ball widget.
type Model struct {
	sched *scheduler.Scheduler
	sound SoundStatus // nil when muted

	keys keyMap
	help help.Model
	fade fade
	grid render.Grid

	width    int
	height   int
	ticking  bool // a refresh tick is in flight
	quitting bool

	lastStatus scheduler.Status
	soundErr   error
}

// New creates a widget driven by s. sound may be nil when the cue is muted.
func New(s *scheduler.Scheduler, sound SoundStatus) Model {
	return Model{
		sched:      s,
		sound:      sound,
		keys:       defaultKeys,
		help:       help.New(),
		fade:       newFade(),
		grid:       render.FitGrid(30, 20),
		lastStatus: s.Status(),
	}
}

func (m Model) Init() tea.Cmd {
	return tea.SetWindowTitle("bounce")
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Sequence(tea.SetWindowTitle(""), tea.Quit)
		case key.Matches(msg, m.keys.Toggle):
			return m.toggle()
		}
		return m, nil

	case tea.MouseMsg:
		if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		if _, _, ok := m.grid.CellAt(msg.X-boxLeft, msg.Y-boxTop); !ok {
			return m, nil
		}
		return m.toggle()

	case refreshMsg:
		m.ticking = false
		more := m.sched.Tick()
		m.noteStatus()
		m.noteSound()
		settled := m.fade.step(fadeTarget(m.sched.Disposing()))
		if more || !settled {
			return m, m.scheduleRefresh()
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.grid = render.FitGrid(msg.Width-2*boxLeft, msg.Height-boxTop-5)
		return m, nil
	}

	return m, nil
}

// toggle forwards a click to the scheduler and keeps the refresh loop alive.
func (m Model) toggle() (tea.Model, tea.Cmd) {
	if !m.sched.Handle(scheduler.ToggleClicked) {
		return m, nil
	}
	m.noteStatus()
	return m, m.scheduleRefresh()
}

func (m *Model) scheduleRefresh() tea.Cmd {
	if m.ticking {
		return nil
	}
	m.ticking = true
	return refreshCmd()
}

func (m *Model) noteStatus() {
	if st := m.sched.Status(); st != m.lastStatus {
		log.Printf("status %s -> %s", m.lastStatus, st)
		m.lastStatus = st
	}
}

func (m *Model) noteSound() {
	if m.sound == nil || m.soundErr != nil {
		return
	}
	if err := m.sound.Err(); err != nil {
		log.Printf("sound disabled: %v", err)
		m.soundErr = err
	}
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	rows := m.grid.Raster(m.sched.Ball())
	ball := lipgloss.NewStyle().Foreground(ballColor(m.fade.pos)).Render(strings.Join(rows, "\n"))
	box := indent(boxStyle.Render(ball), "  ")

	lines := "\n"
	lines += "  " + headerStyle.Render("bounce") + "\n"
	lines += "\n"
	lines += box + "\n"
	lines += "\n"
	lines += "  " + m.statusLine() + "\n"
	lines += "\n"
	lines += "  " + helpStyle.Render(m.help.View(m.keys)) + "\n"
	return lines
}

func indent(block, prefix string) string {
	parts := strings.Split(block, "\n")
	for i, p := range parts {
		parts[i] = prefix + p
	}
	return strings.Join(parts, "\n")
}
