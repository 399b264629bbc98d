package ui

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/olivier-w/bounce/internal/ball"
	"github.com/olivier-w/bounce/internal/scheduler"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

type fakeSound struct {
	err error
}

func (f *fakeSound) Prepare()   {}
func (f *fakeSound) Play()      {}
func (f *fakeSound) Err() error { return f.err }

func newTestModel(snd *fakeSound) (Model, *fakeClock) {
	clk := &fakeClock{now: time.Unix(1000, 0)}
	s := scheduler.New(ball.DefaultTuning(), scheduler.WithClock(clk), scheduler.WithSound(snd))
	if snd == nil {
		return New(s, nil), clk
	}
	return New(s, snd), clk
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("expected Model, got %T", next)
	}
	return nm, cmd
}

func TestSpaceStartsPlaybackAndSchedulesRefresh(t *testing.T) {
	m, _ := newTestModel(&fakeSound{})

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeySpace})
	if cmd == nil {
		t.Fatal("expected refresh command after start")
	}
	if m.sched.Status() != scheduler.Playing {
		t.Fatalf("expected playing, got %v", m.sched.Status())
	}
	if !m.ticking {
		t.Fatal("expected refresh tick in flight")
	}

	m, cmd = update(t, m, refreshMsg(time.Now()))
	if cmd == nil {
		t.Fatal("expected refresh loop to continue while playing")
	}
	if m.sched.Frames() != 1 {
		t.Fatalf("expected first refresh to apply a step, got %d", m.sched.Frames())
	}
}

func TestToggleDoesNotStackRefreshTicks(t *testing.T) {
	m, _ := newTestModel(&fakeSound{})
	m, first := update(t, m, tea.KeyMsg{Type: tea.KeySpace})
	if first == nil {
		t.Fatal("expected refresh command")
	}
	m, second := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.sched.Status() != scheduler.Disposing {
		t.Fatalf("expected disposing, got %v", m.sched.Status())
	}
	if second != nil {
		t.Fatal("expected no second refresh while one is in flight")
	}
}

func TestClickInsideBoxToggles(t *testing.T) {
	m, _ := newTestModel(&fakeSound{})

	outside := tea.MouseMsg{X: 0, Y: 0, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
	m, _ = update(t, m, outside)
	if m.sched.Status() != scheduler.Stopped {
		t.Fatal("expected click outside the box to be ignored")
	}

	inside := tea.MouseMsg{X: boxLeft + 2, Y: boxTop + 2, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
	m, _ = update(t, m, inside)
	if m.sched.Status() != scheduler.Playing {
		t.Fatalf("expected click to start playback, got %v", m.sched.Status())
	}

	release := inside
	release.Action = tea.MouseActionRelease
	m, _ = update(t, m, release)
	if m.sched.Status() != scheduler.Playing {
		t.Fatal("expected release to be ignored")
	}
}

func TestDisposingRunsToStopAndFadesBack(t *testing.T) {
	m, clk := newTestModel(&fakeSound{})
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeySpace})
	m, _ = update(t, m, refreshMsg(clk.now))
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeySpace})

	if !strings.Contains(m.View(), "action=-") {
		t.Fatal("expected action marker removed while disposing")
	}

	var cmd tea.Cmd
	for range 200 {
		clk.now = clk.now.Add(m.sched.FrameDuration())
		m, cmd = update(t, m, refreshMsg(clk.now))
		if cmd == nil {
			break
		}
	}
	if cmd != nil {
		t.Fatal("expected refresh loop to end once stopped and faded back")
	}
	if m.sched.Status() != scheduler.Stopped {
		t.Fatalf("expected stopped, got %v", m.sched.Status())
	}
	if m.fade.pos != opaque {
		t.Fatalf("expected ball opaque again, got %v", m.fade.pos)
	}
	if m.lastStatus != scheduler.Stopped {
		t.Fatalf("expected status transition recorded, got %v", m.lastStatus)
	}
	if !strings.Contains(m.View(), "action=start") {
		t.Fatal("expected start marker after stop")
	}
}

func TestFadeDimsWhileDisposing(t *testing.T) {
	f := newFade()
	for range 5 {
		f.step(fadeTarget(true))
	}
	if f.pos >= opaque || f.pos <= 0 {
		t.Fatalf("expected opacity moving toward %v, got %v", disposedAlpha, f.pos)
	}
	for range 120 {
		if f.step(fadeTarget(true)) {
			break
		}
	}
	if !f.settled(disposedAlpha) {
		t.Fatalf("expected fade to settle at %v, got %v", disposedAlpha, f.pos)
	}
}

func TestViewShowsStatusAndMuted(t *testing.T) {
	m, _ := newTestModel(nil)
	view := m.View()
	for _, want := range []string{"bounce", "stopped", "action=start (pointer)", "cy 30", "muted", "quit"} {
		if !strings.Contains(view, want) {
			t.Fatalf("expected view to contain %q, got:\n%s", want, view)
		}
	}
}

func TestSoundFailureIsShownNotFatal(t *testing.T) {
	snd := &fakeSound{err: errors.New("no device")}
	m, clk := newTestModel(snd)
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeySpace})
	m, cmd := update(t, m, refreshMsg(clk.now))
	if cmd == nil {
		t.Fatal("expected playback to continue without sound")
	}
	if !strings.Contains(m.View(), "sound unavailable") {
		t.Fatal("expected sound failure in status line")
	}
}

func TestQuitClearsView(t *testing.T) {
	m, _ := newTestModel(&fakeSound{})
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if m.View() != "" {
		t.Fatal("expected empty view after quit")
	}
}

func TestWindowSizeRefitsGrid(t *testing.T) {
	m, _ := newTestModel(&fakeSound{})
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 29})
	// 20 rows left for the box: 80 dots over 200px, so 2.5px per dot.
	if m.grid.Rows != 20 || m.grid.Cols != 30 {
		t.Fatalf("expected 30x20 grid, got %dx%d", m.grid.Cols, m.grid.Rows)
	}
}
