package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// refreshRate is the display refresh the scheduler is polled at.
const refreshRate = 60

type refreshMsg time.Time

func refreshCmd() tea.Cmd {
	return tea.Tick(time.Second/refreshRate, func(t time.Time) tea.Msg {
		return refreshMsg(t)
	})
}
