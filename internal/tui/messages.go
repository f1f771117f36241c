package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/mapsleads/internal/contacts"
)

type recordsMsg struct {
	records []contacts.Record
	err     error
}

type jobStartedMsg struct {
	message string
	err     error
}

type exportDoneMsg struct {
	path string
	err  error
}

type noticeExpiredMsg struct {
	id int
}

// notice is a short-lived status line.
type notice struct {
	id    int
	text  string
	isErr bool
}

func expireAfter(ttl time.Duration, id int) tea.Cmd {
	return tea.Tick(ttl, func(time.Time) tea.Msg { return noticeExpiredMsg{id: id} })
}
