// Package tui is the interactive contact browser. App.Update is the single
// dispatcher: every key press and network result becomes one transition on
// the contacts session, and View renders whatever the session projects.
package tui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/mapsleads/internal/backend"
	"github.com/jask/mapsleads/internal/config"
	"github.com/jask/mapsleads/internal/contacts"
)

// Backend is the subset of the scraping service the browser needs.
type Backend interface {
	ListRecords(ctx context.Context) ([]contacts.Record, error)
	StartJob(ctx context.Context, segment string, locations []string) (string, error)
	Export(ctx context.Context, dir string) (string, error)
}

type appState string

const (
	viewBrowse   appState = "browse"
	viewFilter   appState = "filter"
	viewStartJob appState = "start_job"
)

// App ties the session, the backend and the input widgets together.
type App struct {
	ctx     context.Context
	backend Backend
	cfg     config.Config
	session *contacts.Session
	keys    *KeyRegistry
	state   appState
	width   int

	filterInput textinput.Model
	form        jobForm

	notice    notice
	noticeSeq int

	refreshing int
	exporting  bool
	starting   bool
}

// New builds the browser. The first refresh is issued by Init.
func New(ctx context.Context, cfg config.Config, b Backend) *App {
	fi := newInput()
	fi.Placeholder = "name, phone, address or segment"
	fi.Prompt = "/ "
	fi.CharLimit = 120

	return &App{
		ctx:         ctx,
		backend:     b,
		cfg:         cfg,
		session:     contacts.NewSession(),
		keys:        DefaultKeys(),
		state:       viewBrowse,
		filterInput: fi,
		form:        newJobForm(cfg.UI.DefaultLocation),
	}
}

func (a *App) Init() tea.Cmd {
	return a.refresh()
}

func (a *App) scope() string {
	switch a.state {
	case viewFilter:
		return scopeFilter
	case viewStartJob:
		return scopeForm
	default:
		return scopeBrowse
	}
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = m.Width
		a.filterInput.Width = max(20, m.Width-10)
		return a, nil
	case tea.KeyMsg:
		return a.handleKey(m)
	case recordsMsg:
		a.refreshing = max(0, a.refreshing-1)
		if m.err != nil {
			slog.Warn("refresh failed", "error", m.err)
			return a, a.flash("error loading contacts: "+m.err.Error(), true)
		}
		// Responses are applied in arrival order; a slow older refresh can
		// overwrite a newer one.
		stats := a.session.Ingest(m.records)
		slog.Debug("records ingested", "received", stats.Received, "kept", stats.Kept, "duplicates", stats.Duplicates)
		text := fmt.Sprintf("loaded %d contacts", stats.Kept)
		if stats.Duplicates > 0 {
			text += fmt.Sprintf(" (%d duplicates dropped)", stats.Duplicates)
		}
		return a, a.flash(text, false)
	case jobStartedMsg:
		a.starting = false
		if m.err != nil {
			var rerr *backend.RejectedError
			if errors.As(m.err, &rerr) {
				return a, a.flash("error starting job: "+rerr.Message, true)
			}
			return a, a.flash("error starting job: "+m.err.Error(), true)
		}
		return a, a.flash(m.message, false)
	case exportDoneMsg:
		a.exporting = false
		if m.err != nil {
			return a, a.flash("export failed: "+m.err.Error(), true)
		}
		return a, a.flash("exported to "+m.path, false)
	case noticeExpiredMsg:
		if m.id == a.notice.id {
			a.notice = notice{}
		}
		return a, nil
	}
	return a, nil
}

func (a *App) handleKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	action, bound := a.keys.Action(m, a.scope())
	if bound && action == actionQuit {
		return a, tea.Quit
	}

	switch a.state {
	case viewFilter:
		return a.handleFilterKey(m, action, bound)
	case viewStartJob:
		return a.handleFormKey(m, action, bound)
	}

	if !bound {
		return a, nil
	}
	switch action {
	case actionFilter:
		a.state = viewFilter
		a.filterInput.SetValue(a.session.Query())
		a.filterInput.CursorEnd()
		return a, a.filterInput.Focus()
	case actionClearFilter:
		if a.session.Query() != "" {
			a.session.Filter("")
		}
	case actionNextPage:
		a.session.Next()
	case actionPrevPage:
		a.session.Prev()
	case actionRefresh:
		return a, a.refresh()
	case actionStartJob:
		a.state = viewStartJob
		return a, a.form.focus(0)
	case actionExport:
		if a.exporting {
			return a, nil
		}
		a.exporting = true
		return a, a.export()
	}
	return a, nil
}

func (a *App) handleFilterKey(m tea.KeyMsg, action string, bound bool) (tea.Model, tea.Cmd) {
	if bound {
		switch action {
		case actionApply:
			a.session.Filter(a.filterInput.Value())
			a.filterInput.Blur()
			a.state = viewBrowse
			return a, nil
		case actionCancel:
			a.filterInput.Blur()
			a.state = viewBrowse
			return a, nil
		}
	}
	var cmd tea.Cmd
	a.filterInput, cmd = a.filterInput.Update(m)
	return a, cmd
}

func (a *App) handleFormKey(m tea.KeyMsg, action string, bound bool) (tea.Model, tea.Cmd) {
	if bound {
		switch action {
		case actionCancel:
			a.form.blur()
			a.state = viewBrowse
			return a, nil
		case actionFocusNext:
			return a, a.form.focus(a.form.focused + 1)
		case actionFocusPrev:
			return a, a.form.focus(a.form.focused - 1)
		case actionAddLocation:
			return a, a.form.addLocation("")
		case actionDropLocation:
			return a, a.form.dropLocation()
		case actionApply:
			return a.submitJob()
		}
	}
	return a, a.form.update(m)
}

func (a *App) submitJob() (tea.Model, tea.Cmd) {
	segment, locations := a.form.values()
	req := backend.NewStartJobRequest(segment, locations)
	if err := req.Validate(); err != nil {
		return a, a.flash(err.Error(), true)
	}
	a.form.blur()
	a.state = viewBrowse
	a.starting = true
	return a, tea.Batch(a.flash("configuring search and starting job...", false), a.startJob(req))
}

// flash replaces the current notice and schedules its removal.
func (a *App) flash(text string, isErr bool) tea.Cmd {
	a.noticeSeq++
	a.notice = notice{id: a.noticeSeq, text: text, isErr: isErr}
	return expireAfter(a.cfg.UI.NoticeTTL, a.noticeSeq)
}

func (a *App) refresh() tea.Cmd {
	a.refreshing++
	return func() tea.Msg {
		recs, err := a.backend.ListRecords(a.ctx)
		return recordsMsg{records: recs, err: err}
	}
}

func (a *App) startJob(req backend.StartJobRequest) tea.Cmd {
	return func() tea.Msg {
		msg, err := a.backend.StartJob(a.ctx, req.Segment, req.Locations)
		return jobStartedMsg{message: msg, err: err}
	}
}

func (a *App) export() tea.Cmd {
	dir := a.cfg.Export.Dir
	return func() tea.Msg {
		path, err := a.backend.Export(a.ctx, dir)
		return exportDoneMsg{path: path, err: err}
	}
}

// Render returns the current render model; exposed for tests and other surfaces.
func (a *App) Render() contacts.RenderModel {
	return a.session.Render()
}
