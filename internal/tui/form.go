package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// jobForm collects a segment and one or more locations. Index 0 is the
// segment input; the rest are locations.
type jobForm struct {
	segment   textinput.Model
	locations []textinput.Model
	focused   int
}

func newJobForm(defaultLocation string) jobForm {
	seg := newInput()
	seg.Placeholder = "e.g. Oficina mecânica"
	seg.Prompt = ""
	seg.CharLimit = 120

	f := jobForm{segment: seg}
	f.addLocation(defaultLocation)
	f.blur()
	f.focused = 0
	return f
}

func newLocationInput(value string) textinput.Model {
	in := newInput()
	in.Placeholder = "city, state, country"
	in.Prompt = ""
	in.CharLimit = 160
	in.SetValue(value)
	return in
}

func newInput() textinput.Model {
	in := textinput.New()
	in.Cursor.SetMode(cursor.CursorStatic)
	return in
}

func (f *jobForm) fields() int {
	return 1 + len(f.locations)
}

func (f *jobForm) input(i int) *textinput.Model {
	if i == 0 {
		return &f.segment
	}
	return &f.locations[i-1]
}

// focus moves focus to field i, wrapping around.
func (f *jobForm) focus(i int) tea.Cmd {
	n := f.fields()
	i = ((i % n) + n) % n
	f.blur()
	f.focused = i
	return f.input(i).Focus()
}

func (f *jobForm) blur() {
	f.segment.Blur()
	for i := range f.locations {
		f.locations[i].Blur()
	}
}

func (f *jobForm) addLocation(value string) tea.Cmd {
	f.locations = append(f.locations, newLocationInput(value))
	return f.focus(f.fields() - 1)
}

// dropLocation removes the focused location; the last remaining one is kept.
func (f *jobForm) dropLocation() tea.Cmd {
	if f.focused == 0 || len(f.locations) <= 1 {
		return nil
	}
	idx := f.focused - 1
	f.locations = append(f.locations[:idx], f.locations[idx+1:]...)
	return f.focus(min(f.focused, f.fields()-1))
}

func (f *jobForm) update(msg tea.Msg) tea.Cmd {
	in := f.input(f.focused)
	var cmd tea.Cmd
	*in, cmd = in.Update(msg)
	return cmd
}

func (f *jobForm) values() (string, []string) {
	locs := make([]string, 0, len(f.locations))
	for _, l := range f.locations {
		locs = append(locs, l.Value())
	}
	return f.segment.Value(), locs
}

func (f *jobForm) view() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Start scraping job"))
	b.WriteString("\n\n")
	for i := 0; i < f.fields(); i++ {
		marker := " "
		if i == f.focused {
			marker = focusMarker
		}
		label := "Segment"
		if i > 0 {
			label = "Location"
		}
		b.WriteString(marker + " " + formLabelStyle.Render(label) + f.input(i).View() + "\n")
	}
	return b.String()
}
