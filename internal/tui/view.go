package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/jask/mapsleads/internal/contacts"
)

const defaultWidth = 100

func (a *App) View() string {
	rm := a.session.Render()
	width := a.width
	if width <= 0 {
		width = defaultWidth
	}

	header := renderHeader(rm, a.refreshing > 0)
	if a.starting {
		header += "  " + mutedStyle.Render("starting job...")
	}
	if a.exporting {
		header += "  " + mutedStyle.Render("exporting...")
	}
	sections := []string{header}

	switch a.state {
	case viewFilter:
		sections = append(sections, a.filterInput.View())
	case viewStartJob:
		sections = append(sections, a.form.view())
	default:
		if rm.Query != "" {
			sections = append(sections, mutedStyle.Render(fmt.Sprintf("filter: %q (%d matches)", rm.Query, rm.Count)))
		}
	}

	sections = append(sections,
		renderRows(rm.Rows, width),
		renderPager(rm),
	)
	if a.notice.text != "" {
		sections = append(sections, renderNotice(a.notice))
	}
	sections = append(sections, renderHelp(a.keys.BindingsForScope(a.scope())))
	return strings.Join(sections, "\n")
}

func renderHeader(rm contacts.RenderModel, loading bool) string {
	line := titleStyle.Render("mapsleads") + "  " + countStyle.Render(fmt.Sprintf("%d contacts", rm.Total))
	if loading {
		line += "  " + mutedStyle.Render("loading...")
	}
	return line
}

// columnWidths splits width across the four columns: name, phone, address, segment.
func columnWidths(width int) [4]int {
	phone := 18
	segment := 20
	rest := width - phone - segment - 10
	if rest < 20 {
		rest = 20
	}
	name := rest * 2 / 5
	return [4]int{name, phone, rest - name, segment}
}

func renderRows(rows []contacts.Row, width int) string {
	widths := columnWidths(width)
	lines := make([]string, 0, len(rows)+2)
	lines = append(lines, renderLine(contacts.Headers, widths, headerStyle))
	lines = append(lines, borderStyle.Render(strings.Repeat("─", min(width, sum(widths[:])+8))))
	if len(rows) == 0 {
		lines = append(lines, mutedStyle.Render("  no contacts to show"))
	}
	for _, r := range rows {
		lines = append(lines, renderLine(r.Cells(), widths, cellStyle))
	}
	return strings.Join(lines, "\n")
}

func renderLine(cells []string, widths [4]int, style lipgloss.Style) string {
	parts := make([]string, len(cells))
	for i, c := range cells {
		w := widths[i%len(widths)]
		parts[i] = style.Render(padRight(ansi.Truncate(c, w, "…"), w))
	}
	return strings.Join(parts, "")
}

func renderPager(rm contacts.RenderModel) string {
	prev, next := navOffStyle.Render("◀ prev"), navOffStyle.Render("next ▶")
	if rm.PrevEnabled {
		prev = navOnStyle.Render("◀ prev")
	}
	if rm.NextEnabled {
		next = navOnStyle.Render("next ▶")
	}
	return prev + "  " + countStyle.Render(fmt.Sprintf("Page %d of %d", rm.Cursor, rm.TotalPages)) + "  " + next
}

func renderNotice(n notice) string {
	if n.isErr {
		return noticeErrStyle.Render(n.text)
	}
	return noticeOKStyle.Render(n.text)
}

func renderHelp(bindings []KeyBinding) string {
	parts := make([]string, 0, len(bindings))
	seen := make(map[string]bool, len(bindings))
	for _, b := range bindings {
		if seen[b.Action] || len(b.Keys) == 0 {
			continue
		}
		seen[b.Action] = true
		parts = append(parts, keyStyle.Render(b.Keys[0])+" "+helpDescStyle.Render(b.Description))
	}
	return strings.Join(parts, "  ")
}

func padRight(s string, width int) string {
	w := ansi.StringWidth(s)
	if w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}

func sum(xs []int) int {
	total := 0
	for _, x := range xs {
		total += x
	}
	return total
}
