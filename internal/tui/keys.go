package tui

import (
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

const (
	scopeBrowse = "browse"
	scopeFilter = "filter"
	scopeForm   = "form"
)

const (
	actionQuit         = "quit"
	actionFilter       = "filter"
	actionClearFilter  = "clear_filter"
	actionNextPage     = "next_page"
	actionPrevPage     = "prev_page"
	actionRefresh      = "refresh"
	actionStartJob     = "start_job"
	actionExport       = "export"
	actionApply        = "apply"
	actionCancel       = "cancel"
	actionFocusNext    = "focus_next"
	actionFocusPrev    = "focus_prev"
	actionAddLocation  = "add_location"
	actionDropLocation = "drop_location"
)

// KeyBinding maps keys to an action within a set of scopes.
type KeyBinding struct {
	Keys        []string
	Action      string
	Description string
	Scopes      []string
}

// KeyRegistry resolves key presses to actions per scope.
type KeyRegistry struct {
	bindings []KeyBinding
}

func NewKeyRegistry(bindings []KeyBinding) *KeyRegistry {
	return &KeyRegistry{bindings: slices.Clone(bindings)}
}

// DefaultKeys is the stock key map.
func DefaultKeys() *KeyRegistry {
	return NewKeyRegistry([]KeyBinding{
		{Keys: []string{"ctrl+c"}, Action: actionQuit, Description: "quit", Scopes: []string{"*"}},
		{Keys: []string{"q"}, Action: actionQuit, Description: "quit", Scopes: []string{scopeBrowse}},
		{Keys: []string{"/"}, Action: actionFilter, Description: "filter", Scopes: []string{scopeBrowse}},
		{Keys: []string{"esc"}, Action: actionClearFilter, Description: "clear filter", Scopes: []string{scopeBrowse}},
		{Keys: []string{"n", "right", "l"}, Action: actionNextPage, Description: "next", Scopes: []string{scopeBrowse}},
		{Keys: []string{"p", "left", "h"}, Action: actionPrevPage, Description: "prev", Scopes: []string{scopeBrowse}},
		{Keys: []string{"r"}, Action: actionRefresh, Description: "refresh", Scopes: []string{scopeBrowse}},
		{Keys: []string{"s"}, Action: actionStartJob, Description: "start job", Scopes: []string{scopeBrowse}},
		{Keys: []string{"e"}, Action: actionExport, Description: "export csv", Scopes: []string{scopeBrowse}},
		{Keys: []string{"enter"}, Action: actionApply, Description: "apply", Scopes: []string{scopeFilter, scopeForm}},
		{Keys: []string{"esc"}, Action: actionCancel, Description: "cancel", Scopes: []string{scopeFilter, scopeForm}},
		{Keys: []string{"tab", "down"}, Action: actionFocusNext, Description: "next field", Scopes: []string{scopeForm}},
		{Keys: []string{"shift+tab", "up"}, Action: actionFocusPrev, Description: "prev field", Scopes: []string{scopeForm}},
		{Keys: []string{"ctrl+a"}, Action: actionAddLocation, Description: "add location", Scopes: []string{scopeForm}},
		{Keys: []string{"ctrl+d"}, Action: actionDropLocation, Description: "remove location", Scopes: []string{scopeForm}},
	})
}

func (r *KeyRegistry) BindingsForScope(scope string) []KeyBinding {
	out := make([]KeyBinding, 0, len(r.bindings))
	for _, b := range r.bindings {
		if scopeMatch(scope, b.Scopes) {
			out = append(out, b)
		}
	}
	return out
}

// Action returns the action bound to msg in scope, if any.
func (r *KeyRegistry) Action(msg tea.KeyMsg, scope string) (string, bool) {
	pressed := normalizeKey(msg.String())
	for _, b := range r.bindings {
		if !scopeMatch(scope, b.Scopes) {
			continue
		}
		for _, k := range b.Keys {
			if normalizeKey(k) == pressed {
				return b.Action, true
			}
		}
	}
	return "", false
}

func normalizeKey(k string) string {
	return strings.ToLower(strings.TrimSpace(k))
}

func scopeMatch(scope string, scopes []string) bool {
	if len(scopes) == 0 {
		return true
	}
	for _, s := range scopes {
		if s == "*" || s == scope {
			return true
		}
	}
	return false
}
