package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/marquee/internal/domain"
)

// Command factories for preference writes. Failures surface in the
// footer; they never block browsing.

// NavigateCmd emits a NavigateMsg
func NavigateCmd(r Route) tea.Cmd {
	return func() tea.Msg {
		return NavigateMsg{Route: r}
	}
}

// SaveRouteCmd persists the last listing destination
func SaveRouteCmd(prefs domain.PreferenceStore, r Route) tea.Cmd {
	if prefs == nil || !r.IsListing() {
		return nil
	}
	return func() tea.Msg {
		if err := prefs.SaveLastRoute(r.String()); err != nil {
			return ErrMsg{Err: err, Context: "saving last page"}
		}
		return nil
	}
}

// SaveMuteCmd persists the trailer audio preference
func SaveMuteCmd(prefs domain.PreferenceStore, muted bool) tea.Cmd {
	if prefs == nil {
		return nil
	}
	return func() tea.Msg {
		if err := prefs.SaveMuted(muted); err != nil {
			return ErrMsg{Err: err, Context: "saving mute preference"}
		}
		return nil
	}
}

// RecordSearchCmd adds a query to the search history
func RecordSearchCmd(history searchHistory, query string) tea.Cmd {
	if history == nil {
		return nil
	}
	return func() tea.Msg {
		history.Record(query)
		return nil
	}
}

// ClearStatusCmd returns a command that clears status after a delay
func ClearStatusCmd(delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(t time.Time) tea.Msg {
		return ClearStatusMsg{}
	})
}
