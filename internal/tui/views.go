package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/marquee/internal/tui/styles"
)

// renderFooter renders a single-line minimal footer
func (m Model) renderFooter() string {
	var left string
	if m.statusMsg != "" {
		if m.statusIsErr {
			left = styles.ErrorStyle.Render(m.statusMsg)
		} else {
			left = styles.DimStyle.Render(m.statusMsg)
		}
	}

	// Center section: context-specific hints
	var hints [][2]string
	switch {
	case m.route.Dest == DestSearch:
		hints = [][2]string{{"enter", "details"}, {"n", "more"}, {"/", "new search"}}
	case m.hasListing && m.listing.IsTyping():
		hints = [][2]string{{"enter", "done"}, {"esc", "clear filter"}}
	case m.hasListing && m.listing.Focus() == 0:
		hints = [][2]string{{"enter", "details"}, {"j/k", "rows"}}
	default:
		hints = [][2]string{{"h/l", "move"}, {"[ ]", "page"}, {"f", "filter"}, {"enter", "details"}}
	}
	parts := make([]string, len(hints))
	for i, h := range hints {
		parts[i] = styles.AccentStyle.Render(h[0]) + styles.DimStyle.Render(" "+h[1])
	}
	center := strings.Join(parts, "  ")

	right := styles.AccentStyle.Render("?") + styles.DimStyle.Render(" help")

	leftWidth := lipgloss.Width(left)
	centerWidth := lipgloss.Width(center)
	rightWidth := lipgloss.Width(right)

	if leftWidth+centerWidth+rightWidth >= m.width {
		// Not enough space - just left + right
		gap := max(0, m.width-leftWidth-rightWidth)
		return left + strings.Repeat(" ", gap) + right
	}

	available := m.width - leftWidth - rightWidth
	leftPad := (available - centerWidth) / 2
	rightPad := available - centerWidth - leftPad

	return left + strings.Repeat(" ", leftPad) + center + strings.Repeat(" ", rightPad) + right
}

// renderHelp renders the help screen
func (m Model) renderHelp() string {
	help := `
BROWSE                          DETAILS & TRAILER
  j/k        Focus row/banner      Enter  Open details
  h/l        Previous/next poster  p      Play trailer
  [ / ]      Previous/next page    m      Mute/unmute trailer
  g/G        First/last poster     Esc    Close
  f          Filter row
  Shift+wheel  Scroll row

PAGES                           OTHER
  1          Movies                q      Quit
  2          TV shows              ?      This help
  / or s     Search
  n          More results

Press any key to return...
`

	return lipgloss.Place(m.width, m.height,
		lipgloss.Center, lipgloss.Center,
		styles.ModalStyle.Render(help))
}
