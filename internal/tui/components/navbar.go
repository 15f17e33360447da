package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/marquee/internal/tui/styles"
)

// Tab is a nav bar destination
type Tab int

const (
	TabMovies Tab = iota
	TabTV
	TabSearch
)

// Label returns the tab caption
func (t Tab) Label() string {
	switch t {
	case TabMovies:
		return "Movies"
	case TabTV:
		return "TV Shows"
	case TabSearch:
		return "Search"
	}
	return ""
}

// NavBarHeight is the height of the bar without suggestions
const NavBarHeight = 2

// suggester offers completions for the search input
type suggester interface {
	Suggest(input string) []string
}

// NavBar shows the logo, destination tabs and the search input
type NavBar struct {
	active    Tab
	searching bool
	input     textinput.Model

	suggest     suggester
	suggestions []string
	selected    int // -1 when no suggestion is highlighted

	width int
}

// NewNavBar creates a nav bar. suggest may be nil.
func NewNavBar(suggest suggester) NavBar {
	ti := textinput.New()
	ti.Placeholder = "Titles, series..."
	ti.Prompt = "⌕ "
	ti.PromptStyle = styles.FilterPromptStyle
	ti.TextStyle = styles.FilterStyle
	ti.CharLimit = 100

	return NavBar{
		input:    ti,
		suggest:  suggest,
		selected: -1,
	}
}

// Active returns the highlighted tab
func (n NavBar) Active() Tab { return n.active }

// SetActive highlights a tab
func (n *NavBar) SetActive(t Tab) { n.active = t }

// SetSize updates the bar width
func (n *NavBar) SetSize(width int) {
	n.width = width
	n.input.Width = max(10, min(40, width/3))
}

// IsSearching returns true while the search input has focus
func (n NavBar) IsSearching() bool { return n.searching }

// Suggestions returns the current suggestion list
func (n NavBar) Suggestions() []string { return n.suggestions }

// Value returns the search input text
func (n NavBar) Value() string { return n.input.Value() }

// OpenSearch focuses the search input, prefilled with query
func (n *NavBar) OpenSearch(query string) tea.Cmd {
	n.searching = true
	n.input.SetValue(query)
	n.input.CursorEnd()
	n.refreshSuggestions()
	return tea.Batch(n.input.Focus(), textinput.Blink)
}

// CloseSearch blurs and clears the search input
func (n *NavBar) CloseSearch() {
	n.searching = false
	n.input.Blur()
	n.input.SetValue("")
	n.suggestions = nil
	n.selected = -1
}

// Update handles input while searching
func (n NavBar) Update(msg tea.Msg) (NavBar, tea.Cmd) {
	if !n.searching {
		return n, nil
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		n.input, cmd = n.input.Update(msg)
		return n, cmd
	}

	switch keyMsg.String() {
	case "esc":
		n.CloseSearch()
		return n, nil

	case "enter":
		query := strings.TrimSpace(n.input.Value())
		if n.selected >= 0 && n.selected < len(n.suggestions) {
			query = n.suggestions[n.selected]
		}
		if query == "" {
			return n, nil
		}
		n.CloseSearch()
		return n, func() tea.Msg { return SearchSubmittedMsg{Query: query} }

	case "down", "ctrl+n", "tab":
		if len(n.suggestions) > 0 {
			n.selected = (n.selected + 1) % len(n.suggestions)
		}
		return n, nil

	case "up", "ctrl+p", "shift+tab":
		if len(n.suggestions) > 0 {
			n.selected--
			if n.selected < 0 {
				n.selected = len(n.suggestions) - 1
			}
		}
		return n, nil
	}

	before := n.input.Value()
	var cmd tea.Cmd
	n.input, cmd = n.input.Update(msg)
	if n.input.Value() != before {
		n.refreshSuggestions()
	}
	return n, cmd
}

func (n *NavBar) refreshSuggestions() {
	n.selected = -1
	if n.suggest == nil {
		n.suggestions = nil
		return
	}
	n.suggestions = n.suggest.Suggest(n.input.Value())
}

// TabAt returns the tab under column x of the bar's first line
func (n NavBar) TabAt(x int) (Tab, bool) {
	pos := lipgloss.Width(n.renderLogo())
	for _, t := range []Tab{TabMovies, TabTV, TabSearch} {
		w := lipgloss.Width(n.renderTab(t))
		if x >= pos && x < pos+w {
			return t, true
		}
		pos += w
	}
	return 0, false
}

// View renders the bar and, while searching, the suggestions dropdown
// Height returns the rendered height, including the suggestion dropdown
func (n NavBar) Height() int {
	if n.searching && len(n.suggestions) > 0 {
		return NavBarHeight + 1 + len(n.suggestions)
	}
	return NavBarHeight
}

func (n NavBar) View() string {
	left := n.renderLogo()
	for _, t := range []Tab{TabMovies, TabTV, TabSearch} {
		left += n.renderTab(t)
	}

	right := styles.DimStyle.Render("/ search")
	if n.searching {
		right = n.input.View()
	}

	gap := n.width - lipgloss.Width(left) - lipgloss.Width(right) - 1
	bar := left
	if gap > 0 {
		bar += strings.Repeat(" ", gap) + right
	} else {
		bar = styles.Truncate(left+" "+right, n.width)
	}

	lines := []string{bar, styles.DimStyle.Render(strings.Repeat("─", max(0, n.width)))}

	if n.searching && len(n.suggestions) > 0 {
		lines = append(lines, styles.DimStyle.Render("  Recent searches"))
		for i, s := range n.suggestions {
			style := styles.SuggestionStyle
			if i == n.selected {
				style = styles.SelectedSuggestionStyle
			}
			lines = append(lines, style.Render(styles.Truncate(s, max(1, n.width-4))))
		}
	}
	return strings.Join(lines, "\n")
}

func (n NavBar) renderLogo() string {
	return styles.LogoStyle.Render("MARQUEE") + "  "
}

func (n NavBar) renderTab(t Tab) string {
	if t == n.active {
		return styles.ActiveTabStyle.Render(t.Label())
	}
	return styles.TabStyle.Render(t.Label())
}
