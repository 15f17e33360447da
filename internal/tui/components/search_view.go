package components

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/service"
	"github.com/mmcdole/marquee/internal/tui/styles"
)

const (
	searchFetchTimeout = 15 * time.Second
	searchHeaderHeight = 2
	searchFooterHeight = 2
)

// NoResultsText is shown when a query matched nothing displayable
const NoResultsText = "No results found."

// searcher fetches one search page
type searcher interface {
	Search(ctx context.Context, req service.SearchRequest) (domain.SearchPage, error)
}

// SearchView shows the accumulated results of a query as a card grid
type SearchView struct {
	searcher searcher
	session  *service.SearchSession

	cursor    int
	rowOffset int // first grid row on screen

	width       int
	height      int
	posterWidth int
	spinner     spinner.Model
}

// NewSearchView creates an empty search view
func NewSearchView(s searcher, posterWidth int) SearchView {
	if posterWidth < MinPosterWidth {
		posterWidth = DefaultPosterWidth
	}
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.SpinnerStyle

	return SearchView{
		searcher:    s,
		session:     service.NewSearchSession(),
		posterWidth: posterWidth,
		spinner:     sp,
	}
}

// Session returns the search state
func (v SearchView) Session() *service.SearchSession { return v.session }

// Query returns the current query
func (v SearchView) Query() string { return v.session.Query }

// SetQuery starts a new search; blank or unchanged input fetches nothing
func (v *SearchView) SetQuery(query string) tea.Cmd {
	req, ok := v.session.SetQuery(query)
	if !ok {
		return nil
	}
	v.cursor, v.rowOffset = 0, 0
	return tea.Batch(searchCmd(v.searcher, req), v.spinner.Tick)
}

// LoadMore requests the next page when one exists and none is pending
func (v *SearchView) LoadMore() tea.Cmd {
	req, ok := v.session.LoadMore()
	if !ok {
		return nil
	}
	return tea.Batch(searchCmd(v.searcher, req), v.spinner.Tick)
}

// Teardown drops outstanding requests and forgets the query, so the
// next SetQuery searches again even for the same text
func (v *SearchView) Teardown() {
	v.session.Invalidate()
	v.session.Query = ""
}

// SetSize updates the view size
func (v *SearchView) SetSize(width, height int) {
	v.width = width
	v.height = height
	v.ensureVisible()
}

// Selected returns the item under the cursor
func (v SearchView) Selected() (domain.MediaItem, bool) {
	if v.cursor < 0 || v.cursor >= len(v.session.Items) {
		return domain.MediaItem{}, false
	}
	return v.session.Items[v.cursor], true
}

func searchCmd(s searcher, req service.SearchRequest) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), searchFetchTimeout)
		defer cancel()

		page, err := s.Search(ctx, req)
		return SearchResultsMsg{Request: req, Page: page, Err: err}
	}
}

// Update handles messages
func (v SearchView) Update(msg tea.Msg) (SearchView, tea.Cmd) {
	switch msg := msg.(type) {
	case SearchResultsMsg:
		if !v.session.Apply(msg.Request, msg.Page, msg.Err) {
			return v, nil
		}
		v.cursor = min(v.cursor, max(0, len(v.session.Items)-1))
		if msg.Err == nil && msg.Request.Page == 1 && len(v.session.Items) > 0 {
			query := msg.Request.Query
			return v, func() tea.Msg { return SearchRecordedMsg{Query: query} }
		}
		return v, nil

	case spinner.TickMsg:
		if !v.session.Loading {
			return v, nil
		}
		var cmd tea.Cmd
		v.spinner, cmd = v.spinner.Update(msg)
		return v, cmd

	case tea.KeyMsg:
		return v.handleKey(msg)
	}
	return v, nil
}

func (v SearchView) handleKey(msg tea.KeyMsg) (SearchView, tea.Cmd) {
	cols := v.columns()
	n := len(v.session.Items)

	switch {
	case key.Matches(msg, searchKeys.LoadMore):
		return v, v.LoadMore()
	case key.Matches(msg, searchKeys.Select):
		return v, v.selectCmd()
	case n == 0:
		return v, nil
	case key.Matches(msg, searchKeys.Left):
		v.cursor = max(0, v.cursor-1)
	case key.Matches(msg, searchKeys.Right):
		v.cursor = min(n-1, v.cursor+1)
	case key.Matches(msg, searchKeys.Up):
		if v.cursor >= cols {
			v.cursor -= cols
		}
	case key.Matches(msg, searchKeys.Down):
		switch {
		case v.cursor+cols < n:
			v.cursor += cols
		case v.cursor/cols < (n-1)/cols:
			v.cursor = n - 1
		default:
			// Past the last grid row: fetch the next page
			v.ensureVisible()
			return v, v.LoadMore()
		}
	}
	v.ensureVisible()
	return v, nil
}

// Click selects the card at (x, y) relative to the view
func (v *SearchView) Click(x, y int) tea.Cmd {
	y -= searchHeaderHeight
	if y < 0 || x < 0 {
		return nil
	}
	stride := v.posterWidth + PosterGap
	if x%stride >= v.posterWidth {
		return nil
	}
	col := x / stride
	if col >= v.columns() {
		return nil
	}
	idx := (v.rowOffset+y/PosterHeight)*v.columns() + col
	if idx >= len(v.session.Items) {
		return nil
	}
	v.cursor = idx
	return v.selectCmd()
}

// Scroll moves the grid by whole rows
func (v *SearchView) Scroll(rows int) {
	total := v.gridRows()
	v.rowOffset = min(max(0, v.rowOffset+rows), max(0, total-v.visibleRows()))
	cols := v.columns()
	first := v.rowOffset * cols
	last := (v.rowOffset+v.visibleRows())*cols - 1
	v.cursor = min(max(v.cursor, first), min(last, max(0, len(v.session.Items)-1)))
}

func (v SearchView) selectCmd() tea.Cmd {
	item, ok := v.Selected()
	if !ok {
		return nil
	}
	return func() tea.Msg { return ItemSelectedMsg{Item: item} }
}

func (v SearchView) columns() int {
	return max(1, (v.width+PosterGap)/(v.posterWidth+PosterGap))
}

func (v SearchView) gridRows() int {
	n := len(v.session.Items)
	if n == 0 {
		return 0
	}
	return (n + v.columns() - 1) / v.columns()
}

func (v SearchView) visibleRows() int {
	return max(1, (v.height-searchHeaderHeight-searchFooterHeight)/PosterHeight)
}

func (v *SearchView) ensureVisible() {
	row := v.cursor / v.columns()
	if row < v.rowOffset {
		v.rowOffset = row
	}
	if row >= v.rowOffset+v.visibleRows() {
		v.rowOffset = row - v.visibleRows() + 1
	}
}

// View renders the header, the grid and the status line
func (v SearchView) View() string {
	s := v.session
	var b strings.Builder

	header := styles.TitleStyle.Render("Search")
	if s.Query != "" {
		header += styles.DimStyle.Render(fmt.Sprintf("  results for %q", s.Query))
	}
	b.WriteString(header)
	b.WriteString("\n\n")

	if s.Query == "" {
		b.WriteString(styles.DimStyle.Render("Press / to search movies and series."))
		return b.String()
	}

	if len(s.Items) > 0 {
		b.WriteString(v.renderGrid())
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(v.renderStatus())
	return b.String()
}

func (v SearchView) renderGrid() string {
	cols := v.columns()
	items := v.session.Items
	start := v.rowOffset * cols
	end := min(len(items), (v.rowOffset+v.visibleRows())*cols)

	var rows []string
	for i := start; i < end; i += cols {
		cards := make([]string, 0, cols*2)
		for j := i; j < min(i+cols, end); j++ {
			if j > i {
				cards = append(cards, strings.Repeat(" ", PosterGap))
			}
			cards = append(cards, RenderPoster(items[j], v.posterWidth, j == v.cursor))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cards...))
	}
	return strings.Join(rows, "\n")
}

func (v SearchView) renderStatus() string {
	s := v.session
	switch {
	case s.Loading:
		return v.spinner.View() + " " + styles.DimStyle.Render("Searching...")
	case s.Err != "":
		return styles.ErrorStyle.Render(s.Err)
	case len(s.Items) == 0:
		return styles.DimStyle.Render(NoResultsText)
	case s.HasMore:
		return styles.DimStyle.Render(fmt.Sprintf("%d results  ", len(s.Items))) +
			styles.HelpKeyStyle.Render("n") + styles.HelpDescStyle.Render(" load more")
	default:
		return styles.DimStyle.Render(fmt.Sprintf("%d results", len(s.Items)))
	}
}
