package components

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/scroll"
	"github.com/mmcdole/marquee/internal/tui/styles"
	"github.com/sahilm/fuzzy"
)

// Row layout
const (
	ArrowWidth = 2
	RowHeight  = PosterHeight + 1 // title line + cards

	// WheelStep is how far one wheel notch scrolls a row
	WheelStep = 4
)

const (
	rowFetchTimeout = 15 * time.Second
	settleDelay     = 16 * time.Millisecond
	frameInterval   = 16 * time.Millisecond
	easeFraction    = 0.35
)

// rowCatalog fetches the displayable items of a category
type rowCatalog interface {
	Row(ctx context.Context, q domain.Query) ([]domain.MediaItem, error)
}

// titleSource implements sahilm/fuzzy.Source over lowercase titles
type titleSource []string

func (s titleSource) String(i int) string { return s[i] }
func (s titleSource) Len() int            { return len(s) }

// Row is a horizontally scrollable category row with page dots
type Row struct {
	id      string
	title   string
	query   domain.Query
	catalog rowCatalog

	guard   Guard
	loading bool

	items   []domain.MediaItem // displayable, response order
	visible []int              // indexes into items, filter applied

	// Scroll state, in cells from the left edge of the content
	cursor    int
	offset    int
	target    int
	animating bool
	pager     scroll.State

	width       int
	posterWidth int
	focused     bool

	filterActive bool
	filterInput  textinput.Model
	filterQuery  string
}

// NewRow creates a row for a category. It fetches nothing until activated.
func NewRow(id, title string, q domain.Query, catalog rowCatalog, posterWidth int) Row {
	if posterWidth < MinPosterWidth {
		posterWidth = DefaultPosterWidth
	}

	ti := textinput.New()
	ti.Placeholder = "filter titles..."
	ti.Prompt = "/ "
	ti.PromptStyle = styles.FilterPromptStyle
	ti.TextStyle = styles.FilterStyle
	ti.CharLimit = 40

	return Row{
		id:          id,
		title:       title,
		query:       q,
		catalog:     catalog,
		items:       []domain.MediaItem{},
		pager:       scroll.NewState(),
		posterWidth: posterWidth,
		filterInput: ti,
	}
}

// ID returns the row identifier used to route messages
func (r Row) ID() string { return r.id }

// Title returns the display label
func (r Row) Title() string { return r.title }

// Query returns the current fetch descriptor
func (r Row) Query() domain.Query { return r.query }

// Loading reports whether a fetch is outstanding
func (r Row) Loading() bool { return r.loading }

// Pager returns the page indicator state
func (r Row) Pager() scroll.State { return r.pager }

// Offset returns the current scroll offset
func (r Row) Offset() int { return r.offset }

// MaxScroll returns the furthest scroll offset for the current layout
func (r Row) MaxScroll() int { return r.metrics().MaxScroll() }

// Items returns the items laid out in the row
func (r Row) Items() []domain.MediaItem {
	out := make([]domain.MediaItem, len(r.visible))
	for i, idx := range r.visible {
		out[i] = r.items[idx]
	}
	return out
}

// Selected returns the item under the cursor
func (r Row) Selected() (domain.MediaItem, bool) {
	if r.cursor < 0 || r.cursor >= len(r.visible) {
		return domain.MediaItem{}, false
	}
	return r.items[r.visible[r.cursor]], true
}

// IsFilterTyping returns true while the filter input has focus
func (r Row) IsFilterTyping() bool {
	return r.filterActive && r.filterInput.Focused()
}

// SetFocused sets the focus state
func (r *Row) SetFocused(focused bool) {
	r.focused = focused
}

// SetSize updates the row width and schedules a settled recompute
func (r *Row) SetSize(width int) tea.Cmd {
	if width == r.width {
		return nil
	}
	r.width = width
	return r.relayout()
}

// Activate starts a fetch for the current descriptor
func (r *Row) Activate() tea.Cmd {
	token := r.guard.Next()
	r.loading = true
	return loadRowCmd(r.catalog, r.id, token, r.query)
}

// SetQuery refetches when the descriptor identity changes
func (r *Row) SetQuery(q domain.Query) tea.Cmd {
	if q.Key == r.query.Key {
		return nil
	}
	r.query = q
	return r.Activate()
}

// Teardown makes every outstanding result stale
func (r *Row) Teardown() {
	r.guard.Kill()
	r.loading = false
	r.animating = false
}

func loadRowCmd(catalog rowCatalog, id string, token uint64, q domain.Query) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), rowFetchTimeout)
		defer cancel()

		items, err := catalog.Row(ctx, q)
		return RowLoadedMsg{RowID: id, Token: token, Items: items, Err: err}
	}
}

func (r Row) settleCmd() tea.Cmd {
	id, token := r.id, r.guard.current
	return tea.Tick(settleDelay, func(time.Time) tea.Msg {
		return RowSettledMsg{RowID: id, Token: token}
	})
}

func (r Row) frameCmd() tea.Cmd {
	id, token := r.id, r.guard.current
	return tea.Tick(frameInterval, func(time.Time) tea.Msg {
		return RowFrameMsg{RowID: id, Token: token}
	})
}

// Update handles messages
func (r Row) Update(msg tea.Msg) (Row, tea.Cmd) {
	switch msg := msg.(type) {
	case RowLoadedMsg:
		if msg.RowID != r.id || !r.guard.Valid(msg.Token) {
			return r, nil
		}
		r.loading = false
		r.setItems(msg.Items)
		return r, r.relayout()

	case RowSettledMsg:
		if msg.RowID == r.id && r.guard.Valid(msg.Token) {
			r.recompute()
		}
		return r, nil

	case RowFrameMsg:
		if msg.RowID != r.id || !r.guard.Valid(msg.Token) || !r.animating {
			return r, nil
		}
		r.offset = scroll.Ease(r.offset, r.target, easeFraction)
		r.pager.Sync(r.metrics())
		if r.offset == r.target {
			r.animating = false
			return r, nil
		}
		return r, r.frameCmd()

	case tea.KeyMsg:
		if !r.focused {
			return r, nil
		}
		return r.handleKey(msg)
	}

	return r, nil
}

func (r Row) handleKey(msg tea.KeyMsg) (Row, tea.Cmd) {
	// Filter input has focus: everything goes to the text input
	if r.IsFilterTyping() {
		switch {
		case key.Matches(msg, rowKeys.Escape):
			return r, r.clearFilter()
		case msg.String() == "enter":
			r.filterInput.Blur()
			return r, nil
		case msg.String() == "backspace" && r.filterInput.Value() == "":
			return r, r.clearFilter()
		}

		var cmd tea.Cmd
		r.filterInput, cmd = r.filterInput.Update(msg)
		return r, tea.Batch(cmd, r.applyFilter())
	}

	switch {
	case key.Matches(msg, rowKeys.Escape):
		if r.filterActive {
			return r, r.clearFilter()
		}
	case key.Matches(msg, rowKeys.Filter):
		if len(r.items) > 0 {
			r.filterActive = true
			r.filterInput.Focus()
			return r, textinput.Blink
		}
	case key.Matches(msg, rowKeys.PrevPage):
		return r, r.Prev()
	case key.Matches(msg, rowKeys.NextPage):
		return r, r.Next()
	case key.Matches(msg, rowKeys.Left):
		return r, r.MoveCursor(-1)
	case key.Matches(msg, rowKeys.Right):
		return r, r.MoveCursor(1)
	case key.Matches(msg, rowKeys.Home):
		return r, r.MoveCursor(-len(r.visible))
	case key.Matches(msg, rowKeys.End):
		return r, r.MoveCursor(len(r.visible))
	case key.Matches(msg, rowKeys.Select):
		return r, r.selectCmd()
	}
	return r, nil
}

func (r Row) selectCmd() tea.Cmd {
	item, ok := r.Selected()
	if !ok {
		return nil
	}
	return func() tea.Msg { return ItemSelectedMsg{Item: item} }
}

// Next scrolls one viewport forward, wrapping to the start at the end
func (r *Row) Next() tea.Cmd {
	if len(r.visible) == 0 {
		return nil
	}
	target := scroll.NextOffset(r.metrics())
	r.cursor = r.firstCardAt(target)
	return r.animateTo(target)
}

// Prev scrolls one viewport back, wrapping to the end at the start
func (r *Row) Prev() tea.Cmd {
	if len(r.visible) == 0 {
		return nil
	}
	target := scroll.PrevOffset(r.metrics())
	r.cursor = r.firstCardAt(target)
	return r.animateTo(target)
}

// Scroll moves the viewport directly, as a wheel or trackpad does
func (r *Row) Scroll(delta int) {
	if len(r.visible) == 0 {
		return
	}
	m := r.metrics()
	r.animating = false
	r.offset = scroll.Clamp(m, r.offset+delta)
	r.target = r.offset
	r.pager.Sync(r.metrics())

	// Keep the cursor on screen
	first, last := r.firstCardAt(r.offset), r.lastCardAt(r.offset)
	r.cursor = min(max(r.cursor, first), last)
}

// MoveCursor moves the poster cursor and scrolls it into view
func (r *Row) MoveCursor(delta int) tea.Cmd {
	if len(r.visible) == 0 {
		return nil
	}
	r.cursor = min(max(r.cursor+delta, 0), len(r.visible)-1)

	x := r.cursor * r.stride()
	vw := r.viewportWidth()
	target := r.target
	if x < target {
		target = x
	} else if x+r.posterWidth > target+vw {
		target = x + r.posterWidth - vw
	}
	return r.animateTo(scroll.Clamp(r.metrics(), target))
}

// Click handles a left click at column x of the row's card area.
// Arrows page, a card selects.
func (r *Row) Click(x int) tea.Cmd {
	if len(r.visible) == 0 {
		return nil
	}
	switch {
	case x < ArrowWidth:
		return r.Prev()
	case x >= r.width-ArrowWidth:
		return r.Next()
	}

	pos := r.offset + x - ArrowWidth
	idx := pos / r.stride()
	if pos%r.stride() >= r.posterWidth || idx >= len(r.visible) {
		return nil
	}
	r.cursor = idx
	return r.selectCmd()
}

func (r *Row) animateTo(target int) tea.Cmd {
	r.target = target
	if r.offset == target {
		r.animating = false
		r.pager.Sync(r.metrics())
		return nil
	}
	if r.animating {
		return nil // the running frame chain picks up the new target
	}
	r.animating = true
	return r.frameCmd()
}

func (r *Row) setItems(items []domain.MediaItem) {
	r.items = domain.Displayable(items)
	r.cursor, r.offset, r.target = 0, 0, 0
	r.animating = false
	if r.filterActive && r.filterQuery != "" {
		r.filterVisible()
		return
	}
	r.showAll()
}

func (r *Row) showAll() {
	r.visible = make([]int, len(r.items))
	for i := range r.items {
		r.visible[i] = i
	}
}

// relayout recomputes now and again after the next frame
func (r *Row) relayout() tea.Cmd {
	r.recompute()
	return r.settleCmd()
}

func (r *Row) recompute() {
	m := r.metrics()
	r.offset = scroll.Clamp(m, r.offset)
	r.target = scroll.Clamp(m, r.target)
	m.Offset = r.offset
	r.pager.Recompute(scroll.MaxScrollPolicy, m)
	r.pager.Sync(m)
}

func (r Row) stride() int {
	return r.posterWidth + PosterGap
}

func (r Row) viewportWidth() int {
	return max(0, r.width-2*ArrowWidth)
}

func (r Row) metrics() scroll.Metrics {
	return scroll.Metrics{
		ContentWidth:  scroll.ContentWidth(len(r.visible), r.posterWidth, PosterGap),
		ViewportWidth: r.viewportWidth(),
		Offset:        r.offset,
	}
}

// firstCardAt returns the first card fully visible at offset
func (r Row) firstCardAt(offset int) int {
	if len(r.visible) == 0 {
		return 0
	}
	idx := (offset + r.stride() - 1) / r.stride()
	return min(idx, len(r.visible)-1)
}

// lastCardAt returns the last card fully visible at offset
func (r Row) lastCardAt(offset int) int {
	if len(r.visible) == 0 {
		return 0
	}
	idx := (offset+r.viewportWidth()+PosterGap)/r.stride() - 1
	return min(max(idx, r.firstCardAt(offset)), len(r.visible)-1)
}

// === Filter ===

func (r *Row) clearFilter() tea.Cmd {
	r.filterActive = false
	r.filterQuery = ""
	r.filterInput.SetValue("")
	r.filterInput.Blur()
	r.showAll()
	r.cursor, r.offset, r.target = 0, 0, 0
	return r.relayout()
}

func (r *Row) applyFilter() tea.Cmd {
	query := r.filterInput.Value()
	if query == r.filterQuery {
		return nil
	}
	r.filterQuery = query
	r.filterVisible()
	r.cursor, r.offset, r.target = 0, 0, 0
	r.animating = false
	return r.relayout()
}

func (r *Row) filterVisible() {
	if r.filterQuery == "" {
		r.showAll()
		return
	}

	titles := make(titleSource, len(r.items))
	for i, item := range r.items {
		titles[i] = strings.ToLower(item.DisplayTitle())
	}

	matches := fuzzy.FindFrom(strings.ToLower(r.filterQuery), titles)
	r.visible = make([]int, len(matches))
	for i, match := range matches {
		r.visible[i] = match.Index
	}
}

// === View ===

// View renders the title line and the visible slice of cards
func (r Row) View() string {
	lines := make([]string, 0, RowHeight)
	lines = append(lines, r.renderHeader())
	lines = append(lines, r.renderCards()...)
	return strings.Join(lines, "\n")
}

func (r Row) renderHeader() string {
	titleStyle := styles.RowTitleStyle
	marker := "  "
	if r.focused {
		titleStyle = styles.FocusedRowTitleStyle
		marker = styles.AccentStyle.Render("▌ ")
	}
	left := marker + titleStyle.Render(r.title)

	switch {
	case r.filterActive:
		left += "  " + r.filterInput.View()
		if r.filterQuery != "" {
			left += styles.DimStyle.Render(fmt.Sprintf(" [%d/%d]", len(r.visible), len(r.items)))
		}
	case r.loading:
		left += styles.DimStyle.Render("  Loading...")
	}

	right := r.renderDots()
	gap := r.width - lipgloss.Width(left) - lipgloss.Width(right) - ArrowWidth
	if gap < 1 {
		return styles.Truncate(left, r.width)
	}
	return left + strings.Repeat(" ", gap) + right
}

func (r Row) renderDots() string {
	if len(r.visible) == 0 {
		return ""
	}
	n, active := r.pager.Dots()
	dots := make([]string, n)
	for i := range dots {
		if i == active {
			dots[i] = styles.ActiveDotStyle.Render("●")
		} else {
			dots[i] = styles.DotStyle.Render("•")
		}
	}
	return strings.Join(dots, " ")
}

func (r Row) renderCards() []string {
	vw := r.viewportWidth()
	lines := make([]string, PosterHeight)

	if len(r.visible) > 0 && vw > 0 {
		stride := r.stride()
		first := r.offset / stride
		last := min((r.offset+vw)/stride, len(r.visible)-1)
		start := first * stride

		builders := make([]strings.Builder, PosterHeight)
		for i := first; i <= last; i++ {
			card := RenderPoster(r.items[r.visible[i]], r.posterWidth, r.focused && i == r.cursor)
			for li, cl := range strings.Split(card, "\n") {
				if li < PosterHeight {
					builders[li].WriteString(styles.Pad(cl, r.posterWidth))
					builders[li].WriteString(strings.Repeat(" ", PosterGap))
				}
			}
		}
		for li := range lines {
			lines[li] = ansi.Cut(builders[li].String(), r.offset-start, r.offset-start+vw)
		}
	}

	arrowStyle := styles.InertArrowStyle
	if len(r.visible) > 0 {
		arrowStyle = styles.ArrowStyle
	}
	mid := PosterHeight / 2
	for li := range lines {
		left, right := "  ", "  "
		if li == mid {
			left, right = arrowStyle.Render("‹ "), arrowStyle.Render(" ›")
		}
		lines[li] = left + styles.Pad(lines[li], vw) + right
	}
	return lines
}
