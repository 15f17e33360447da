package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/tmdb"
	"github.com/mmcdole/marquee/internal/tui/components"
)

// rowGap is the blank line between stacked sections
const rowGap = 1

// listingCatalog serves a listing page's banner and rows
type listingCatalog interface {
	Row(ctx context.Context, q domain.Query) ([]domain.MediaItem, error)
	Banner(ctx context.Context, q domain.Query) (domain.MediaItem, bool, error)
}

// ListingPage is a banner followed by category rows. Section 0 is the
// banner; section i > 0 is rows[i-1].
type ListingPage struct {
	kind   domain.MediaKind
	banner components.Banner
	rows   []components.Row

	focus int
	top   int // first section on screen

	width  int
	height int
}

// NewListingPage builds the page for a media kind. Nothing is fetched
// until Activate.
func NewListingPage(kind domain.MediaKind, catalog listingCatalog, imageBase string, posterWidth int) ListingPage {
	cats := tmdb.Categories(kind)
	rows := make([]components.Row, 0, len(cats))
	for _, c := range cats {
		rows = append(rows, components.NewRow(c.Query.Key, c.Title, c.Query, catalog, posterWidth))
	}

	p := ListingPage{
		kind:   kind,
		banner: components.NewBanner(tmdb.BannerQuery(kind), catalog, imageBase),
		rows:   rows,
	}
	p.applyFocus()
	return p
}

// Kind returns the media kind shown
func (p ListingPage) Kind() domain.MediaKind { return p.kind }

// Rows returns the page's rows
func (p ListingPage) Rows() []components.Row { return p.rows }

// Banner returns the hero section
func (p ListingPage) Banner() components.Banner { return p.banner }

// Focus returns the focused section
func (p ListingPage) Focus() int { return p.focus }

// Activate starts every fetch on the page
func (p *ListingPage) Activate() tea.Cmd {
	cmds := []tea.Cmd{p.banner.Activate()}
	for i := range p.rows {
		cmds = append(cmds, p.rows[i].Activate())
	}
	return tea.Batch(cmds...)
}

// Teardown makes every outstanding result stale
func (p *ListingPage) Teardown() {
	p.banner.Teardown()
	for i := range p.rows {
		p.rows[i].Teardown()
	}
}

// SetSize lays out the page
func (p *ListingPage) SetSize(width, height int) tea.Cmd {
	p.width = width
	p.height = height
	p.banner.SetSize(width)

	var cmds []tea.Cmd
	for i := range p.rows {
		cmds = append(cmds, p.rows[i].SetSize(width))
	}
	p.ensureVisible()
	return tea.Batch(cmds...)
}

// IsTyping returns true while a row filter has keyboard focus
func (p ListingPage) IsTyping() bool {
	if row := p.focusedRow(); row != nil {
		return row.IsFilterTyping()
	}
	return false
}

func (p *ListingPage) focusedRow() *components.Row {
	if p.focus < 1 || p.focus > len(p.rows) {
		return nil
	}
	return &p.rows[p.focus-1]
}

// MoveFocus shifts focus by delta sections
func (p *ListingPage) MoveFocus(delta int) {
	p.focus = min(max(p.focus+delta, 0), len(p.rows))
	p.applyFocus()
	p.ensureVisible()
}

func (p *ListingPage) applyFocus() {
	p.banner.SetFocused(p.focus == 0)
	for i := range p.rows {
		p.rows[i].SetFocused(p.focus == i+1)
	}
}

// Update routes messages to the banner and rows
func (p ListingPage) Update(msg tea.Msg) (ListingPage, tea.Cmd) {
	switch msg := msg.(type) {
	case components.RowMsg:
		for i := range p.rows {
			if p.rows[i].ID() == msg.TargetRow() {
				var cmd tea.Cmd
				p.rows[i], cmd = p.rows[i].Update(msg)
				return p, cmd
			}
		}
		return p, nil

	case components.BannerLoadedMsg, spinner.TickMsg:
		var cmd tea.Cmd
		p.banner, cmd = p.banner.Update(msg)
		return p, cmd

	case tea.KeyMsg:
		if !p.IsTyping() {
			switch {
			case key.Matches(msg, Keys.Up):
				p.MoveFocus(-1)
				return p, nil
			case key.Matches(msg, Keys.Down):
				p.MoveFocus(1)
				return p, nil
			}
		}
		if row := p.focusedRow(); row != nil {
			var cmd tea.Cmd
			*row, cmd = row.Update(msg)
			return p, cmd
		}
		var cmd tea.Cmd
		p.banner, cmd = p.banner.Update(msg)
		return p, cmd

	default:
		// Cursor blinks for the filter input
		if row := p.focusedRow(); row != nil {
			var cmd tea.Cmd
			*row, cmd = row.Update(msg)
			return p, cmd
		}
	}
	return p, nil
}

// === Layout ===

func (p ListingPage) sectionHeight(i int) int {
	if i == 0 {
		return components.BannerHeight + rowGap
	}
	return components.RowHeight + rowGap
}

func (p *ListingPage) ensureVisible() {
	if p.focus < p.top {
		p.top = p.focus
		return
	}
	for p.top < p.focus {
		used := 0
		for i := p.top; i <= p.focus; i++ {
			used += p.sectionHeight(i)
		}
		if used <= p.height {
			return
		}
		p.top++
	}
}

// sectionAt maps a page line to a section and the line within it
func (p ListingPage) sectionAt(y int) (section, line int, ok bool) {
	if y < 0 {
		return 0, 0, false
	}
	for i := p.top; i <= len(p.rows); i++ {
		h := p.sectionHeight(i)
		if y < h {
			return i, y, true
		}
		y -= h
	}
	return 0, 0, false
}

// Click handles a left click at page coordinates
func (p *ListingPage) Click(x, y int) tea.Cmd {
	section, line, ok := p.sectionAt(y)
	if !ok {
		return nil
	}
	p.focus = section
	p.applyFocus()
	p.ensureVisible()

	if section == 0 {
		if line < components.BannerHeight {
			return p.banner.RequestDetails()
		}
		return nil
	}
	// Line 0 is the row title
	if line >= 1 && line < components.RowHeight {
		return p.rows[section-1].Click(x)
	}
	return nil
}

// ScrollRow scrolls the row under y horizontally, or the focused row
func (p *ListingPage) ScrollRow(y, delta int) {
	if section, _, ok := p.sectionAt(y); ok && section > 0 {
		p.rows[section-1].Scroll(delta)
		return
	}
	if row := p.focusedRow(); row != nil {
		row.Scroll(delta)
	}
}

// View renders the sections that fit in the page height
func (p ListingPage) View() string {
	var lines []string
	for i := p.top; i <= len(p.rows) && len(lines) < p.height; i++ {
		var section string
		if i == 0 {
			section = p.banner.View()
		} else {
			section = p.rows[i-1].View()
		}
		lines = append(lines, strings.Split(section, "\n")...)
		for range rowGap {
			lines = append(lines, "")
		}
	}
	if len(lines) > p.height {
		lines = lines[:p.height]
	}
	return strings.Join(lines, "\n")
}
