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
	"github.com/mmcdole/marquee/internal/tmdb"
	"github.com/mmcdole/marquee/internal/tui/styles"
)

// Banner layout
const (
	BannerHeight   = 9
	OverviewBudget = 140

	bannerFetchTimeout = 15 * time.Second
	bannerOverviewRows = 3
)

// PlaceholderText is shown while no hero item can be displayed
const PlaceholderText = "Loading..."

// bannerCatalog picks one item of a category
type bannerCatalog interface {
	Banner(ctx context.Context, q domain.Query) (domain.MediaItem, bool, error)
}

// Banner is the hero section of a listing page
type Banner struct {
	query     domain.Query
	catalog   bannerCatalog
	imageBase string

	guard   Guard
	loading bool
	item    domain.MediaItem
	hasItem bool

	width   int
	focused bool
	spinner spinner.Model
}

// NewBanner creates a banner for a category
func NewBanner(q domain.Query, catalog bannerCatalog, imageBase string) Banner {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.SpinnerStyle

	return Banner{
		query:     q,
		catalog:   catalog,
		imageBase: imageBase,
		spinner:   sp,
	}
}

// TruncateOverview cuts text longer than OverviewBudget runes
func TruncateOverview(s string) string {
	runes := []rune(s)
	if len(runes) <= OverviewBudget {
		return s
	}
	return string(runes[:OverviewBudget-1]) + "..."
}

// Activate fetches the category and picks the hero item
func (b *Banner) Activate() tea.Cmd {
	token := b.guard.Next()
	b.loading = true
	b.hasItem = false
	b.item = domain.MediaItem{}
	return tea.Batch(loadBannerCmd(b.catalog, token, b.query), b.spinner.Tick)
}

// SetQuery refetches when the descriptor identity changes
func (b *Banner) SetQuery(q domain.Query) tea.Cmd {
	if q.Key == b.query.Key {
		return nil
	}
	b.query = q
	return b.Activate()
}

// Teardown makes an outstanding fetch stale
func (b *Banner) Teardown() {
	b.guard.Kill()
	b.loading = false
}

func loadBannerCmd(catalog bannerCatalog, token uint64, q domain.Query) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), bannerFetchTimeout)
		defer cancel()

		item, ok, err := catalog.Banner(ctx, q)
		return BannerLoadedMsg{Token: token, Item: item, OK: ok, Err: err}
	}
}

// SetSize updates the banner width
func (b *Banner) SetSize(width int) {
	b.width = width
}

// SetFocused sets the focus state
func (b *Banner) SetFocused(focused bool) {
	b.focused = focused
}

// Item returns the displayed hero item. A picked item without a
// backdrop is never displayed.
func (b Banner) Item() (domain.MediaItem, bool) {
	if !b.hasItem || !b.item.HasBackdrop() {
		return domain.MediaItem{}, false
	}
	return b.item, true
}

// RequestDetails emits ItemSelectedMsg for the hero item, if any
func (b Banner) RequestDetails() tea.Cmd {
	item, ok := b.Item()
	if !ok {
		return nil
	}
	return func() tea.Msg { return ItemSelectedMsg{Item: item} }
}

// Update handles messages
func (b Banner) Update(msg tea.Msg) (Banner, tea.Cmd) {
	switch msg := msg.(type) {
	case BannerLoadedMsg:
		if !b.guard.Valid(msg.Token) {
			return b, nil
		}
		b.loading = false
		b.item = msg.Item
		b.hasItem = msg.OK
		return b, nil

	case spinner.TickMsg:
		if !b.loading {
			return b, nil
		}
		var cmd tea.Cmd
		b.spinner, cmd = b.spinner.Update(msg)
		return b, cmd

	case tea.KeyMsg:
		if b.focused && key.Matches(msg, rowKeys.Select) {
			return b, b.RequestDetails()
		}
	}
	return b, nil
}

// View renders the hero section or its placeholder
func (b Banner) View() string {
	inner := max(1, b.width-4)
	box := styles.BannerStyle.Width(b.width).Height(BannerHeight).MaxHeight(BannerHeight)

	item, ok := b.Item()
	if !ok {
		text := styles.DimStyle.Render(PlaceholderText)
		if b.loading {
			text = b.spinner.View() + " " + text
		}
		return box.Render(lipgloss.Place(inner, BannerHeight-2, lipgloss.Left, lipgloss.Center, text))
	}

	titleStyle := styles.BannerTitleStyle
	if b.focused {
		titleStyle = styles.BannerFocusedTitleStyle
	}

	lines := []string{
		titleStyle.Render(styles.Truncate(item.DisplayTitle(), inner)),
		renderMeta(item),
	}
	lines = append(lines, styles.WordWrap(TruncateOverview(item.DisplayOverview()), inner, bannerOverviewRows)...)
	backdrop := tmdb.ImageURL(b.imageBase, tmdb.BackdropSize, item.BackdropPath)
	lines = append(lines, styles.DimStyle.Render(styles.Truncate(backdrop, inner)))

	if b.focused {
		lines = append(lines, styles.HelpKeyStyle.Render("enter")+styles.HelpDescStyle.Render(" details"))
	}
	return box.Render(strings.Join(lines, "\n"))
}

// renderMeta renders "2023 · Movie · ★ 7.8", skipping absent parts
func renderMeta(item domain.MediaItem) string {
	var parts []string
	if y := item.Year(); y > 0 {
		parts = append(parts, fmt.Sprintf("%d", y))
	}
	if label := item.Kind.Label(); label != "" {
		parts = append(parts, label)
	}
	meta := styles.SubtitleStyle.Render(strings.Join(parts, " · "))
	if item.VoteAverage > 0 {
		rating := styles.RatingStyle.Render(fmt.Sprintf("★ %.1f", item.VoteAverage))
		if len(parts) > 0 {
			return meta + styles.SubtitleStyle.Render(" · ") + rating
		}
		return rating
	}
	return meta
}
