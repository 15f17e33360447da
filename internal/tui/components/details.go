package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/tmdb"
	"github.com/mmcdole/marquee/internal/tui/styles"
)

const (
	detailsMaxWidth     = 72
	detailsOverviewRows = 8
)

// Details is the modal overlay for one item. It owns a nested trailer
// player that starts closed each time the overlay opens.
type Details struct {
	visible   bool
	item      domain.MediaItem
	imageBase string
	trailer   Trailer

	// Screen size, used to center the card and hit-test clicks
	width  int
	height int
}

// NewDetails creates a hidden overlay
func NewDetails(player trailerPlayer, imageBase string, muted bool) Details {
	return Details{
		imageBase: imageBase,
		trailer:   NewTrailer(player, muted),
	}
}

// Open shows the overlay for item
func (d *Details) Open(item domain.MediaItem) tea.Cmd {
	var stop tea.Cmd
	if d.trailer.IsOpen() {
		stop = d.trailer.Close()
	}
	d.visible = true
	d.item = item
	return stop
}

// Close hides the overlay, stops any trailer and always reports
// DetailsClosedMsg
func (d *Details) Close() tea.Cmd {
	var stop tea.Cmd
	if d.trailer.IsOpen() {
		stop = d.trailer.Close()
	}
	d.visible = false
	return tea.Batch(stop, func() tea.Msg { return DetailsClosedMsg{} })
}

// IsVisible returns whether the overlay is shown
func (d Details) IsVisible() bool { return d.visible }

// Item returns the displayed item
func (d Details) Item() domain.MediaItem { return d.item }

// Trailer returns the nested player
func (d Details) Trailer() Trailer { return d.trailer }

// SetSize records the screen size
func (d *Details) SetSize(width, height int) {
	d.width = width
	d.height = height
}

// Update handles messages
func (d Details) Update(msg tea.Msg) (Details, tea.Cmd) {
	// Async trailer results arrive even while hidden so late players get stopped
	switch msg.(type) {
	case VideosLoadedMsg, PlayerStartedMsg, TrailerClosedMsg:
		var cmd tea.Cmd
		d.trailer, cmd = d.trailer.Update(msg)
		return d, cmd
	}

	if !d.visible {
		return d, nil
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		// Keys belong to the player while it is open
		if d.trailer.IsOpen() {
			var cmd tea.Cmd
			d.trailer, cmd = d.trailer.Update(msg)
			return d, cmd
		}
		switch {
		case key.Matches(msg, overlayKeys.Close):
			return d, d.Close()
		case key.Matches(msg, overlayKeys.Play):
			return d, d.trailer.Open(d.item)
		}

	case tea.MouseMsg:
		if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
			return d, nil
		}
		if !d.Contains(msg.X, msg.Y) {
			return d, d.Close()
		}

	default:
		var cmd tea.Cmd
		d.trailer, cmd = d.trailer.Update(msg)
		return d, cmd
	}
	return d, nil
}

// Contains reports whether screen cell (x, y) is inside the card
func (d Details) Contains(x, y int) bool {
	left, top, w, h := d.Bounds()
	return x >= left && x < left+w && y >= top && y < top+h
}

// Bounds returns the card rectangle as placed by View
func (d Details) Bounds() (left, top, width, height int) {
	card := d.renderCard()
	width, height = lipgloss.Size(card)
	return centerOffset(d.width, width), centerOffset(d.height, height), width, height
}

// centerOffset mirrors lipgloss.Place centering
func centerOffset(total, size int) int {
	gap := total - size
	if gap <= 0 {
		return 0
	}
	return gap - int(math.Round(float64(gap)*0.5))
}

// View renders the card centered on the screen
func (d Details) View() string {
	if !d.visible {
		return ""
	}
	return lipgloss.Place(d.width, d.height, lipgloss.Center, lipgloss.Center, d.renderCard())
}

func (d Details) cardWidth() int {
	return max(20, min(detailsMaxWidth, d.width-4))
}

func (d Details) renderCard() string {
	width := d.cardWidth()
	inner := width - 6 // border + padding

	lines := []string{
		styles.ModalTitleStyle.Render(styles.Truncate(d.item.DisplayTitle(), inner)),
	}

	if meta := detailsMeta(d.item); meta != "" {
		lines = append(lines, meta)
	}

	if d.item.HasBackdrop() {
		url := tmdb.ImageURL(d.imageBase, tmdb.BackdropSize, d.item.BackdropPath)
		lines = append(lines, styles.DimStyle.Render(styles.Truncate("Backdrop  "+url, inner)))
	}

	lines = append(lines, "")
	lines = append(lines, styles.WordWrap(d.item.DisplayOverview(), inner, detailsOverviewRows)...)
	lines = append(lines, "")

	if d.trailer.IsOpen() {
		lines = append(lines, d.trailer.View(inner))
	} else {
		lines = append(lines,
			styles.HelpKeyStyle.Render("p")+styles.HelpDescStyle.Render(" play trailer  ")+
				styles.HelpKeyStyle.Render("esc")+styles.HelpDescStyle.Render(" close"))
	}

	return styles.ModalStyle.Width(width - 2).Render(strings.Join(lines, "\n"))
}

// detailsMeta renders kind, date and rating, skipping absent parts
func detailsMeta(item domain.MediaItem) string {
	var parts []string
	if label := item.Kind.Label(); label != "" {
		parts = append(parts, styles.BadgeStyle.Render(label))
	}
	date := item.ReleaseDate
	if date == "" {
		date = item.FirstAirDate
	}
	if date != "" {
		parts = append(parts, styles.SubtitleStyle.Render(date))
	}
	if item.VoteAverage > 0 {
		parts = append(parts, styles.RatingStyle.Render(fmt.Sprintf("★ %.1f/10", item.VoteAverage)))
	}
	return strings.Join(parts, "  ")
}
