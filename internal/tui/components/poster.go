package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/tui/styles"
)

// Poster card layout
const (
	DefaultPosterWidth = 18
	MinPosterWidth     = 12
	PosterGap          = 1

	// Border (2) plus the four content lines
	PosterHeight = 6

	posterFrame = 4 // border + horizontal padding
)

// RenderPoster draws the text card that stands in for a poster image
func RenderPoster(item domain.MediaItem, width int, cursor bool) string {
	style := styles.PosterStyle
	if cursor {
		style = styles.PosterCursorStyle
	}
	inner := max(1, width-posterFrame)

	title := styles.WordWrap(item.DisplayTitle(), inner, 2)
	for len(title) < 2 {
		title = append(title, "")
	}
	titleStyle := styles.TitleStyle
	if !cursor {
		titleStyle = styles.SubtitleStyle
	}

	meta := item.Kind.Label()
	if y := item.Year(); y > 0 {
		meta = strings.TrimSpace(fmt.Sprintf("%d %s", y, meta))
	}

	rating := ""
	if item.VoteAverage > 0 {
		rating = styles.RatingStyle.Render(fmt.Sprintf("★ %.1f", item.VoteAverage))
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render(styles.Pad(title[0], inner)),
		titleStyle.Render(styles.Pad(title[1], inner)),
		styles.DimStyle.Render(styles.Pad(styles.Truncate(meta, inner), inner)),
		styles.Pad(rating, inner),
	)

	return style.Width(width - 2).Render(content)
}
