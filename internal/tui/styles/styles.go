package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Color palette
var (
	MarqueeRed = lipgloss.Color("#E50914")
	Gold       = lipgloss.Color("#F5C518")
	SlateDark  = lipgloss.Color("#141414")
	SlateLight = lipgloss.Color("#2F2F2F")
	DimGray    = lipgloss.Color("#6B7280")
	LightGray  = lipgloss.Color("#B3B3B3")
	White      = lipgloss.Color("#F9FAFB")
	Green      = lipgloss.Color("#46D369")
	Red        = lipgloss.Color("#EF4444")
)

// Text styles
var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(White).
			Bold(true)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(LightGray)

	DimStyle = lipgloss.NewStyle().
			Foreground(DimGray)

	AccentStyle = lipgloss.NewStyle().
			Foreground(MarqueeRed)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(Red)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(Green)

	RatingStyle = lipgloss.NewStyle().
			Foreground(Gold)

	LogoStyle = lipgloss.NewStyle().
			Foreground(MarqueeRed).
			Bold(true)
)

// Nav bar styles
var (
	TabStyle = lipgloss.NewStyle().
			Foreground(LightGray).
			Padding(0, 1)

	ActiveTabStyle = lipgloss.NewStyle().
			Foreground(White).
			Bold(true).
			Underline(true).
			Padding(0, 1)

	SuggestionStyle = lipgloss.NewStyle().
			Foreground(LightGray).
			PaddingLeft(2)

	SelectedSuggestionStyle = lipgloss.NewStyle().
				Foreground(White).
				Background(SlateLight).
				PaddingLeft(2)
)

// Row styles
var (
	RowTitleStyle = lipgloss.NewStyle().
			Foreground(White).
			Bold(true)

	FocusedRowTitleStyle = lipgloss.NewStyle().
				Foreground(MarqueeRed).
				Bold(true)

	ArrowStyle = lipgloss.NewStyle().
			Foreground(White).
			Bold(true)

	InertArrowStyle = lipgloss.NewStyle().
			Foreground(SlateLight)

	DotStyle = lipgloss.NewStyle().
			Foreground(DimGray)

	ActiveDotStyle = lipgloss.NewStyle().
			Foreground(White)
)

// Poster card styles
var (
	PosterStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(SlateLight).
			Padding(0, 1)

	PosterCursorStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(MarqueeRed).
				Padding(0, 1)
)

// Banner styles
var (
	BannerStyle = lipgloss.NewStyle().
			Padding(1, 2)

	BannerTitleStyle = lipgloss.NewStyle().
				Foreground(White).
				Bold(true)

	BannerFocusedTitleStyle = lipgloss.NewStyle().
				Foreground(White).
				Background(MarqueeRed).
				Bold(true).
				Padding(0, 1)
)

// Modal styles
var (
	ModalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(MarqueeRed).
			Padding(1, 2).
			Background(SlateDark)

	ModalTitleStyle = lipgloss.NewStyle().
			Foreground(White).
			Bold(true).
			MarginBottom(1)
)

// Help styles
var (
	HelpKeyStyle = lipgloss.NewStyle().
			Foreground(MarqueeRed)

	HelpDescStyle = lipgloss.NewStyle().
			Foreground(DimGray)
)

// Badge styles
var (
	BadgeStyle = lipgloss.NewStyle().
			Foreground(White).
			Background(MarqueeRed).
			Padding(0, 1)

	DimBadgeStyle = lipgloss.NewStyle().
			Foreground(LightGray).
			Background(SlateLight).
			Padding(0, 1)
)

// Spinner style
var (
	SpinnerStyle = lipgloss.NewStyle().
			Foreground(MarqueeRed)
)

// SpinnerFrames are used outside bubbletea (setup prompt)
var SpinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Filter styles
var (
	FilterStyle = lipgloss.NewStyle().
			Foreground(White)

	FilterPromptStyle = lipgloss.NewStyle().
				Foreground(MarqueeRed).
				Bold(true)
)

// Helper functions

// Truncate truncates a string to the given cell width with ellipsis
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return ansi.Truncate(s, width, "…")
}

// Pad pads a string with spaces to the given cell width
func Pad(s string, width int) string {
	w := lipgloss.Width(s)
	if w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}

// WordWrap wraps text to width and keeps at most maxLines lines,
// marking the last kept line with an ellipsis when text was cut
func WordWrap(text string, width, maxLines int) []string {
	if width <= 0 || maxLines <= 0 {
		return nil
	}

	var lines []string
	var line strings.Builder
	for _, word := range strings.Fields(text) {
		wordW := lipgloss.Width(word)
		if line.Len() > 0 && lipgloss.Width(line.String())+1+wordW > width {
			lines = append(lines, line.String())
			line.Reset()
		}
		if line.Len() > 0 {
			line.WriteString(" ")
		}
		line.WriteString(word)
	}
	if line.Len() > 0 {
		lines = append(lines, line.String())
	}

	for i := range lines {
		lines[i] = Truncate(lines[i], width)
	}
	if len(lines) > maxLines {
		lines = lines[:maxLines]
		lines[maxLines-1] = Truncate(lines[maxLines-1]+" …", width)
	}
	return lines
}
