package components

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/service"
	"github.com/mmcdole/marquee/internal/tui/styles"
)

const trailerFetchTimeout = 15 * time.Second

// NoTrailerText is shown when an entry has no usable trailer
const NoTrailerText = "No trailer available"

// TrailerState is the lifecycle of the trailer player
type TrailerState int

const (
	TrailerClosed TrailerState = iota
	TrailerLoading
	TrailerPlaying
	TrailerNone
	TrailerFailed
)

// trailerPlayer finds and launches trailers
type trailerPlayer interface {
	FindTrailer(ctx context.Context, kind domain.MediaKind, id int) (domain.Video, bool, error)
	Play(v domain.Video, muted bool) (domain.PlayerSession, error)
}

// Trailer fetches the trailer of an entry and drives an external player.
// The player instance is keyed by video and audio state; a key change
// stops the running player and starts a new one.
type Trailer struct {
	player trailerPlayer

	guard Guard
	state TrailerState
	item  domain.MediaItem
	video domain.Video
	muted bool

	session    domain.PlayerSession
	sessionKey string
	launchErr  string

	spinner spinner.Model
}

// NewTrailer creates a closed trailer player
func NewTrailer(player trailerPlayer, muted bool) Trailer {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.SpinnerStyle

	return Trailer{
		player:  player,
		muted:   muted,
		spinner: sp,
	}
}

// State returns the lifecycle state
func (t Trailer) State() TrailerState { return t.state }

// Muted returns the current audio state
func (t Trailer) Muted() bool { return t.muted }

// IsOpen reports whether the player is showing
func (t Trailer) IsOpen() bool { return t.state != TrailerClosed }

// Video returns the selected trailer
func (t Trailer) Video() domain.Video { return t.video }

// RemountKey identifies the player instance that should be running
func (t Trailer) RemountKey() string {
	if t.state != TrailerPlaying {
		return ""
	}
	return service.RemountKey(t.video, t.muted)
}

// Open starts the trailer lookup for item
func (t *Trailer) Open(item domain.MediaItem) tea.Cmd {
	stop := t.release()
	token := t.guard.Next()
	t.state = TrailerLoading
	t.item = item
	t.video = domain.Video{}
	t.launchErr = ""
	return tea.Batch(stop, findTrailerCmd(t.player, token, item), t.spinner.Tick)
}

// Close stops the player and makes outstanding results stale
func (t *Trailer) Close() tea.Cmd {
	stop := t.release()
	t.guard.Kill()
	t.state = TrailerClosed
	return tea.Batch(stop, func() tea.Msg { return TrailerClosedMsg{} })
}

// release detaches the running session and returns a command stopping it
func (t *Trailer) release() tea.Cmd {
	session := t.session
	t.session = nil
	t.sessionKey = ""
	return stopSessionCmd(session)
}

func stopSessionCmd(session domain.PlayerSession) tea.Cmd {
	if session == nil {
		return nil
	}
	return func() tea.Msg {
		session.Stop()
		return nil
	}
}

func findTrailerCmd(player trailerPlayer, token uint64, item domain.MediaItem) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), trailerFetchTimeout)
		defer cancel()

		v, ok, err := player.FindTrailer(ctx, item.Kind, item.ID)
		return VideosLoadedMsg{Token: token, Video: v, OK: ok, Err: err}
	}
}

func launchCmd(player trailerPlayer, token uint64, v domain.Video, muted bool) tea.Cmd {
	key := service.RemountKey(v, muted)
	return func() tea.Msg {
		session, err := player.Play(v, muted)
		return PlayerStartedMsg{Token: token, Key: key, Session: session, Err: err}
	}
}

// Update handles messages
func (t Trailer) Update(msg tea.Msg) (Trailer, tea.Cmd) {
	switch msg := msg.(type) {
	case VideosLoadedMsg:
		if !t.guard.Valid(msg.Token) {
			return t, nil
		}
		if msg.Err != nil || !msg.OK {
			t.state = TrailerNone
			return t, nil
		}
		t.state = TrailerPlaying
		t.video = msg.Video
		return t, launchCmd(t.player, msg.Token, t.video, t.muted)

	case PlayerStartedMsg:
		// A late player for a dismissed or superseded key is shut down
		if !t.guard.Valid(msg.Token) || msg.Key != t.RemountKey() {
			return t, stopSessionCmd(msg.Session)
		}
		if msg.Err != nil {
			t.state = TrailerFailed
			t.launchErr = msg.Err.Error()
			return t, nil
		}
		t.session = msg.Session
		t.sessionKey = msg.Key
		return t, nil

	case spinner.TickMsg:
		if t.state != TrailerLoading {
			return t, nil
		}
		var cmd tea.Cmd
		t.spinner, cmd = t.spinner.Update(msg)
		return t, cmd

	case tea.KeyMsg:
		if !t.IsOpen() {
			return t, nil
		}
		switch {
		case key.Matches(msg, overlayKeys.Close):
			return t, t.Close()
		case key.Matches(msg, overlayKeys.Mute):
			return t, t.ToggleMute()
		}
	}
	return t, nil
}

// ToggleMute flips the audio state and remounts the player
func (t *Trailer) ToggleMute() tea.Cmd {
	t.muted = !t.muted
	muted := t.muted
	persist := func() tea.Msg { return MuteChangedMsg{Muted: muted} }

	if t.state != TrailerPlaying && t.state != TrailerFailed {
		return persist
	}
	t.state = TrailerPlaying
	t.launchErr = ""
	stop := t.release()
	return tea.Batch(stop, launchCmd(t.player, t.guard.current, t.video, t.muted), persist)
}

// View renders the player panel
func (t Trailer) View(width int) string {
	var body string
	switch t.state {
	case TrailerLoading:
		body = t.spinner.View() + " " + styles.DimStyle.Render("Finding trailer...")
	case TrailerNone:
		body = styles.SubtitleStyle.Render(NoTrailerText)
	case TrailerFailed:
		body = styles.ErrorStyle.Render(styles.Truncate("Could not start player: "+t.launchErr, width))
	case TrailerPlaying:
		status := "Starting player..."
		if t.session != nil {
			status = "Playing in external player"
		}
		name := t.video.Name
		if name == "" {
			name = "Trailer"
		}
		body = lipgloss.JoinVertical(lipgloss.Left,
			styles.TitleStyle.Render("▶ "+styles.Truncate(name, width-2)),
			styles.DimStyle.Render(status),
		)
	default:
		return ""
	}

	audio := styles.SuccessStyle.Render("sound on")
	if t.muted {
		audio = styles.DimStyle.Render("muted")
	}
	hints := styles.HelpKeyStyle.Render("m") + styles.HelpDescStyle.Render(" mute/unmute  ") +
		styles.HelpKeyStyle.Render("esc") + styles.HelpDescStyle.Render(" close")

	return lipgloss.JoinVertical(lipgloss.Left,
		styles.ModalTitleStyle.Render("Trailer")+"  "+audio,
		body,
		"",
		hints,
	)
}
