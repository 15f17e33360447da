package components

import (
	"context"
	"errors"
	"fmt"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/service"
)

var errBoom = errors.New("boom")

// drain runs cmd and every command nested in batches, collecting the
// non-nil messages in order
func drain(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, drain(c)...)
		}
		return out
	}
	if msg == nil {
		return nil
	}
	return []tea.Msg{msg}
}

// find returns the first message of type T
func find[T any](msgs []tea.Msg) (T, bool) {
	for _, m := range msgs {
		if t, ok := m.(T); ok {
			return t, true
		}
	}
	var zero T
	return zero, false
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func leftClick(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
}

func posters(n int) []domain.MediaItem {
	items := make([]domain.MediaItem, n)
	for i := range items {
		items[i] = domain.MediaItem{
			ID:         i + 1,
			Title:      fmt.Sprintf("Movie %d", i+1),
			PosterPath: fmt.Sprintf("/p%d.jpg", i+1),
			Kind:       domain.KindMovie,
		}
	}
	return items
}

type fakeCatalog struct {
	rows   map[string][]domain.MediaItem
	rowErr error

	banner   domain.MediaItem
	bannerOK bool
	bnrErr   error
}

func (f *fakeCatalog) Row(_ context.Context, q domain.Query) ([]domain.MediaItem, error) {
	if f.rowErr != nil {
		return []domain.MediaItem{}, f.rowErr
	}
	return f.rows[q.Key], nil
}

func (f *fakeCatalog) Banner(_ context.Context, _ domain.Query) (domain.MediaItem, bool, error) {
	return f.banner, f.bannerOK, f.bnrErr
}

type stubSession struct {
	mu      sync.Mutex
	stopped bool
}

func (s *stubSession) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopped = true
	return nil
}

func (s *stubSession) Stopped() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stopped
}

type playCall struct {
	video   domain.Video
	muted   bool
	session *stubSession
}

type fakePlayer struct {
	video   domain.Video
	ok      bool
	findErr error
	playErr error

	plays []playCall
}

func (p *fakePlayer) FindTrailer(_ context.Context, _ domain.MediaKind, _ int) (domain.Video, bool, error) {
	return p.video, p.ok, p.findErr
}

func (p *fakePlayer) Play(v domain.Video, muted bool) (domain.PlayerSession, error) {
	if p.playErr != nil {
		return nil, p.playErr
	}
	s := &stubSession{}
	p.plays = append(p.plays, playCall{video: v, muted: muted, session: s})
	return s, nil
}

type fakeSearcher struct {
	pages map[string]map[int]domain.SearchPage
	errs  map[int]error
	calls []service.SearchRequest
}

func (f *fakeSearcher) Search(_ context.Context, req service.SearchRequest) (domain.SearchPage, error) {
	f.calls = append(f.calls, req)
	if err := f.errs[req.Page]; err != nil {
		return domain.SearchPage{}, err
	}
	return f.pages[req.Query][req.Page], nil
}

type fixedSuggester []string

func (s fixedSuggester) Suggest(string) []string { return s }
