package tui

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/service"
	"github.com/mmcdole/marquee/internal/store"
	"github.com/mmcdole/marquee/internal/tui/components"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubCatalog struct{}

func (stubCatalog) Row(_ context.Context, q domain.Query) ([]domain.MediaItem, error) {
	return []domain.MediaItem{{ID: 1, Title: q.Key, PosterPath: "/p.jpg", Kind: q.Kind}}, nil
}

func (stubCatalog) Banner(_ context.Context, q domain.Query) (domain.MediaItem, bool, error) {
	return domain.MediaItem{ID: 2, Title: "Hero", BackdropPath: "/b.jpg", Kind: q.Kind}, true, nil
}

type stubSearch struct {
	recorded    []string
	suggestions []string
}

func (s *stubSearch) Search(_ context.Context, req service.SearchRequest) (domain.SearchPage, error) {
	return domain.SearchPage{
		Page:       req.Page,
		TotalPages: 1,
		Results:    []domain.MediaItem{{ID: 3, Title: req.Query, PosterPath: "/s.jpg", Kind: domain.KindMovie}},
	}, nil
}

func (s *stubSearch) Record(q string) { s.recorded = append(s.recorded, q) }

func (s *stubSearch) Suggest(string) []string { return s.suggestions }

type stubTrailers struct{}

func (stubTrailers) FindTrailer(context.Context, domain.MediaKind, int) (domain.Video, bool, error) {
	return domain.Video{}, false, nil
}

func (stubTrailers) Play(domain.Video, bool) (domain.PlayerSession, error) {
	return nil, domain.ErrNoPlayer
}

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

func find[T any](msgs []tea.Msg) (T, bool) {
	for _, m := range msgs {
		if t, ok := m.(T); ok {
			return t, true
		}
	}
	var zero T
	return zero, false
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newTestModel(t *testing.T, initial Route) (Model, *store.PreferenceStore, *stubSearch) {
	t.Helper()
	prefs, err := store.New("")
	require.NoError(t, err)
	search := &stubSearch{}

	m := NewModel(Services{
		Catalog:  stubCatalog{},
		Search:   search,
		Trailers: stubTrailers{},
		Prefs:    prefs,
	}, Options{InitialRoute: initial})

	m = step(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	return m, prefs, search
}

// step applies msg and feeds back the application messages its
// commands produce. Timers, blinks and quit are not followed.
func step(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	queue := []tea.Msg{msg}
	for i := 0; len(queue) > 0 && i < 500; i++ {
		next := queue[0]
		queue = queue[1:]

		model, cmd := m.Update(next)
		m = model.(Model)
		for _, out := range drain(cmd) {
			if follow(out) {
				queue = append(queue, out)
			}
		}
	}
	return m
}

func follow(msg tea.Msg) bool {
	switch msg.(type) {
	case NavigateMsg, ErrMsg, StatusMsg,
		components.RowLoadedMsg, components.BannerLoadedMsg,
		components.VideosLoadedMsg, components.PlayerStartedMsg,
		components.SearchResultsMsg, components.ItemSelectedMsg,
		components.DetailsClosedMsg, components.TrailerClosedMsg,
		components.MuteChangedMsg, components.SearchSubmittedMsg,
		components.SearchRecordedMsg:
		return true
	}
	return false
}

func TestInitNavigatesToInitialRoute(t *testing.T) {
	m, _, _ := newTestModel(t, Route{Dest: DestTV})

	msg, ok := find[NavigateMsg](drain(m.Init()))
	require.True(t, ok)
	assert.Equal(t, Route{Dest: DestTV}, msg.Route)
}

func TestNavigateBuildsListing(t *testing.T) {
	m, prefs, _ := newTestModel(t, DefaultRoute)
	m = step(t, m, NavigateMsg{Route: Route{Dest: DestTV}})

	require.True(t, m.hasListing)
	assert.Equal(t, domain.KindTV, m.listing.Kind())
	assert.Equal(t, components.TabTV, m.navbar.Active())
	require.NotEmpty(t, m.listing.Rows())
	for _, row := range m.listing.Rows() {
		assert.False(t, row.Loading(), "row %s should have loaded", row.ID())
		assert.Len(t, row.Items(), 1)
	}
	_, ok := m.listing.Banner().Item()
	assert.True(t, ok)

	last, ok := prefs.LastRoute()
	require.True(t, ok)
	assert.Equal(t, "/tv", last)
	assert.Contains(t, m.View(), "Hero")
}

func TestTabKeys(t *testing.T) {
	m, _, _ := newTestModel(t, DefaultRoute)
	m = step(t, m, NavigateMsg{Route: DefaultRoute})
	assert.Equal(t, domain.KindMovie, m.listing.Kind())

	m = step(t, m, runes("2"))
	assert.Equal(t, DestTV, m.Route().Dest)
	assert.Equal(t, domain.KindTV, m.listing.Kind())

	m = step(t, m, runes("1"))
	assert.Equal(t, DestMovies, m.Route().Dest)
}

func TestSearchFlow(t *testing.T) {
	m, prefs, search := newTestModel(t, DefaultRoute)
	m = step(t, m, NavigateMsg{Route: DefaultRoute})

	model, _ := m.Update(runes("/"))
	m = model.(Model)
	require.True(t, m.navbar.IsSearching())

	m = step(t, m, runes("dune"))
	m = step(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	assert.False(t, m.navbar.IsSearching())
	assert.Equal(t, SearchRoute("dune"), m.Route())
	assert.False(t, m.hasListing, "listing torn down on leaving")
	require.Len(t, m.searchView.Session().Items, 1)
	assert.Equal(t, []string{"dune"}, search.recorded)

	last, _ := prefs.LastRoute()
	assert.Equal(t, "/movies", last, "search routes are not remembered")
}

func TestSelectingOpensDetails(t *testing.T) {
	m, _, _ := newTestModel(t, DefaultRoute)
	m = step(t, m, NavigateMsg{Route: DefaultRoute})

	m = step(t, m, components.ItemSelectedMsg{Item: domain.MediaItem{ID: 9, Title: "Arrival"}})
	require.True(t, m.details.IsVisible())
	assert.Contains(t, m.View(), "Arrival")

	// Global keys are suspended while the overlay is open
	m = step(t, m, runes("2"))
	assert.Equal(t, DestMovies, m.Route().Dest)

	m = step(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, m.details.IsVisible())
}

func TestNoTrailerInOverlay(t *testing.T) {
	m, _, _ := newTestModel(t, DefaultRoute)
	m = step(t, m, components.ItemSelectedMsg{Item: domain.MediaItem{ID: 9, Title: "Arrival"}})
	m = step(t, m, runes("p"))

	assert.Equal(t, components.TrailerNone, m.details.Trailer().State())
	assert.Contains(t, m.View(), components.NoTrailerText)
}

func TestMutePreferencePersisted(t *testing.T) {
	m, prefs, _ := newTestModel(t, DefaultRoute)
	require.True(t, prefs.Muted())

	step(t, m, components.MuteChangedMsg{Muted: false})
	assert.False(t, prefs.Muted())
}

func TestQuit(t *testing.T) {
	m, _, _ := newTestModel(t, DefaultRoute)

	_, cmd := m.Update(runes("q"))
	require.NotNil(t, cmd)
	_, ok := cmd().(tea.QuitMsg)
	assert.True(t, ok)
}

func TestHelpToggle(t *testing.T) {
	m, _, _ := newTestModel(t, DefaultRoute)

	m = step(t, m, runes("?"))
	assert.Contains(t, m.View(), "This help")

	m = step(t, m, runes("x"))
	assert.NotContains(t, m.View(), "This help")
}

func TestFocusMovesBetweenSections(t *testing.T) {
	m, _, _ := newTestModel(t, DefaultRoute)
	m = step(t, m, NavigateMsg{Route: DefaultRoute})
	require.Equal(t, 0, m.listing.Focus())

	m = step(t, m, runes("j"))
	assert.Equal(t, 1, m.listing.Focus())

	m = step(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.True(t, m.details.IsVisible(), "enter on a row opens its poster")
}

func TestClickBelowSuggestionDropdown(t *testing.T) {
	m, _, search := newTestModel(t, DefaultRoute)
	search.suggestions = []string{"dune", "dunkirk"}
	m = step(t, m, NavigateMsg{Route: DefaultRoute})
	m = step(t, m, runes("/"))
	require.True(t, m.navbar.IsSearching())
	require.Equal(t, components.NavBarHeight+3, m.navbar.Height())

	// Where the banner sits without the dropdown
	m = step(t, m, tea.MouseMsg{X: 10, Y: components.NavBarHeight, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	assert.False(t, m.details.IsVisible(), "click on the dropdown reached the body")

	m = step(t, m, tea.MouseMsg{X: 10, Y: m.navbar.Height(), Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	require.True(t, m.details.IsVisible())
	assert.Contains(t, m.View(), "Hero")
}
