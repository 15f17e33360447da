package tui

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/service"
	"github.com/mmcdole/marquee/internal/tui/components"
)

// Vertical chrome: nav bar above the body, one footer line below
const (
	FooterHeight = 1
	statusTTL    = 3 * time.Second
)

// searchHistory records and suggests past queries
type searchHistory interface {
	Record(query string)
	Suggest(input string) []string
}

// searchService runs searches and keeps their history
type searchService interface {
	searchHistory
	Search(ctx context.Context, req service.SearchRequest) (domain.SearchPage, error)
}

// trailerService finds and launches trailers
type trailerService interface {
	FindTrailer(ctx context.Context, kind domain.MediaKind, id int) (domain.Video, bool, error)
	Play(v domain.Video, muted bool) (domain.PlayerSession, error)
}

// Services are the application's collaborators, built by the caller
type Services struct {
	Catalog  listingCatalog
	Search   searchService
	Trailers trailerService
	Prefs    domain.PreferenceStore // may be nil
}

// Options tune presentation
type Options struct {
	ImageBaseURL string
	PosterWidth  int
	InitialRoute Route
}

// Model is the main Bubble Tea model for the application
type Model struct {
	// Services
	catalog listingCatalog
	search  searchService
	prefs   domain.PreferenceStore

	imageBase   string
	posterWidth int
	initial     Route

	// UI Components
	navbar     components.NavBar
	listing    ListingPage
	hasListing bool
	searchView components.SearchView
	details    components.Details

	route    Route
	ready    bool
	showHelp bool

	// Dimensions
	width  int
	height int

	// Footer status
	statusMsg   string
	statusIsErr bool
}

// NewModel creates a new application model
func NewModel(svc Services, opts Options) Model {
	muted := true
	if svc.Prefs != nil {
		muted = svc.Prefs.Muted()
	}
	posterWidth := opts.PosterWidth
	if posterWidth < components.MinPosterWidth {
		posterWidth = components.DefaultPosterWidth
	}

	return Model{
		catalog:     svc.Catalog,
		search:      svc.Search,
		prefs:       svc.Prefs,
		imageBase:   opts.ImageBaseURL,
		posterWidth: posterWidth,
		initial:     opts.InitialRoute,
		navbar:      components.NewNavBar(svc.Search),
		searchView:  components.NewSearchView(svc.Search, posterWidth),
		details:     components.NewDetails(svc.Trailers, opts.ImageBaseURL, muted),
	}
}

// Route returns the current destination
func (m Model) Route() Route { return m.route }

// Init navigates to the initial route
func (m Model) Init() tea.Cmd {
	return NavigateCmd(m.initial)
}

// Update handles all messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		return m, m.updateLayout()

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.MouseMsg:
		return m.handleMouseMsg(msg)

	case NavigateMsg:
		return m, m.navigate(msg.Route)

	case components.SearchSubmittedMsg:
		return m, m.navigate(SearchRoute(msg.Query))

	case components.SearchRecordedMsg:
		return m, RecordSearchCmd(m.search, msg.Query)

	case components.ItemSelectedMsg:
		slog.Debug("opening details", "id", msg.Item.ID, "kind", msg.Item.Kind)
		return m, m.details.Open(msg.Item)

	case components.MuteChangedMsg:
		return m, SaveMuteCmd(m.prefs, msg.Muted)

	case components.VideosLoadedMsg, components.PlayerStartedMsg,
		components.TrailerClosedMsg, components.DetailsClosedMsg:
		var cmd tea.Cmd
		m.details, cmd = m.details.Update(msg)
		return m, cmd

	case components.SearchResultsMsg:
		var cmd tea.Cmd
		m.searchView, cmd = m.searchView.Update(msg)
		return m, cmd

	case components.RowMsg, components.BannerLoadedMsg:
		if !m.hasListing {
			return m, nil
		}
		var cmd tea.Cmd
		m.listing, cmd = m.listing.Update(msg)
		return m, cmd

	case spinner.TickMsg:
		// Each spinner only advances on its own ticks
		var cmds []tea.Cmd
		var cmd tea.Cmd
		if m.hasListing {
			m.listing, cmd = m.listing.Update(msg)
			cmds = append(cmds, cmd)
		}
		m.searchView, cmd = m.searchView.Update(msg)
		cmds = append(cmds, cmd)
		m.details, cmd = m.details.Update(msg)
		cmds = append(cmds, cmd)
		return m, tea.Batch(cmds...)

	case StatusMsg:
		m.statusMsg = msg.Text
		m.statusIsErr = msg.IsErr
		return m, ClearStatusCmd(statusTTL)

	case ClearStatusMsg:
		m.statusMsg = ""
		m.statusIsErr = false
		return m, nil

	case ErrMsg:
		slog.Error("operation failed", "context", msg.Context, "error", msg.Err)
		m.statusMsg = msg.Error()
		m.statusIsErr = true
		return m, ClearStatusCmd(statusTTL)
	}

	// Cursor blinks and other input-internal messages
	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.navbar, cmd = m.navbar.Update(msg)
	cmds = append(cmds, cmd)
	if m.hasListing {
		m.listing, cmd = m.listing.Update(msg)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

// navigate switches the body to r, tearing down what it replaces
func (m *Model) navigate(r Route) tea.Cmd {
	prev := m.route
	m.route = r
	m.navbar.SetActive(r.Tab())
	slog.Info("navigating", "route", r.String())

	var cmds []tea.Cmd
	if r.IsListing() {
		if prev.Dest == DestSearch {
			m.searchView.Teardown()
		}
		if !m.hasListing || m.listing.Kind() != r.Kind() {
			if m.hasListing {
				m.listing.Teardown()
			}
			m.listing = NewListingPage(r.Kind(), m.catalog, m.imageBase, m.posterWidth)
			m.hasListing = true
			cmds = append(cmds, m.listing.SetSize(m.width, m.bodyHeight()), m.listing.Activate())
		}
		cmds = append(cmds, SaveRouteCmd(m.prefs, r))
		return tea.Batch(cmds...)
	}

	if m.hasListing {
		m.listing.Teardown()
		m.hasListing = false
	}
	m.searchView.SetSize(m.width, m.bodyHeight())
	return m.searchView.SetQuery(r.Query)
}

func (m Model) bodyHeight() int {
	return max(0, m.height-components.NavBarHeight-FooterHeight)
}

// updateLayout updates component sizes based on window size
func (m *Model) updateLayout() tea.Cmd {
	if m.width == 0 || m.height == 0 {
		return nil
	}
	m.navbar.SetSize(m.width)
	m.details.SetSize(m.width, m.height)
	m.searchView.SetSize(m.width, m.bodyHeight())
	if m.hasListing {
		return m.listing.SetSize(m.width, m.bodyHeight())
	}
	return nil
}

// handleKeyMsg routes keys to the topmost layer that wants them
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	// Overlay owns the keyboard while visible
	if m.details.IsVisible() {
		var cmd tea.Cmd
		m.details, cmd = m.details.Update(msg)
		return m, cmd
	}

	if m.navbar.IsSearching() {
		var cmd tea.Cmd
		m.navbar, cmd = m.navbar.Update(msg)
		return m, cmd
	}

	if m.showHelp {
		m.showHelp = false
		return m, nil
	}

	typing := m.hasListing && m.listing.IsTyping()
	if !typing {
		switch {
		case key.Matches(msg, Keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, Keys.Help):
			m.showHelp = true
			return m, nil
		case key.Matches(msg, Keys.Movies):
			return m, m.navigate(Route{Dest: DestMovies})
		case key.Matches(msg, Keys.TV):
			return m, m.navigate(Route{Dest: DestTV})
		case key.Matches(msg, Keys.Search):
			return m, m.navbar.OpenSearch(m.searchView.Query())
		}
	}

	var cmd tea.Cmd
	if m.route.Dest == DestSearch {
		m.searchView, cmd = m.searchView.Update(msg)
		return m, cmd
	}
	if m.hasListing {
		m.listing, cmd = m.listing.Update(msg)
	}
	return m, cmd
}

// handleMouseMsg handles clicks and wheel scrolling
func (m Model) handleMouseMsg(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.details.IsVisible() {
		var cmd tea.Cmd
		m.details, cmd = m.details.Update(msg)
		return m, cmd
	}
	if msg.Action != tea.MouseActionPress {
		return m, nil
	}

	// The suggestion dropdown pushes the body down
	bodyY := msg.Y - m.navbar.Height()

	switch msg.Button {
	case tea.MouseButtonLeft:
		if msg.Y == 0 {
			return m, m.clickTab(msg.X)
		}
		if bodyY < 0 {
			return m, nil
		}
		if m.route.Dest == DestSearch {
			return m, m.searchView.Click(msg.X, bodyY)
		}
		if m.hasListing {
			return m, m.listing.Click(msg.X, bodyY)
		}

	case tea.MouseButtonWheelLeft, tea.MouseButtonWheelRight:
		if m.hasListing {
			delta := components.WheelStep
			if msg.Button == tea.MouseButtonWheelLeft {
				delta = -delta
			}
			m.listing.ScrollRow(bodyY, delta)
		}

	case tea.MouseButtonWheelUp, tea.MouseButtonWheelDown:
		dir := 1
		if msg.Button == tea.MouseButtonWheelUp {
			dir = -1
		}
		switch {
		case m.route.Dest == DestSearch:
			m.searchView.Scroll(dir)
		case !m.hasListing:
		case msg.Shift:
			// Shift turns vertical wheels into horizontal scrolling
			m.listing.ScrollRow(bodyY, dir*components.WheelStep)
		default:
			m.listing.MoveFocus(dir)
		}
	}
	return m, nil
}

func (m *Model) clickTab(x int) tea.Cmd {
	tab, ok := m.navbar.TabAt(x)
	if !ok {
		return nil
	}
	switch tab {
	case components.TabMovies:
		return m.navigate(Route{Dest: DestMovies})
	case components.TabTV:
		return m.navigate(Route{Dest: DestTV})
	default:
		return m.navbar.OpenSearch(m.searchView.Query())
	}
}

// View renders the application
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}
	if m.details.IsVisible() {
		return m.details.View()
	}

	nav := m.navbar.View()
	bodyHeight := max(0, m.height-m.navbar.Height()-FooterHeight)

	var body string
	if m.route.Dest == DestSearch {
		body = m.searchView.View()
	} else if m.hasListing {
		body = m.listing.View()
	}

	return nav + "\n" + fitHeight(body, bodyHeight) + "\n" + m.renderFooter()
}

// fitHeight pads or cuts s to exactly h lines
func fitHeight(s string, h int) string {
	lines := strings.Split(s, "\n")
	if len(lines) > h {
		lines = lines[:h]
	}
	for len(lines) < h {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}
