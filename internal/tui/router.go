package tui

import (
	"net/url"
	"strings"

	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/tui/components"
)

// Destination is a top-level screen
type Destination string

const (
	DestMovies Destination = "movies"
	DestTV     Destination = "tv"
	DestSearch Destination = "search"
)

// Route is a destination plus its search query
type Route struct {
	Dest  Destination
	Query string
}

// DefaultRoute is where the root and unknown paths land
var DefaultRoute = Route{Dest: DestMovies}

// ParseRoute resolves a path like "/tv" or "/search?q=dune".
// The leading slash is optional; the root and unknown paths
// resolve to DefaultRoute.
func ParseRoute(s string) Route {
	s = strings.TrimSpace(s)
	if s == "" {
		return DefaultRoute
	}
	if !strings.HasPrefix(s, "/") {
		s = "/" + s
	}

	u, err := url.Parse(s)
	if err != nil {
		return DefaultRoute
	}

	switch strings.Trim(u.Path, "/") {
	case string(DestMovies):
		return Route{Dest: DestMovies}
	case string(DestTV):
		return Route{Dest: DestTV}
	case string(DestSearch):
		return Route{Dest: DestSearch, Query: strings.TrimSpace(u.Query().Get("q"))}
	default:
		return DefaultRoute
	}
}

// SearchRoute returns the search destination for query
func SearchRoute(query string) Route {
	return Route{Dest: DestSearch, Query: strings.TrimSpace(query)}
}

// String renders the route as a path
func (r Route) String() string {
	switch r.Dest {
	case DestTV:
		return "/tv"
	case DestSearch:
		if r.Query == "" {
			return "/search"
		}
		return "/search?" + url.Values{"q": {r.Query}}.Encode()
	default:
		return "/movies"
	}
}

// IsListing reports whether the route shows a banner and rows
func (r Route) IsListing() bool {
	return r.Dest == DestMovies || r.Dest == DestTV
}

// Kind returns the media kind of a listing route
func (r Route) Kind() domain.MediaKind {
	switch r.Dest {
	case DestTV:
		return domain.KindTV
	case DestMovies:
		return domain.KindMovie
	}
	return domain.KindUnknown
}

// Tab returns the nav bar tab for the route
func (r Route) Tab() components.Tab {
	switch r.Dest {
	case DestTV:
		return components.TabTV
	case DestSearch:
		return components.TabSearch
	}
	return components.TabMovies
}
