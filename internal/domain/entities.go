package domain

import (
	"net/url"
	"strconv"
)

// MediaKind distinguishes catalog entry types
type MediaKind string

const (
	KindUnknown MediaKind = ""
	KindMovie   MediaKind = "movie"
	KindTV      MediaKind = "tv"
	KindPerson  MediaKind = "person"
)

// IsBrowsable returns true for kinds that can be shown as posters (movie or tv)
func (k MediaKind) IsBrowsable() bool {
	return k == KindMovie || k == KindTV
}

// Label returns the short label shown next to search results
func (k MediaKind) Label() string {
	switch k {
	case KindMovie:
		return "Movie"
	case KindTV:
		return "Series"
	case KindPerson:
		return "Person"
	default:
		return ""
	}
}

// Display fallbacks for absent optional fields
const (
	UntitledFallback   = "Untitled"
	NoOverviewFallback = "No description available."
)

// MediaItem is a single catalog entry (movie or tv series).
// Items are built fresh from each catalog response and never mutated.
type MediaItem struct {
	ID           int       // Unique within a result set
	Title        string    // Movie title
	Name         string    // Series name
	Overview     string    // Plot synopsis
	BackdropPath string    // Relative backdrop image path
	PosterPath   string    // Relative poster image path
	Kind         MediaKind // movie, tv or person

	VoteAverage  float64 // 0-10 community rating
	ReleaseDate  string  // Movies, YYYY-MM-DD
	FirstAirDate string  // Series, YYYY-MM-DD
}

// DisplayTitle resolves title, then name, then the fallback literal
func (m MediaItem) DisplayTitle() string {
	if m.Title != "" {
		return m.Title
	}
	if m.Name != "" {
		return m.Name
	}
	return UntitledFallback
}

// DisplayOverview returns the overview or the fallback literal
func (m MediaItem) DisplayOverview() string {
	if m.Overview == "" {
		return NoOverviewFallback
	}
	return m.Overview
}

// HasPoster reports whether the item carries a usable poster reference
func (m MediaItem) HasPoster() bool {
	return m.PosterPath != ""
}

// HasBackdrop reports whether the item carries a usable backdrop reference
func (m MediaItem) HasBackdrop() bool {
	return m.BackdropPath != ""
}

// Year returns the release (or first air) year, 0 if unknown
func (m MediaItem) Year() int {
	date := m.ReleaseDate
	if date == "" {
		date = m.FirstAirDate
	}
	if len(date) < 4 {
		return 0
	}
	y, err := strconv.Atoi(date[:4])
	if err != nil {
		return 0
	}
	return y
}

// Displayable keeps only items with a poster, preserving order.
// The result never aliases the input slice.
func Displayable(items []MediaItem) []MediaItem {
	out := make([]MediaItem, 0, len(items))
	for _, item := range items {
		if item.HasPoster() {
			out = append(out, item)
		}
	}
	return out
}

// Query is an opaque fetch descriptor for a category list.
// Two queries are the same fetch target when their keys match.
type Query struct {
	Key    string     // Stable identity, e.g. "movie:trending"
	Kind   MediaKind  // Kind assumed for results lacking media_type
	Path   string     // Catalog path, e.g. "/trending/movie/week"
	Params url.Values // Extra query parameters
}

// Video is a promotional clip attached to a catalog entry
type Video struct {
	Key  string // Hosting-site identifier
	Name string
	Site string // e.g. "YouTube"
	Type string // e.g. "Trailer", "Teaser", "Featurette"
}

// Video sites and types recognised by the trailer picker
const (
	SiteYouTube      = "YouTube"
	VideoTypeTrailer = "Trailer"
	VideoTypeTeaser  = "Teaser"
)
