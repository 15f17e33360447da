package tmdb

import (
	"net/url"

	"github.com/mmcdole/marquee/internal/domain"
)

// Category pairs a row title with its fetch descriptor
type Category struct {
	Title string
	Query domain.Query
}

// networkNetflix is the TMDB network id used for the originals row
const networkNetflix = "213"

// TMDB genre ids
const (
	genreAction          = "28"
	genreComedy          = "35"
	genreHorror          = "27"
	genreRomance         = "10749"
	genreDocumentary     = "99"
	genreAnimation       = "16"
	genreDrama           = "18"
	genreMystery         = "9648"
	genreActionAdventure = "10759"
	genreKids            = "10762"
	genreReality         = "10764"
	genreSciFiFantasy    = "10765"
	genreTalk            = "10767"
)

// Semantic query names shared by movie and tv catalogs
const (
	QueryTrending  = "trending"
	QueryTopRated  = "top-rated"
	QueryOriginals = "originals"
)

func trending(kind domain.MediaKind) domain.Query {
	return domain.Query{
		Key:  string(kind) + ":" + QueryTrending,
		Kind: kind,
		Path: "/trending/" + string(kind) + "/week",
	}
}

func topRated(kind domain.MediaKind) domain.Query {
	return domain.Query{
		Key:  string(kind) + ":" + QueryTopRated,
		Kind: kind,
		Path: "/" + string(kind) + "/top_rated",
	}
}

func byGenre(kind domain.MediaKind, name, genre string) domain.Query {
	return domain.Query{
		Key:    string(kind) + ":" + name,
		Kind:   kind,
		Path:   "/discover/" + string(kind),
		Params: url.Values{"with_genres": {genre}},
	}
}

// Originals is the streaming-originals series list
func Originals() domain.Query {
	return domain.Query{
		Key:    string(domain.KindTV) + ":" + QueryOriginals,
		Kind:   domain.KindTV,
		Path:   "/discover/tv",
		Params: url.Values{"with_networks": {networkNetflix}},
	}
}

// Lookup resolves a semantic name for a kind, e.g. ("action", movie)
func Lookup(kind domain.MediaKind, name string) (domain.Query, bool) {
	if name == QueryOriginals {
		return Originals(), true
	}
	for _, c := range Categories(kind) {
		if c.Query.Key == string(kind)+":"+name {
			return c.Query, true
		}
	}
	return domain.Query{}, false
}

// BannerQuery returns the descriptor the banner picks its hero item from
func BannerQuery(kind domain.MediaKind) domain.Query {
	if kind == domain.KindTV {
		return Originals()
	}
	return trending(kind)
}

// Categories returns the rows shown on the listing page for a kind
func Categories(kind domain.MediaKind) []Category {
	switch kind {
	case domain.KindTV:
		return []Category{
			{Title: "Trending Now", Query: trending(domain.KindTV)},
			{Title: "Top Rated", Query: topRated(domain.KindTV)},
			{Title: "Originals", Query: Originals()},
			{Title: "Action & Adventure", Query: byGenre(domain.KindTV, "action", genreActionAdventure)},
			{Title: "Animation", Query: byGenre(domain.KindTV, "animation", genreAnimation)},
			{Title: "Comedy", Query: byGenre(domain.KindTV, "comedy", genreComedy)},
			{Title: "Documentary", Query: byGenre(domain.KindTV, "documentary", genreDocumentary)},
			{Title: "Drama", Query: byGenre(domain.KindTV, "drama", genreDrama)},
			{Title: "Kids", Query: byGenre(domain.KindTV, "kids", genreKids)},
			{Title: "Mystery", Query: byGenre(domain.KindTV, "mystery", genreMystery)},
			{Title: "Reality", Query: byGenre(domain.KindTV, "reality", genreReality)},
			{Title: "Sci-Fi & Fantasy", Query: byGenre(domain.KindTV, "fantasy", genreSciFiFantasy)},
			{Title: "Talk Shows", Query: byGenre(domain.KindTV, "talk", genreTalk)},
		}
	default:
		return []Category{
			{Title: "Trending Now", Query: trending(domain.KindMovie)},
			{Title: "Top Rated", Query: topRated(domain.KindMovie)},
			{Title: "Action", Query: byGenre(domain.KindMovie, "action", genreAction)},
			{Title: "Comedy", Query: byGenre(domain.KindMovie, "comedy", genreComedy)},
			{Title: "Horror", Query: byGenre(domain.KindMovie, "horror", genreHorror)},
			{Title: "Romance", Query: byGenre(domain.KindMovie, "romance", genreRomance)},
			{Title: "Documentary", Query: byGenre(domain.KindMovie, "documentary", genreDocumentary)},
		}
	}
}
