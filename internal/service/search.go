package service

import (
	"context"
	"log/slog"
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/mmcdole/marquee/internal/domain"
)

// User-facing search failure messages
const (
	SearchFailedMessage   = "Search failed. Please try again later."
	LoadMoreFailedMessage = "Could not load more results."
)

// maxSuggestions bounds history suggestions under the search input
const maxSuggestions = 5

// historyStore is the part of the preference store search needs
type historyStore interface {
	RecentSearches() []string
	AddRecentSearch(query string) error
}

// SearchService runs catalog searches and tracks search history
type SearchService struct {
	repo    domain.CatalogRepository
	history historyStore
	logger  *slog.Logger
}

// NewSearchService creates a new search service. history may be nil.
func NewSearchService(repo domain.CatalogRepository, history historyStore, logger *slog.Logger) *SearchService {
	if logger == nil {
		logger = slog.Default()
	}
	return &SearchService{
		repo:    repo,
		history: history,
		logger:  logger,
	}
}

// Search fetches one page for req and keeps only browsable results
// with a poster. Pagination fields are passed through untouched.
func (s *SearchService) Search(ctx context.Context, req SearchRequest) (domain.SearchPage, error) {
	s.logger.Debug("searching", "query", req.Query, "page", req.Page)

	page, err := s.repo.SearchMulti(ctx, req.Query, req.Page)
	if err != nil {
		s.logger.Warn("search failed", "query", req.Query, "page", req.Page, "error", err)
		return domain.SearchPage{}, err
	}

	filtered := FilterSearchResults(page.Results)
	s.logger.Debug("search complete", "query", req.Query, "page", page.Page,
		"total_pages", page.TotalPages, "results", len(page.Results), "kept", len(filtered))

	page.Results = filtered
	return page, nil
}

// Record adds query to the search history
func (s *SearchService) Record(query string) {
	if s.history == nil {
		return
	}
	if err := s.history.AddRecentSearch(query); err != nil {
		s.logger.Warn("failed to record search", "query", query, "error", err)
	}
}

// Recent returns the search history, most recent first
func (s *SearchService) Recent() []string {
	if s.history == nil {
		return nil
	}
	return s.history.RecentSearches()
}

// Suggest returns history entries fuzzily matching input, best first.
// An empty input suggests the most recent entries.
func (s *SearchService) Suggest(input string) []string {
	recent := s.Recent()
	input = strings.TrimSpace(input)
	if input == "" {
		return recent[:min(len(recent), maxSuggestions)]
	}

	matches := fuzzy.RankFindFold(input, recent)
	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].Distance != matches[j].Distance {
			return matches[i].Distance < matches[j].Distance
		}
		return matches[i].OriginalIndex < matches[j].OriginalIndex
	})

	out := make([]string, 0, min(len(matches), maxSuggestions))
	for _, m := range matches {
		if strings.EqualFold(m.Target, input) {
			continue
		}
		out = append(out, m.Target)
		if len(out) == maxSuggestions {
			break
		}
	}
	return out
}

// FilterSearchResults keeps movies and series that carry a poster
func FilterSearchResults(items []domain.MediaItem) []domain.MediaItem {
	filtered := make([]domain.MediaItem, 0, len(items))
	for _, item := range items {
		if item.Kind.IsBrowsable() && item.HasPoster() {
			filtered = append(filtered, item)
		}
	}
	return filtered
}

// SearchRequest identifies one page fetch of a session
type SearchRequest struct {
	Query string
	Page  int
	Seq   uint64
}

// SearchSession accumulates paginated results for a single query.
// It is owned by the UI loop and is not safe for concurrent use.
type SearchSession struct {
	Query   string
	Page    int
	Items   []domain.MediaItem
	HasMore bool
	Loading bool
	Err     string

	seq uint64
}

// NewSearchSession returns an empty session
func NewSearchSession() *SearchSession {
	return &SearchSession{Page: 1, Items: []domain.MediaItem{}}
}

// SetQuery resets the session for query. It returns the first-page
// request to issue, or false when nothing should be fetched (the
// query is blank or unchanged).
func (s *SearchSession) SetQuery(query string) (SearchRequest, bool) {
	query = strings.TrimSpace(query)
	if query == s.Query && query != "" {
		return SearchRequest{}, false
	}

	s.seq++
	s.Query = query
	s.Page = 1
	s.Items = []domain.MediaItem{}
	s.HasMore = false
	s.Err = ""
	s.Loading = false

	if query == "" {
		return SearchRequest{}, false
	}

	s.Loading = true
	return SearchRequest{Query: query, Page: 1, Seq: s.seq}, true
}

// LoadMore returns the next-page request, or false while a request is
// outstanding or when no further pages exist.
func (s *SearchSession) LoadMore() (SearchRequest, bool) {
	if s.Query == "" || !s.HasMore || s.Loading {
		return SearchRequest{}, false
	}
	s.Loading = true
	s.Err = ""
	return SearchRequest{Query: s.Query, Page: s.Page + 1, Seq: s.seq}, true
}

// Invalidate drops any outstanding request without touching results
func (s *SearchSession) Invalidate() {
	s.seq++
	s.Loading = false
}

// Apply folds a response into the session. Responses for a query that
// is no longer current are discarded and Apply returns false.
func (s *SearchSession) Apply(req SearchRequest, page domain.SearchPage, err error) bool {
	if req.Seq != s.seq || req.Query != s.Query {
		return false
	}
	s.Loading = false

	if err != nil {
		if req.Page <= 1 {
			s.Items = []domain.MediaItem{}
			s.HasMore = false
			s.Err = SearchFailedMessage
		} else {
			s.Err = LoadMoreFailedMessage
		}
		return true
	}

	if req.Page <= 1 {
		s.Items = append([]domain.MediaItem{}, page.Results...)
	} else {
		s.Items = append(s.Items, page.Results...)
	}
	s.Page = req.Page
	s.HasMore = page.HasMore()
	s.Err = ""
	return true
}
