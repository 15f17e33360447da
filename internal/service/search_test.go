package service

import (
	"context"
	"testing"

	"github.com/mmcdole/marquee/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func matrixRepo() *fakeRepo {
	return &fakeRepo{
		pages: map[int]domain.SearchPage{
			1: {
				Page:       1,
				TotalPages: 3,
				Results: []domain.MediaItem{
					{ID: 5, Kind: domain.KindMovie, PosterPath: "/m.jpg"},
					{ID: 6, Kind: domain.KindPerson},
				},
			},
			2: {
				Page:       2,
				TotalPages: 3,
				Results: []domain.MediaItem{
					{ID: 7, Kind: domain.KindTV, PosterPath: "/t.jpg"},
					{ID: 8, Kind: domain.KindMovie},
				},
			},
		},
		pageErr: map[int]error{},
	}
}

func run(t *testing.T, svc *SearchService, s *SearchSession, req SearchRequest) {
	t.Helper()
	page, err := svc.Search(context.Background(), req)
	require.True(t, s.Apply(req, page, err))
}

func TestSearchFirstPage(t *testing.T) {
	repo := matrixRepo()
	svc := NewSearchService(repo, nil, nil)
	s := NewSearchSession()

	req, ok := s.SetQuery("matrix")
	require.True(t, ok)
	assert.Equal(t, 1, req.Page)
	assert.True(t, s.Loading)

	run(t, svc, s, req)

	require.Len(t, s.Items, 1)
	assert.Equal(t, 5, s.Items[0].ID)
	assert.True(t, s.HasMore)
	assert.False(t, s.Loading)
}

func TestSearchLoadMoreAppends(t *testing.T) {
	repo := matrixRepo()
	svc := NewSearchService(repo, nil, nil)
	s := NewSearchSession()

	req, _ := s.SetQuery("matrix")
	run(t, svc, s, req)

	more, ok := s.LoadMore()
	require.True(t, ok)
	assert.Equal(t, SearchRequest{Query: "matrix", Page: 2, Seq: req.Seq}, more)

	_, again := s.LoadMore()
	assert.False(t, again, "load more is disabled while outstanding")

	run(t, svc, s, more)

	require.Len(t, s.Items, 2)
	assert.Equal(t, 5, s.Items[0].ID)
	assert.Equal(t, 7, s.Items[1].ID)
	assert.Equal(t, 2, s.Page)
	assert.Equal(t, []searchCall{{"matrix", 1}, {"matrix", 2}}, repo.searches)
}

func TestSearchEmptyQueryClears(t *testing.T) {
	repo := matrixRepo()
	svc := NewSearchService(repo, nil, nil)
	s := NewSearchSession()

	req, _ := s.SetQuery("matrix")
	run(t, svc, s, req)

	_, ok := s.SetQuery("   ")
	assert.False(t, ok)
	assert.Empty(t, s.Items)
	assert.False(t, s.HasMore)
	assert.Equal(t, 1, s.Page)
	assert.Len(t, repo.searches, 1, "no request for a blank query")
}

func TestSearchStaleResponseDiscarded(t *testing.T) {
	repo := matrixRepo()
	svc := NewSearchService(repo, nil, nil)
	s := NewSearchSession()

	old, _ := s.SetQuery("matrix")
	fresh, _ := s.SetQuery("alien")

	page, err := svc.Search(context.Background(), old)
	assert.False(t, s.Apply(old, page, err))
	assert.Empty(t, s.Items)
	assert.True(t, s.Loading, "current request still outstanding")
	assert.Equal(t, "alien", fresh.Query)
}

func TestSearchSameQueryAfterChangeIsStale(t *testing.T) {
	s := NewSearchSession()
	first, _ := s.SetQuery("matrix")
	s.SetQuery("alien")
	s.SetQuery("matrix")

	assert.False(t, s.Apply(first, domain.SearchPage{Page: 1, TotalPages: 1}, nil))
}

func TestSearchFirstPageFailure(t *testing.T) {
	repo := matrixRepo()
	repo.pageErr[1] = errBoom
	svc := NewSearchService(repo, nil, nil)
	s := NewSearchSession()

	req, _ := s.SetQuery("matrix")
	run(t, svc, s, req)

	assert.Empty(t, s.Items)
	assert.False(t, s.HasMore)
	assert.Equal(t, SearchFailedMessage, s.Err)
}

func TestSearchLoadMoreFailureKeepsItems(t *testing.T) {
	repo := matrixRepo()
	repo.pageErr[2] = errBoom
	svc := NewSearchService(repo, nil, nil)
	s := NewSearchSession()

	req, _ := s.SetQuery("matrix")
	run(t, svc, s, req)
	more, _ := s.LoadMore()
	run(t, svc, s, more)

	require.Len(t, s.Items, 1)
	assert.Equal(t, LoadMoreFailedMessage, s.Err)
	assert.Equal(t, 1, s.Page, "page advances only on success")
	assert.True(t, s.HasMore)
}

func TestSearchLastPage(t *testing.T) {
	s := NewSearchSession()
	req, _ := s.SetQuery("heat")
	s.Apply(req, domain.SearchPage{Page: 1, TotalPages: 1}, nil)

	assert.False(t, s.HasMore)
	_, ok := s.LoadMore()
	assert.False(t, ok)
}

func TestSuggest(t *testing.T) {
	history := &memHistory{entries: []string{"the matrix", "alien", "matrix reloaded", "heat"}}
	svc := NewSearchService(&fakeRepo{}, history, nil)

	got := svc.Suggest("mat")
	assert.Contains(t, got, "the matrix")
	assert.Contains(t, got, "matrix reloaded")
	assert.NotContains(t, got, "alien")

	assert.Equal(t, history.entries, svc.Suggest(""))
}

func TestRecord(t *testing.T) {
	history := &memHistory{}
	svc := NewSearchService(&fakeRepo{}, history, nil)

	svc.Record("matrix")
	assert.Equal(t, []string{"matrix"}, svc.Recent())

	assert.NotPanics(t, func() { NewSearchService(&fakeRepo{}, nil, nil).Record("x") })
}
