package service

import (
	"context"
	"errors"

	"github.com/mmcdole/marquee/internal/domain"
)

var errBoom = errors.New("boom")

type searchCall struct {
	query string
	page  int
}

type fakeRepo struct {
	lists    map[string][]domain.MediaItem
	listErr  error
	pages    map[int]domain.SearchPage
	pageErr  map[int]error
	videos   []domain.Video
	videoErr error

	searches []searchCall
}

func (f *fakeRepo) List(_ context.Context, q domain.Query) ([]domain.MediaItem, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.lists[q.Key], nil
}

func (f *fakeRepo) SearchMulti(_ context.Context, query string, page int) (domain.SearchPage, error) {
	f.searches = append(f.searches, searchCall{query: query, page: page})
	if err := f.pageErr[page]; err != nil {
		return domain.SearchPage{}, err
	}
	return f.pages[page], nil
}

func (f *fakeRepo) Videos(_ context.Context, _ domain.MediaKind, _ int) ([]domain.Video, error) {
	return f.videos, f.videoErr
}

type memHistory struct {
	entries []string
}

func (m *memHistory) RecentSearches() []string { return m.entries }

func (m *memHistory) AddRecentSearch(q string) error {
	m.entries = append([]string{q}, m.entries...)
	return nil
}

type fakeSession struct{ stopped bool }

func (s *fakeSession) Stop() error {
	s.stopped = true
	return nil
}

type fakeLauncher struct {
	targets []domain.PlaybackTarget
	err     error
}

func (l *fakeLauncher) Launch(t domain.PlaybackTarget) (domain.PlayerSession, error) {
	if l.err != nil {
		return nil, l.err
	}
	l.targets = append(l.targets, t)
	return &fakeSession{}, nil
}
