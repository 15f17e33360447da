package service

import (
	"context"
	"log/slog"
	"math/rand/v2"

	"github.com/mmcdole/marquee/internal/domain"
)

// Picker returns an index in [0, n). n is always > 0.
type Picker func(n int) int

// CatalogService resolves category rows and banner picks
type CatalogService struct {
	repo   domain.CatalogRepository
	pick   Picker
	logger *slog.Logger
}

// NewCatalogService creates a new catalog service
func NewCatalogService(repo domain.CatalogRepository, logger *slog.Logger) *CatalogService {
	if logger == nil {
		logger = slog.Default()
	}
	return &CatalogService{
		repo:   repo,
		pick:   rand.IntN,
		logger: logger,
	}
}

// WithPicker replaces the random source used for banner picks
func (s *CatalogService) WithPicker(p Picker) *CatalogService {
	if p != nil {
		s.pick = p
	}
	return s
}

// Row fetches the displayable items of a category. On failure the
// row is empty and the error is returned for logging only.
func (s *CatalogService) Row(ctx context.Context, q domain.Query) ([]domain.MediaItem, error) {
	items, err := s.repo.List(ctx, q)
	if err != nil {
		s.logger.Warn("row fetch failed", "query", q.Key, "error", err)
		return []domain.MediaItem{}, err
	}
	displayable := domain.Displayable(items)
	s.logger.Debug("row fetched", "query", q.Key, "results", len(items), "displayable", len(displayable))
	return displayable, nil
}

// Banner fetches a category and picks one item uniformly at random.
// ok is false when the category is empty or could not be fetched.
func (s *CatalogService) Banner(ctx context.Context, q domain.Query) (item domain.MediaItem, ok bool, err error) {
	items, err := s.repo.List(ctx, q)
	if err != nil {
		s.logger.Warn("banner fetch failed", "query", q.Key, "error", err)
		return domain.MediaItem{}, false, err
	}
	if len(items) == 0 {
		return domain.MediaItem{}, false, nil
	}
	idx := s.pick(len(items))
	if idx < 0 || idx >= len(items) {
		idx = 0
	}
	return items[idx], true, nil
}
