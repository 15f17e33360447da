package domain

import "context"

// CatalogRepository fetches catalog data. Implemented by the tmdb client.
type CatalogRepository interface {
	// List fetches a category list for a fetch descriptor
	List(ctx context.Context, q Query) ([]MediaItem, error)

	// SearchMulti runs a multi-type search (movies, series and people)
	SearchMulti(ctx context.Context, query string, page int) (SearchPage, error)

	// Videos lists promotional videos for an entry
	Videos(ctx context.Context, kind MediaKind, id int) ([]Video, error)
}
