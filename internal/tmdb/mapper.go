package tmdb

import "github.com/mmcdole/marquee/internal/domain"

// mapResults converts raw results to domain items.
// fallback is used when a result carries no media_type (category lists).
func mapResults(results []mediaResult, fallback domain.MediaKind) []domain.MediaItem {
	items := make([]domain.MediaItem, 0, len(results))
	for _, r := range results {
		items = append(items, mapResult(r, fallback))
	}
	return items
}

func mapResult(r mediaResult, fallback domain.MediaKind) domain.MediaItem {
	kind := domain.MediaKind(r.MediaType)
	if kind == domain.KindUnknown {
		kind = fallback
	}
	return domain.MediaItem{
		ID:           r.ID,
		Title:        r.Title,
		Name:         r.Name,
		Overview:     r.Overview,
		BackdropPath: r.BackdropPath,
		PosterPath:   r.PosterPath,
		Kind:         kind,
		VoteAverage:  r.VoteAverage,
		ReleaseDate:  r.ReleaseDate,
		FirstAirDate: r.FirstAirDate,
	}
}

func mapVideos(results []videoResult) []domain.Video {
	videos := make([]domain.Video, 0, len(results))
	for _, v := range results {
		videos = append(videos, domain.Video{
			Key:  v.Key,
			Name: v.Name,
			Site: v.Site,
			Type: v.Type,
		})
	}
	return videos
}
