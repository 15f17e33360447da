package service

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"

	"github.com/mmcdole/marquee/internal/domain"
)

// launcher abstracts media player launching (consumer-defined interface)
type launcher interface {
	Launch(target domain.PlaybackTarget) (domain.PlayerSession, error)
}

// TrailerService finds and plays trailers
type TrailerService struct {
	repo     domain.CatalogRepository
	launcher launcher
	logger   *slog.Logger
}

// NewTrailerService creates a new trailer service
func NewTrailerService(repo domain.CatalogRepository, launcher launcher, logger *slog.Logger) *TrailerService {
	if logger == nil {
		logger = slog.Default()
	}
	return &TrailerService{
		repo:     repo,
		launcher: launcher,
		logger:   logger,
	}
}

// FindTrailer fetches the videos of an entry and picks its trailer
func (s *TrailerService) FindTrailer(ctx context.Context, kind domain.MediaKind, id int) (domain.Video, bool, error) {
	videos, err := s.repo.Videos(ctx, kind, id)
	if err != nil {
		s.logger.Warn("video fetch failed", "kind", kind, "id", id, "error", err)
		return domain.Video{}, false, err
	}
	v, ok := PickTrailer(videos)
	s.logger.Debug("videos fetched", "kind", kind, "id", id, "count", len(videos), "trailer", v.Key)
	return v, ok, nil
}

// PickTrailer returns the first YouTube trailer, else the first YouTube teaser
func PickTrailer(videos []domain.Video) (domain.Video, bool) {
	for _, want := range []string{domain.VideoTypeTrailer, domain.VideoTypeTeaser} {
		for _, v := range videos {
			if v.Site == domain.SiteYouTube && v.Type == want && v.Key != "" {
				return v, true
			}
		}
	}
	return domain.Video{}, false
}

// Play launches v with the requested audio state
func (s *TrailerService) Play(v domain.Video, muted bool) (domain.PlayerSession, error) {
	if s.launcher == nil {
		return nil, domain.ErrNoPlayer
	}
	target := Target(v, muted)
	s.logger.Info("launching trailer", "key", v.Key, "name", v.Name, "muted", muted)

	session, err := s.launcher.Launch(target)
	if err != nil {
		s.logger.Error("failed to launch trailer", "key", v.Key, "error", err)
		return nil, err
	}
	return session, nil
}

// Target builds the player URLs for v. Audio state is part of the
// embed URL, so a mute change needs a fresh player.
func Target(v domain.Video, muted bool) domain.PlaybackTarget {
	mute := "0"
	if muted {
		mute = "1"
	}
	key := url.PathEscape(v.Key)
	return domain.PlaybackTarget{
		URL: "https://www.youtube.com/watch?v=" + url.QueryEscape(v.Key),
		FallbackURL: fmt.Sprintf(
			"https://www.youtube.com/embed/%s?controls=1&autoplay=1&loop=1&mute=%s&playlist=%s",
			key, mute, url.QueryEscape(v.Key)),
		Muted: muted,
	}
}

// RemountKey identifies a player instance. Sessions with different
// keys never share a process.
func RemountKey(v domain.Video, muted bool) string {
	return fmt.Sprintf("%s-%t", v.Key, muted)
}
