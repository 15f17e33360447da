package main

import (
	"fmt"
	"io"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/marquee/internal/adapter"
	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/service"
	"github.com/mmcdole/marquee/internal/store"
	"github.com/mmcdole/marquee/internal/tmdb"
	"github.com/mmcdole/marquee/internal/tui"
)

// run wires the application and blocks until the TUI exits. A nil
// route resumes the last visited page.
func run(route *tui.Route) error {
	cfg, err := adapter.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger, logCloser, err := adapter.SetupLogger(cfg.Logging)
	if err != nil {
		// Fall back to null logger if file logging fails
		logger, logCloser = adapter.NullLogger(), io.NopCloser(nil)
	}
	defer logCloser.Close()
	slog.SetDefault(logger)

	logger.Info("starting marquee", "version", Version)

	if err := cfg.Validate(); err != nil {
		return err
	}

	client := tmdb.New(tmdb.Options{
		BaseURL:  cfg.TMDB.BaseURL,
		APIKey:   cfg.TMDB.APIKey,
		Language: cfg.TMDB.Language,
	}, logger)

	prefs, err := store.New(cfg.Store.Path)
	if err != nil {
		logger.Warn("preference store unavailable, keeping preferences in memory", "path", cfg.Store.Path, "error", err)
		prefs, _ = store.New("")
	}
	defer prefs.Close()

	launcher := adapter.NewLauncher(cfg.Player.Command, cfg.Player.Args, logger)

	catalogSvc := service.NewCatalogService(client, logger)
	searchSvc := service.NewSearchService(client, prefs, logger)
	trailerSvc := service.NewTrailerService(client, launcher, logger)

	model := tui.NewModel(tui.Services{
		Catalog:  catalogSvc,
		Search:   searchSvc,
		Trailers: trailerSvc,
		Prefs:    prefs,
	}, tui.Options{
		ImageBaseURL: cfg.TMDB.ImageBaseURL,
		PosterWidth:  cfg.UI.PosterWidth,
		InitialRoute: initialRoute(route, prefs, cfg.UI.DefaultPage),
	})

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	logger.Info("starting TUI")

	if _, err := p.Run(); err != nil {
		logger.Error("TUI error", "error", err)
		return fmt.Errorf("TUI error: %w", err)
	}

	logger.Info("shutting down")
	return nil
}

// initialRoute picks the explicit route, else the last visited page,
// else the configured default page
func initialRoute(explicit *tui.Route, prefs domain.PreferenceStore, defaultPage string) tui.Route {
	if explicit != nil {
		return *explicit
	}
	if last, ok := prefs.LastRoute(); ok {
		return tui.ParseRoute(last)
	}
	return tui.ParseRoute(defaultPage)
}
