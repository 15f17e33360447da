package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/mmcdole/marquee/internal/tui"
	"github.com/mmcdole/marquee/internal/tui/styles"
	"github.com/spf13/cobra"
)

// Version is set at build time via -ldflags
var Version = "dev"

var configPath string

func main() {
	rootCmd := &cobra.Command{
		Use:   "marquee [route]",
		Short: "Browse movies and series from the terminal",
		Long: "marquee is a terminal browser for the TMDB catalog.\n" +
			"Routes: /movies, /tv, /search?q=<query>.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			var route *tui.Route
			if len(args) == 1 {
				r := tui.ParseRoute(args[0])
				route = &r
			}
			return run(route)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to configuration file")

	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true

	rootCmd.AddCommand(
		newRouteCmd("movies", "Open the movies page", tui.Route{Dest: tui.DestMovies}),
		newRouteCmd("tv", "Open the TV shows page", tui.Route{Dest: tui.DestTV}),
		newSearchCmd(),
		newSetupCmd(),
		newConfigCmd(),
		newVersionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, styles.ErrorStyle.Render("Error: "+err.Error()))
		os.Exit(1)
	}
}

func newRouteCmd(use, short string, route tui.Route) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return run(&route)
		},
	}
}

func newSearchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "search <query...>",
		Short: "Search movies and series",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			route := tui.SearchRoute(strings.Join(args, " "))
			return run(&route)
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Printf("marquee %s\n", Version)
		},
	}
}
