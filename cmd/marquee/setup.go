package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/mmcdole/marquee/internal/adapter"
	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/tmdb"
	"github.com/mmcdole/marquee/internal/tui/styles"
	"github.com/spf13/cobra"
)

// clearSpinnerLine clears the spinner line from the terminal
const clearSpinnerLine = "\r                                    \r"

func newSetupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "setup",
		Short: "Store a TMDB API key in the configuration file",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runSetup()
		},
	}
}

// runSetup asks for the API key, verifies it and writes the config
func runSetup() error {
	cfg, err := adapter.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	fmt.Println()
	fmt.Println(styles.LogoStyle.Render("Welcome to marquee!"))
	fmt.Println(styles.DimStyle.Render("Get a key at https://www.themoviedb.org/settings/api"))
	fmt.Println()

	for {
		key, err := adapter.PromptAPIKey(os.Stdin, os.Stdout)
		if err != nil {
			return err
		}
		if key == "" {
			fmt.Println("API key cannot be empty. Please try again.")
			continue
		}

		client := tmdb.New(tmdb.Options{
			BaseURL:  cfg.TMDB.BaseURL,
			APIKey:   key,
			Language: cfg.TMDB.Language,
		}, adapter.NullLogger())

		err = verifyWithSpinner(client)
		if tmdb.IsAuthError(err) {
			fmt.Println(styles.ErrorStyle.Render("✗ The key was rejected. Please try again."))
			fmt.Println()
			continue
		}
		if err != nil {
			return fmt.Errorf("could not verify key: %w", err)
		}

		cfg.TMDB.APIKey = key
		break
	}

	file := configPath
	if file == "" {
		file = adapter.ConfigFile()
	}
	if err := adapter.SaveConfig(cfg, file); err != nil {
		return err
	}

	fmt.Println()
	fmt.Println(styles.SuccessStyle.Render("✓ Configuration saved to " + file))
	fmt.Println()
	fmt.Println("Run marquee again to start browsing.")
	return nil
}

// verifyWithSpinner fetches one list to check the key, with a visual spinner
func verifyWithSpinner(client *tmdb.Client) error {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	resultCh := make(chan error, 1)
	go func() {
		resultCh <- verifyKey(ctx, client)
	}()

	frame := 0
	fmt.Printf("\r%s Checking key...", styles.SpinnerFrames[frame])

	ticker := time.NewTicker(80 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case err := <-resultCh:
			fmt.Print(clearSpinnerLine)
			if err == nil {
				fmt.Println(styles.SuccessStyle.Render("✓ Key accepted"))
			}
			return err

		case <-ticker.C:
			frame++
			fmt.Printf("\r%s Checking key...", styles.SpinnerFrames[frame%len(styles.SpinnerFrames)])

		case <-ctx.Done():
			fmt.Print(clearSpinnerLine)
			return fmt.Errorf("verification timed out")
		}
	}
}

// verifyKey fetches the trending movies list with the client's key
func verifyKey(ctx context.Context, client *tmdb.Client) error {
	q, ok := tmdb.Lookup(domain.KindMovie, tmdb.QueryTrending)
	if !ok {
		return fmt.Errorf("no %s request for %s", tmdb.QueryTrending, domain.KindMovie)
	}
	_, err := client.List(ctx, q)
	return err
}
