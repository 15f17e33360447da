package main

import (
	"fmt"

	"github.com/mmcdole/marquee/internal/adapter"
	"github.com/mmcdole/marquee/internal/tui/styles"
	"github.com/spf13/cobra"
)

// newConfigCmd returns the "config" subcommand group
func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration management",
	}

	cmd.AddCommand(newConfigPathCmd(), newConfigValidateCmd())
	return cmd
}

// newConfigPathCmd prints where the configuration file lives
func newConfigPathCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the configuration file path",
		Run: func(_ *cobra.Command, _ []string) {
			if configPath != "" {
				fmt.Println(configPath)
				return
			}
			fmt.Println(adapter.ConfigFile())
		},
	}
}

// newConfigValidateCmd checks that the configuration is usable
func newConfigValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate the configuration",
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, err := adapter.LoadConfig(configPath)
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			fmt.Println(styles.SuccessStyle.Render("✓ Configuration is valid"))
			return nil
		},
	}
}
