package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"taskdash/internal/api"
	"taskdash/internal/config"
	"taskdash/internal/demoserver"
	"taskdash/internal/ui"
)

var (
	endpoint string
	token    string
	pageSize int
	demoMode bool
)

var rootCmd = &cobra.Command{
	Use:   "taskdash",
	Short: "Terminal dashboard for tasks and team activity",
	Long: `taskdash is a keyboard-driven dashboard for a task tracker's GraphQL API.
It shows searchable, sortable, paginated tables of tasks and team activity
and lets you create, edit and delete entries without leaving the terminal.`,
	SilenceUsage: true,
	RunE:         runDashboard,
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date)

	rootCmd.PersistentFlags().StringVar(&endpoint, "endpoint", "", "GraphQL endpoint URL (overrides config)")
	rootCmd.PersistentFlags().StringVar(&token, "token", "", "API bearer token (overrides config)")
	rootCmd.PersistentFlags().BoolVar(&demoMode, "demo", false, "Run against a built-in in-memory demo server")
	rootCmd.Flags().IntVar(&pageSize, "page-size", 0, "Rows per page (overrides config)")

	rootCmd.AddCommand(exportCmd)
}

// loadConfig merges the config file, environment and flags.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return cfg, err
	}
	if endpoint != "" {
		cfg.Endpoint = endpoint
	}
	if token != "" {
		cfg.Token = token
	}
	if pageSize > 0 {
		cfg.PageSize = pageSize
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// startDemo boots the in-memory demo API and points cfg at it.
func startDemo(cfg *config.Config) (func(), error) {
	store, err := demoserver.OpenStore(":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to open demo store: %w", err)
	}
	if err := demoserver.Seed(store); err != nil {
		store.Close()
		return nil, fmt.Errorf("failed to seed demo data: %w", err)
	}
	url, shutdown, err := demoserver.Start(store)
	if err != nil {
		store.Close()
		return nil, err
	}
	cfg.Endpoint = url
	cfg.Token = ""
	return shutdown, nil
}

func runDashboard(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if demoMode {
		shutdown, err := startDemo(&cfg)
		if err != nil {
			return err
		}
		defer shutdown()
	}

	client := api.NewClient(cfg.Endpoint, cfg.Token, cfg.RequestTimeout())
	p := tea.NewProgram(ui.NewApp(client, cfg), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running application: %w", err)
	}
	return nil
}
