package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/pders01/vidsrch/internal/api"
	"github.com/pders01/vidsrch/internal/config"
	"github.com/pders01/vidsrch/internal/debuglog"
	"github.com/pders01/vidsrch/internal/media"
	"github.com/pders01/vidsrch/internal/storage"
	"github.com/pders01/vidsrch/internal/tui"
)

var (
	configPath     string
	serverURL      string
	settingsPath   string
	logLevel       string
	quiet          bool
	generateConfig bool
)

var rootCmd = &cobra.Command{
	Use:          "vidsrch",
	Short:        "Search and download videos from a self-hosted video library",
	SilenceUsage: true,
	RunE:         runApp,
}

func init() {
	flags := rootCmd.Flags()
	flags.StringVar(&configPath, "config", "", "Path to configuration file")
	flags.StringVar(&serverURL, "server", "", "Base URL of the video library (overrides config)")
	flags.StringVar(&settingsPath, "settings", "", "Path to the settings database (overrides config)")
	flags.StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error, off (overrides config)")
	flags.BoolVar(&quiet, "quiet", false, "Skip startup banner")
	flags.BoolVar(&generateConfig, "generate-config", false, "Generate default config file and exit")

	rootCmd.AddCommand(versionCmd, configCmd)
}

// loadConfig reads the config file and applies flag overrides.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if serverURL != "" {
		cfg.Server.BaseURL = serverURL
	}
	if settingsPath != "" {
		cfg.Settings.Path = settingsPath
		config.ExpandPaths(cfg)
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runApp(cmd *cobra.Command, _ []string) error {
	if generateConfig {
		return writeDefaultConfig(cmd.OutOrStdout(), config.DefaultPath())
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if err := debuglog.Setup(debuglog.ParseLogLevel(cfg.Log.Level), cfg.Log.File); err != nil {
		return err
	}
	defer debuglog.Close()

	if !quiet {
		tui.ShowBanner(Version)
	}

	store, err := storage.NewStore(cfg.Settings.Path, cfg.Settings.Timeout)
	if err != nil {
		return err
	}
	defer store.Close()

	client := api.NewClient(cfg)
	debuglog.Infof("vidsrch %s using %s", Version, client.BaseURL())

	app := tui.NewApp(cfg, client, store, media.NewLauncher(&cfg.Media))
	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running ui: %w", err)
	}
	return nil
}
