package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"

	"github.com/pders01/vidsrch/internal/validation"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Settings SettingsConfig `mapstructure:"settings"`
	Search   SearchConfig   `mapstructure:"search"`
	Log      LogConfig      `mapstructure:"log"`
	Media    MediaConfig    `mapstructure:"media"`
	UI       UIConfig       `mapstructure:"ui"`
	Keys     KeyConfig      `mapstructure:"keys"`
}

type ServerConfig struct {
	BaseURL     string        `mapstructure:"base_url" validate:"required"`
	HTTPTimeout time.Duration `mapstructure:"http_timeout" validate:"gt=0"`
	UserAgent   string        `mapstructure:"user_agent"`
}

type SettingsConfig struct {
	Path    string        `mapstructure:"path" validate:"required"`
	Timeout time.Duration `mapstructure:"timeout" validate:"gt=0"`
}

type SearchConfig struct {
	Debounce       time.Duration `mapstructure:"debounce" validate:"gte=0"`
	MaxQueryLength int           `mapstructure:"max_query_length" validate:"min=1,max=4096"`
}

type LogConfig struct {
	Level string `mapstructure:"level" validate:"omitempty,oneof=debug info warn warning error off DEBUG INFO WARN WARNING ERROR OFF"`
	File  string `mapstructure:"file"`
}

// MediaConfig lists player preferences per platform. The first installed
// command wins; DefaultOpener is used when none is.
type MediaConfig struct {
	DefaultOpener string       `mapstructure:"default_opener"`
	Darwin        MediaPlayers `mapstructure:"darwin"`
	Linux         MediaPlayers `mapstructure:"linux"`
	Windows       MediaPlayers `mapstructure:"windows"`
}

type MediaPlayers struct {
	Video []string `mapstructure:"video"`
	Image []string `mapstructure:"image"`
}

type UIConfig struct {
	Colors UIColors `mapstructure:"colors"`
}

type UIColors struct {
	Primary   string `mapstructure:"primary"`
	Secondary string `mapstructure:"secondary"`
	Accent    string `mapstructure:"accent"`
	Text      string `mapstructure:"text"`
	Muted     string `mapstructure:"muted"`
	Error     string `mapstructure:"error"`
	Success   string `mapstructure:"success"`
}

type KeyConfig struct {
	Modifier string `mapstructure:"modifier" validate:"required"`
}

func defaultConfig() *Config {
	homeDir, _ := os.UserHomeDir()

	return &Config{
		Server: ServerConfig{
			BaseURL:     "http://localhost:3000",
			HTTPTimeout: 30 * time.Second,
			UserAgent:   "vidsrch/1.0 (https://github.com/pders01/vidsrch)",
		},
		Settings: SettingsConfig{
			Path:    filepath.Join(homeDir, ".vidsrch", "settings.db"),
			Timeout: 1 * time.Second,
		},
		Search: SearchConfig{
			Debounce:       250 * time.Millisecond,
			MaxQueryLength: 256,
		},
		Log: LogConfig{
			Level: "off",
			File:  filepath.Join(homeDir, ".vidsrch", "vidsrch.log"),
		},
		Media: MediaConfig{
			Darwin: MediaPlayers{
				Video: []string{"iina", "mpv", "vlc"},
				Image: []string{"open"},
			},
			Linux: MediaPlayers{
				Video: []string{"mpv", "vlc", "celluloid"},
				Image: []string{"imv", "feh", "eog"},
			},
			Windows: MediaPlayers{
				Video: []string{"mpv", "vlc"},
			},
		},
		UI: UIConfig{
			Colors: UIColors{
				Primary:   "#FF6B6B",
				Secondary: "#4ECDC4",
				Accent:    "#95E1D3",
				Text:      "#EAEAEA",
				Muted:     "#94A3B8",
				Error:     "#F87171",
				Success:   "#4ADE80",
			},
		},
		Keys: KeyConfig{
			Modifier: "ctrl",
		},
	}
}

// setDefaults registers every leaf key so a partial section in the file
// keeps the defaults of the keys it omits.
func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("server.base_url", cfg.Server.BaseURL)
	v.SetDefault("server.http_timeout", cfg.Server.HTTPTimeout)
	v.SetDefault("server.user_agent", cfg.Server.UserAgent)

	v.SetDefault("settings.path", cfg.Settings.Path)
	v.SetDefault("settings.timeout", cfg.Settings.Timeout)

	v.SetDefault("search.debounce", cfg.Search.Debounce)
	v.SetDefault("search.max_query_length", cfg.Search.MaxQueryLength)

	v.SetDefault("log.level", cfg.Log.Level)
	v.SetDefault("log.file", cfg.Log.File)

	v.SetDefault("media.default_opener", cfg.Media.DefaultOpener)
	for platform, players := range map[string]MediaPlayers{
		"darwin":  cfg.Media.Darwin,
		"linux":   cfg.Media.Linux,
		"windows": cfg.Media.Windows,
	} {
		v.SetDefault("media."+platform+".video", players.Video)
		v.SetDefault("media."+platform+".image", players.Image)
	}

	colors := cfg.UI.Colors
	v.SetDefault("ui.colors.primary", colors.Primary)
	v.SetDefault("ui.colors.secondary", colors.Secondary)
	v.SetDefault("ui.colors.accent", colors.Accent)
	v.SetDefault("ui.colors.text", colors.Text)
	v.SetDefault("ui.colors.muted", colors.Muted)
	v.SetDefault("ui.colors.error", colors.Error)
	v.SetDefault("ui.colors.success", colors.Success)

	v.SetDefault("keys.modifier", cfg.Keys.Modifier)
}

// DefaultPath is the config file location used when none is given.
func DefaultPath() string {
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, ".config", "vidsrch", "config.toml")
}

func Load(configPath string) (*Config, error) {
	v := viper.New()

	setDefaults(v, defaultConfig())

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("toml")
		v.AddConfigPath(filepath.Dir(DefaultPath()))
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("VIDSRCH")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	expandPaths(&config)

	return &config, nil
}

// Validate checks field constraints and normalizes the server base URL.
func (c *Config) Validate() error {
	if err := validator.New().Struct(*c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	baseURL, err := validation.NewServerURLValidator().ValidateAndNormalize(c.Server.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid server.base_url: %w", err)
	}
	c.Server.BaseURL = baseURL
	return nil
}

// expandPath expands ~ to home directory and converts to absolute path
func expandPath(path string) string {
	if path == "" {
		return path
	}

	if expanded, err := homedir.Expand(path); err == nil {
		path = expanded
	}

	if !filepath.IsAbs(path) {
		if abs, err := filepath.Abs(path); err == nil {
			path = abs
		}
	}

	return path
}

// ExpandPaths expands all paths in the config. Call it again after flag overrides.
func ExpandPaths(cfg *Config) {
	expandPaths(cfg)
}

func expandPaths(cfg *Config) {
	cfg.Settings.Path = expandPath(cfg.Settings.Path)
	cfg.Log.File = expandPath(cfg.Log.File)
}

func Save(config *Config, path string) error {
	v := viper.New()

	// Durations as strings keep the TOML readable
	serverCfg := map[string]interface{}{
		"base_url":     config.Server.BaseURL,
		"http_timeout": config.Server.HTTPTimeout.String(),
		"user_agent":   config.Server.UserAgent,
	}

	settingsCfg := map[string]interface{}{
		"path":    config.Settings.Path,
		"timeout": config.Settings.Timeout.String(),
	}

	searchCfg := map[string]interface{}{
		"debounce":         config.Search.Debounce.String(),
		"max_query_length": config.Search.MaxQueryLength,
	}

	logCfg := map[string]interface{}{
		"level": config.Log.Level,
		"file":  config.Log.File,
	}

	v.Set("server", serverCfg)
	v.Set("settings", settingsCfg)
	v.Set("search", searchCfg)
	v.Set("log", logCfg)
	v.Set("media", map[string]interface{}{
		"default_opener": config.Media.DefaultOpener,
		"darwin":         mediaPlayersMap(config.Media.Darwin),
		"linux":          mediaPlayersMap(config.Media.Linux),
		"windows":        mediaPlayersMap(config.Media.Windows),
	})
	v.Set("ui", config.UI)
	v.Set("keys", config.Keys)

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	return v.WriteConfigAs(path)
}

func mediaPlayersMap(p MediaPlayers) map[string]interface{} {
	return map[string]interface{}{
		"video": p.Video,
		"image": p.Image,
	}
}

func GenerateDefaultConfig(path string) error {
	return Save(defaultConfig(), path)
}
