package config

import "time"

// TestConfig returns a config suitable for testing
func TestConfig() *Config {
	return &Config{
		Server: ServerConfig{
			BaseURL:     "http://127.0.0.1:0",
			HTTPTimeout: 5 * time.Second,
			UserAgent:   "vidsrch-test/1.0",
		},
		Settings: SettingsConfig{
			Path:    "",
			Timeout: 1 * time.Second,
		},
		Search: SearchConfig{
			Debounce:       0, // fire immediately in tests
			MaxQueryLength: 256,
		},
		Log:   LogConfig{Level: "off"},
		Media: defaultConfig().Media,
		UI:    defaultConfig().UI,
		Keys:  defaultConfig().Keys,
	}
}
