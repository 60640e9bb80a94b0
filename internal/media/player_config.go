package media

import (
	_ "embed"
	"fmt"
	"os"
	"os/exec"
	"runtime"

	"github.com/mitchellh/go-homedir"
	"github.com/pelletier/go-toml/v2"
)

//go:embed players.toml
var playersTOML []byte

// UserPlayersPath is merged over the embedded definitions when present.
const UserPlayersPath = "~/.config/vidsrch/players.toml"

// PlayerDefinition defines how a player is invoked per media kind.
type PlayerDefinition struct {
	Description string      `toml:"description"`
	Platforms   []string    `toml:"platforms"`
	Video       *KindConfig `toml:"video,omitempty"`
	Image       *KindConfig `toml:"image,omitempty"`
}

// KindConfig holds the arguments placed before the URL.
type KindConfig struct {
	Args        []string `toml:"args,omitempty"`
	ArgsDarwin  []string `toml:"args_darwin,omitempty"`
	ArgsLinux   []string `toml:"args_linux,omitempty"`
	ArgsWindows []string `toml:"args_windows,omitempty"`
}

type PlatformConfig struct {
	DefaultOpener string `toml:"default_opener"`
}

// PlayersConfig is the layout of players.toml.
type PlayersConfig struct {
	Platforms map[string]PlatformConfig   `toml:"platforms"`
	Players   map[string]PlayerDefinition `toml:"players"`
}

type PlayerRegistry struct {
	platforms map[string]PlatformConfig
	players   map[string]PlayerDefinition
}

// NewPlayerRegistry loads the embedded definitions and merges the user file.
func NewPlayerRegistry() (*PlayerRegistry, error) {
	return newPlayerRegistry(UserPlayersPath, "./players.toml")
}

func newPlayerRegistry(overrides ...string) (*PlayerRegistry, error) {
	var cfg PlayersConfig
	if err := toml.Unmarshal(playersTOML, &cfg); err != nil {
		return nil, fmt.Errorf("parsing players.toml: %w", err)
	}

	r := &PlayerRegistry{
		platforms: cfg.Platforms,
		players:   cfg.Players,
	}
	if r.platforms == nil {
		r.platforms = make(map[string]PlatformConfig)
	}
	if r.players == nil {
		r.players = make(map[string]PlayerDefinition)
	}

	for _, path := range overrides {
		if err := r.merge(path); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// merge overlays a players file. A missing file is not an error.
func (r *PlayerRegistry) merge(path string) error {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return nil
	}
	data, err := os.ReadFile(expanded)
	if err != nil {
		return nil
	}

	var user PlayersConfig
	if err := toml.Unmarshal(data, &user); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	for name, def := range user.Players {
		r.players[name] = def
	}
	for name, p := range user.Platforms {
		r.platforms[name] = p
	}
	return nil
}

// DefaultOpener is the platform's generic URL handler.
func (r *PlayerRegistry) DefaultOpener() string {
	if p, ok := r.platforms[runtime.GOOS]; ok && p.DefaultOpener != "" {
		return p.DefaultOpener
	}
	return "xdg-open"
}

// GetCommand builds the command for a player and media kind. Players without
// a definition are invoked with the URL only.
func (r *PlayerRegistry) GetCommand(playerName string, kind Kind, url string) (*exec.Cmd, error) {
	player, exists := r.players[playerName]
	if !exists {
		return exec.Command(playerName, url), nil
	}

	supported := false
	for _, p := range player.Platforms {
		if p == runtime.GOOS {
			supported = true
			break
		}
	}
	if !supported {
		return nil, fmt.Errorf("%s not supported on %s", playerName, runtime.GOOS)
	}

	var cfg *KindConfig
	switch kind {
	case KindVideo:
		cfg = player.Video
	case KindImage:
		cfg = player.Image
	}
	if cfg == nil {
		return nil, fmt.Errorf("%s cannot open %s", playerName, kind)
	}

	args := append(append([]string(nil), r.getArgs(cfg)...), url)
	return exec.Command(playerName, args...), nil
}

func (r *PlayerRegistry) getArgs(cfg *KindConfig) []string {
	if cfg == nil {
		return nil
	}

	switch runtime.GOOS {
	case "darwin":
		if len(cfg.ArgsDarwin) > 0 {
			return cfg.ArgsDarwin
		}
	case "linux":
		if len(cfg.ArgsLinux) > 0 {
			return cfg.ArgsLinux
		}
	case "windows":
		if len(cfg.ArgsWindows) > 0 {
			return cfg.ArgsWindows
		}
	}

	return cfg.Args
}

// Supports reports whether a defined player can open kind on this platform.
// Undefined players are assumed to.
func (r *PlayerRegistry) Supports(playerName string, kind Kind) bool {
	_, err := r.GetCommand(playerName, kind, "")
	return err == nil
}
