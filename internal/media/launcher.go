package media

import (
	"errors"
	"fmt"
	"os/exec"
	"runtime"
	"strings"

	"github.com/pders01/vidsrch/internal/config"
	"github.com/pders01/vidsrch/internal/debuglog"
)

// Kind selects which player list handles a URL.
type Kind int

const (
	KindVideo Kind = iota
	KindImage
)

func (k Kind) String() string {
	switch k {
	case KindVideo:
		return "video"
	case KindImage:
		return "image"
	default:
		return "unknown"
	}
}

var ErrNothingToOpen = errors.New("nothing to open")

type Launcher struct {
	videoPlayer   string
	imageViewer   string
	defaultOpener string
	registry      *PlayerRegistry

	// start runs the command detached. Replaced in tests.
	start func(*exec.Cmd) error
}

func NewLauncher(cfg *config.MediaConfig) *Launcher {
	registry, err := NewPlayerRegistry()
	if err != nil {
		debuglog.Warnf("player definitions unavailable: %v", err)
		registry = &PlayerRegistry{
			platforms: make(map[string]PlatformConfig),
			players:   make(map[string]PlayerDefinition),
		}
	}
	return newLauncher(cfg, registry, exec.LookPath)
}

func newLauncher(cfg *config.MediaConfig, registry *PlayerRegistry, lookPath func(string) (string, error)) *Launcher {
	if cfg == nil {
		cfg = &config.MediaConfig{}
	}

	var players config.MediaPlayers
	switch runtime.GOOS {
	case "darwin":
		players = cfg.Darwin
	case "windows":
		players = cfg.Windows
	default:
		players = cfg.Linux
	}

	l := &Launcher{
		defaultOpener: cfg.DefaultOpener,
		registry:      registry,
		start:         startDetached,
	}
	if l.defaultOpener == "" {
		l.defaultOpener = registry.DefaultOpener()
	}

	l.videoPlayer = findCommand(lookPath, registry, KindVideo, players.Video...)
	l.imageViewer = findCommand(lookPath, registry, KindImage, players.Image...)
	return l
}

// Open plays a video URL.
func (l *Launcher) Open(url string) error {
	return l.open(KindVideo, url)
}

// OpenImage shows a thumbnail URL.
func (l *Launcher) OpenImage(url string) error {
	return l.open(KindImage, url)
}

// Player returns the command that handles kind.
func (l *Launcher) Player(kind Kind) string {
	var name string
	switch kind {
	case KindVideo:
		name = l.videoPlayer
	case KindImage:
		name = l.imageViewer
	}
	if name == "" {
		name = l.defaultOpener
	}
	return name
}

func (l *Launcher) open(kind Kind, url string) error {
	url = strings.TrimSpace(url)
	if url == "" {
		return ErrNothingToOpen
	}

	name := l.Player(kind)
	if name == "" {
		return fmt.Errorf("no application found to open %s", kind)
	}

	cmd, err := l.registry.GetCommand(name, kind, url)
	if err != nil {
		cmd = exec.Command(name, url)
	}

	debuglog.Infof("opening %s with %s: %s", kind, name, url)
	if err := l.start(cmd); err != nil {
		return fmt.Errorf("failed to start %s: %w", name, err)
	}
	return nil
}

func startDetached(cmd *exec.Cmd) error {
	if err := cmd.Start(); err != nil {
		return err
	}
	go func() {
		_ = cmd.Wait()
	}()
	return nil
}

// findCommand returns the first installed command that can open kind.
func findCommand(lookPath func(string) (string, error), registry *PlayerRegistry, kind Kind, commands ...string) string {
	for _, name := range commands {
		if _, err := lookPath(name); err != nil {
			continue
		}
		if registry.Supports(name, kind) {
			return name
		}
	}
	return ""
}
