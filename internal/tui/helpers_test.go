package tui

import (
	"context"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/pders01/vidsrch/internal/api"
	"github.com/pders01/vidsrch/internal/config"
)

type fakeClient struct {
	mu        sync.Mutex
	queries   []string
	downloads []string
	videos    []api.Video
	err       error
}

func (c *fakeClient) ListVideos(_ context.Context, rawQuery string) ([]api.Video, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.queries = append(c.queries, rawQuery)
	if c.err != nil {
		return nil, c.err
	}
	return c.videos, nil
}

func (c *fakeClient) DownloadVideo(_ context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.downloads = append(c.downloads, id)
	return nil
}

func (c *fakeClient) Queries() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.queries...)
}

func (c *fakeClient) Downloads() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.downloads...)
}

type fakeSettings struct {
	mu     sync.Mutex
	values map[string]bool
}

func (s *fakeSettings) Bool(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.values[key]
}

func (s *fakeSettings) Toggle(key string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = !s.values[key]
	return s.values[key], nil
}

type fakeOpener struct {
	mu     sync.Mutex
	videos []string
	images []string
}

func (o *fakeOpener) Open(url string) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.videos = append(o.videos, url)
	return nil
}

func (o *fakeOpener) OpenImage(url string) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.images = append(o.images, url)
	return nil
}

type harness struct {
	app      *App
	client   *fakeClient
	settings *fakeSettings
	opener   *fakeOpener
}

func newHarness(t *testing.T, mutate ...func(*config.Config)) *harness {
	t.Helper()
	cfg := config.TestConfig()
	for _, m := range mutate {
		m(cfg)
	}
	h := &harness{
		client:   &fakeClient{},
		settings: &fakeSettings{values: map[string]bool{}},
		opener:   &fakeOpener{},
	}
	h.app = NewApp(cfg, h.client, h.settings, h.opener)
	h.app.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return h
}

// collect runs cmd and any batched commands, dropping those that do not
// return promptly (ticks).
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	ch := make(chan tea.Msg, 1)
	go func() { ch <- cmd() }()

	var msg tea.Msg
	select {
	case msg = <-ch:
	case <-time.After(time.Second):
		return nil
	}

	switch m := msg.(type) {
	case nil:
		return nil
	case tea.BatchMsg:
		var out []tea.Msg
		for _, c := range m {
			out = append(out, collect(c)...)
		}
		return out
	default:
		return []tea.Msg{msg}
	}
}

// send delivers msg and feeds back the app messages its commands produce.
func (h *harness) send(msg tea.Msg) {
	_, cmd := h.app.Update(msg)
	h.settle(cmd)
}

func (h *harness) settle(cmd tea.Cmd) {
	for _, m := range collect(cmd) {
		switch m.(type) {
		case outcomeMsg, initialLoadedMsg, detailRenderedMsg, thumbnailModeMsg, openedMsg, errorMsg:
			h.send(m)
		}
	}
}

func (h *harness) typeText(s string) {
	h.send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
}

func (h *harness) press(k tea.KeyType) {
	h.send(tea.KeyMsg{Type: k})
}

func (h *harness) space() {
	h.send(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
}
