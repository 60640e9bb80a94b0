package search

import (
	"context"
	"sync"

	"github.com/pders01/vidsrch/internal/api"
)

type fakeField struct {
	value   string
	cleared int
}

func (f *fakeField) Value() string { return f.value }
func (f *fakeField) Clear()        { f.value = ""; f.cleared++ }

type fakeToggle struct {
	checked  bool
	disabled bool
}

func (t *fakeToggle) Checked() bool         { return t.checked }
func (t *fakeToggle) SetDisabled(d bool)    { t.disabled = d }
func (t *fakeToggle) set(checked bool) bool { t.checked = checked; return checked }

type fakeStatus struct {
	text    string
	history []string
}

func (s *fakeStatus) SetText(text string) {
	s.text = text
	s.history = append(s.history, text)
}

type fakeIndicator struct {
	active bool
}

func (i *fakeIndicator) SetActive(active bool) { i.active = active }

type fakeToasts struct {
	messages []string
}

func (n *fakeToasts) Toast(message string) { n.messages = append(n.messages, message) }

type fakeResults struct {
	batches       [][]api.Video
	showOriginals []bool
}

func (r *fakeResults) Replace(videos []api.Video, showOriginal bool) {
	r.batches = append(r.batches, videos)
	r.showOriginals = append(r.showOriginals, showOriginal)
}

type fakeSettings struct {
	values map[string]bool
	reads  int
}

func (s *fakeSettings) Bool(key string) bool {
	s.reads++
	return s.values[key]
}

type fakeClient struct {
	mu        sync.Mutex
	queries   []string
	downloads []string
	videos    []api.Video
	listErr   error
	dlErr     error
}

func (c *fakeClient) ListVideos(_ context.Context, rawQuery string) ([]api.Video, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.queries = append(c.queries, rawQuery)
	if c.listErr != nil {
		return nil, c.listErr
	}
	return c.videos, nil
}

func (c *fakeClient) DownloadVideo(_ context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.downloads = append(c.downloads, id)
	return c.dlErr
}

type fixture struct {
	input      *fakeField
	excluded   *fakeToggle
	ignored    *fakeToggle
	downloaded *fakeToggle
	summarized *fakeToggle
	status     *fakeStatus
	indicator  *fakeIndicator
	toasts     *fakeToasts
	results    *fakeResults
	settings   *fakeSettings
	client     *fakeClient
	target     *EventTarget
	controller *Controller
	binding    *ViewBinding
}

func newFixture() *fixture {
	f := &fixture{
		input:      &fakeField{},
		excluded:   &fakeToggle{},
		ignored:    &fakeToggle{},
		downloaded: &fakeToggle{},
		summarized: &fakeToggle{},
		status:     &fakeStatus{},
		indicator:  &fakeIndicator{},
		toasts:     &fakeToasts{},
		results:    &fakeResults{},
		settings:   &fakeSettings{values: map[string]bool{}},
		client:     &fakeClient{},
		target:     NewEventTarget(),
	}
	f.binding = &ViewBinding{
		Input:      f.input,
		Excluded:   f.excluded,
		Ignored:    f.ignored,
		Downloaded: f.downloaded,
		Summarized: f.summarized,
		Status:     f.status,
		Indicator:  f.indicator,
		Toasts:     f.toasts,
		Results:    func() ResultsContainer { return f.results },
	}
	f.controller = NewController(f.client, f.settings, nil)
	return f
}

// run emits an event and settles every resulting action synchronously.
func (f *fixture) run(source Source) []Action {
	actions := f.target.Emit(source)
	for _, a := range actions {
		f.controller.Settle(f.controller.Execute(context.Background(), a))
	}
	return actions
}
