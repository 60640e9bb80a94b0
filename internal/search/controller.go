package search

import (
	"context"

	"github.com/pders01/vidsrch/internal/api"
	"github.com/pders01/vidsrch/internal/debuglog"
	"github.com/pders01/vidsrch/internal/storage"
)

// Client is the remote side of the controller.
type Client interface {
	ListVideos(ctx context.Context, rawQuery string) ([]api.Video, error)
	DownloadVideo(ctx context.Context, id string) error
}

// Action is work produced by an event. Execute performs it off the event loop.
type Action interface {
	isAction()
}

type DownloadAction struct {
	ID string
}

// SearchAction is one listing request. Seq increases with every request the
// controller issues.
type SearchAction struct {
	Seq     uint64
	Term    string
	Filters FilterSet
	Query   string
}

func (DownloadAction) isAction() {}
func (SearchAction) isAction()   {}

// Outcome is the settled result of an Action.
type Outcome interface {
	isOutcome()
}

type DownloadOutcome struct {
	ID  string
	Err error
}

type SearchOutcome struct {
	Seq    uint64
	Term   string
	Videos []api.Video
	Err    error
}

func (DownloadOutcome) isOutcome() {}
func (SearchOutcome) isOutcome()   {}

// Controller reconciles control events, listing requests and the results view.
// Handle and Settle must be called from the event loop; Execute may run anywhere.
type Controller struct {
	client   Client
	settings Settings
	log      *debuglog.FieldLogger

	handler  Handler
	view     *ViewBinding
	removers []func()
	state    SearchState
	seq      uint64
}

func NewController(client Client, settings Settings, log *debuglog.FieldLogger) *Controller {
	if log == nil {
		log = debuglog.WithFields(map[string]any{"component": "search"})
	}
	c := &Controller{
		client:   client,
		settings: settings,
		log:      log,
	}
	c.handler = c.Handle
	return c
}

// Mount validates the binding and registers the controller's handler for
// every control on target.
func (c *Controller) Mount(binding *ViewBinding, target *EventTarget) error {
	if c.view != nil {
		return ErrAlreadyMounted
	}
	if err := binding.Validate(); err != nil {
		return err
	}
	c.view = binding
	for _, source := range Sources {
		c.removers = append(c.removers, target.Listen(source, c.handler))
	}
	c.log.Debugf("mounted")
	return nil
}

// Unmount removes the registrations made by Mount and forgets the previous term.
// Responses still in flight are dropped when they settle.
func (c *Controller) Unmount() {
	for _, remove := range c.removers {
		remove()
	}
	c.removers = nil
	c.view = nil
	c.state.Reset()
	c.log.Debugf("unmounted")
}

func (c *Controller) Mounted() bool {
	return c.view != nil
}

// State exposes the search state for inspection.
func (c *Controller) State() SearchState {
	return c.state
}

// LatestSeq is the sequence number of the most recent search request.
func (c *Controller) LatestSeq() uint64 {
	return c.seq
}

// Handle classifies an event and applies the synchronous view updates. It
// returns the request to issue, or nil.
func (c *Controller) Handle(ev Event) Action {
	if c.view == nil {
		return nil
	}
	v := c.view

	cls := Classify(v.Input.Value(), ev.Source, &c.state)
	if cls.Kind == KindNoop {
		return nil
	}

	v.Status.SetText("")

	if cls.Kind == KindDownload {
		v.Toasts.Toast(MsgDownloading)
		v.Input.Clear()
		c.log.Infof("download requested: %s", cls.ID)
		return DownloadAction{ID: cls.ID}
	}

	filters := v.filters()
	flags := ApplyConstraints(filters)
	v.Ignored.SetDisabled(flags.IgnoredDisabled)
	v.Excluded.SetDisabled(flags.ExcludedDisabled)
	v.Indicator.SetActive(true)

	c.seq++
	action := SearchAction{
		Seq:     c.seq,
		Term:    cls.Term,
		Filters: filters,
		Query:   BuildQuery(cls.Term, filters),
	}
	c.log.With("seq", action.Seq).Debugf("search issued: %s", action.Query)
	return action
}

// Execute performs the network part of an action. It does not touch controller state.
func (c *Controller) Execute(ctx context.Context, action Action) Outcome {
	switch a := action.(type) {
	case DownloadAction:
		return DownloadOutcome{ID: a.ID, Err: c.client.DownloadVideo(ctx, a.ID)}
	case SearchAction:
		videos, err := c.client.ListVideos(ctx, a.Query)
		return SearchOutcome{Seq: a.Seq, Term: a.Term, Videos: videos, Err: err}
	default:
		return nil
	}
}

// Settle reconciles an outcome with the view. Search outcomes older than the
// latest issued request are discarded; the latest one always clears the
// searching indicator.
func (c *Controller) Settle(outcome Outcome) {
	switch o := outcome.(type) {
	case DownloadOutcome:
		if o.Err != nil {
			c.log.Errorf("Error starting download %s: %v", o.ID, o.Err)
		}
	case SearchOutcome:
		c.settleSearch(o)
	}
}

func (c *Controller) settleSearch(o SearchOutcome) {
	log := c.log.With("seq", o.Seq)
	if o.Seq != c.seq {
		log.Debugf("discarding stale response (latest %d)", c.seq)
		return
	}
	if c.view == nil {
		log.Debugf("view unmounted, dropping response")
		return
	}
	v := c.view
	defer v.Indicator.SetActive(false)

	if o.Err != nil {
		log.Errorf("search failed: %v", o.Err)
		v.Status.SetText(MsgError(o.Err))
		return
	}

	results := v.Results()
	if results == nil {
		return
	}

	results.Replace(o.Videos, c.showOriginalThumbnail())
	v.Status.SetText(ResultStatus(o.Term, len(o.Videos)))
	log.Debugf("rendered %d videos", len(o.Videos))
}

func (c *Controller) showOriginalThumbnail() bool {
	if c.settings == nil {
		return false
	}
	return c.settings.Bool(storage.ShowOriginalThumbnailKey)
}
