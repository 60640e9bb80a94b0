package search

import (
	"errors"
	"fmt"

	"github.com/pders01/vidsrch/internal/api"
)

var (
	ErrMissingBinding = errors.New("missing view binding")
	ErrAlreadyMounted = errors.New("controller already mounted")
)

// TextField is the search input.
type TextField interface {
	Value() string
	// Clear empties the field without raising an input event.
	Clear()
}

// Toggle is a filter checkbox. Disabling never changes the checked value.
type Toggle interface {
	Checked() bool
	SetDisabled(disabled bool)
}

type StatusLine interface {
	SetText(text string)
}

// Indicator is the global "searching" flag.
type Indicator interface {
	SetActive(active bool)
}

type Notifier interface {
	Toast(message string)
}

// ResultsContainer replaces its whole content with one rendered batch.
type ResultsContainer interface {
	Replace(videos []api.Video, showOriginalThumbnail bool)
}

// Settings is the key lookup used for the render mode.
type Settings interface {
	Bool(key string) bool
}

// ViewBinding is the set of controls the controller reads and writes. It is
// validated once at mount. Results is looked up when a response settles and
// returns nil when the container has been torn down.
type ViewBinding struct {
	Input      TextField
	Excluded   Toggle
	Ignored    Toggle
	Downloaded Toggle
	Summarized Toggle
	Status     StatusLine
	Indicator  Indicator
	Toasts     Notifier
	Results    func() ResultsContainer
}

func (b *ViewBinding) Validate() error {
	if b == nil {
		return fmt.Errorf("%w: binding", ErrMissingBinding)
	}
	checks := []struct {
		name    string
		missing bool
	}{
		{"input", b.Input == nil},
		{"excluded", b.Excluded == nil},
		{"ignored", b.Ignored == nil},
		{"downloaded", b.Downloaded == nil},
		{"summarized", b.Summarized == nil},
		{"status", b.Status == nil},
		{"indicator", b.Indicator == nil},
		{"toasts", b.Toasts == nil},
		{"results", b.Results == nil},
	}
	for _, c := range checks {
		if c.missing {
			return fmt.Errorf("%w: %s", ErrMissingBinding, c.name)
		}
	}
	return nil
}

func (b *ViewBinding) filters() FilterSet {
	return FilterSet{
		Excluded:   b.Excluded.Checked(),
		Ignored:    b.Ignored.Checked(),
		Downloaded: b.Downloaded.Checked(),
		Summarized: b.Summarized.Checked(),
	}
}

// Event is raised by a control.
type Event struct {
	Source Source
}

// Handler reacts to an event on the event loop and may return work to run.
type Handler func(Event) Action

type listener struct {
	id      int
	handler Handler
}

// EventTarget dispatches control events to registered handlers. Each Listen
// call returns a remover tied to that registration only.
type EventTarget struct {
	nextID    int
	listeners map[Source][]listener
}

func NewEventTarget() *EventTarget {
	return &EventTarget{listeners: make(map[Source][]listener)}
}

func (t *EventTarget) Listen(source Source, handler Handler) (remove func()) {
	t.nextID++
	id := t.nextID
	t.listeners[source] = append(t.listeners[source], listener{id: id, handler: handler})

	return func() {
		ls := t.listeners[source]
		for i, l := range ls {
			if l.id == id {
				t.listeners[source] = append(ls[:i:i], ls[i+1:]...)
				return
			}
		}
	}
}

// Emit runs the listeners of source in registration order and collects
// their non-nil actions.
func (t *EventTarget) Emit(source Source) []Action {
	ls := append([]listener(nil), t.listeners[source]...)
	var actions []Action
	for _, l := range ls {
		if a := l.handler(Event{Source: source}); a != nil {
			actions = append(actions, a)
		}
	}
	return actions
}

// Listeners returns how many handlers are registered for source.
func (t *EventTarget) Listeners(source Source) int {
	return len(t.listeners[source])
}
