package tui

import (
	"fmt"
	"strings"
	"time"
)

// Short messages the app shows in its own notice line. Search results use
// the status line owned by the controller.
const (
	MsgOpening          = "Opening…"
	MsgNothingSelected  = "No video selected"
	MsgOriginalThumbs   = "Showing original thumbnails"
	MsgCachedThumbs     = "Showing cached thumbnails"
	MsgRenderingDetails = "Rendering…"
)

func MsgOpened(title string) string {
	return fmt.Sprintf("Opened '%s'", strings.TrimSpace(title))
}

// statusLine is the controller-owned result status. It satisfies search.StatusLine.
type statusLine struct {
	text string
}

func (s *statusLine) SetText(text string) { s.text = text }

func (s *statusLine) Text() string { return s.text }

// notice is a transient app message shown next to the status line.
type notice struct {
	text string
	kind StatusKind
}

// searchIndicator is the global searching flag. It satisfies search.Indicator.
type searchIndicator struct {
	active bool
}

func (i *searchIndicator) SetActive(active bool) { i.active = active }

const toastTTL = 3 * time.Second

type toast struct {
	message string
	expires time.Time
}

// toastQueue collects toasts raised during one update. It satisfies search.Notifier.
type toastQueue struct {
	items []toast
	now   func() time.Time
	added int
}

func newToastQueue() *toastQueue {
	return &toastQueue{now: time.Now}
}

func (q *toastQueue) Toast(message string) {
	q.items = append(q.items, toast{message: message, expires: q.now().Add(toastTTL)})
	q.added++
}

// takeAdded reports how many toasts were raised since the last call.
func (q *toastQueue) takeAdded() int {
	n := q.added
	q.added = 0
	return n
}

// prune drops expired toasts.
func (q *toastQueue) prune() {
	now := q.now()
	kept := q.items[:0]
	for _, t := range q.items {
		if now.Before(t.expires) {
			kept = append(kept, t)
		}
	}
	q.items = kept
}

func (q *toastQueue) Messages() []string {
	out := make([]string, len(q.items))
	for i, t := range q.items {
		out[i] = t.message
	}
	return out
}
