package tui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/lipgloss"

	"github.com/pders01/vidsrch/internal/api"
)

// videoItem is one result row.
type videoItem struct {
	video        api.Video
	showOriginal bool
	now          time.Time
}

func (i videoItem) Title() string {
	title := i.video.Title
	if title == "" {
		title = i.video.ID
	}
	return title + i.flags()
}

func (i videoItem) flags() string {
	var marks []string
	if i.video.Downloaded {
		marks = append(marks, "downloaded")
	}
	if i.video.Summarized {
		marks = append(marks, "summarized")
	}
	if i.video.Ignored {
		marks = append(marks, "ignored")
	}
	if i.video.Excluded {
		marks = append(marks, "excluded")
	}
	if len(marks) == 0 {
		return ""
	}
	return " " + FlagStyle.Render("["+strings.Join(marks, " ")+"]")
}

func (i videoItem) Description() string {
	var parts []string
	if i.video.ChannelName != "" {
		parts = append(parts, i.video.ChannelName)
	}
	if when := relativeTime(i.video.PublishedAt, i.now); when != "" {
		parts = append(parts, when)
	}
	if thumb := i.video.ThumbnailFor(i.showOriginal); thumb != "" {
		parts = append(parts, truncateMiddle(thumb, 48))
	}
	return lipgloss.NewStyle().
		Foreground(MutedColor).
		Render(strings.Join(parts, " • "))
}

func (i videoItem) FilterValue() string {
	return i.video.Title + " " + i.video.ChannelName
}

// resultsList is the results container. It satisfies search.ResultsContainer.
type resultsList struct {
	list  *list.Model
	now   func() time.Time
	count int
}

// Replace swaps the whole content for one batch in server order.
func (r *resultsList) Replace(videos []api.Video, showOriginalThumbnail bool) {
	now := r.now()
	items := make([]list.Item, len(videos))
	for i, v := range videos {
		items[i] = videoItem{video: v, showOriginal: showOriginalThumbnail, now: now}
	}
	r.list.SetItems(items)
	r.list.ResetSelected()
	r.count = len(videos)
}

// rerender rebuilds the rows in place for a new render mode.
func (r *resultsList) rerender(showOriginalThumbnail bool) {
	items := r.list.Items()
	for i, it := range items {
		if v, ok := it.(videoItem); ok {
			v.showOriginal = showOriginalThumbnail
			items[i] = v
		}
	}
	r.list.SetItems(items)
}

func (r *resultsList) selected() (api.Video, bool) {
	if v, ok := r.list.SelectedItem().(videoItem); ok {
		return v.video, true
	}
	return api.Video{}, false
}
