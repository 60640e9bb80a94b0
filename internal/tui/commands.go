package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/pders01/vidsrch/internal/api"
	"github.com/pders01/vidsrch/internal/search"
	"github.com/pders01/vidsrch/internal/storage"
)

type searchDebounceFireMsg struct {
	seq int
}

type outcomeMsg struct {
	outcome search.Outcome
}

type initialLoadedMsg struct {
	videos []api.Video
	err    error
}

type toastExpiredMsg struct{}

type detailRenderedMsg struct {
	id      string
	content string
}

type thumbnailModeMsg struct {
	showOriginal bool
	err          error
}

type openedMsg struct {
	title string
}

// scheduleSearch debounces text input. Only the tick carrying the latest
// sequence number raises the event.
func (a *App) scheduleSearch() tea.Cmd {
	a.searchSeq++
	if a.debounce <= 0 {
		return a.emit(search.SourceText)
	}
	seq := a.searchSeq
	return tea.Tick(a.debounce, func(time.Time) tea.Msg {
		return searchDebounceFireMsg{seq: seq}
	})
}

// flushSearch raises a pending text event now.
func (a *App) flushSearch() tea.Cmd {
	a.searchSeq++
	return a.emit(search.SourceText)
}

func (a *App) execute(action search.Action) tea.Cmd {
	ctx := a.ctx
	return func() tea.Msg {
		return outcomeMsg{outcome: a.controller.Execute(ctx, action)}
	}
}

// loadInitial fills the list before the first search, like the server
// rendered page did.
func (a *App) loadInitial() tea.Cmd {
	if a.client == nil {
		return nil
	}
	ctx := a.ctx
	client := a.client
	query := search.BuildQuery("", search.FilterSet{})
	return func() tea.Msg {
		videos, err := client.ListVideos(ctx, query)
		return initialLoadedMsg{videos: videos, err: err}
	}
}

func expireToasts() tea.Cmd {
	return tea.Tick(toastTTL, func(time.Time) tea.Msg {
		return toastExpiredMsg{}
	})
}

func detailMarkdown(v api.Video, showOriginal bool, now time.Time) string {
	var b strings.Builder
	title := v.Title
	if title == "" {
		title = v.ID
	}
	fmt.Fprintf(&b, "# %s\n\n", title)

	var meta []string
	if v.ChannelName != "" {
		meta = append(meta, v.ChannelName)
	}
	if !v.PublishedAt.IsZero() {
		meta = append(meta, fmt.Sprintf("%s (%s)", v.PublishedAt.Format(time.RFC1123), relativeTime(v.PublishedAt, now)))
	}
	if len(meta) > 0 {
		fmt.Fprintf(&b, "*%s*\n\n", strings.Join(meta, " • "))
	}

	if url := v.WatchURL(); url != "" {
		fmt.Fprintf(&b, "[Watch](%s)\n\n", url)
	}
	if thumb := v.ThumbnailFor(showOriginal); thumb != "" {
		fmt.Fprintf(&b, "Thumbnail: %s\n\n", thumb)
	}

	var flags []string
	for _, f := range []struct {
		on   bool
		name string
	}{
		{v.Downloaded, "downloaded"},
		{v.Summarized, "summarized"},
		{v.Ignored, "ignored"},
		{v.Excluded, "excluded"},
	} {
		if f.on {
			flags = append(flags, "`"+f.name+"`")
		}
	}
	if len(flags) > 0 {
		fmt.Fprintf(&b, "%s\n\n", strings.Join(flags, " "))
	}

	b.WriteString("---\n\n")
	if v.Summary != "" {
		b.WriteString(v.Summary)
	} else {
		b.WriteString("_No summary yet._")
	}
	return b.String()
}

func (a *App) renderDetail(v api.Video) tea.Cmd {
	markdown := detailMarkdown(v, a.showOriginalThumbnail(), time.Now())
	r, err := a.getRenderer()
	if err != nil {
		return func() tea.Msg {
			return detailRenderedMsg{id: v.ID, content: "Error initializing renderer: " + err.Error()}
		}
	}
	return func() tea.Msg {
		rendered, err := r.Render(markdown)
		if err != nil {
			return detailRenderedMsg{id: v.ID, content: fmt.Sprintf("Failed to render video: %s\n\nPress Escape to go back.", err)}
		}
		return detailRenderedMsg{id: v.ID, content: rendered}
	}
}

func (a *App) openVideo(v api.Video) tea.Cmd {
	url := v.WatchURL()
	return a.openWith(v.Title, url, func(u string) error { return a.launcher.Open(u) })
}

func (a *App) openThumbnail(v api.Video) tea.Cmd {
	url := v.ThumbnailFor(a.showOriginalThumbnail())
	return a.openWith(v.Title, url, func(u string) error { return a.launcher.OpenImage(u) })
}

func (a *App) openWith(title, url string, open func(string) error) tea.Cmd {
	if a.launcher == nil {
		return nil
	}
	if url == "" {
		a.setNotice(MsgNothingSelected, StatusInfo)
		return nil
	}
	a.setNotice(MsgOpening, StatusInfo)
	return func() tea.Msg {
		if err := open(url); err != nil {
			return errorCmdMsg("failed to open "+url, err)
		}
		return openedMsg{title: title}
	}
}

func (a *App) toggleThumbnailMode() tea.Cmd {
	if a.settings == nil {
		return nil
	}
	settings := a.settings
	return func() tea.Msg {
		show, err := settings.Toggle(storage.ShowOriginalThumbnailKey)
		return thumbnailModeMsg{showOriginal: show, err: err}
	}
}
