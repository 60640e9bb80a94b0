package search

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pders01/vidsrch/internal/api"
	"github.com/pders01/vidsrch/internal/storage"
)

func mounted(t *testing.T) *fixture {
	t.Helper()
	f := newFixture()
	require.NoError(t, f.controller.Mount(f.binding, f.target))
	return f
}

func TestController_SearchWithFilter(t *testing.T) {
	f := mounted(t)
	f.client.videos = []api.Video{{ID: "a"}, {ID: "b"}}

	f.input.value = "Cats"
	f.excluded.checked = true
	actions := f.run(SourceExcluded)

	require.Len(t, actions, 1)
	search, ok := actions[0].(SearchAction)
	require.True(t, ok)
	assert.Equal(t, "cats", search.Term)
	assert.Equal(t, []string{"filter=cats&excluded=true"}, f.client.queries)

	assert.True(t, f.ignored.disabled)
	assert.False(t, f.excluded.disabled)
	assert.True(t, f.excluded.checked, "constraints never change checked values")

	require.Len(t, f.results.batches, 1)
	assert.Len(t, f.results.batches[0], 2)
	assert.Equal(t, "Found 2 videos", f.status.text)
	assert.False(t, f.indicator.active)
}

func TestController_IndicatorSetWhileInFlight(t *testing.T) {
	f := mounted(t)
	f.input.value = "cats"

	actions := f.target.Emit(SourceText)
	require.Len(t, actions, 1)
	assert.True(t, f.indicator.active)
	assert.Equal(t, "", f.status.text, "status is cleared when the request starts")

	f.controller.Settle(f.controller.Execute(context.Background(), actions[0]))
	assert.False(t, f.indicator.active)
}

func TestController_DuplicateTextIsOneRequest(t *testing.T) {
	f := mounted(t)
	f.input.value = "cats"

	f.run(SourceText)
	f.input.value = " cats "
	assert.Empty(t, f.run(SourceText))

	assert.Len(t, f.client.queries, 1)
}

func TestController_EmptyInitialTextIsNoop(t *testing.T) {
	f := mounted(t)

	assert.Empty(t, f.run(SourceText))
	assert.Empty(t, f.client.queries)
	assert.Empty(t, f.status.history, "a no-op does not touch the status line")
}

func TestController_ToggleWithEmptyTerm(t *testing.T) {
	f := mounted(t)
	f.client.videos = []api.Video{{ID: "a"}}
	f.status.text = "stale"
	f.downloaded.checked = true

	f.run(SourceDownloaded)

	assert.Equal(t, []string{"filter=&downloaded=true"}, f.client.queries)
	require.Len(t, f.results.batches, 1)
	assert.Equal(t, "", f.status.text, "no status without a term")
}

func TestController_NoVideosFound(t *testing.T) {
	f := mounted(t)
	f.input.value = "nothing"

	f.run(SourceText)

	require.Len(t, f.results.batches, 1)
	assert.Empty(t, f.results.batches[0])
	assert.Equal(t, "No videos found", f.status.text)
}

func TestController_DownloadPath(t *testing.T) {
	f := mounted(t)
	f.input.value = "  https://www.youtube.com/watch?v=XyZ  "
	f.status.text = "Found 3 videos"

	actions := f.run(SourceText)

	require.Len(t, actions, 1)
	assert.Equal(t, DownloadAction{ID: "https://www.youtube.com/watch?v=XyZ"}, actions[0])
	assert.Equal(t, []string{"https://www.youtube.com/watch?v=XyZ"}, f.client.downloads)
	assert.Empty(t, f.client.queries, "a download never lists")
	assert.Equal(t, []string{MsgDownloading}, f.toasts.messages)
	assert.Equal(t, 1, f.input.cleared)
	assert.Equal(t, "", f.input.value)
	assert.Equal(t, "", f.status.text)
	assert.False(t, f.indicator.active)
	assert.Empty(t, f.results.batches)
}

func TestController_DownloadFailureIsOnlyLogged(t *testing.T) {
	f := mounted(t)
	f.client.dlErr = errors.New("boom")
	f.input.value = "https://example.com/v"

	f.run(SourceText)

	assert.Equal(t, "", f.status.text)
	assert.Len(t, f.toasts.messages, 1)
}

func TestController_ClearedFieldAfterDownloadSearches(t *testing.T) {
	f := mounted(t)
	f.input.value = "https://example.com/v"
	f.run(SourceText)

	// The field is empty now; the next input event carries the empty value.
	f.run(SourceText)
	assert.Equal(t, []string{"filter="}, f.client.queries)
}

func TestController_ListFailure(t *testing.T) {
	f := mounted(t)
	f.client.listErr = errors.New("HTTP error: 500")
	f.input.value = "cats"

	f.run(SourceText)

	assert.Equal(t, "An error occurred: HTTP error: 500", f.status.text)
	assert.False(t, f.indicator.active)
	assert.Empty(t, f.results.batches)
}

func TestController_StaleResponseDiscarded(t *testing.T) {
	f := mounted(t)
	ctx := context.Background()

	f.input.value = "ca"
	first := f.target.Emit(SourceText)
	f.input.value = "cats"
	second := f.target.Emit(SourceText)
	require.Len(t, first, 1)
	require.Len(t, second, 1)

	f.client.videos = []api.Video{{ID: "new"}}
	latest := f.controller.Execute(ctx, second[0])
	f.client.videos = []api.Video{{ID: "old1"}, {ID: "old2"}}
	stale := f.controller.Execute(ctx, first[0])

	f.controller.Settle(latest)
	assert.False(t, f.indicator.active)
	f.controller.Settle(stale)

	require.Len(t, f.results.batches, 1)
	assert.Equal(t, "new", f.results.batches[0][0].ID)
	assert.Equal(t, "Found 1 videos", f.status.text)
}

func TestController_StaleResponseKeepsIndicator(t *testing.T) {
	f := mounted(t)
	ctx := context.Background()

	f.input.value = "a"
	first := f.target.Emit(SourceText)
	f.input.value = "ab"
	second := f.target.Emit(SourceText)

	f.controller.Settle(f.controller.Execute(ctx, first[0]))
	assert.True(t, f.indicator.active, "the latest request is still pending")

	f.controller.Settle(f.controller.Execute(ctx, second[0]))
	assert.False(t, f.indicator.active)
}

func TestController_MissingContainer(t *testing.T) {
	f := newFixture()
	f.binding.Results = func() ResultsContainer { return nil }
	require.NoError(t, f.controller.Mount(f.binding, f.target))
	f.client.videos = []api.Video{{ID: "a"}}
	f.input.value = "cats"

	f.run(SourceText)

	assert.Equal(t, "", f.status.text, "rendering stops before the status update")
	assert.False(t, f.indicator.active)
	assert.Zero(t, f.settings.reads)
}

func TestController_SettingReadOncePerBatch(t *testing.T) {
	f := mounted(t)
	f.settings.values[storage.ShowOriginalThumbnailKey] = true
	f.client.videos = []api.Video{{ID: "a"}, {ID: "b"}, {ID: "c"}}
	f.input.value = "cats"

	f.run(SourceText)

	assert.Equal(t, 1, f.settings.reads)
	assert.Equal(t, []bool{true}, f.results.showOriginals)
}

func TestController_NilSettings(t *testing.T) {
	f := newFixture()
	f.controller = NewController(f.client, nil, nil)
	require.NoError(t, f.controller.Mount(f.binding, f.target))
	f.input.value = "cats"

	f.run(SourceText)

	assert.Equal(t, []bool{false}, f.results.showOriginals)
}

func TestController_ExclusiveFiltersBothChecked(t *testing.T) {
	f := mounted(t)
	f.excluded.checked = true
	f.ignored.checked = true

	f.run(SourceIgnored)

	assert.True(t, f.ignored.disabled)
	assert.True(t, f.excluded.disabled)
	assert.Equal(t, []string{"filter=&excluded=true&ignored=true"}, f.client.queries)

	f.excluded.set(false)
	f.run(SourceExcluded)
	assert.False(t, f.ignored.disabled)
	assert.True(t, f.excluded.disabled)
}

func TestController_MountRegistersOncePerSource(t *testing.T) {
	f := mounted(t)
	for _, s := range Sources {
		assert.Equal(t, 1, f.target.Listeners(s), s.String())
	}

	assert.ErrorIs(t, f.controller.Mount(f.binding, f.target), ErrAlreadyMounted)
	for _, s := range Sources {
		assert.Equal(t, 1, f.target.Listeners(s), s.String())
	}
}

func TestController_UnmountRemovesHandlers(t *testing.T) {
	f := mounted(t)
	f.input.value = "cats"
	f.run(SourceText)
	assert.Equal(t, "cats", f.controller.State().PreviousTerm())

	f.controller.Unmount()
	assert.False(t, f.controller.Mounted())
	for _, s := range Sources {
		assert.Zero(t, f.target.Listeners(s), s.String())
	}
	assert.Empty(t, f.controller.State().PreviousTerm())

	f.input.value = "dogs"
	assert.Empty(t, f.run(SourceText))
	assert.Len(t, f.client.queries, 1)
}

func TestController_RemountAfterUnmount(t *testing.T) {
	f := mounted(t)
	f.input.value = "cats"
	f.run(SourceText)
	f.controller.Unmount()

	require.NoError(t, f.controller.Mount(f.binding, f.target))
	for _, s := range Sources {
		assert.Equal(t, 1, f.target.Listeners(s), s.String())
	}

	// The previous term was forgotten, so the same value searches again.
	f.run(SourceText)
	assert.Len(t, f.client.queries, 2)
}

func TestController_ResponseAfterUnmountDropped(t *testing.T) {
	f := mounted(t)
	f.input.value = "cats"
	actions := f.target.Emit(SourceText)
	outcome := f.controller.Execute(context.Background(), actions[0])

	f.controller.Unmount()
	f.controller.Settle(outcome)

	assert.Empty(t, f.results.batches)
}

func TestController_SeqSurvivesRemount(t *testing.T) {
	f := mounted(t)
	f.input.value = "cats"
	old := f.target.Emit(SourceText)
	f.controller.Unmount()

	require.NoError(t, f.controller.Mount(f.binding, f.target))
	f.input.value = "dogs"
	latest := f.target.Emit(SourceText)

	f.controller.Settle(f.controller.Execute(context.Background(), old[0]))
	assert.Empty(t, f.results.batches, "a request from the previous mount is stale")

	f.controller.Settle(f.controller.Execute(context.Background(), latest[0]))
	assert.Len(t, f.results.batches, 1)
	assert.Equal(t, uint64(2), f.controller.LatestSeq())
}

func TestController_MountValidatesBinding(t *testing.T) {
	f := newFixture()
	f.binding.Status = nil

	err := f.controller.Mount(f.binding, f.target)
	assert.ErrorIs(t, err, ErrMissingBinding)
	assert.Contains(t, err.Error(), "status")
	assert.False(t, f.controller.Mounted())
	assert.Zero(t, f.target.Listeners(SourceText))

	assert.ErrorIs(t, f.controller.Mount(nil, f.target), ErrMissingBinding)
}

func TestController_HandleWithoutMount(t *testing.T) {
	f := newFixture()
	f.input.value = "cats"
	assert.Nil(t, f.controller.Handle(Event{Source: SourceText}))
	assert.Nil(t, f.controller.Execute(context.Background(), nil))
}
