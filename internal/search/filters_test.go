package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestApplyConstraints(t *testing.T) {
	tests := []struct {
		name    string
		filters FilterSet
		want    DisabledFlags
	}{
		{"none", FilterSet{}, DisabledFlags{}},
		{"excluded disables ignored", FilterSet{Excluded: true}, DisabledFlags{IgnoredDisabled: true}},
		{"ignored disables excluded", FilterSet{Ignored: true}, DisabledFlags{ExcludedDisabled: true}},
		{"both forced", FilterSet{Excluded: true, Ignored: true}, DisabledFlags{IgnoredDisabled: true, ExcludedDisabled: true}},
		{"other filters are irrelevant", FilterSet{Downloaded: true, Summarized: true}, DisabledFlags{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			first := ApplyConstraints(tt.filters)
			second := ApplyConstraints(tt.filters)
			assert.Equal(t, tt.want, first)
			assert.Equal(t, first, second, "applying twice yields the same flags")
		})
	}
}

func TestBuildQuery(t *testing.T) {
	tests := []struct {
		name    string
		term    string
		filters FilterSet
		want    string
	}{
		{"term only", "cats", FilterSet{}, "filter=cats"},
		{"excluded", "cats", FilterSet{Excluded: true}, "filter=cats&excluded=true"},
		{"fixed order", "cats", FilterSet{Excluded: true, Ignored: true, Downloaded: true, Summarized: true},
			"filter=cats&excluded=true&downloaded=true&ignored=true&summarized=true"},
		{"ignored before summarized", "", FilterSet{Summarized: true, Ignored: true}, "filter=&ignored=true&summarized=true"},
		{"spaces", "funny cats", FilterSet{}, "filter=funny%20cats"},
		{"reserved characters", "a&b=c?d/e#f+g", FilterSet{}, "filter=a%26b%3Dc%3Fd%2Fe%23f%2Bg"},
		{"browser-safe characters", "it's (fun)!*~._-", FilterSet{}, "filter=it's%20(fun)!*~._-"},
		{"unicode", "café", FilterSet{}, "filter=caf%C3%A9"},
		{"invalid utf-8", "a\xffb", FilterSet{}, "filter=a%EF%BF%BDb"},
		{"truncated sequence", "caf\xc3", FilterSet{}, "filter=caf%EF%BF%BD"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BuildQuery(tt.term, tt.filters))
		})
	}
}

func TestListPath(t *testing.T) {
	assert.Equal(t, "/api/videos?filter=cats&excluded=true", ListPath("cats", FilterSet{Excluded: true}))
	assert.Equal(t, "/api/videos?filter=", ListPath("", FilterSet{}))
}

func TestResultStatus(t *testing.T) {
	assert.Equal(t, "No videos found", ResultStatus("cats", 0))
	assert.Equal(t, "Found 3 videos", ResultStatus("cats", 3))
	assert.Equal(t, "Found 1 videos", ResultStatus("cats", 1))
	assert.Equal(t, "", ResultStatus("", 0))
	assert.Equal(t, "", ResultStatus("", 12))
}
