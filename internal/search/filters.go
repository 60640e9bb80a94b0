package search

import (
	"net/url"
	"strings"

	"github.com/pders01/vidsrch/internal/api"
)

// FilterSet is read from the four toggles on every search event.
type FilterSet struct {
	Excluded   bool
	Ignored    bool
	Downloaded bool
	Summarized bool
}

// DisabledFlags is the disabled affordance pushed to the two exclusive toggles.
type DisabledFlags struct {
	IgnoredDisabled  bool
	ExcludedDisabled bool
}

// ApplyConstraints derives which toggles must be disabled. Checked values are
// never changed, so a FilterSet with both flags set is passed through as is.
func ApplyConstraints(filters FilterSet) DisabledFlags {
	return DisabledFlags{
		IgnoredDisabled:  filters.Excluded,
		ExcludedDisabled: filters.Ignored,
	}
}

// encodeURIComponent leaves the same characters unescaped as the browser function.
var uriComponentFixups = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

// Invalid UTF-8 is replaced with U+FFFD before escaping.
func encodeURIComponent(s string) string {
	return uriComponentFixups.Replace(url.QueryEscape(strings.ToValidUTF8(s, "\uFFFD")))
}

// BuildQuery encodes the term and appends the true filters in a fixed order.
func BuildQuery(term string, filters FilterSet) string {
	var b strings.Builder
	b.WriteString("filter=")
	b.WriteString(encodeURIComponent(term))
	if filters.Excluded {
		b.WriteString("&excluded=true")
	}
	if filters.Downloaded {
		b.WriteString("&downloaded=true")
	}
	if filters.Ignored {
		b.WriteString("&ignored=true")
	}
	if filters.Summarized {
		b.WriteString("&summarized=true")
	}
	return b.String()
}

// ListPath is the request path of the listing endpoint for term and filters.
func ListPath(term string, filters FilterSet) string {
	return api.VideosPath + "?" + BuildQuery(term, filters)
}
