package tui

import (
	"time"

	"github.com/dustin/go-humanize"
	"github.com/muesli/reflow/truncate"
)

const ellipsis = "…"

// truncateEnd shortens s to at most limit cells, appending an ellipsis if
// truncation occurs.
func truncateEnd(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	return truncate.StringWithTail(s, uint(limit), ellipsis)
}

// truncateMiddle keeps both ends of s around a single ellipsis. Used for URLs
// where the host and the id both carry meaning.
func truncateMiddle(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	r := []rune(s)
	n := len(r)
	if n <= limit {
		return s
	}
	if limit <= 1 {
		return ellipsis
	}
	keep := limit - 1
	left := keep / 2
	right := keep - left
	return string(r[:left]) + ellipsis + string(r[n-right:])
}

// relativeTime renders a publish time like "3 days ago"; zero times are blank.
func relativeTime(t, now time.Time) string {
	if t.IsZero() {
		return ""
	}
	return humanize.RelTime(t, now, "ago", "from now")
}
