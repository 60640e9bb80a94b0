package search

import (
	"regexp"
	"strings"
)

// Source identifies which control raised an event.
type Source int

// Event sources, one per control.
const (
	SourceText Source = iota
	SourceExcluded
	SourceIgnored
	SourceDownloaded
	SourceSummarized
)

// Sources lists every control the controller listens to.
var Sources = []Source{SourceText, SourceExcluded, SourceIgnored, SourceDownloaded, SourceSummarized}

func (s Source) String() string {
	switch s {
	case SourceText:
		return "search"
	case SourceExcluded:
		return "excluded"
	case SourceIgnored:
		return "ignored"
	case SourceDownloaded:
		return "downloaded"
	case SourceSummarized:
		return "summarized"
	default:
		return "unknown"
	}
}

// Kind is the outcome of classifying one input event.
type Kind int

// Classification kinds. KindNoop means the event is ignored.
const (
	KindNoop Kind = iota
	KindDownload
	KindSearch
)

func (k Kind) String() string {
	switch k {
	case KindNoop:
		return "noop"
	case KindDownload:
		return "download"
	case KindSearch:
		return "search"
	default:
		return "unknown"
	}
}

// Classification carries the download id or the normalized search term.
type Classification struct {
	Kind Kind
	ID   string
	Term string
}

// SearchState remembers the last confirmed text-field value.
type SearchState struct {
	previousTerm string
}

func (s SearchState) PreviousTerm() string {
	return s.previousTerm
}

// Reset forgets the previous term.
func (s *SearchState) Reset() {
	s.previousTerm = ""
}

// The scheme check is case-sensitive and unanchored.
var downloadPattern = regexp.MustCompile(`https?://`)

// IsDownloadInput reports whether a trimmed value should start a download.
func IsDownloadInput(value string) bool {
	return downloadPattern.MatchString(value)
}

// Classify trims raw and decides between a no-op, a download and a search.
// A text-field value equal to the previous one is a no-op; a new one is
// recorded in state before classification continues.
func Classify(raw string, source Source, state *SearchState) Classification {
	value := strings.TrimSpace(raw)

	if source == SourceText {
		if value == state.previousTerm {
			return Classification{Kind: KindNoop}
		}
		state.previousTerm = value
	}

	if IsDownloadInput(value) {
		return Classification{Kind: KindDownload, ID: value}
	}

	return Classification{Kind: KindSearch, Term: strings.ToLower(value)}
}
