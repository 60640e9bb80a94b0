package search

import "fmt"

const (
	MsgDownloading = "Downloading video..."
	MsgNoVideos    = "No videos found"
)

func MsgFoundVideos(n int) string {
	return fmt.Sprintf("Found %d videos", n)
}

func MsgError(err error) string {
	return fmt.Sprintf("An error occurred: %v", err)
}

// ResultStatus is the status line after a successful listing.
func ResultStatus(term string, count int) string {
	if term == "" {
		return ""
	}
	if count > 0 {
		return MsgFoundVideos(count)
	}
	return MsgNoVideos
}
