package api

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/spf13/cast"
)

// Video is one record returned by the listing endpoint. Unknown fields are ignored.
type Video struct {
	ID                string    `json:"id"`
	Title             string    `json:"title"`
	URL               string    `json:"url,omitempty"`
	ChannelName       string    `json:"channelName,omitempty"`
	Thumbnail         string    `json:"thumbnail,omitempty"`
	OriginalThumbnail string    `json:"originalThumbnail,omitempty"`
	Summary           string    `json:"summary,omitempty"`
	PublishedAt       time.Time `json:"publishedAt,omitempty"`
	Downloaded        bool      `json:"downloaded,omitempty"`
	Summarized        bool      `json:"summarized,omitempty"`
	Ignored           bool      `json:"ignored,omitempty"`
	Excluded          bool      `json:"excluded,omitempty"`
}

// UnmarshalJSON decodes one record leniently. A numeric id becomes its decimal
// string, flags accept numbers and strings, and a publishedAt that cannot be
// parsed is left zero instead of failing the whole listing.
func (v *Video) UnmarshalJSON(data []byte) error {
	type plain Video
	raw := struct {
		*plain
		ID          any `json:"id"`
		PublishedAt any `json:"publishedAt"`
		Downloaded  any `json:"downloaded"`
		Summarized  any `json:"summarized"`
		Ignored     any `json:"ignored"`
		Excluded    any `json:"excluded"`
	}{plain: (*plain)(v)}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return err
	}

	v.ID = cast.ToString(raw.ID)
	v.PublishedAt = parseTimestamp(raw.PublishedAt)
	v.Downloaded = cast.ToBool(raw.Downloaded)
	v.Summarized = cast.ToBool(raw.Summarized)
	v.Ignored = cast.ToBool(raw.Ignored)
	v.Excluded = cast.ToBool(raw.Excluded)
	return nil
}

// Epoch values above this are milliseconds.
const epochMillisThreshold = 1e11

func parseTimestamp(value any) time.Time {
	switch t := value.(type) {
	case json.Number:
		n, err := t.Int64()
		if err != nil {
			return time.Time{}
		}
		if n > epochMillisThreshold {
			return time.UnixMilli(n).UTC()
		}
		return time.Unix(n, 0).UTC()
	case string:
		if t == "" {
			return time.Time{}
		}
		parsed, err := cast.ToTimeE(t)
		if err != nil {
			return time.Time{}
		}
		return parsed
	default:
		return time.Time{}
	}
}

// ThumbnailFor returns the thumbnail for the given render mode, falling back
// to whichever variant the server provided.
func (v Video) ThumbnailFor(showOriginal bool) string {
	if showOriginal && v.OriginalThumbnail != "" {
		return v.OriginalThumbnail
	}
	if v.Thumbnail != "" {
		return v.Thumbnail
	}
	return v.OriginalThumbnail
}

// WatchURL is the best link for opening the video in a player.
func (v Video) WatchURL() string {
	if v.URL != "" {
		return v.URL
	}
	if v.ID != "" {
		return "https://www.youtube.com/watch?v=" + v.ID
	}
	return ""
}

// DownloadRequest is the payload of the download endpoint.
type DownloadRequest struct {
	ID       string `json:"id"`
	External bool   `json:"external"`
}
