// Package models defines the shared data structures for scraping and listing.
package models

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// EmbedMetadata is the structured payload embedded in a video's embed page.
// Field tags follow the site's own JSON keys.
type EmbedMetadata struct {
	VideoID   int64       `json:"vid"`
	Title     string      `json:"title"`
	Author    Author      `json:"author"`
	Duration  int         `json:"duration"`
	PubDate   string      `json:"pubDate"`
	Thumbnail string      `json:"i"`
	Subtitles SubtitleMap `json:"cc"`
	Streams   StreamSet   `json:"ua"`
}

type Author struct {
	Name string `json:"name"`
}

// Subtitle points at a remote subtitle track.
type Subtitle struct {
	Path string `json:"path"`
}

// SubtitleMap maps a language code to its subtitle track. The site emits an
// empty JSON array instead of an object when a video has no subtitles, so
// unmarshalling tolerates both shapes.
type SubtitleMap map[string]Subtitle

func (m *SubtitleMap) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] == '[' || bytes.Equal(trimmed, []byte("null")) {
		*m = SubtitleMap{}
		return nil
	}
	var plain map[string]Subtitle
	if err := json.Unmarshal(trimmed, &plain); err != nil {
		return err
	}
	*m = plain
	return nil
}

// StreamSet maps codec -> height (numeric string) -> stream variant.
type StreamSet map[string]map[string]Stream

// Stream is one encoded rendition of a video.
type Stream struct {
	URL  string     `json:"url"`
	Meta StreamMeta `json:"meta"`
}

type StreamMeta struct {
	Width  int   `json:"w"`
	Height int   `json:"h"`
	Size   int64 `json:"size"`
}

// BestStream returns the variant with the greatest numeric height for the
// given codec. Height keys that are not numeric strings are skipped.
func (s StreamSet) BestStream(codec string) (stream Stream, height int, ok bool) {
	for key, variant := range s[codec] {
		h, err := strconv.Atoi(key)
		if err != nil {
			continue
		}
		if h > height {
			stream = variant
			height = h
			ok = true
		}
	}
	return stream, height, ok
}
