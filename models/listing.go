package models

// VideoDetail holds what a single video page yields: the embed URL carrying
// the metadata payload, and the plain-text description shown on the page.
type VideoDetail struct {
	Description string `json:"description"`
	EmbedURL    string `json:"embedUrl"`
}

// StreamInfo is the technical stream description attached to a list entry.
type StreamInfo struct {
	Codec    string `json:"codec"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	Duration int    `json:"duration"`
}

// ListEntry is one playable directory entry handed to the host.
type ListEntry struct {
	Label     string     `json:"label"`
	Plot      string     `json:"plot"`
	Duration  int        `json:"duration"`
	Date      string     `json:"date"`      // DD.MM.YYYY
	Aired     string     `json:"aired"`     // YYYY-MM-DD
	DateAdded string     `json:"dateadded"` // YYYY-MM-DD HH:MM:SS
	Studio    string     `json:"studio"`
	Cast      []string   `json:"cast"`
	Stream    StreamInfo `json:"stream"`
	Subtitles []string   `json:"subtitles,omitempty"`
	Thumb     string     `json:"thumb"`
	Poster    string     `json:"poster"`
	PlayURL   string     `json:"play_url"`
}
