package host

import (
	"errors"
	"fmt"
	"html"
	"time"

	"github.com/blckbxtv/rumbledir/models"
)

// The host plays the mp4 renditions; the stream-info codec tag is the host's
// name for that codec family.
const (
	streamCodec    = "mp4"
	streamInfoName = "mpeg4"
)

// ErrNoPlayableStream reports embed metadata without any usable mp4 variant.
var ErrNoPlayableStream = errors.New("no playable stream variant")

// BuildEntry assembles one directory entry from a video's scraped metadata.
// The entry's playable target is the best-quality stream: the variant with
// the greatest numeric height.
func BuildEntry(embed *models.EmbedMetadata, description string, subtitlePaths []string) (models.ListEntry, error) {
	stream, height, ok := embed.Streams.BestStream(streamCodec)
	if !ok {
		return models.ListEntry{}, fmt.Errorf("%w for video %d", ErrNoPlayableStream, embed.VideoID)
	}

	title := html.UnescapeString(embed.Title)
	author := html.UnescapeString(embed.Author.Name)

	plot := title
	if description != "" {
		plot = title + "\n\n" + description
	}

	entry := models.ListEntry{
		Label:     title,
		Plot:      plot,
		Duration:  embed.Duration,
		Studio:    author,
		Cast:      []string{author},
		Subtitles: subtitlePaths,
		Thumb:     embed.Thumbnail,
		Poster:    embed.Thumbnail,
		PlayURL:   stream.URL,
		Stream: models.StreamInfo{
			Codec:    streamInfoName,
			Width:    stream.Meta.Width,
			Height:   height,
			Duration: embed.Duration,
		},
	}

	// All three host date fields derive from the single pubDate timestamp.
	// An unparsable timestamp leaves them empty rather than failing the entry.
	if published, err := time.Parse(time.RFC3339, embed.PubDate); err == nil {
		entry.Date = published.Format("02.01.2006")
		entry.Aired = published.Format("2006-01-02")
		entry.DateAdded = published.Format("2006-01-02 15:04:05")
	}

	return entry, nil
}
