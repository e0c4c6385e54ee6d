package extract

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/blckbxtv/rumbledir/models"
)

// ErrNoEmbedJSON reports an embed page without the script-embedded JSON
// assignment for its video id.
var ErrNoEmbedJSON = errors.New("no embed json assignment in embed page")

var objectPattern = regexp.MustCompile(`\{.*\}`)

// VideoID derives the video identifier from an embed URL: the second-to-last
// path segment (embed URLs end in /embed/<id>/).
func VideoID(embedURL string) string {
	parts := strings.Split(embedURL, "/")
	if len(parts) < 2 {
		return ""
	}
	return parts[len(parts)-2]
}

// EmbedJSON locates the inline JSON assignment keyed by the embed URL's video
// id, strips the site's non-JSON function-call artifacts, and parses the
// remainder into EmbedMetadata.
func EmbedJSON(embedURL, markup string) (*models.EmbedMetadata, error) {
	videoID := VideoID(embedURL)

	assignPattern, err := regexp.Compile(`\["` + regexp.QuoteMeta(videoID) + `"\]=\{.+?\};`)
	if err != nil {
		return nil, fmt.Errorf("failed to build embed marker pattern: %w", err)
	}
	part := assignPattern.FindString(markup)
	if part == "" {
		return nil, fmt.Errorf("%w: %s", ErrNoEmbedJSON, embedURL)
	}

	raw := objectPattern.FindString(part)
	raw = strings.ReplaceAll(raw, ",loaded:a()", "")
	raw = strings.ReplaceAll(raw, ",loaded:d()", "")
	raw = strings.ReplaceAll(raw, ",loaded:getTime()", "")
	raw = strings.ReplaceAll(raw, `\/`, "/")

	var meta models.EmbedMetadata
	if err := json.Unmarshal([]byte(raw), &meta); err != nil {
		return nil, fmt.Errorf("failed to parse embed json for %s: %w", embedURL, err)
	}
	return &meta, nil
}
