package extract

import (
	"errors"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/blckbxtv/rumbledir/models"
)

// ErrNoEmbedURL reports a video page without an embed-URL marker. Callers get
// a typed miss instead of a garbage URL sliced out of an empty match.
var ErrNoEmbedURL = errors.New("no embed url marker in video page")

var embedURLPattern = regexp.MustCompile(`"embedUrl":"https?://.+?/embed/.+?"`)

// Detail extracts the embed URL and plain-text description from one video
// page. The description is best-effort and may be empty; a missing embed
// marker yields ErrNoEmbedURL alongside whatever description was found.
func Detail(markup string) (models.VideoDetail, error) {
	detail := models.VideoDetail{Description: description(markup)}

	match := embedURLPattern.FindString(markup)
	if match == "" {
		return detail, ErrNoEmbedURL
	}
	parts := strings.Split(match, `"`)
	detail.EmbedURL = parts[len(parts)-2]
	return detail, nil
}

// description concatenates the page's description blocks with blank-line
// separators. goquery's Text() strips inline tags and decodes entities.
func description(markup string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return ""
	}

	var blocks []string
	doc.Find("p.media-description").Each(func(_ int, sel *goquery.Selection) {
		text := strings.TrimSpace(sel.Text())
		if text != "" {
			blocks = append(blocks, text)
		}
	})
	return strings.Join(blocks, "\n\n")
}
