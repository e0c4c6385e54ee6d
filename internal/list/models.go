package list

import "github.com/blckbxtv/rumbledir/models"

// Job defines one video page for a worker to scrape.
type Job struct {
	URL string
}

// Result holds the outcome of one scraped video page. Results arrive in
// worker completion order, not submission order.
type Result struct {
	URL       string
	Detail    models.VideoDetail
	Embed     *models.EmbedMetadata
	Subtitles []string
	Error     error
	ErrorType string
}
