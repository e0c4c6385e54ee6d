package list

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/blckbxtv/rumbledir/pkg/cache"
	"github.com/blckbxtv/rumbledir/pkg/db"
	"github.com/blckbxtv/rumbledir/pkg/extract"
	"github.com/blckbxtv/rumbledir/pkg/fetcher"
)

// Discoverer enumerates a creator's video pages by walking the numbered
// listing pages until one comes back empty.
type Discoverer struct {
	Store   *cache.Store
	Fetcher *fetcher.Fetcher
	Journal *db.DB
	RunID   string
	Logger  *slog.Logger
}

func pageURL(baseURL string, page int) string {
	return fmt.Sprintf("%s?page=%d", baseURL, page)
}

// Discover returns every video page URL for the creator at baseURL. Listing
// pages go through the cache; the staleness probe runs first so a stale
// cached walk never silently hides new videos.
func (d *Discoverer) Discover(baseURL string) ([]string, error) {
	d.probeStaleness(baseURL)

	var videoPageURLs []string
	for page := 1; ; page++ {
		listingURL := pageURL(baseURL, page)

		raw, computed, err := d.Store.GetOrCompute(cache.NSUserPage, listingURL, func(itemKey string) (any, error) {
			return extract.VideoPageLinks(itemKey, d.Fetcher.FetchOrEmpty(itemKey, d.Logger)), nil
		})
		recordAccess(d.Journal, d.Logger, d.RunID, listingURL, cache.NSUserPage, !computed, err == nil, errMsg(err))
		if err != nil {
			return nil, err
		}

		var urls []string
		if err := json.Unmarshal(raw, &urls); err != nil {
			return nil, fmt.Errorf("failed to decode cached listing page %s: %w", listingURL, err)
		}
		if len(urls) == 0 {
			// First empty page terminates the walk.
			break
		}
		videoPageURLs = append(videoPageURLs, urls...)
	}
	return videoPageURLs, nil
}

// probeStaleness fetches page 1 uncached and checks its video pages against
// the video-detail namespace. Any page missing there means new videos
// appeared since the cached walk was built, so the whole listing namespace is
// wiped. Only page 1 is re-fetched, keeping the probe cheap.
func (d *Discoverer) probeStaleness(baseURL string) {
	listingURL := pageURL(baseURL, 1)
	markup := d.Fetcher.FetchOrEmpty(listingURL, d.Logger)

	for _, videoPageURL := range extract.VideoPageLinks(listingURL, markup) {
		if !d.Store.Exists(cache.NSVideoPage, videoPageURL) {
			d.Logger.Debug("Listing cache stale, clearing", "missing", videoPageURL)
			d.Store.Invalidate(cache.NSUserPage)
			break
		}
	}
}
