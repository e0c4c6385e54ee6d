// Package extract holds the pure markup extractors: string in, structured
// data out. Nothing in here touches the network, so every extractor is
// testable against fixture markup.
//
// The site's listing and video pages are matched with fixed structural
// markers. The embed metadata lives inside script text, which is why those
// extractors are regex-based rather than DOM queries.
package extract

import (
	"regexp"
	"strings"
)

var videoLinkPattern = regexp.MustCompile(`class=video-item--a href=.+?>`)

// VideoPageLinks extracts the video page URLs from one listing page.
// Links in the markup are site-relative; they are resolved against the
// listing URL with its last two path segments dropped (the /user/<name>
// trailer).
func VideoPageLinks(listingURL, markup string) []string {
	prefix := listingPrefix(listingURL)

	var urls []string
	for _, part := range videoLinkPattern.FindAllString(markup, -1) {
		href := part[strings.LastIndex(part, "href=")+len("href="):]
		href = strings.TrimSuffix(href, ">")
		if href == "" {
			continue
		}
		urls = append(urls, prefix+href)
	}
	return urls
}

func listingPrefix(listingURL string) string {
	parts := strings.Split(listingURL, "/")
	if len(parts) <= 2 {
		return listingURL
	}
	return strings.Join(parts[:len(parts)-2], "/")
}
