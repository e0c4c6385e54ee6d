// Package host is the boundary to the home-theater application: the
// directory listing surface the scraped entries flow into, and the progress
// surface the orchestrator reports to. Concrete implementations here write
// NDJSON to stdout and progress to the structured log; an embedding host
// supplies its own.
package host

import "github.com/blckbxtv/rumbledir/models"

// Directory receives the listing for one session handle.
type Directory interface {
	Add(handle int, entry models.ListEntry) error
	SortByDateAdded(handle int) error
	End(handle int) error
}

// Progress is the cancellable progress surface shown while scraping.
type Progress interface {
	Update(percent int, message string)
	Cancelled() bool
	Close()
}
