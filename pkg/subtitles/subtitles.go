// Package subtitles persists remote subtitle tracks as local .srt files.
// The host reads the language from the file name, so tracks must exist
// locally as <dir>/<videoID>/<lang>.srt.
package subtitles

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/blckbxtv/rumbledir/models"
)

// FetchFunc fetches a remote subtitle body. Injected so tests count network
// calls without a server.
type FetchFunc func(url string) (string, error)

type Materializer struct {
	dir   string
	fetch FetchFunc
}

func New(dir string, fetch FetchFunc) *Materializer {
	return &Materializer{dir: dir, fetch: fetch}
}

// Materialize downloads each subtitle track that does not yet exist on disk
// and returns the local paths, sorted by language code. File existence is the
// idempotence marker: a present file is never re-fetched.
func (m *Materializer) Materialize(videoID string, tracks models.SubtitleMap, logger *slog.Logger) ([]string, error) {
	if len(tracks) == 0 {
		return nil, nil
	}

	languages := make([]string, 0, len(tracks))
	for lang := range tracks {
		languages = append(languages, lang)
	}
	sort.Strings(languages)

	videoDir := filepath.Join(m.dir, videoID)
	if err := os.MkdirAll(videoDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create subtitle directory: %w", err)
	}

	var paths []string
	for _, lang := range languages {
		path := filepath.Join(videoDir, lang+".srt")
		if _, err := os.Stat(path); err == nil {
			paths = append(paths, path)
			continue
		}

		body, err := m.fetch(tracks[lang].Path)
		if err != nil {
			logger.Debug("Subtitle fetch failed", "video_id", videoID, "lang", lang, "error", err)
			continue
		}
		if err := os.WriteFile(path, []byte(body), 0644); err != nil {
			return nil, fmt.Errorf("failed to write subtitle %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}
