package list

import (
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/blckbxtv/rumbledir/models"
	"github.com/blckbxtv/rumbledir/pkg/cache"
	"github.com/blckbxtv/rumbledir/pkg/db"
	"github.com/blckbxtv/rumbledir/pkg/fetcher"
	"github.com/blckbxtv/rumbledir/pkg/host"
	"github.com/blckbxtv/rumbledir/pkg/subtitles"
)

// Action implements the host invocation contract: three positional inputs
// (base content URL, listing session handle, addon-call query string), a
// directory listing on stdout, and an end-of-directory signal no matter what
// failed upstream.
func Action(c *cli.Context) error {
	logLevel := slog.LevelInfo
	if c.Bool("quiet") {
		logLevel = slog.LevelError
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))

	config, err := models.LoadConfig(c.String("config"))
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(2)
	}
	config.ApplyEnv()
	if c.IsSet("workers") {
		config.WorkerCount = c.Int("workers")
	}
	if c.IsSet("data-dir") {
		config.DataDir = c.String("data-dir")
	}

	baseURL := config.BaseURL
	if c.Args().Get(0) != "" {
		baseURL = c.Args().Get(0)
	}
	handle := -1
	if h, convErr := strconv.Atoi(c.Args().Get(1)); convErr == nil {
		handle = h
	}
	if rawQuery := strings.TrimPrefix(c.Args().Get(2), "?"); rawQuery != "" {
		params, parseErr := url.ParseQuery(rawQuery)
		if parseErr != nil {
			logger.Warn("Ignoring malformed addon-call parameters", "query", rawQuery, "error", parseErr)
		} else {
			logger.Debug("Addon-call parameters", "params", params.Encode())
		}
	}

	if err := os.MkdirAll(config.DataDir, 0755); err != nil {
		logger.Error("failed to create data directory", "error", err)
		os.Exit(2)
	}
	cachePath := filepath.Join(config.DataDir, cache.DefaultFileName)
	store := cache.Load(cachePath)

	journal, err := db.Open(config.DataDir)
	if err != nil {
		logger.Warn("Fetch journal unavailable", "error", err)
		journal = nil
	} else {
		defer journal.Close()
	}

	var runID string
	if journal != nil {
		runID, err = journal.BeginRun(baseURL)
		if err != nil {
			logger.Warn("Failed to begin journal run", "error", err)
		}
	}

	f := fetcher.New()
	dir := host.NewNDJSONDirectory(os.Stdout)
	creator := baseURL[strings.LastIndex(baseURL, "/")+1:]

	discoverer := &Discoverer{Store: store, Fetcher: f, Journal: journal, RunID: runID, Logger: logger}
	videoPageURLs, err := discoverer.Discover(baseURL)
	if err != nil {
		logger.Error("Discovery failed", "base_url", baseURL, "error", err)
		endListing(dir, handle, logger)
		os.Exit(2)
	}
	logger.Info("Discovered video pages", "creator", creator, "count", len(videoPageURLs))

	pipeline := &Pipeline{
		Store:     store,
		Fetcher:   f,
		Subtitles: subtitles.New(filepath.Join(config.DataDir, "subs"), f.Fetch),
		Journal:   journal,
		RunID:     runID,
		Logger:    logger,
	}
	progress := host.NewLogProgress(logger, creator)
	results, cancelled := pipeline.Run(c.Context, videoPageURLs, config.WorkerCount, progress)

	var emitted, failed int
	for _, result := range results {
		if result.Error != nil {
			failed++
			continue
		}
		entry, buildErr := host.BuildEntry(result.Embed, result.Detail.Description, result.Subtitles)
		if buildErr != nil {
			logger.Warn("Skipping unplayable video", "url", result.URL, "error", buildErr)
			failed++
			continue
		}
		if addErr := dir.Add(handle, entry); addErr != nil {
			logger.Error("Failed to emit list entry", "url", result.URL, "error", addErr)
			failed++
			continue
		}
		emitted++
	}

	if err := dir.SortByDateAdded(handle); err != nil {
		logger.Error("Failed to emit sort directive", "error", err)
	}
	endListing(dir, handle, logger)

	if journal != nil && runID != "" {
		if err := journal.FinishRun(runID, len(videoPageURLs), emitted, failed, cancelled); err != nil {
			logger.Warn("Failed to finish journal run", "error", err)
		}
	}

	// A cancelled run keeps whatever cache it started with: partial session
	// results must not overwrite a complete earlier walk.
	if cancelled {
		logger.Info("Run cancelled, skipping cache flush", "emitted", emitted)
		return nil
	}
	if err := store.Flush(cachePath); err != nil {
		logger.Error("Failed to flush cache", "path", cachePath, "error", err)
		os.Exit(2)
	}

	logger.Info("Listing finished", "emitted", emitted, "failed", failed)
	if failed > 0 && emitted == 0 && len(videoPageURLs) > 0 {
		os.Exit(2)
	}
	if failed > 0 {
		os.Exit(1)
	}
	return nil
}

func endListing(dir host.Directory, handle int, logger *slog.Logger) {
	if err := dir.End(handle); err != nil {
		logger.Error("Failed to emit end-of-directory", "error", err)
	}
}
