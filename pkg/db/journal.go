package db

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// BeginRun records the start of one logical listing run and returns its id.
func (db *DB) BeginRun(baseURL string) (string, error) {
	runID := uuid.NewString()
	_, err := db.Exec(
		"INSERT INTO runs (run_id, base_url, started_at) VALUES (?, ?, ?)",
		runID, baseURL, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return "", fmt.Errorf("failed to insert run: %w", err)
	}
	return runID, nil
}

// RecordAccess journals one URL access within a run.
func (db *DB) RecordAccess(runID, url, namespace string, cacheHit, ok bool, errMsg string) error {
	_, err := db.Exec(
		"INSERT INTO accesses (run_id, url, namespace, cache_hit, ok, error, accessed_at) VALUES (?, ?, ?, ?, ?, ?, ?)",
		runID, url, namespace, boolToInt(cacheHit), boolToInt(ok), errMsg,
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to record access: %w", err)
	}
	return nil
}

// FinishRun stamps the run's end and final counts.
func (db *DB) FinishRun(runID string, discovered, scraped, failed int, cancelled bool) error {
	_, err := db.Exec(
		"UPDATE runs SET finished_at = ?, discovered = ?, scraped = ?, failed = ?, cancelled = ? WHERE run_id = ?",
		time.Now().UTC().Format(time.RFC3339), discovered, scraped, failed, boolToInt(cancelled), runID,
	)
	if err != nil {
		return fmt.Errorf("failed to finish run: %w", err)
	}
	return nil
}

// RunStats summarizes one run for diagnostics.
type RunStats struct {
	RunID      string
	BaseURL    string
	Discovered int
	Scraped    int
	Failed     int
	Cancelled  bool
	Accesses   int
	CacheHits  int
}

// GetRunStats returns the journal summary for a run.
func (db *DB) GetRunStats(runID string) (*RunStats, error) {
	stats := &RunStats{RunID: runID}
	var cancelled int
	err := db.QueryRow(
		"SELECT base_url, discovered, scraped, failed, cancelled FROM runs WHERE run_id = ?", runID,
	).Scan(&stats.BaseURL, &stats.Discovered, &stats.Scraped, &stats.Failed, &cancelled)
	if err != nil {
		return nil, fmt.Errorf("failed to query run: %w", err)
	}
	stats.Cancelled = cancelled != 0

	err = db.QueryRow(
		"SELECT COUNT(*), COALESCE(SUM(cache_hit), 0) FROM accesses WHERE run_id = ?", runID,
	).Scan(&stats.Accesses, &stats.CacheHits)
	if err != nil {
		return nil, fmt.Errorf("failed to query accesses: %w", err)
	}
	return stats, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
