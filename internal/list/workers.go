package list

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/blckbxtv/rumbledir/models"
	"github.com/blckbxtv/rumbledir/pkg/cache"
	"github.com/blckbxtv/rumbledir/pkg/db"
	"github.com/blckbxtv/rumbledir/pkg/extract"
	"github.com/blckbxtv/rumbledir/pkg/fetcher"
	"github.com/blckbxtv/rumbledir/pkg/host"
	"github.com/blckbxtv/rumbledir/pkg/subtitles"
)

const progressInterval = time.Second

// Pipeline fans discovered video page URLs out to a bounded worker pool.
// Each worker runs detail extraction, embed-JSON extraction, and subtitle
// materialization for one URL at a time. The worker cap is a hard ceiling
// against the origin's connection limit.
type Pipeline struct {
	Store     *cache.Store
	Fetcher   *fetcher.Fetcher
	Subtitles *subtitles.Materializer
	Journal   *db.DB
	RunID     string
	Logger    *slog.Logger
}

// Run processes urls with workerCount concurrent workers and reports
// progress on a fixed interval. Cancellation is cooperative: when the
// progress surface cancels, each worker finishes its in-flight item and
// exits, all workers are still joined, and the partial results are returned
// with cancelled=true.
func (p *Pipeline) Run(ctx context.Context, urls []string, workerCount int, progress host.Progress) ([]Result, bool) {
	total := len(urls)
	if total == 0 {
		return nil, false
	}
	if workerCount > total {
		workerCount = total
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	jobs := make(chan Job, total)
	results := make(chan Result, total)
	var completed atomic.Int64

	var wg sync.WaitGroup
	for w := 1; w <= workerCount; w++ {
		wg.Add(1)
		go p.worker(ctx, w, &wg, jobs, results, &completed)
	}
	for _, u := range urls {
		jobs <- Job{URL: u}
	}
	close(jobs)

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	defer progress.Close()
	ticker := time.NewTicker(progressInterval)
	defer ticker.Stop()

	cancelled := false
	for waiting := true; waiting; {
		select {
		case <-done:
			waiting = false
		case <-ticker.C:
			finished := int(completed.Load())
			progress.Update(finished*100/total, fmt.Sprintf("Loading videos %d/%d", finished, total))
			if !cancelled && progress.Cancelled() {
				p.Logger.Info("Scrape cancelled, letting in-flight work finish")
				cancelled = true
				cancel()
			}
		}
	}
	close(results)

	collected := make([]Result, 0, total)
	for result := range results {
		collected = append(collected, result)
	}
	return collected, cancelled
}

func (p *Pipeline) worker(ctx context.Context, id int, wg *sync.WaitGroup, jobs <-chan Job, results chan<- Result, completed *atomic.Int64) {
	defer wg.Done()
	for job := range jobs {
		select {
		case <-ctx.Done():
			return
		default:
		}
		results <- p.process(id, job)
		completed.Add(1)
	}
}

// process runs the full per-URL pipeline: video page -> embed page ->
// subtitles. Both extraction stages go through the cache.
func (p *Pipeline) process(id int, job Job) Result {
	result := Result{URL: job.URL}

	rawDetail, computed, err := p.Store.GetOrCompute(cache.NSVideoPage, job.URL, func(itemKey string) (any, error) {
		return extract.Detail(p.Fetcher.FetchOrEmpty(itemKey, p.Logger))
	})
	recordAccess(p.Journal, p.Logger, p.RunID, job.URL, cache.NSVideoPage, !computed, err == nil, errMsg(err))
	if err != nil {
		p.Logger.Error("Error extracting video detail", "worker_id", id, "url", job.URL, "error", err)
		result.Error = err
		result.ErrorType = "detail_error"
		return result
	}
	if err := json.Unmarshal(rawDetail, &result.Detail); err != nil {
		result.Error = fmt.Errorf("failed to decode cached video detail for %s: %w", job.URL, err)
		result.ErrorType = "detail_error"
		return result
	}

	rawEmbed, computed, err := p.Store.GetOrCompute(cache.NSEmbedJSON, result.Detail.EmbedURL, func(itemKey string) (any, error) {
		return extract.EmbedJSON(itemKey, p.Fetcher.FetchOrEmpty(itemKey, p.Logger))
	})
	recordAccess(p.Journal, p.Logger, p.RunID, result.Detail.EmbedURL, cache.NSEmbedJSON, !computed, err == nil, errMsg(err))
	if err != nil {
		p.Logger.Error("Error extracting embed metadata", "worker_id", id, "url", result.Detail.EmbedURL, "error", err)
		result.Error = err
		result.ErrorType = "embed_error"
		return result
	}
	result.Embed = &models.EmbedMetadata{}
	if err := json.Unmarshal(rawEmbed, result.Embed); err != nil {
		result.Error = fmt.Errorf("failed to decode cached embed metadata for %s: %w", result.Detail.EmbedURL, err)
		result.ErrorType = "embed_error"
		return result
	}

	if result.Embed.VideoID != 0 && len(result.Embed.Subtitles) > 0 {
		videoID := strconv.FormatInt(result.Embed.VideoID, 10)
		paths, err := p.Subtitles.Materialize(videoID, result.Embed.Subtitles, p.Logger)
		if err != nil {
			// Subtitles are an extra; a failed write never fails the item.
			p.Logger.Warn("Failed to materialize subtitles", "worker_id", id, "video_id", videoID, "error", err)
		}
		result.Subtitles = paths
	}

	p.Logger.Debug("Worker finished processing", "worker_id", id, "url", job.URL)
	return result
}

func recordAccess(journal *db.DB, logger *slog.Logger, runID, url, namespace string, cacheHit, ok bool, errText string) {
	if journal == nil || runID == "" {
		return
	}
	if err := journal.RecordAccess(runID, url, namespace, cacheHit, ok, errText); err != nil {
		logger.Warn("Failed to record access", "url", url, "error", err)
	}
}

func errMsg(err error) string {
	if err != nil {
		return err.Error()
	}
	return ""
}
