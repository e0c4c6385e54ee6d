package host

import "log/slog"

// LogProgress reports progress through the structured log. It never cancels;
// cancellation comes from interactive hosts.
type LogProgress struct {
	logger *slog.Logger
	title  string
}

func NewLogProgress(logger *slog.Logger, title string) *LogProgress {
	return &LogProgress{logger: logger, title: title}
}

func (p *LogProgress) Update(percent int, message string) {
	p.logger.Info("Scrape progress", "title", p.title, "percent", percent, "message", message)
}

func (p *LogProgress) Cancelled() bool { return false }

func (p *LogProgress) Close() {}
