package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/errscrape"
)

// Ensure LoggingParser implements errscrape.Parser.
var _ errscrape.Parser = (*LoggingParser)(nil)

// LoggingParser wraps a Parser with debug logging.
type LoggingParser struct {
	next   errscrape.Parser
	logger *slog.Logger
}

// NewLoggingParser creates a new LoggingParser.
func NewLoggingParser(next errscrape.Parser, logger *slog.Logger) *LoggingParser {
	return &LoggingParser{next: next, logger: logger}
}

// Parse logs the document size and parse duration.
func (p *LoggingParser) Parse(html string) (doc errscrape.Document, err error) {
	defer func(begin time.Time) {
		p.logger.Debug("parse",
			"bytes", len(html),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return p.next.Parse(html)
}
