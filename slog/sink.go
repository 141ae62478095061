package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/errscrape"
)

// Ensure LoggingSink implements errscrape.Sink.
var _ errscrape.Sink = (*LoggingSink)(nil)

// LoggingSink wraps a Sink with logging.
type LoggingSink struct {
	next   errscrape.Sink
	logger *slog.Logger
}

// NewLoggingSink creates a new LoggingSink.
func NewLoggingSink(next errscrape.Sink, logger *slog.Logger) *LoggingSink {
	return &LoggingSink{next: next, logger: logger}
}

// Write logs the output name and record count and delegates to the wrapped sink.
func (s *LoggingSink) Write(ctx context.Context, name string, records []errscrape.Record) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("write output",
			"name", name,
			"records", len(records),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Write(ctx, name, records)
}

// Close delegates to the wrapped sink.
func (s *LoggingSink) Close() error {
	return s.next.Close()
}
