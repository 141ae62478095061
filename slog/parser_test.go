package slog_test

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/fwojciec/errscrape"
	"github.com/fwojciec/errscrape/goquery"
	"github.com/fwojciec/errscrape/mock"
	errslog "github.com/fwojciec/errscrape/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingParser_Parse(t *testing.T) {
	t.Parallel()

	t.Run("logs at debug level", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

		parser := errslog.NewLoggingParser(goquery.NewParser(), logger)
		doc, err := parser.Parse("<table><tr><td>1</td></tr></table>")

		require.NoError(t, err)
		assert.Len(t, doc.FindAll("td"), 1)
		output := buf.String()
		assert.Contains(t, output, "level=DEBUG")
		assert.Contains(t, output, "bytes=34")
	})

	t.Run("silent at info level", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))

		parser := errslog.NewLoggingParser(goquery.NewParser(), logger)
		_, err := parser.Parse("<p>ok</p>")

		require.NoError(t, err)
		assert.Empty(t, buf.String())
	})

	t.Run("logs error on failure", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
		inner := &mock.Parser{
			ParseFn: func(html string) (errscrape.Document, error) {
				return nil, errors.New("bad markup")
			},
		}

		_, err := errslog.NewLoggingParser(inner, logger).Parse("x")

		require.Error(t, err)
		assert.Contains(t, buf.String(), "err=\"bad markup\"")
	})
}
