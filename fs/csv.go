// Package fs provides file-based sinks for extracted error records.
package fs

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"

	"github.com/fwojciec/errscrape"
)

// FileName converts an output name to a base file name by replacing path
// separators, so every output lands directly in the sink directory.
func FileName(name, ext string) string {
	name = strings.Map(func(r rune) rune {
		if r == '/' || r == '\\' || r == os.PathSeparator {
			return '_'
		}
		return r
	}, name)
	return name + ext
}

// Ensure CSVSink implements errscrape.Sink at compile time.
var _ errscrape.Sink = (*CSVSink)(nil)

// CSVSink writes each output as a headerless two-column CSV file
// <dir>/<name>.csv.
type CSVSink struct {
	dir string
}

// NewCSVSink creates a new CSVSink that writes to dir.
func NewCSVSink(dir string) *CSVSink {
	return &CSVSink{dir: dir}
}

// Write writes records as code,message rows. The file is written to a
// temporary path first and renamed into place, so a failed write never
// leaves a truncated file behind.
func (s *CSVSink) Write(ctx context.Context, name string, records []errscrape.Record) error {
	if name == "" {
		return errscrape.Errorf(errscrape.EINVALID, "output name required")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return err
	}

	path := filepath.Join(s.dir, FileName(name, ".csv"))
	tmp := path + ".tmp"

	f, err := os.Create(tmp)
	if err != nil {
		return err
	}

	w := csv.NewWriter(f)
	for _, r := range records {
		if err := w.Write([]string{r.Code, r.Message}); err != nil {
			f.Close()
			os.Remove(tmp)
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return err
	}

	return os.Rename(tmp, path)
}

// Close is a no-op; every Write closes its own file.
func (s *CSVSink) Close() error {
	return nil
}
