// Package excelize writes extracted error records as xlsx workbooks.
package excelize

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fwojciec/errscrape"
	"github.com/fwojciec/errscrape/fs"
	"github.com/xuri/excelize/v2"
)

// SheetName is the worksheet holding the records.
const SheetName = "errors"

// Ensure Sink implements errscrape.Sink at compile time.
var _ errscrape.Sink = (*Sink)(nil)

// Sink writes each output as a workbook <dir>/<name>.xlsx with code in
// column A and message in column B, without a header row.
type Sink struct {
	dir string
}

// NewSink creates a new Sink that writes to dir.
func NewSink(dir string) *Sink {
	return &Sink{dir: dir}
}

// Write saves records as a single-sheet workbook. Codes are stored as text
// so leading zeros survive.
func (s *Sink) Write(ctx context.Context, name string, records []errscrape.Record) error {
	if name == "" {
		return errscrape.Errorf(errscrape.EINVALID, "output name required")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	for i, r := range records {
		row := i + 1
		if err := f.SetCellStr(SheetName, fmt.Sprintf("A%d", row), r.Code); err != nil {
			return err
		}
		if err := f.SetCellStr(SheetName, fmt.Sprintf("B%d", row), r.Message); err != nil {
			return err
		}
	}
	if err := f.SetColWidth(SheetName, "A", "A", 20); err != nil {
		return err
	}
	if err := f.SetColWidth(SheetName, "B", "B", 80); err != nil {
		return err
	}

	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return err
	}
	return f.SaveAs(filepath.Join(s.dir, fs.FileName(name, ".xlsx")))
}

// Close is a no-op; every Write saves its own workbook.
func (s *Sink) Close() error {
	return nil
}
