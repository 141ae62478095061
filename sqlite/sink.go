package sqlite

import (
	"context"
	"database/sql"
	"strconv"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/errscrape"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ errscrape.Sink = (*Sink)(nil)

// Output describes one stored output of a run.
type Output struct {
	RunID     string
	Name      string
	Count     int
	Checksum  string
	WrittenAt time.Time
}

// RecordFilter selects stored records. RunID and Output are required.
type RecordFilter struct {
	RunID  string
	Output string
	Limit  int
	Offset int
}

// Sink implements errscrape.Sink using SQLite. Every Sink is one run; its
// outputs are keyed by the run id.
type Sink struct {
	db    *DB
	runID string
	now   func() time.Time
}

// NewSink registers a new run for provider and returns a Sink that writes
// into it.
func NewSink(ctx context.Context, db *DB, provider errscrape.ProviderID) (*Sink, error) {
	s := &Sink{
		db:    db,
		runID: uuid.New().String(),
		now:   func() time.Time { return time.Now().UTC() },
	}

	_, err := db.ExecContext(ctx, `
		INSERT INTO runs (id, provider, started_at)
		VALUES (?, ?, ?)
	`, s.runID, string(provider), s.now().Format(time.RFC3339))
	if err != nil {
		return nil, err
	}

	return s, nil
}

// RunID returns the id of the run this sink writes to.
func (s *Sink) RunID() string {
	return s.runID
}

// Write stores records under name, replacing any earlier output of the same
// name in this run.
func (s *Sink) Write(ctx context.Context, name string, records []errscrape.Record) error {
	if name == "" {
		return errscrape.Errorf(errscrape.EINVALID, "output name required")
	}

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM outputs WHERE run_id = ? AND output = ?`, s.runID, name); err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO outputs (run_id, output, count, checksum, written_at)
		VALUES (?, ?, ?, ?, ?)
	`, s.runID, name, len(records), Checksum(records), s.now().Format(time.RFC3339))
	if err != nil {
		return err
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO records (run_id, output, position, code, message)
		VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, r := range records {
		if _, err := stmt.ExecContext(ctx, s.runID, name, i, r.Code, r.Message); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// Close is a no-op; the DB is owned by the caller.
func (s *Sink) Close() error {
	return nil
}

// FindOutputs returns the outputs of a run in name order.
func (s *Sink) FindOutputs(ctx context.Context, runID string) ([]*Output, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT run_id, output, count, checksum, written_at
		FROM outputs
		WHERE run_id = ?
		ORDER BY output
	`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var outputs []*Output
	for rows.Next() {
		var o Output
		var writtenAt string
		if err := rows.Scan(&o.RunID, &o.Name, &o.Count, &o.Checksum, &writtenAt); err != nil {
			return nil, err
		}
		if o.WrittenAt, err = parseRFC3339(writtenAt, "written_at"); err != nil {
			return nil, err
		}
		outputs = append(outputs, &o)
	}
	return outputs, rows.Err()
}

// FindRecords returns stored records in their original order.
// Returns ENOTFOUND if the output does not exist.
func (s *Sink) FindRecords(ctx context.Context, filter RecordFilter) ([]errscrape.Record, error) {
	var exists int
	err := s.db.QueryRowContext(ctx, `
		SELECT 1 FROM outputs WHERE run_id = ? AND output = ?
	`, filter.RunID, filter.Output).Scan(&exists)
	if err == sql.ErrNoRows {
		return nil, errscrape.Errorf(errscrape.ENOTFOUND, "output %q not found", filter.Output)
	} else if err != nil {
		return nil, err
	}

	var query strings.Builder
	query.WriteString(`
		SELECT code, message
		FROM records
		WHERE run_id = ? AND output = ?
		ORDER BY position`)
	args := []any{filter.RunID, filter.Output}
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := []errscrape.Record{}
	for rows.Next() {
		var r errscrape.Record
		if err := rows.Scan(&r.Code, &r.Message); err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// Checksum returns the hex xxhash64 digest of records. Equal record
// sequences always produce equal checksums.
func Checksum(records []errscrape.Record) string {
	d := xxhash.New()
	for _, r := range records {
		_, _ = d.WriteString(r.Code)
		_, _ = d.WriteString("\x00")
		_, _ = d.WriteString(r.Message)
		_, _ = d.WriteString("\n")
	}
	return strconv.FormatUint(d.Sum64(), 16)
}
