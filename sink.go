package errscrape

import "context"

// Sink receives the extracted records. Each call to Write produces one
// named output; records are written in the order given.
type Sink interface {
	// Write stores records under name. Implementations decide what a name
	// maps to (a file, a sheet, a table partition).
	Write(ctx context.Context, name string, records []Record) error

	// Close flushes pending output and releases resources.
	Close() error
}

// OutputName joins an output base and a group name.
func OutputName(base, group string) string {
	return base + "_" + group
}
