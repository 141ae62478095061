package mock

import (
	"context"
	"sync"

	"github.com/fwojciec/errscrape"
)

var _ errscrape.Sink = (*Sink)(nil)

// Sink is a mock implementation of errscrape.Sink.
type Sink struct {
	WriteFn func(ctx context.Context, name string, records []errscrape.Record) error
	CloseFn func() error
}

func (s *Sink) Write(ctx context.Context, name string, records []errscrape.Record) error {
	return s.WriteFn(ctx, name, records)
}

func (s *Sink) Close() error {
	return s.CloseFn()
}

// Output is one Write call captured by MemorySink.
type Output struct {
	Name    string
	Records []errscrape.Record
}

var _ errscrape.Sink = (*MemorySink)(nil)

// MemorySink records every Write in order. It is safe for concurrent use.
type MemorySink struct {
	mu      sync.Mutex
	outputs []Output
}

func (s *MemorySink) Write(_ context.Context, name string, records []errscrape.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.outputs = append(s.outputs, Output{Name: name, Records: append([]errscrape.Record(nil), records...)})
	return nil
}

func (s *MemorySink) Close() error {
	return nil
}

// Outputs returns the captured writes in call order.
func (s *MemorySink) Outputs() []Output {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Output(nil), s.outputs...)
}
