package sqlite_test

import (
	"context"
	"testing"

	"github.com/fwojciec/errscrape"
	"github.com/fwojciec/errscrape/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSink(t *testing.T) *sqlite.Sink {
	t.Helper()

	db := sqlite.NewDB(":memory:")
	require.NoError(t, db.Open())
	t.Cleanup(func() { db.Close() })

	sink, err := sqlite.NewSink(context.Background(), db, errscrape.ProviderBing)
	require.NoError(t, err)
	return sink
}

var sampleRecords = []errscrape.Record{
	{Code: "100", Message: "Internal error"},
	{Code: "105", Message: "Invalid credentials"},
	{Code: "100", Message: "Internal error"},
}

func TestSink_Write(t *testing.T) {
	t.Parallel()

	t.Run("stores records in order", func(t *testing.T) {
		t.Parallel()

		ctx := context.Background()
		sink := newSink(t)

		require.NoError(t, sink.Write(ctx, "bing_errors", sampleRecords))

		got, err := sink.FindRecords(ctx, sqlite.RecordFilter{RunID: sink.RunID(), Output: "bing_errors"})
		require.NoError(t, err)
		assert.Equal(t, sampleRecords, got)
	})

	t.Run("records output metadata", func(t *testing.T) {
		t.Parallel()

		ctx := context.Background()
		sink := newSink(t)

		require.NoError(t, sink.Write(ctx, "bing_errors", sampleRecords))
		require.NoError(t, sink.Write(ctx, "bing_all_dump", sampleRecords[:2]))

		outputs, err := sink.FindOutputs(ctx, sink.RunID())
		require.NoError(t, err)
		require.Len(t, outputs, 2)
		assert.Equal(t, "bing_all_dump", outputs[0].Name)
		assert.Equal(t, 2, outputs[0].Count)
		assert.Equal(t, "bing_errors", outputs[1].Name)
		assert.Equal(t, 3, outputs[1].Count)
		assert.Equal(t, sqlite.Checksum(sampleRecords), outputs[1].Checksum)
		assert.False(t, outputs[1].WrittenAt.IsZero())
	})

	t.Run("rewriting an output replaces it", func(t *testing.T) {
		t.Parallel()

		ctx := context.Background()
		sink := newSink(t)

		require.NoError(t, sink.Write(ctx, "out", sampleRecords))
		require.NoError(t, sink.Write(ctx, "out", []errscrape.Record{{Code: "1", Message: "only"}}))

		got, err := sink.FindRecords(ctx, sqlite.RecordFilter{RunID: sink.RunID(), Output: "out"})
		require.NoError(t, err)
		assert.Equal(t, []errscrape.Record{{Code: "1", Message: "only"}}, got)
	})

	t.Run("empty output is stored", func(t *testing.T) {
		t.Parallel()

		ctx := context.Background()
		sink := newSink(t)

		require.NoError(t, sink.Write(ctx, "empty", nil))

		got, err := sink.FindRecords(ctx, sqlite.RecordFilter{RunID: sink.RunID(), Output: "empty"})
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("rejects empty name", func(t *testing.T) {
		t.Parallel()

		err := newSink(t).Write(context.Background(), "", sampleRecords)

		require.Error(t, err)
		assert.Equal(t, errscrape.EINVALID, errscrape.ErrorCode(err))
	})
}

func TestSink_FindRecords(t *testing.T) {
	t.Parallel()

	t.Run("paginates", func(t *testing.T) {
		t.Parallel()

		ctx := context.Background()
		sink := newSink(t)
		require.NoError(t, sink.Write(ctx, "out", sampleRecords))

		got, err := sink.FindRecords(ctx, sqlite.RecordFilter{RunID: sink.RunID(), Output: "out", Limit: 1, Offset: 1})
		require.NoError(t, err)
		assert.Equal(t, sampleRecords[1:2], got)

		got, err = sink.FindRecords(ctx, sqlite.RecordFilter{RunID: sink.RunID(), Output: "out", Offset: 2})
		require.NoError(t, err)
		assert.Equal(t, sampleRecords[2:], got)
	})

	t.Run("unknown output", func(t *testing.T) {
		t.Parallel()

		sink := newSink(t)

		_, err := sink.FindRecords(context.Background(), sqlite.RecordFilter{RunID: sink.RunID(), Output: "missing"})

		require.Error(t, err)
		assert.Equal(t, errscrape.ENOTFOUND, errscrape.ErrorCode(err))
	})

	t.Run("runs are isolated", func(t *testing.T) {
		t.Parallel()

		ctx := context.Background()
		db := sqlite.NewDB(":memory:")
		require.NoError(t, db.Open())
		defer db.Close()

		first, err := sqlite.NewSink(ctx, db, errscrape.ProviderBing)
		require.NoError(t, err)
		second, err := sqlite.NewSink(ctx, db, errscrape.ProviderBing)
		require.NoError(t, err)
		require.NotEqual(t, first.RunID(), second.RunID())

		require.NoError(t, first.Write(ctx, "out", sampleRecords))
		require.NoError(t, second.Write(ctx, "out", sampleRecords[:1]))

		got, err := first.FindRecords(ctx, sqlite.RecordFilter{RunID: first.RunID(), Output: "out"})
		require.NoError(t, err)
		assert.Len(t, got, 3)
	})
}

func TestChecksum(t *testing.T) {
	t.Parallel()

	assert.Equal(t, sqlite.Checksum(sampleRecords), sqlite.Checksum(append([]errscrape.Record(nil), sampleRecords...)))
	assert.NotEqual(t, sqlite.Checksum(sampleRecords), sqlite.Checksum(sampleRecords[:2]))
	assert.NotEqual(t,
		sqlite.Checksum([]errscrape.Record{{Code: "ab", Message: "c"}}),
		sqlite.Checksum([]errscrape.Record{{Code: "a", Message: "bc"}}),
	)
}
