package mock_test

import (
	"context"
	"testing"

	"github.com/fwojciec/errscrape"
	"github.com/fwojciec/errscrape/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSink_ImplementsInterface(t *testing.T) {
	t.Parallel()

	var _ errscrape.Sink = &mock.Sink{}
	var _ errscrape.Sink = &mock.MemorySink{}
}

func TestSink_Write(t *testing.T) {
	t.Parallel()

	t.Run("delegates to WriteFn", func(t *testing.T) {
		t.Parallel()

		var calledWith string
		s := &mock.Sink{
			WriteFn: func(_ context.Context, name string, _ []errscrape.Record) error {
				calledWith = name
				return nil
			},
		}

		err := s.Write(context.Background(), "bing_all_dump", nil)

		require.NoError(t, err)
		assert.Equal(t, "bing_all_dump", calledWith)
	})
}

func TestMemorySink_Outputs(t *testing.T) {
	t.Parallel()

	s := &mock.MemorySink{}
	records := []errscrape.Record{{Code: "1", Message: "a"}}

	require.NoError(t, s.Write(context.Background(), "first", records))
	require.NoError(t, s.Write(context.Background(), "second", nil))
	records[0].Code = "changed"

	outputs := s.Outputs()
	require.Len(t, outputs, 2)
	assert.Equal(t, "first", outputs[0].Name)
	assert.Equal(t, "1", outputs[0].Records[0].Code)
	assert.Equal(t, "second", outputs[1].Name)
}
