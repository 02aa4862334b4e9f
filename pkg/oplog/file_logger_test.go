package oplog_test

import (
	"io"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nvmem-project/nvmem-go/pkg/oplog"
)

func sampleEvent(op oplog.Op, when time.Time) oplog.Event {
	offset := uint32(128)
	length := 4
	return oplog.Event{
		Timestamp: when,
		DeviceID:  "7a3cbb6e-1111-2222-3333-444455556666",
		Op:        op,
		Offset:    &offset,
		Length:    &length,
		Duration:  25 * time.Microsecond,
	}
}

func TestFileLoggerRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trace.nvlog")

	logger, err := oplog.NewFileLogger(path)
	require.NoError(t, err)

	base := time.Now().UTC()
	logger.Log(sampleEvent(oplog.OpRead, base))
	logger.Log(sampleEvent(oplog.OpWrite, base.Add(time.Millisecond)))
	require.NoError(t, logger.Close())

	reader, err := oplog.NewReader(path)
	require.NoError(t, err)
	defer reader.Close()

	first, err := reader.Next()
	require.NoError(t, err)
	assert.Equal(t, oplog.OpRead, first.Op)
	require.NotNil(t, first.Offset)
	assert.Equal(t, uint32(128), *first.Offset)
	assert.Equal(t, 25*time.Microsecond, first.Duration)

	second, err := reader.Next()
	require.NoError(t, err)
	assert.Equal(t, oplog.OpWrite, second.Op)

	_, err = reader.Next()
	assert.Equal(t, io.EOF, err)
}

func TestFileLoggerAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trace.nvlog")

	first, err := oplog.NewFileLogger(path)
	require.NoError(t, err)
	first.Log(sampleEvent(oplog.OpRead, time.Now()))
	require.NoError(t, first.Close())

	second, err := oplog.NewFileLogger(path)
	require.NoError(t, err)
	second.Log(sampleEvent(oplog.OpWrite, time.Now()))
	require.NoError(t, second.Close())

	reader, err := oplog.NewReader(path)
	require.NoError(t, err)
	defer reader.Close()

	count := 0
	for {
		if _, err := reader.Next(); err == io.EOF {
			break
		} else if err != nil {
			t.Fatalf("Next() error = %v", err)
		}
		count++
	}
	assert.Equal(t, 2, count)
}

func TestFileLoggerCloseIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trace.nvlog")

	logger, err := oplog.NewFileLogger(path)
	require.NoError(t, err)
	require.NoError(t, logger.Close())
	require.NoError(t, logger.Close())

	// Logging after close is silently ignored
	logger.Log(sampleEvent(oplog.OpRead, time.Now()))
}

func TestFilteredReader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trace.nvlog")

	logger, err := oplog.NewFileLogger(path)
	require.NoError(t, err)

	base := time.Now().UTC()
	logger.Log(sampleEvent(oplog.OpRead, base))
	logger.Log(sampleEvent(oplog.OpWrite, base.Add(time.Second)))

	failed := sampleEvent(oplog.OpErase, base.Add(2*time.Second))
	failed.Error = "erase: unaligned access"
	logger.Log(failed)
	require.NoError(t, logger.Close())

	t.Run("ByOp", func(t *testing.T) {
		op := oplog.OpWrite
		reader, err := oplog.NewFilteredReader(path, oplog.Filter{Op: &op})
		require.NoError(t, err)
		defer reader.Close()

		event, err := reader.Next()
		require.NoError(t, err)
		assert.Equal(t, oplog.OpWrite, event.Op)

		_, err = reader.Next()
		assert.Equal(t, io.EOF, err)
	})

	t.Run("ErrorsOnly", func(t *testing.T) {
		reader, err := oplog.NewFilteredReader(path, oplog.Filter{ErrorsOnly: true})
		require.NoError(t, err)
		defer reader.Close()

		event, err := reader.Next()
		require.NoError(t, err)
		assert.Equal(t, oplog.OpErase, event.Op)
		assert.NotEmpty(t, event.Error)
	})

	t.Run("ByTime", func(t *testing.T) {
		start := base.Add(500 * time.Millisecond)
		reader, err := oplog.NewFilteredReader(path, oplog.Filter{TimeStart: &start})
		require.NoError(t, err)
		defer reader.Close()

		event, err := reader.Next()
		require.NoError(t, err)
		assert.Equal(t, oplog.OpWrite, event.Op)
	})
}

func TestEncodeDecodeEvent(t *testing.T) {
	event := sampleEvent(oplog.OpErase, time.Now().UTC())
	event.Offset = nil
	event.Length = nil
	from, to := uint32(0), uint32(4096)
	event.From = &from
	event.To = &to

	data, err := oplog.EncodeEvent(event)
	require.NoError(t, err)

	decoded, err := oplog.DecodeEvent(data)
	require.NoError(t, err)

	assert.Equal(t, event.Op, decoded.Op)
	assert.Equal(t, event.DeviceID, decoded.DeviceID)
	require.NotNil(t, decoded.From)
	require.NotNil(t, decoded.To)
	assert.Equal(t, uint32(4096), *decoded.To)
	assert.Nil(t, decoded.Offset)
	assert.True(t, event.Timestamp.Equal(decoded.Timestamp))
}
