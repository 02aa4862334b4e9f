package filedev_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nvmem-project/nvmem-go/pkg/filedev"
	"github.com/nvmem-project/nvmem-go/pkg/memdev"
	"github.com/nvmem-project/nvmem-go/pkg/storage"
)

func testConfig() memdev.Config {
	return memdev.Config{
		Profile: storage.Profile{
			ReadSize:      1,
			WriteSize:     1,
			EraseSize:     256,
			EraseValue:    0xFF,
			WriteBehavior: storage.WriteInfiniteAnd,
			Reliability:   storage.ReliabilityGoodDegrading,
		},
		Capacity: 4096,
	}
}

func TestOpenFresh(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flash.img")

	dev, err := filedev.Open(path, testConfig())
	require.NoError(t, err)

	assert.Equal(t, uint32(4096), dev.Capacity())
	assert.Equal(t, testConfig().Profile, dev.Profile())
	assert.NotEmpty(t, dev.InstanceID())
}

func TestPersistenceAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "flash.img")

	dev, err := filedev.Open(path, testConfig())
	require.NoError(t, err)

	require.NoError(t, dev.Erase(ctx, 0, 4096))
	require.NoError(t, dev.Write(ctx, 512, []byte{0xDE, 0xAD, 0xBE, 0xEF}))
	require.NoError(t, dev.Flush(ctx))
	id := dev.InstanceID()

	reopened, err := filedev.Open(path, testConfig())
	require.NoError(t, err)

	got := make([]byte, 4)
	require.NoError(t, reopened.Read(ctx, 512, got))
	assert.Equal(t, []byte{0xDE, 0xAD, 0xBE, 0xEF}, got)

	// Erased regions survive too
	require.NoError(t, reopened.Read(ctx, 0, got))
	assert.Equal(t, []byte{0xFF, 0xFF, 0xFF, 0xFF}, got)

	assert.Equal(t, id, reopened.InstanceID(), "instance ID survives reopen")
}

func TestUnflushedChangesAreNotPersisted(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "flash.img")

	dev, err := filedev.Open(path, testConfig())
	require.NoError(t, err)
	require.NoError(t, dev.Erase(ctx, 0, 4096))
	require.NoError(t, dev.Flush(ctx))

	// Write without flushing
	require.NoError(t, dev.Write(ctx, 0, []byte{0x00}))

	reopened, err := filedev.Open(path, testConfig())
	require.NoError(t, err)

	got := make([]byte, 1)
	require.NoError(t, reopened.Read(ctx, 0, got))
	assert.Equal(t, []byte{0xFF}, got, "unflushed write must not be durable")
}

func TestFlushIdempotent(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "flash.img")

	dev, err := filedev.Open(path, testConfig())
	require.NoError(t, err)

	require.NoError(t, dev.Erase(ctx, 0, 256))
	require.NoError(t, dev.Flush(ctx))
	require.NoError(t, dev.Flush(ctx))
}

func TestProfileMismatchRejected(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "flash.img")

	dev, err := filedev.Open(path, testConfig())
	require.NoError(t, err)
	require.NoError(t, dev.Erase(ctx, 0, 256))
	require.NoError(t, dev.Flush(ctx))

	other := testConfig()
	other.Profile.WriteBehavior = storage.WriteOnce
	_, err = filedev.Open(path, other)
	assert.ErrorIs(t, err, storage.ErrInvalidProfile)

	bigger := testConfig()
	bigger.Capacity = 8192
	_, err = filedev.Open(path, bigger)
	assert.ErrorIs(t, err, storage.ErrInvalidProfile)
}

func TestValidationMatchesContract(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "flash.img")

	dev, err := filedev.Open(path, testConfig())
	require.NoError(t, err)

	assert.ErrorIs(t, dev.Erase(ctx, 10, 20), storage.ErrUnaligned)
	assert.ErrorIs(t, dev.Read(ctx, 4096, make([]byte, 1)), storage.ErrOutOfBounds)
}

func TestClose(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "flash.img")

	dev, err := filedev.Open(path, testConfig())
	require.NoError(t, err)
	require.NoError(t, dev.Erase(ctx, 0, 4096))
	require.NoError(t, dev.Write(ctx, 0, []byte{0x42}))
	require.NoError(t, dev.Close())

	reopened, err := filedev.Open(path, testConfig())
	require.NoError(t, err)

	got := make([]byte, 1)
	require.NoError(t, reopened.Read(ctx, 0, got))
	assert.Equal(t, []byte{0x42}, got, "Close flushes unsaved changes")
}
