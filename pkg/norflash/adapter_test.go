package norflash_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nvmem-project/nvmem-go/pkg/memdev"
	"github.com/nvmem-project/nvmem-go/pkg/norflash"
	"github.com/nvmem-project/nvmem-go/pkg/storage"
)

// errFault is the opaque device error used to verify pass-through.
var errFault = errors.New("bus fault")

// faultyFlash fails every operation with errFault.
type faultyFlash struct{}

func (faultyFlash) ReadSize() uint32  { return 4 }
func (faultyFlash) WriteSize() uint32 { return 8 }
func (faultyFlash) EraseSize() uint32 { return 1024 }
func (faultyFlash) Capacity() uint32  { return 1 << 20 }

func (faultyFlash) Read(ctx context.Context, offset uint32, p []byte) error {
	return errFault
}

func (faultyFlash) Erase(ctx context.Context, from, to uint32) error {
	return errFault
}

func (faultyFlash) Write(ctx context.Context, offset uint32, p []byte) error {
	return errFault
}

func (faultyFlash) MultiwriteCapable() {}

func simFlash(t *testing.T) memdev.Multiwrite {
	t.Helper()
	dev, err := memdev.New(memdev.Config{
		Profile: storage.Profile{
			ReadSize:      1,
			WriteSize:     1,
			EraseSize:     256,
			EraseValue:    0xFF,
			WriteBehavior: storage.WriteTwiceAnd,
			Reliability:   storage.ReliabilityGoodDegrading,
		},
		Capacity: 4096,
	})
	require.NoError(t, err)
	return memdev.Multiwrite{Device: dev}
}

func TestSingleProfileFixed(t *testing.T) {
	adapter := norflash.NewSingle(faultyFlash{})

	p := adapter.Profile()
	assert.Equal(t, storage.WriteOnce, p.WriteBehavior)
	assert.Equal(t, byte(0xFF), p.EraseValue)
	assert.Equal(t, uint32(4), p.ReadSize)
	assert.Equal(t, uint32(8), p.WriteSize)
	assert.Equal(t, uint32(1024), p.EraseSize)
	assert.Equal(t, uint32(1<<20), adapter.Capacity())

	// The profile is fixed for the adapter's lifetime
	assert.Equal(t, p, adapter.Profile())
}

func TestMultiwriteProfileFixed(t *testing.T) {
	adapter := norflash.NewMultiwrite(faultyFlash{})

	p := adapter.Profile()
	assert.Equal(t, storage.WriteTwiceAnd, p.WriteBehavior)
	assert.Equal(t, byte(0xFF), p.EraseValue)
}

// The adapter reports its own fixed constants even when the wrapped
// device's native profile says otherwise.
func TestSingleIgnoresWrappedBehavior(t *testing.T) {
	sim := simFlash(t) // simulated device profile says TWICE_AND
	adapter := norflash.NewSingle(sim)

	assert.Equal(t, storage.WriteOnce, adapter.Profile().WriteBehavior)
}

func TestAdapterForwardsOperations(t *testing.T) {
	ctx := context.Background()
	adapter := norflash.NewMultiwrite(simFlash(t))

	require.NoError(t, adapter.Erase(ctx, 0, 256))
	require.NoError(t, adapter.Write(ctx, 0, []byte{0x0F}))
	require.NoError(t, adapter.Write(ctx, 0, []byte{0xF0}))

	got := make([]byte, 1)
	require.NoError(t, adapter.Read(ctx, 0, got))
	assert.Equal(t, []byte{0x00}, got, "AND-combining passes through the adapter")
}

func TestAdapterPropagatesErrorsVerbatim(t *testing.T) {
	ctx := context.Background()

	single := norflash.NewSingle(faultyFlash{})
	assert.ErrorIs(t, single.Read(ctx, 0, make([]byte, 4)), errFault)
	assert.ErrorIs(t, single.Write(ctx, 0, make([]byte, 8)), errFault)
	assert.ErrorIs(t, single.Erase(ctx, 0, 1024), errFault)

	multi := norflash.NewMultiwrite(faultyFlash{})
	assert.ErrorIs(t, multi.Read(ctx, 0, make([]byte, 4)), errFault)
}

// Validation is the wrapped device's responsibility; it passes through
// the adapter unchanged.
func TestAdapterAddsNoValidation(t *testing.T) {
	ctx := context.Background()
	adapter := norflash.NewMultiwrite(simFlash(t))

	err := adapter.Erase(ctx, 10, 20)
	assert.ErrorIs(t, err, storage.ErrUnaligned, "wrapped device's validation error passes through")
}

func TestAdapterFlushAlwaysSucceeds(t *testing.T) {
	ctx := context.Background()

	single := norflash.NewSingle(faultyFlash{})
	require.NoError(t, single.Flush(ctx))
	require.NoError(t, single.Flush(ctx))

	multi := norflash.NewMultiwrite(faultyFlash{})
	require.NoError(t, multi.Flush(ctx))
}
