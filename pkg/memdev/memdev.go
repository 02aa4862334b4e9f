// Package memdev provides an emulated in-memory storage device.
//
// The device implements the full storage contract over a byte slice:
// operations are alignment- and bounds-checked against the configured
// profile, erase fills erase units with the profile's erase value, and
// writes combine with stored data per the profile's write behavior.
//
// memdev is primarily useful for testing consumers of the storage
// contract and for running the contract without hardware. It also
// exposes the native NOR capability accessors, so it can stand in for a
// concrete driver behind the norflash adapters.
package memdev

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/nvmem-project/nvmem-go/pkg/storage"
)

// Strict-mode errors.
var (
	// ErrWriteBudgetExceeded indicates a write to an erase unit that has
	// already consumed its per-erase-cycle write budget. Only reported
	// in strict mode; otherwise misuse has unspecified effect, matching
	// real hardware.
	ErrWriteBudgetExceeded = errors.New("write budget exceeded")

	// ErrSecondWriteNotZero indicates a non-zero second write under the
	// TWICE_SECOND_ZERO behavior. Only reported in strict mode.
	ErrSecondWriteNotZero = errors.New("second write must be all zeros")
)

// Config describes an emulated device.
type Config struct {
	// Profile is the device profile. Required.
	Profile storage.Profile

	// Capacity is the exclusive upper bound of valid addresses.
	// Must be a positive multiple of the profile's erase size.
	Capacity uint32

	// Strict enables per-erase-unit write counting: exceeding the write
	// behavior's budget, or a non-zero second write under
	// TWICE_SECOND_ZERO, is reported as an error instead of being
	// silently applied. The contract itself guarantees nothing on such
	// misuse; strict mode exists to catch consumer bugs in tests.
	Strict bool
}

// Device is an emulated in-memory storage device.
//
// The initial contents after construction are unspecified by the
// contract; only an explicit erase establishes a known state.
//
// Operations are serialized internally, so a Device is safe for
// concurrent use even though the contract only requires devices to
// support exclusive access.
type Device struct {
	mu     sync.RWMutex
	cfg    Config
	data   []byte
	writes []int // per-erase-unit write count, strict mode only
}

// New creates an emulated device from the configuration.
func New(cfg Config) (*Device, error) {
	if err := cfg.Profile.Validate(); err != nil {
		return nil, err
	}
	if cfg.Capacity == 0 || cfg.Capacity%cfg.Profile.EraseSize != 0 {
		return nil, fmt.Errorf("%w: capacity %d is not a positive multiple of erase size %d",
			storage.ErrInvalidProfile, cfg.Capacity, cfg.Profile.EraseSize)
	}

	d := &Device{
		cfg:  cfg,
		data: make([]byte, cfg.Capacity),
	}
	if cfg.Strict {
		d.writes = make([]int, cfg.Capacity/cfg.Profile.EraseSize)
	}
	return d, nil
}

// Profile returns the configured device profile.
func (d *Device) Profile() storage.Profile {
	return d.cfg.Profile
}

// Capacity returns the configured capacity.
func (d *Device) Capacity() uint32 {
	return d.cfg.Capacity
}

// Read fills p with the stored bytes at [offset, offset+len(p)).
func (d *Device) Read(ctx context.Context, offset uint32, p []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := storage.CheckRead(d.cfg.Profile, d.cfg.Capacity, offset, len(p)); err != nil {
		return err
	}

	d.mu.RLock()
	defer d.mu.RUnlock()
	copy(p, d.data[offset:int(offset)+len(p)])
	return nil
}

// Erase fills [from, to) with the profile's erase value and resets the
// affected erase units' write budgets.
func (d *Device) Erase(ctx context.Context, from, to uint32) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := storage.CheckErase(d.cfg.Profile, d.cfg.Capacity, from, to); err != nil {
		return err
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	for i := from; i < to; i++ {
		d.data[i] = d.cfg.Profile.EraseValue
	}
	if d.writes != nil {
		for u := from / d.cfg.Profile.EraseSize; u < to/d.cfg.Profile.EraseSize; u++ {
			d.writes[u] = 0
		}
	}
	return nil
}

// Write stores p at [offset, offset+len(p)), combining with the stored
// bytes per the profile's write behavior.
func (d *Device) Write(ctx context.Context, offset uint32, p []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := storage.CheckWrite(d.cfg.Profile, d.cfg.Capacity, offset, len(p)); err != nil {
		return err
	}
	if len(p) == 0 {
		return nil
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.writes != nil {
		if err := d.checkBudget(offset, p); err != nil {
			return err
		}
	}

	behavior := d.cfg.Profile.WriteBehavior
	for i, b := range p {
		addr := int(offset) + i
		d.data[addr] = behavior.Combine(d.data[addr], b)
	}
	if d.writes != nil {
		d.countWrite(offset, len(p))
	}
	return nil
}

// Flush is a no-op: all operations complete synchronously.
func (d *Device) Flush(ctx context.Context) error {
	return ctx.Err()
}

// checkBudget validates a strict-mode write against the per-erase-unit
// write budget before any byte is modified.
func (d *Device) checkBudget(offset uint32, p []byte) error {
	behavior := d.cfg.Profile.WriteBehavior
	budget := behavior.Budget()
	if budget == storage.UnlimitedWrites {
		return nil
	}

	end := offset + uint32(len(p))
	for u := offset / d.cfg.Profile.EraseSize; u <= (end-1)/d.cfg.Profile.EraseSize; u++ {
		if d.writes[u] >= budget {
			return fmt.Errorf("%w: erase unit %d already written %d times (%s)",
				ErrWriteBudgetExceeded, u, d.writes[u], behavior)
		}
		if behavior == storage.WriteTwiceSecondZero && d.writes[u] == 1 {
			if err := checkAllZero(p); err != nil {
				return err
			}
		}
	}
	return nil
}

// countWrite increments the write count of every erase unit touched by a
// write of length bytes at offset.
func (d *Device) countWrite(offset uint32, length int) {
	end := offset + uint32(length)
	for u := offset / d.cfg.Profile.EraseSize; u <= (end-1)/d.cfg.Profile.EraseSize; u++ {
		d.writes[u]++
	}
}

func checkAllZero(p []byte) error {
	for _, b := range p {
		if b != 0 {
			return ErrSecondWriteNotZero
		}
	}
	return nil
}

// Image returns a copy of the device's entire contents.
func (d *Device) Image() []byte {
	d.mu.RLock()
	defer d.mu.RUnlock()
	img := make([]byte, len(d.data))
	copy(img, d.data)
	return img
}

// LoadImage replaces the device's entire contents. The image length must
// equal the device capacity. Write budgets are reset: the loaded image's
// per-unit write history is unknown.
func (d *Device) LoadImage(img []byte) error {
	if uint32(len(img)) != d.cfg.Capacity {
		return fmt.Errorf("%w: image is %d bytes, capacity is %d",
			storage.ErrInvalidProfile, len(img), d.cfg.Capacity)
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	copy(d.data, img)
	for i := range d.writes {
		d.writes[i] = 0
	}
	return nil
}

// Compile-time interface satisfaction check.
var _ storage.Storage = (*Device)(nil)
