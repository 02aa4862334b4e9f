package norflash

import (
	"context"

	"github.com/nvmem-project/nvmem-go/pkg/storage"
)

// EraseValue is the post-erase byte value of NOR flash.
const EraseValue = 0xFF

// Single projects a single-write NOR flash onto the storage contract.
//
// The profile is fixed at construction: write behavior ONCE, erase value
// 0xFF, granularities taken from the wrapped device. Every operation
// forwards its arguments and result unchanged, including the wrapped
// device's error values. Single performs no validation of its own.
type Single struct {
	dev     Device
	profile storage.Profile
}

// NewSingle wraps a single-write NOR flash device.
func NewSingle(dev Device) *Single {
	return &Single{
		dev: dev,
		profile: storage.Profile{
			ReadSize:      dev.ReadSize(),
			WriteSize:     dev.WriteSize(),
			EraseSize:     dev.EraseSize(),
			EraseValue:    EraseValue,
			WriteBehavior: storage.WriteOnce,
			Reliability:   storage.ReliabilityGoodDegrading,
		},
	}
}

// Profile returns the fixed single-write NOR profile.
func (s *Single) Profile() storage.Profile {
	return s.profile
}

// Capacity returns the wrapped device's capacity.
func (s *Single) Capacity() uint32 {
	return s.dev.Capacity()
}

// Read forwards to the wrapped device.
func (s *Single) Read(ctx context.Context, offset uint32, p []byte) error {
	return s.dev.Read(ctx, offset, p)
}

// Erase forwards to the wrapped device.
func (s *Single) Erase(ctx context.Context, from, to uint32) error {
	return s.dev.Erase(ctx, from, to)
}

// Write forwards to the wrapped device.
func (s *Single) Write(ctx context.Context, offset uint32, p []byte) error {
	return s.dev.Write(ctx, offset, p)
}

// Flush is an always-successful no-op: the wrapped device's calls
// complete synchronously by the time they return.
func (s *Single) Flush(ctx context.Context) error {
	return nil
}

// Multiwrite projects a multi-write-capable NOR flash onto the storage
// contract with write behavior TWICE_AND and erase value 0xFF.
//
// Like Single, it forwards every operation unchanged and adds no
// validation.
type Multiwrite struct {
	dev     MultiwriteDevice
	profile storage.Profile
}

// NewMultiwrite wraps a multi-write-capable NOR flash device.
func NewMultiwrite(dev MultiwriteDevice) *Multiwrite {
	return &Multiwrite{
		dev: dev,
		profile: storage.Profile{
			ReadSize:      dev.ReadSize(),
			WriteSize:     dev.WriteSize(),
			EraseSize:     dev.EraseSize(),
			EraseValue:    EraseValue,
			WriteBehavior: storage.WriteTwiceAnd,
			Reliability:   storage.ReliabilityGoodDegrading,
		},
	}
}

// Profile returns the fixed multi-write NOR profile.
func (m *Multiwrite) Profile() storage.Profile {
	return m.profile
}

// Capacity returns the wrapped device's capacity.
func (m *Multiwrite) Capacity() uint32 {
	return m.dev.Capacity()
}

// Read forwards to the wrapped device.
func (m *Multiwrite) Read(ctx context.Context, offset uint32, p []byte) error {
	return m.dev.Read(ctx, offset, p)
}

// Erase forwards to the wrapped device.
func (m *Multiwrite) Erase(ctx context.Context, from, to uint32) error {
	return m.dev.Erase(ctx, from, to)
}

// Write forwards to the wrapped device.
func (m *Multiwrite) Write(ctx context.Context, offset uint32, p []byte) error {
	return m.dev.Write(ctx, offset, p)
}

// Flush is an always-successful no-op.
func (m *Multiwrite) Flush(ctx context.Context) error {
	return nil
}

// Compile-time interface satisfaction checks.
var (
	_ storage.Storage = (*Single)(nil)
	_ storage.Storage = (*Multiwrite)(nil)
)
