// Package norflash defines the native capability interfaces for NOR-style
// erasable flash devices and the adapters that project them onto the
// uniform storage contract.
//
// A concrete driver implements Device (one write per erase cycle) or
// MultiwriteDevice (tolerates a second AND-combining write). Wrapping the
// driver in the matching adapter fixes the descriptive constants and
// forwards every operation unchanged: the adapter is a capability-to-
// contract projection, not a runtime safety layer. Alignment and bounds
// checking remain the wrapped device's responsibility.
package norflash

import "context"

// Device is the native capability of an erasable NOR flash that tolerates
// exactly one write per erase cycle.
//
// The granularity accessors report values fixed for the device's
// lifetime. Each operation completes synchronously by the time it
// returns; interrupting an erase (e.g. power loss) leaves the affected
// erase units' contents unspecified.
type Device interface {
	// ReadSize returns the smallest readable size.
	ReadSize() uint32

	// WriteSize returns the smallest writable size.
	WriteSize() uint32

	// EraseSize returns the smallest erasable size.
	EraseSize() uint32

	// Capacity returns the exclusive upper bound of valid addresses.
	Capacity() uint32

	// Read fills p with the bytes stored at [offset, offset+len(p)).
	Read(ctx context.Context, offset uint32, p []byte) error

	// Erase clears [from, to) to 0xFF.
	Erase(ctx context.Context, from, to uint32) error

	// Write stores p at [offset, offset+len(p)) into erased flash.
	Write(ctx context.Context, offset uint32, p []byte) error
}

// MultiwriteDevice is the native capability of an erasable NOR flash that
// tolerates two writes per erase cycle, the second bitwise AND-combined
// with the stored value.
type MultiwriteDevice interface {
	Device

	// MultiwriteCapable is a marker: implementations declare the
	// hardware tolerates a second AND-combining write per erase cycle.
	MultiwriteCapable()
}
