package storage

import "context"

// Storage is the uniform contract every concrete device supplies.
//
// A Storage instance requires exclusive access: the contract provides no
// internal locking, and no two operations may be outstanding concurrently
// against the same instance. Callers (or the surrounding system) must
// serialize access, e.g. by holding the sole reference to the device for
// as long as operations are in flight.
//
// The descriptive constants returned by Profile never change for the
// lifetime of an instance.
type Storage interface {
	// Profile returns the descriptive constants for this device.
	// The returned value is fixed at construction and never changes.
	Profile() Profile

	// Capacity returns the exclusive upper bound of valid addresses.
	// Pure query, constant for the instance's lifetime, no side effect.
	Capacity() uint32

	// Read fills p with the stored bytes at [offset, offset+len(p)),
	// reflecting all prior successful writes and erases, combined per
	// the device's write behavior.
	//
	// The offset and len(p) must be multiples of the profile's ReadSize
	// or an AlignmentError is returned. Ranges past Capacity return a
	// BoundsError.
	Read(ctx context.Context, offset uint32, p []byte) error

	// Erase clears [from, to), leaving every byte in the range equal to
	// the profile's EraseValue until the next successful write.
	//
	// The from and to must be multiples of the profile's EraseSize and
	// from <= to <= Capacity; violations are reported as alignment,
	// range, or bounds errors. If the operation is interrupted before
	// completion (e.g. power loss), the contents of the affected erase
	// units are unspecified.
	Erase(ctx context.Context, from, to uint32) error

	// Write stores p at [offset, offset+len(p)). Subsequent reads
	// reflect the combining rule of the device's WriteBehavior.
	//
	// The offset and len(p) must be multiples of the profile's
	// WriteSize or an AlignmentError is returned. Ranges past Capacity
	// return a BoundsError. Exceeding the behavior's write budget
	// before the next erase has unspecified effect; the contract does
	// not track per-unit write counts.
	Write(ctx context.Context, offset uint32, p []byte) error

	// Flush blocks until all previously issued operations on this
	// instance have completed and are durable. After Flush returns, no
	// prior operation is in flight and its effects are visible to any
	// subsequent read. For devices whose operations complete
	// synchronously this is a trivial no-op.
	Flush(ctx context.Context) error
}
