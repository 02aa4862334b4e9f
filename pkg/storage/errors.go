package storage

import (
	"errors"
	"fmt"
)

// Contract errors.
var (
	// ErrUnaligned indicates an offset, length, or erase bound violates
	// the device's granularity. Never silently rounded.
	ErrUnaligned = errors.New("unaligned access")

	// ErrOutOfBounds indicates a requested range exceeds the device
	// capacity.
	ErrOutOfBounds = errors.New("access out of bounds")

	// ErrInvalidRange indicates an erase range with from > to.
	ErrInvalidRange = errors.New("invalid range")

	// ErrInvalidProfile indicates a device profile fails validation.
	ErrInvalidProfile = errors.New("invalid device profile")
)

// AlignmentError reports an access that violates the required granularity.
// It unwraps to ErrUnaligned.
type AlignmentError struct {
	// Op is the operation name ("read", "write", "erase").
	Op string

	// Value is the offending offset, length, or bound.
	Value uint32

	// Granularity is the required multiple.
	Granularity uint32
}

// Error returns the alignment violation description.
func (e *AlignmentError) Error() string {
	return fmt.Sprintf("%s: %v: %d is not a multiple of %d", e.Op, ErrUnaligned, e.Value, e.Granularity)
}

// Unwrap returns ErrUnaligned for errors.Is matching.
func (e *AlignmentError) Unwrap() error {
	return ErrUnaligned
}

// BoundsError reports an access past the end of the device.
// It unwraps to ErrOutOfBounds.
type BoundsError struct {
	// Op is the operation name ("read", "write", "erase").
	Op string

	// End is the exclusive end of the requested range. Wider than the
	// address space so ranges ending past 2^32 report exactly.
	End uint64

	// Capacity is the device capacity.
	Capacity uint32
}

// Error returns the bounds violation description.
func (e *BoundsError) Error() string {
	return fmt.Sprintf("%s: %v: range ends at %d, capacity is %d", e.Op, ErrOutOfBounds, e.End, e.Capacity)
}

// Unwrap returns ErrOutOfBounds for errors.Is matching.
func (e *BoundsError) Unwrap() error {
	return ErrOutOfBounds
}
