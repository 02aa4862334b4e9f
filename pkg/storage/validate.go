package storage

import "fmt"

// CheckRead validates a read of length bytes at offset against the
// profile's read granularity and the device capacity. It fails fast:
// validation happens before the device is touched, and a rejected
// operation has no partial effect.
func CheckRead(p Profile, capacity, offset uint32, length int) error {
	return checkAccess("read", p.ReadSize, capacity, offset, length)
}

// CheckWrite validates a write of length bytes at offset against the
// profile's write granularity and the device capacity.
func CheckWrite(p Profile, capacity, offset uint32, length int) error {
	return checkAccess("write", p.WriteSize, capacity, offset, length)
}

// CheckErase validates an erase of [from, to) against the profile's
// erase granularity and the device capacity.
func CheckErase(p Profile, capacity, from, to uint32) error {
	if from%p.EraseSize != 0 {
		return &AlignmentError{Op: "erase", Value: from, Granularity: p.EraseSize}
	}
	if to%p.EraseSize != 0 {
		return &AlignmentError{Op: "erase", Value: to, Granularity: p.EraseSize}
	}
	if from > to {
		return fmt.Errorf("erase: %w: from %d > to %d", ErrInvalidRange, from, to)
	}
	if to > capacity {
		return &BoundsError{Op: "erase", End: uint64(to), Capacity: capacity}
	}
	return nil
}

func checkAccess(op string, granularity, capacity, offset uint32, length int) error {
	if offset%granularity != 0 {
		return &AlignmentError{Op: op, Value: offset, Granularity: granularity}
	}
	if uint32(length)%granularity != 0 {
		return &AlignmentError{Op: op, Value: uint32(length), Granularity: granularity}
	}
	end := uint64(offset) + uint64(length)
	if end > uint64(capacity) {
		return &BoundsError{Op: op, End: end, Capacity: capacity}
	}
	return nil
}
