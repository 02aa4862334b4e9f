package storage

// WriteBehavior describes how successive writes to the same erase unit
// combine, without an intervening erase.
//
// Exceeding a behavior's write budget before the next erase has an
// unspecified effect on stored data. The contract deliberately does not
// track per-unit write counts; callers needing that guarantee must track
// counts themselves, one layer above.
type WriteBehavior uint8

const (
	// WriteOnce permits exactly one write per erase cycle.
	// A second write before the next erase has unspecified effect.
	WriteOnce WriteBehavior = 0

	// WriteTwiceSecondZero permits exactly two writes per erase cycle.
	// The second write must be all zero bytes (typically used to clear
	// specific bits through an error-correcting encoding). A third write,
	// or a non-zero second write, has unspecified effect.
	WriteTwiceSecondZero WriteBehavior = 1

	// WriteTwiceAnd permits exactly two writes per erase cycle.
	// The second write's value is bitwise AND-combined with the stored
	// value. A third write has unspecified effect.
	WriteTwiceAnd WriteBehavior = 2

	// WriteInfiniteAnd permits unlimited writes per erase cycle.
	// Every write is bitwise AND-combined with the stored value, so bits
	// only move from 1 toward 0 until the next erase.
	WriteInfiniteAnd WriteBehavior = 3

	// WriteInfiniteDirect permits unlimited writes per erase cycle.
	// Each write fully overwrites the addressed bytes; a subsequent read
	// returns exactly the last written value.
	WriteInfiniteDirect WriteBehavior = 4
)

// UnlimitedWrites is returned by Budget for behaviors without a finite
// per-erase-cycle write budget.
const UnlimitedWrites = -1

// String returns the write behavior name.
func (b WriteBehavior) String() string {
	switch b {
	case WriteOnce:
		return "ONCE"
	case WriteTwiceSecondZero:
		return "TWICE_SECOND_ZERO"
	case WriteTwiceAnd:
		return "TWICE_AND"
	case WriteInfiniteAnd:
		return "INFINITE_AND"
	case WriteInfiniteDirect:
		return "INFINITE_DIRECT"
	default:
		return "UNKNOWN"
	}
}

// Valid reports whether b is a known write behavior.
func (b WriteBehavior) Valid() bool {
	return b <= WriteInfiniteDirect
}

// Budget returns the number of writes permitted per erase cycle, or
// UnlimitedWrites for behaviors without a finite budget.
func (b WriteBehavior) Budget() int {
	switch b {
	case WriteOnce:
		return 1
	case WriteTwiceSecondZero, WriteTwiceAnd:
		return 2
	default:
		return UnlimitedWrites
	}
}

// Combine returns the stored value that results from writing next over
// stored, per the behavior's combining rule. For AND-combining behaviors
// this is stored&next; for direct overwrite it is next.
//
// Combine models only the in-budget combining rule. For WriteOnce and
// WriteTwiceSecondZero the first (or budget-respecting) write is a plain
// overwrite of erased (or stored) bytes, which this models as direct.
func (b WriteBehavior) Combine(stored, next byte) byte {
	switch b {
	case WriteTwiceAnd, WriteInfiniteAnd:
		return stored & next
	default:
		return next
	}
}
