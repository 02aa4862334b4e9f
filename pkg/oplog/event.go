package oplog

import "time"

// Event represents one storage contract operation issued against a
// traced device. CBOR encoding uses integer keys for compactness.
type Event struct {
	// Timestamp when the operation started (nanosecond precision).
	Timestamp time.Time `cbor:"1,keyasint"`

	// DeviceID uniquely identifies the traced device instance (UUID).
	DeviceID string `cbor:"2,keyasint"`

	// Op is the operation kind.
	Op Op `cbor:"3,keyasint"`

	// Offset is the start address of a read or write.
	Offset *uint32 `cbor:"4,keyasint,omitempty"`

	// Length is the byte count of a read or write.
	Length *int `cbor:"5,keyasint,omitempty"`

	// From is the inclusive lower bound of an erase.
	From *uint32 `cbor:"6,keyasint,omitempty"`

	// To is the exclusive upper bound of an erase.
	To *uint32 `cbor:"7,keyasint,omitempty"`

	// Duration is how long the operation took.
	Duration time.Duration `cbor:"8,keyasint"`

	// Error is the operation's error message, empty on success.
	Error string `cbor:"9,keyasint,omitempty"`
}

// Op is the kind of storage contract operation.
type Op uint8

const (
	// OpRead is a read operation.
	OpRead Op = 0
	// OpWrite is a write operation.
	OpWrite Op = 1
	// OpErase is an erase operation.
	OpErase Op = 2
	// OpFlush is a flush operation.
	OpFlush Op = 3
)

// String returns the operation name.
func (o Op) String() string {
	switch o {
	case OpRead:
		return "READ"
	case OpWrite:
		return "WRITE"
	case OpErase:
		return "ERASE"
	case OpFlush:
		return "FLUSH"
	default:
		return "UNKNOWN"
	}
}
