package storage

// Reliability describes the expected data integrity of a medium.
//
// Reliability is informational only: consumers use it to decide whether
// to add software error correction on top of the device. It has no effect
// on the validation or execution of operations.
type Reliability uint8

const (
	// ReliabilityGood indicates the medium never corrupts data.
	ReliabilityGood Reliability = 0

	// ReliabilityMedium indicates random bit flips are possible,
	// with no wear-out over the medium's life.
	ReliabilityMedium Reliability = 1

	// ReliabilityGoodDegrading indicates a medium reliable by design
	// that can fail near its end of life.
	ReliabilityGoodDegrading Reliability = 2

	// ReliabilityMediumDegrading indicates random bit flips plus
	// end-of-life degradation.
	ReliabilityMediumDegrading Reliability = 3

	// ReliabilityBad indicates a medium unreliable by design; the
	// caller must add error correction.
	ReliabilityBad Reliability = 4
)

// String returns the reliability class name.
func (r Reliability) String() string {
	switch r {
	case ReliabilityGood:
		return "GOOD"
	case ReliabilityMedium:
		return "MEDIUM"
	case ReliabilityGoodDegrading:
		return "GOOD_DEGRADING"
	case ReliabilityMediumDegrading:
		return "MEDIUM_DEGRADING"
	case ReliabilityBad:
		return "BAD"
	default:
		return "UNKNOWN"
	}
}

// Valid reports whether r is a known reliability class.
func (r Reliability) Valid() bool {
	return r <= ReliabilityBad
}
