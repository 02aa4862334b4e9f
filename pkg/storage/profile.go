package storage

import "fmt"

// Profile is the set of descriptive constants characterizing a concrete
// storage device. It is fixed when the device is constructed (or when an
// adapter wraps an underlying device) and is immutable thereafter;
// operations read it but never mutate it.
type Profile struct {
	// ReadSize is the smallest size that can be read. This should be 1
	// unless there is really no way to read a single byte; ideally a
	// driver emulates single-byte reads if the hardware cannot.
	ReadSize uint32 `yaml:"read_size" json:"read_size"`

	// WriteSize is the smallest size that can be written.
	WriteSize uint32 `yaml:"write_size" json:"write_size"`

	// EraseSize is the smallest size that can be erased. It partitions
	// the address space into independent erase units.
	EraseSize uint32 `yaml:"erase_size" json:"erase_size"`

	// EraseValue is the value every byte is set to after erasing.
	// Typically 0xFF or 0x00.
	EraseValue byte `yaml:"erase_value" json:"erase_value"`

	// WriteBehavior describes how successive writes combine.
	WriteBehavior WriteBehavior `yaml:"write_behavior" json:"write_behavior"`

	// Reliability is the bit-error risk profile of the medium.
	// Informational only.
	Reliability Reliability `yaml:"reliability" json:"reliability"`
}

// Validate checks that all sizes are positive and the enums are known
// values. Returned errors wrap ErrInvalidProfile.
func (p Profile) Validate() error {
	if p.ReadSize == 0 {
		return fmt.Errorf("%w: read_size must be positive", ErrInvalidProfile)
	}
	if p.WriteSize == 0 {
		return fmt.Errorf("%w: write_size must be positive", ErrInvalidProfile)
	}
	if p.EraseSize == 0 {
		return fmt.Errorf("%w: erase_size must be positive", ErrInvalidProfile)
	}
	if !p.WriteBehavior.Valid() {
		return fmt.Errorf("%w: unknown write behavior %d", ErrInvalidProfile, p.WriteBehavior)
	}
	if !p.Reliability.Valid() {
		return fmt.Errorf("%w: unknown reliability %d", ErrInvalidProfile, p.Reliability)
	}
	return nil
}
