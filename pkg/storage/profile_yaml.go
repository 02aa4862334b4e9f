package storage

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// ParseProfile parses a device profile from YAML data and validates it.
//
// Write behavior and reliability are given by name (case-insensitive):
//
//	read_size: 1
//	write_size: 4
//	erase_size: 4096
//	erase_value: 0xff
//	write_behavior: infinite_and
//	reliability: good_degrading
func ParseProfile(data []byte) (Profile, error) {
	var p Profile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Profile{}, fmt.Errorf("profile parse error: %w", err)
	}
	if err := p.Validate(); err != nil {
		return Profile{}, err
	}
	return p, nil
}

// LoadProfile reads and parses a device profile from a YAML file.
func LoadProfile(path string) (Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Profile{}, err
	}
	return ParseProfile(data)
}

// MarshalYAML encodes the write behavior as its lowercase name.
func (b WriteBehavior) MarshalYAML() (any, error) {
	return strings.ToLower(b.String()), nil
}

// UnmarshalYAML decodes a write behavior from its name.
func (b *WriteBehavior) UnmarshalYAML(value *yaml.Node) error {
	switch strings.ToUpper(value.Value) {
	case "ONCE":
		*b = WriteOnce
	case "TWICE_SECOND_ZERO":
		*b = WriteTwiceSecondZero
	case "TWICE_AND":
		*b = WriteTwiceAnd
	case "INFINITE_AND":
		*b = WriteInfiniteAnd
	case "INFINITE_DIRECT":
		*b = WriteInfiniteDirect
	default:
		return fmt.Errorf("unknown write behavior %q", value.Value)
	}
	return nil
}

// MarshalYAML encodes the reliability class as its lowercase name.
func (r Reliability) MarshalYAML() (any, error) {
	return strings.ToLower(r.String()), nil
}

// UnmarshalYAML decodes a reliability class from its name.
func (r *Reliability) UnmarshalYAML(value *yaml.Node) error {
	switch strings.ToUpper(value.Value) {
	case "GOOD":
		*r = ReliabilityGood
	case "MEDIUM":
		*r = ReliabilityMedium
	case "GOOD_DEGRADING":
		*r = ReliabilityGoodDegrading
	case "MEDIUM_DEGRADING":
		*r = ReliabilityMediumDegrading
	case "BAD":
		*r = ReliabilityBad
	default:
		return fmt.Errorf("unknown reliability %q", value.Value)
	}
	return nil
}
