// Package storage defines the uniform contract over byte-addressable,
// block-erasable storage media (NOR/NAND flash, EEPROM, battery-backed
// RAM, emulated storage).
//
// Higher-level code (logs, filesystems, key-value stores) is written once
// against this contract instead of against each device's idiosyncratic
// read/write/erase rules. A device is described by a Profile (the six
// descriptive constants: read/write/erase granularity, erase value, write
// behavior, reliability) fixed at construction, and operated through the
// Storage interface (capacity, read, erase, write, flush).
//
// # Write Behaviors
//
// The hard part of the contract is the taxonomy of write-repeatability:
// how successive writes to the same erase unit combine, without an
// intervening erase. See WriteBehavior for the five classes, from
// write-once NAND to direct-overwrite RAM.
//
// # Exclusive Access
//
// The contract provides no internal locking. Callers must hold exclusive
// access to a device instance for the duration of any call; no two
// operations may be outstanding concurrently against the same instance.
// Operations issued sequentially observe each other's effects in issue
// order. Flush is the only explicit durability point.
//
// # Validation
//
// Every operation is bounds- and alignment-checked against the profile
// before it touches the device: an operation either fully validates and
// attempts to run, or is rejected up front. The CheckRead, CheckWrite and
// CheckErase helpers implement these rules for concrete devices.
package storage
