// Package oplog provides structured operation tracing for storage
// devices.
//
// This package defines the Logger interface and Event type for capturing
// every contract operation (read, write, erase, flush) issued against a
// device. It is separate from operational logging (slog) - an operation
// trace is a complete machine-readable record for debugging consumers of
// the storage contract and analyzing access patterns.
//
// # Basic Usage
//
// Wrap any storage device in a Recorder:
//
//	// For development: log to console via slog
//	dev := oplog.NewRecorder(raw, oplog.NewSlogAdapter(slog.Default()))
//
//	// For analysis: write to binary file
//	fl, _ := oplog.NewFileLogger("device.nvlog")
//	dev := oplog.NewRecorder(raw, fl)
//
//	// Both: use MultiLogger
//	dev := oplog.NewRecorder(raw, oplog.NewMultiLogger(
//	    oplog.NewSlogAdapter(slog.Default()),
//	    fl,
//	))
//
// The Recorder implements the storage contract itself and forwards every
// operation unchanged, so it can stand anywhere a device can.
//
// # File Format
//
// Trace files use CBOR encoding with .nvlog extension. The nvmem-log CLI
// tool provides viewing and statistics.
package oplog
