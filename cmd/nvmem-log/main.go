// Command nvmem-log is a tool for viewing and analyzing storage
// operation trace files.
//
// Trace files are created by wrapping a device in an oplog.Recorder with
// a FileLogger, for example via the nvmem-shell "trace on" command.
//
// Usage:
//
//	nvmem-log <command> [flags] <file.nvlog>
//
// Commands:
//
//	view     View trace file in human-readable format
//	stats    Show statistics about the trace file
//
// Examples:
//
//	# View all operations
//	nvmem-log view device.nvlog
//
//	# View only writes
//	nvmem-log view --op write device.nvlog
//
//	# View only failed operations
//	nvmem-log view --errors device.nvlog
//
//	# Show statistics
//	nvmem-log stats device.nvlog
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/nvmem-project/nvmem-go/cmd/nvmem-log/commands"
	"github.com/nvmem-project/nvmem-go/pkg/oplog"
)

const usage = `nvmem-log - Storage Operation Trace Analyzer

Usage:
  nvmem-log <command> [flags] <file.nvlog>

Commands:
  view     View trace file in human-readable format
  stats    Show statistics about the trace file

Use "nvmem-log <command> -help" for more information about a command.
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	switch cmd {
	case "view":
		runView(args)
	case "stats":
		runStats(args)
	case "-h", "-help", "--help", "help":
		fmt.Print(usage)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}
}

func runView(args []string) {
	fs := flag.NewFlagSet("view", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `nvmem-log view - View trace file in human-readable format

Usage:
  nvmem-log view [flags] <file.nvlog>

Flags:
`)
		fs.PrintDefaults()
	}

	op := fs.String("op", "", "Filter by operation (read, write, erase, flush)")
	deviceID := fs.String("device-id", "", "Filter by device instance ID")
	errorsOnly := fs.Bool("errors", false, "Show only failed operations")

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Error: trace file path required")
		fs.Usage()
		os.Exit(1)
	}

	path := fs.Arg(0)

	filter := oplog.Filter{
		DeviceID:   *deviceID,
		ErrorsOnly: *errorsOnly,
	}
	if *op != "" {
		o, err := commands.ParseOpFlag(*op)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		filter.Op = &o
	}

	if err := commands.RunView(path, filter, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runStats(args []string) {
	fs := flag.NewFlagSet("stats", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `nvmem-log stats - Show statistics about the trace file

Usage:
  nvmem-log stats <file.nvlog>
`)
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Error: trace file path required")
		fs.Usage()
		os.Exit(1)
	}

	if err := commands.RunStats(fs.Arg(0), os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
