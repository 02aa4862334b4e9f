// Package commands implements the nvmem-log CLI commands.
package commands

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/nvmem-project/nvmem-go/pkg/oplog"
)

// ParseOpFlag converts a command-line operation name into an oplog.Op.
func ParseOpFlag(s string) (oplog.Op, error) {
	switch strings.ToLower(s) {
	case "read":
		return oplog.OpRead, nil
	case "write":
		return oplog.OpWrite, nil
	case "erase":
		return oplog.OpErase, nil
	case "flush":
		return oplog.OpFlush, nil
	default:
		return 0, fmt.Errorf("unknown operation %q (want read, write, erase, or flush)", s)
	}
}

// RunView reads the trace file and writes matching events to w in
// human-readable form.
func RunView(path string, filter oplog.Filter, w io.Writer) error {
	reader, err := oplog.NewFilteredReader(path, filter)
	if err != nil {
		return fmt.Errorf("failed to open trace file: %w", err)
	}
	defer reader.Close()

	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}
		formatEvent(w, event)
	}
	return nil
}

// formatEvent writes a human-readable representation of the event to w.
func formatEvent(w io.Writer, event oplog.Event) {
	// Header line: timestamp [dev:id] OP range duration
	ts := event.Timestamp.UTC().Format("2006-01-02T15:04:05.000000Z")
	devID := shortenDeviceID(event.DeviceID)

	fmt.Fprintf(w, "%s [dev:%s] %-5s %s (%s)\n",
		ts, devID, event.Op, formatRange(event), formatDuration(event.Duration))

	if event.Error != "" {
		fmt.Fprintf(w, "  Error: %s\n", event.Error)
	}
}

// formatRange describes the addressed range of the operation.
func formatRange(event oplog.Event) string {
	switch {
	case event.Offset != nil && event.Length != nil:
		return fmt.Sprintf("[%d, %d)", *event.Offset, uint64(*event.Offset)+uint64(*event.Length))
	case event.From != nil && event.To != nil:
		return fmt.Sprintf("[%d, %d)", *event.From, *event.To)
	default:
		return "-"
	}
}

// shortenDeviceID returns the first 8 characters of the device ID.
func shortenDeviceID(id string) string {
	if len(id) >= 8 {
		return id[:8]
	}
	return id
}

// formatDuration renders short durations with microsecond precision.
func formatDuration(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%dµs", d.Microseconds())
	}
	return d.Round(10 * time.Microsecond).String()
}
