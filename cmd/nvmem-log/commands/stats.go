package commands

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/nvmem-project/nvmem-go/pkg/oplog"
)

// Stats holds aggregate statistics about a trace file.
type Stats struct {
	TotalEvents int
	EventsByOp  map[oplog.Op]int
	Devices     map[string]*DeviceStats
	Errors      int
	BytesRead   uint64
	BytesWrite  uint64
	BytesErased uint64
	TimeRange   struct {
		Start time.Time
		End   time.Time
	}
}

// DeviceStats holds statistics for a single traced device instance.
type DeviceStats struct {
	FirstSeen time.Time
	LastSeen  time.Time
	Events    int
	Errors    int
}

// RunStats analyzes the trace file and prints statistics.
func RunStats(path string, w io.Writer) error {
	reader, err := oplog.NewReader(path)
	if err != nil {
		return fmt.Errorf("failed to open trace file: %w", err)
	}
	defer reader.Close()

	stats := &Stats{
		EventsByOp: make(map[oplog.Op]int),
		Devices:    make(map[string]*DeviceStats),
	}

	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}
		stats.add(event)
	}

	stats.print(w)
	return nil
}

// add folds one event into the aggregate.
func (s *Stats) add(event oplog.Event) {
	s.TotalEvents++
	s.EventsByOp[event.Op]++
	if event.Error != "" {
		s.Errors++
	}

	if event.Error == "" {
		switch event.Op {
		case oplog.OpRead:
			if event.Length != nil {
				s.BytesRead += uint64(*event.Length)
			}
		case oplog.OpWrite:
			if event.Length != nil {
				s.BytesWrite += uint64(*event.Length)
			}
		case oplog.OpErase:
			if event.From != nil && event.To != nil && *event.To >= *event.From {
				s.BytesErased += uint64(*event.To - *event.From)
			}
		}
	}

	if s.TimeRange.Start.IsZero() || event.Timestamp.Before(s.TimeRange.Start) {
		s.TimeRange.Start = event.Timestamp
	}
	if event.Timestamp.After(s.TimeRange.End) {
		s.TimeRange.End = event.Timestamp
	}

	dev, ok := s.Devices[event.DeviceID]
	if !ok {
		dev = &DeviceStats{FirstSeen: event.Timestamp}
		s.Devices[event.DeviceID] = dev
	}
	dev.Events++
	dev.LastSeen = event.Timestamp
	if event.Error != "" {
		dev.Errors++
	}
}

// print writes the aggregate in a fixed, readable layout.
func (s *Stats) print(w io.Writer) {
	fmt.Fprintf(w, "Total events: %d\n", s.TotalEvents)
	if s.TotalEvents == 0 {
		return
	}

	fmt.Fprintf(w, "Time range:   %s - %s\n",
		s.TimeRange.Start.UTC().Format(time.RFC3339),
		s.TimeRange.End.UTC().Format(time.RFC3339))
	fmt.Fprintf(w, "Errors:       %d\n\n", s.Errors)

	fmt.Fprintln(w, "Operations:")
	for _, op := range []oplog.Op{oplog.OpRead, oplog.OpWrite, oplog.OpErase, oplog.OpFlush} {
		if count := s.EventsByOp[op]; count > 0 {
			fmt.Fprintf(w, "  %-6s %d\n", op, count)
		}
	}

	fmt.Fprintf(w, "\nBytes read:    %d\n", s.BytesRead)
	fmt.Fprintf(w, "Bytes written: %d\n", s.BytesWrite)
	fmt.Fprintf(w, "Bytes erased:  %d\n", s.BytesErased)

	ids := make([]string, 0, len(s.Devices))
	for id := range s.Devices {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	fmt.Fprintf(w, "\nDevices (%d):\n", len(ids))
	for _, id := range ids {
		dev := s.Devices[id]
		fmt.Fprintf(w, "  %s  events=%d errors=%d span=%s\n",
			shortenDeviceID(id), dev.Events, dev.Errors,
			dev.LastSeen.Sub(dev.FirstSeen).Round(time.Millisecond))
	}
}
