package oplog

import (
	"context"
	"log/slog"
)

// SlogAdapter writes trace events to an slog.Logger.
// Useful for development when you want to see device operations in console.
type SlogAdapter struct {
	logger *slog.Logger
}

// NewSlogAdapter creates a new SlogAdapter that writes to the given slog.Logger.
func NewSlogAdapter(logger *slog.Logger) *SlogAdapter {
	return &SlogAdapter{logger: logger}
}

// Log writes the event to the slog logger at Debug level.
func (a *SlogAdapter) Log(event Event) {
	attrs := []slog.Attr{
		slog.String("device_id", event.DeviceID),
		slog.String("op", event.Op.String()),
		slog.Duration("duration", event.Duration),
	}

	if event.Offset != nil {
		attrs = append(attrs, slog.Uint64("offset", uint64(*event.Offset)))
	}
	if event.Length != nil {
		attrs = append(attrs, slog.Int("length", *event.Length))
	}
	if event.From != nil {
		attrs = append(attrs, slog.Uint64("from", uint64(*event.From)))
	}
	if event.To != nil {
		attrs = append(attrs, slog.Uint64("to", uint64(*event.To)))
	}
	if event.Error != "" {
		attrs = append(attrs, slog.String("error", event.Error))
	}

	a.logger.LogAttrs(context.Background(), slog.LevelDebug, "storage", attrs...)
}

// Compile-time interface satisfaction check.
var _ Logger = (*SlogAdapter)(nil)
