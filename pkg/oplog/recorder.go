package oplog

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/nvmem-project/nvmem-go/pkg/storage"
)

// Recorder wraps a storage device and emits one trace event per contract
// operation. It forwards every argument and result unchanged, so it can
// stand anywhere a device can.
//
// The Recorder adds no synchronization; like any device instance it
// requires exclusive access for the duration of a call.
type Recorder struct {
	dev    storage.Storage
	logger Logger
	id     string
}

// NewRecorder wraps dev and assigns the trace a fresh device instance
// UUID. A nil logger disables tracing.
func NewRecorder(dev storage.Storage, logger Logger) *Recorder {
	if logger == nil {
		logger = NoopLogger{}
	}
	return &Recorder{
		dev:    dev,
		logger: logger,
		id:     uuid.NewString(),
	}
}

// DeviceID returns the UUID identifying this traced instance.
func (r *Recorder) DeviceID() string {
	return r.id
}

// Profile returns the wrapped device's profile.
func (r *Recorder) Profile() storage.Profile {
	return r.dev.Profile()
}

// Capacity returns the wrapped device's capacity.
func (r *Recorder) Capacity() uint32 {
	return r.dev.Capacity()
}

// Read forwards to the wrapped device and records the operation.
func (r *Recorder) Read(ctx context.Context, offset uint32, p []byte) error {
	start := time.Now()
	err := r.dev.Read(ctx, offset, p)
	length := len(p)
	r.emit(Event{
		Timestamp: start,
		Op:        OpRead,
		Offset:    &offset,
		Length:    &length,
	}, start, err)
	return err
}

// Erase forwards to the wrapped device and records the operation.
func (r *Recorder) Erase(ctx context.Context, from, to uint32) error {
	start := time.Now()
	err := r.dev.Erase(ctx, from, to)
	r.emit(Event{
		Timestamp: start,
		Op:        OpErase,
		From:      &from,
		To:        &to,
	}, start, err)
	return err
}

// Write forwards to the wrapped device and records the operation.
func (r *Recorder) Write(ctx context.Context, offset uint32, p []byte) error {
	start := time.Now()
	err := r.dev.Write(ctx, offset, p)
	length := len(p)
	r.emit(Event{
		Timestamp: start,
		Op:        OpWrite,
		Offset:    &offset,
		Length:    &length,
	}, start, err)
	return err
}

// Flush forwards to the wrapped device and records the operation.
func (r *Recorder) Flush(ctx context.Context) error {
	start := time.Now()
	err := r.dev.Flush(ctx)
	r.emit(Event{
		Timestamp: start,
		Op:        OpFlush,
	}, start, err)
	return err
}

func (r *Recorder) emit(event Event, start time.Time, err error) {
	event.DeviceID = r.id
	event.Duration = time.Since(start)
	if err != nil {
		event.Error = err.Error()
	}
	r.logger.Log(event)
}

// Compile-time interface satisfaction check.
var _ storage.Storage = (*Recorder)(nil)
