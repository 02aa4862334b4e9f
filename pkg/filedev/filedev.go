// Package filedev provides a file-backed emulated storage device.
//
// The device has memdev semantics (full validation, erase-value fill,
// write-behavior combining) plus persistence: the contents image lives in
// a file next to a JSON metadata header, so an emulated flash survives
// process restarts. Flush writes and syncs the image, making it the
// contract's durability point rather than a no-op.
package filedev

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/nvmem-project/nvmem-go/pkg/memdev"
	"github.com/nvmem-project/nvmem-go/pkg/storage"
)

// MetaVersion is the current version of the metadata file format.
const MetaVersion = 1

// Meta is the JSON metadata header stored next to the image file.
type Meta struct {
	// Version is the metadata file format version.
	Version int `json:"version"`

	// InstanceID uniquely identifies this device image (UUID).
	InstanceID string `json:"instance_id"`

	// SavedAt is when the image was last flushed.
	SavedAt time.Time `json:"saved_at"`

	// Capacity is the image size in bytes.
	Capacity uint32 `json:"capacity"`

	// Profile is the device profile the image was created with.
	Profile storage.Profile `json:"profile"`
}

// Device is a file-backed emulated storage device.
type Device struct {
	mu    sync.Mutex
	mem   *memdev.Device
	path  string
	meta  Meta
	dirty bool
}

// Open creates or reopens a file-backed device at path. The image is
// stored at path and the metadata at path + ".json".
//
// If the files exist, the stored image is loaded; the stored profile and
// capacity must match cfg or an error is returned. Otherwise a fresh
// image is created (contents unspecified by the contract; all zero bytes
// in practice) and assigned a new instance ID.
func Open(path string, cfg memdev.Config) (*Device, error) {
	mem, err := memdev.New(cfg)
	if err != nil {
		return nil, err
	}

	d := &Device{
		mem:  mem,
		path: path,
		meta: Meta{
			Version:    MetaVersion,
			InstanceID: uuid.NewString(),
			Capacity:   cfg.Capacity,
			Profile:    cfg.Profile,
		},
	}

	if _, err := os.Stat(path); err == nil {
		if err := d.load(cfg); err != nil {
			return nil, err
		}
	} else if !os.IsNotExist(err) {
		return nil, err
	}
	return d, nil
}

// InstanceID returns the UUID identifying this device image.
func (d *Device) InstanceID() string {
	return d.meta.InstanceID
}

// Profile returns the configured device profile.
func (d *Device) Profile() storage.Profile {
	return d.mem.Profile()
}

// Capacity returns the configured capacity.
func (d *Device) Capacity() uint32 {
	return d.mem.Capacity()
}

// Read fills p with the stored bytes at [offset, offset+len(p)).
func (d *Device) Read(ctx context.Context, offset uint32, p []byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.mem.Read(ctx, offset, p)
}

// Erase fills [from, to) with the profile's erase value.
// The change is durable only after the next Flush.
func (d *Device) Erase(ctx context.Context, from, to uint32) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.mem.Erase(ctx, from, to); err != nil {
		return err
	}
	d.dirty = true
	return nil
}

// Write stores p at [offset, offset+len(p)), combining per the profile's
// write behavior. The change is durable only after the next Flush.
func (d *Device) Write(ctx context.Context, offset uint32, p []byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.mem.Write(ctx, offset, p); err != nil {
		return err
	}
	d.dirty = true
	return nil
}

// Flush persists the image and metadata to disk and syncs the image
// file. After Flush returns, all prior operations are durable.
func (d *Device) Flush(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.dirty {
		return nil
	}
	if err := d.save(); err != nil {
		return err
	}
	d.dirty = false
	return nil
}

// Close flushes any unsaved changes.
func (d *Device) Close() error {
	return d.Flush(context.Background())
}

// load reads the image and metadata from disk, verifying that the stored
// profile and capacity match the requested configuration.
func (d *Device) load(cfg memdev.Config) error {
	metaData, err := os.ReadFile(d.metaPath())
	if err != nil {
		return fmt.Errorf("failed to read device metadata: %w", err)
	}
	var meta Meta
	if err := json.Unmarshal(metaData, &meta); err != nil {
		return fmt.Errorf("failed to parse device metadata: %w", err)
	}
	if meta.Version != MetaVersion {
		return fmt.Errorf("unsupported metadata version %d", meta.Version)
	}
	if meta.Profile != cfg.Profile {
		return fmt.Errorf("%w: stored profile does not match configuration", storage.ErrInvalidProfile)
	}
	if meta.Capacity != cfg.Capacity {
		return fmt.Errorf("%w: stored capacity %d does not match configured %d",
			storage.ErrInvalidProfile, meta.Capacity, cfg.Capacity)
	}

	img, err := os.ReadFile(d.path)
	if err != nil {
		return fmt.Errorf("failed to read device image: %w", err)
	}
	if err := d.mem.LoadImage(img); err != nil {
		return err
	}

	d.meta = meta
	return nil
}

// save writes the image via a temp file and atomic rename, syncs it, and
// rewrites the metadata header.
func (d *Device) save() error {
	dir := filepath.Dir(d.path)

	tmp, err := os.CreateTemp(dir, ".nvmem-*")
	if err != nil {
		return fmt.Errorf("failed to create temp image: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(d.mem.Image()); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write image: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to sync image: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return err
	}
	if err := os.Rename(tmpPath, d.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to replace image: %w", err)
	}

	d.meta.SavedAt = time.Now().UTC()
	metaData, err := json.MarshalIndent(d.meta, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(d.metaPath(), metaData, 0644); err != nil {
		return fmt.Errorf("failed to write device metadata: %w", err)
	}
	return nil
}

func (d *Device) metaPath() string {
	return d.path + ".json"
}

// Compile-time interface satisfaction check.
var _ storage.Storage = (*Device)(nil)
