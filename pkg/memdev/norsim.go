package memdev

import "github.com/nvmem-project/nvmem-go/pkg/norflash"

// ReadSize returns the profile's read granularity.
// Part of the native NOR capability surface.
func (d *Device) ReadSize() uint32 {
	return d.cfg.Profile.ReadSize
}

// WriteSize returns the profile's write granularity.
func (d *Device) WriteSize() uint32 {
	return d.cfg.Profile.WriteSize
}

// EraseSize returns the profile's erase granularity.
func (d *Device) EraseSize() uint32 {
	return d.cfg.Profile.EraseSize
}

// Multiwrite marks an emulated device as tolerating AND-combining
// rewrites, so it can stand behind norflash.NewMultiwrite. The embedded
// device's profile should use an AND-combining write behavior for the
// emulation to match the declared capability.
type Multiwrite struct {
	*Device
}

// MultiwriteCapable marks the device as multi-write capable.
func (Multiwrite) MultiwriteCapable() {}

// Compile-time interface satisfaction checks.
var (
	_ norflash.Device           = (*Device)(nil)
	_ norflash.MultiwriteDevice = Multiwrite{}
)
