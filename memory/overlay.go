package memory

// OVERLAY_STATUS_ENABLED is set in the control port status while the
// boot overlay is active.
const OVERLAY_STATUS_ENABLED = 0x01

// Overlay maps a ROM image at Base, and while enabled also mirrors it onto
// low memory so the CPU can boot from address 0x0000.
//
// The ROM window at Base is always read-only. Writes to low memory reach
// the underlying RAM even while the overlay hides it, so firmware can
// install its vectors before dropping the overlay.
type Overlay struct {
	Ram     Memory  // Underlying RAM.
	Rom     []uint8 // ROM image.
	Base    uint16  // Address of the ROM window.
	Enabled bool    // Set while low memory reads come from the ROM.
}

var _ Memory = (*Overlay)(nil)

// NewOverlay returns an overlay with no ROM over the RAM.
func NewOverlay(ram Memory) *Overlay {
	if ram == nil {
		ram = NewFlat()
	}

	return &Overlay{Ram: ram}
}

// Install loads a ROM image at base and enables the boot overlay.
func (ov *Overlay) Install(rom []uint8, base uint16) {
	ov.Rom = append([]uint8(nil), rom...)
	ov.Base = base
	ov.Enabled = len(rom) > 0
}

// Disable drops the boot overlay, exposing RAM at low memory.
func (ov *Overlay) Disable() {
	ov.Enabled = false
}

// inRom returns the ROM offset for addr, if addr is in the ROM window.
func (ov *Overlay) inRom(addr uint16) (offset int, ok bool) {
	offset = int(addr - ov.Base)
	ok = offset < len(ov.Rom)
	return
}

func (ov *Overlay) Read(addr uint16) uint8 {
	if offset, ok := ov.inRom(addr); ok {
		return ov.Rom[offset]
	}

	if ov.Enabled && int(addr) < len(ov.Rom) {
		return ov.Rom[addr]
	}

	return ov.Ram.Read(addr)
}

func (ov *Overlay) Write(addr uint16, value uint8) {
	if _, ok := ov.inRom(addr); ok {
		return
	}

	ov.Ram.Write(addr, value)
}

// ReadPort returns the overlay status on the memory control port.
func (ov *Overlay) ReadPort(port uint8) (status uint8) {
	if ov.Enabled {
		status |= OVERLAY_STATUS_ENABLED
	}
	return
}

// WritePort drops the overlay on any write to the memory control port.
func (ov *Overlay) WritePort(port uint8, value uint8) {
	ov.Disable()
}
