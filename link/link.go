// Package link is the byte-level transport between the protocol decoders
// and the camera. Opening, addressing and closing the physical bus belong here;
// the decoders only read and write.
package link

// DefaultAddress is the 7-bit bus address of the camera for both protocol generations
const DefaultAddress = 0x54

// Bus defines the transport used by the decoders.
// The method set matches github.com/reef-pi/rpi/i2c.Bus, so an I2C bus
// from that package is usable directly.
type Bus interface {
	// ReadBytes reads up to n bytes from the device.
	// It may return fewer; callers needing an exact count must loop.
	ReadBytes(addr byte, n int) ([]byte, error)

	// WriteBytes sends p to the device as one bus transaction.
	WriteBytes(addr byte, p []byte) error

	// ReadFromReg samples len(p) bytes starting at register reg.
	// A transport that delivers fewer bytes returns *blob.ShortReadError.
	ReadFromReg(addr, reg byte, p []byte) error

	// WriteToReg writes p starting at register reg.
	WriteToReg(addr, reg byte, p []byte) error

	// Close releases the bus.
	Close() error
}
