package link

import (
	"fmt"

	"github.com/google/gousb"
)

// USB identifiers of the Pixy2 camera
const (
	USBVendorID  = 0xb1ac
	USBProductID = 0xf000
)

// USBDevice describes a camera attached over USB
type USBDevice struct {
	Bus          int
	Address      int
	Version      string // device release, e.g. "2.0"
	Manufacturer string
	Product      string
	SerialNumber string
}

// FindUSB lists the cameras attached to the host over USB.
// The USB port carries the vendor control protocol, not the packet protocol,
// so it is used for detection only.
func FindUSB() ([]USBDevice, error) {
	ctx := gousb.NewContext()
	defer ctx.Close()

	// OpenDevices may return some devices together with an error
	// (typically permission problems on other devices); keep what opened.
	devs, err := ctx.OpenDevices(func(desc *gousb.DeviceDesc) bool {
		return uint16(desc.Vendor) == USBVendorID && uint16(desc.Product) == USBProductID
	})
	defer func() {
		for _, dev := range devs {
			dev.Close()
		}
	}()
	if err != nil && len(devs) == 0 {
		return nil, fmt.Errorf("failed to enumerate USB devices: %w", err)
	}

	out := make([]USBDevice, 0, len(devs))
	for _, dev := range devs {
		info := USBDevice{
			Bus:     dev.Desc.Bus,
			Address: dev.Desc.Address,
			Version: dev.Desc.Device.String(),
		}
		// String descriptors are optional
		info.Manufacturer, _ = dev.Manufacturer()
		info.Product, _ = dev.Product()
		info.SerialNumber, _ = dev.SerialNumber()
		out = append(out, info)
	}
	return out, nil
}
