package pixy2

import (
	"fmt"
)

// PrintStatus prints camera status information to stdout
func (c *Client) PrintStatus() {
	ctx, cancel := c.withTimeout()
	defer cancel()

	fmt.Printf("Protocol: Pixy2 packet\n")
	fmt.Printf("Bus Address: 0x%02x\n", c.engine.conf.addr)

	v, err := c.Version(ctx)
	if err != nil {
		fmt.Printf("Camera: Not responding (%v)\n", err)
		return
	}
	fmt.Printf("Hardware Version: 0x%04x\n", v.Hardware)
	fmt.Printf("Firmware Version: %d.%d.%d (%s)\n", v.FirmwareMajor, v.FirmwareMinor, v.FirmwareBuild, v.FirmwareType)

	width, height, err := c.Resolution(ctx)
	if err == nil {
		fmt.Printf("Resolution: %dx%d\n", width, height)
	}
	fps, err := c.FPS(ctx)
	if err == nil {
		fmt.Printf("Frame Rate: %d fps\n", fps)
	}
}
