package blob

import "fmt"

// RGB holds a color with every channel clamped to 0..255.
type RGB struct {
	r, g, b int
}

func clamp(v int) int {
	if v >= 255 {
		return 255
	}
	if v <= 0 {
		return 0
	}
	return v
}

// NewRGB returns a color with each channel clamped.
func NewRGB(r, g, b int) RGB {
	var c RGB
	c.Set(r, g, b)
	return c
}

func (c RGB) R() uint8 { return uint8(c.r) }
func (c RGB) G() uint8 { return uint8(c.g) }
func (c RGB) B() uint8 { return uint8(c.b) }

// Color returns the channels as {r, g, b}.
func (c RGB) Color() [3]int {
	return [3]int{c.r, c.g, c.b}
}

// Packed returns the color as 0xRRGGBB.
func (c RGB) Packed() uint32 {
	return uint32(c.r)<<16 | uint32(c.g)<<8 | uint32(c.b)
}

func (c *RGB) SetR(r int) { c.r = clamp(r) }
func (c *RGB) SetG(g int) { c.g = clamp(g) }
func (c *RGB) SetB(b int) { c.b = clamp(b) }

// Set assigns all three channels.
func (c *RGB) Set(r, g, b int) {
	c.r = clamp(r)
	c.g = clamp(g)
	c.b = clamp(b)
}

// SetColor assigns channels from {r, g, b}.
func (c *RGB) SetColor(color [3]int) {
	c.Set(color[0], color[1], color[2])
}

// SetPacked assigns channels from 0xRRGGBB. Upper bits are ignored.
func (c *RGB) SetPacked(rgb uint32) {
	c.r = int(rgb>>16) & 0xff
	c.g = int(rgb>>8) & 0xff
	c.b = int(rgb) & 0xff
}

func (c RGB) String() string {
	return fmt.Sprintf("r: %d g: %d b: %d (#%06x)", c.r, c.g, c.b, c.Packed())
}
