package pixy2

// Checksum is the running sum of received payload bytes, truncated to 16 bits.
// It is reset at the start of every exchange.
type Checksum struct {
	sum uint16
}

// Reset clears the sum.
func (c *Checksum) Reset() {
	c.sum = 0
}

// Update adds one byte, taken as unsigned.
func (c *Checksum) Update(b byte) {
	c.sum += uint16(b)
}

// Add adds every byte of p.
func (c *Checksum) Add(p []byte) {
	for _, b := range p {
		c.sum += uint16(b)
	}
}

// Sum returns the current value.
func (c *Checksum) Sum() uint16 {
	return c.sum
}
