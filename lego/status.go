package lego

import (
	"fmt"
)

// PrintStatus prints camera status information to stdout
func (c *Client) PrintStatus() {
	fmt.Printf("Protocol: register window (LEGO firmware)\n")
	fmt.Printf("Bus Address: 0x%02x\n", c.addr)

	// The general query is always present, so use it as a presence check
	block, err := c.BiggestBlock()
	if err != nil {
		fmt.Printf("Camera: Not responding (%v)\n", err)
		return
	}
	fmt.Printf("Camera: Connected\n")
	if block.IsEmpty() {
		fmt.Printf("Biggest Block: none\n")
	} else {
		fmt.Printf("Biggest Block: %s\n", block)
	}

	// Only the FTC firmware fills the extended registers
	list, err := c.Blocks()
	if err != nil {
		fmt.Printf("Extended Queries: Unavailable\n")
		return
	}
	fmt.Printf("Extended Queries: Available, %d block(s) reported\n", list.Total)
}
