// Package blob holds the detection types shared by both camera protocols.
package blob

import (
	"fmt"
	"strings"
)

// NoCount marks a block that came from a general query rather than a
// per-signature query, so no block count applies.
const NoCount = -1

// Signature limits for a single trained color
const (
	MinSignature = 1
	MaxSignature = 7
)

// Block describes the signature, location, and size of a detected block
type Block struct {
	// Signature is 1 through 7 for a single trained color,
	// or a sequence of octal digits for a color code.
	Signature Signature

	// Center of the block.
	// Register protocol: x in 0..255 (left to right), y in 0..199 (top to bottom).
	X, Y int

	// Size of the block. Zero width and height means no block was detected.
	Width, Height int

	// Angle of a color code block, in degrees (packet protocol and LEGO color code query).
	Angle int

	// Tracking index and age in frames (packet protocol only).
	Index int
	Age   int

	// Count of blocks detected for the given signature,
	// or NoCount when the block came from the general query.
	Count int
}

// Area returns width times height.
func (b Block) Area() int {
	return b.Width * b.Height
}

// IsEmpty reports whether the sensor saw nothing.
// This is a valid result of a query, not an error.
func (b Block) IsEmpty() bool {
	return b.Width == 0 && b.Height == 0
}

func (b Block) String() string {
	if b.Signature.IsColorCode() {
		return fmt.Sprintf("CC block sig: %s (%d decimal) x: %d y: %d width: %d height: %d angle: %d",
			b.Signature, uint16(b.Signature), b.X, b.Y, b.Width, b.Height, b.Angle)
	}
	s := fmt.Sprintf("sig: %d x: %d y: %d width: %d height: %d", b.Signature, b.X, b.Y, b.Width, b.Height)
	if b.Count != NoCount {
		s += fmt.Sprintf(" cnt: %d", b.Count)
	}
	return s
}

// List is an ordered sequence of blocks plus the total count reported by the sensor.
// The sequence may hold fewer entries than Total when the response buffer
// does not carry every block.
type List struct {
	Total  int
	Blocks []Block
}

// Biggest returns the non-empty block with the largest area.
// Ties go to the earlier block.
func (l List) Biggest() (Block, bool) {
	best := Block{Count: NoCount}
	found := false
	for _, b := range l.Blocks {
		if b.IsEmpty() {
			continue
		}
		if !found || b.Area() > best.Area() {
			best = b
			found = true
		}
	}
	return best, found
}

// Detected returns the non-empty blocks of the list.
func (l List) Detected() []Block {
	var out []Block
	for _, b := range l.Blocks {
		if !b.IsEmpty() {
			out = append(out, b)
		}
	}
	return out
}

func (l List) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "total: %d", l.Total)
	for i, b := range l.Detected() {
		fmt.Fprintf(&sb, "\n  block %d: %s", i, b)
	}
	return sb.String()
}

// CheckSignature returns an error when sig is not a single trained color.
func CheckSignature(sig int) error {
	if sig < MinSignature || sig > MaxSignature {
		return &OutOfRangeError{Signature: sig}
	}
	return nil
}
