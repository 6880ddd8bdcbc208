package blob

import "fmt"

// OutOfRangeError indicates a signature argument outside 1..7.
type OutOfRangeError struct {
	Signature int
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("signature %d out of range: must be between %d and %d",
		e.Signature, MinSignature, MaxSignature)
}

// ShortReadError indicates the transport returned fewer bytes than
// a fixed register window requires.
type ShortReadError struct {
	Register byte
	Want     int
	Got      int
}

func (e *ShortReadError) Error() string {
	return fmt.Sprintf("short read at register 0x%02x: got %d bytes, expected %d",
		e.Register, e.Got, e.Want)
}

// ChecksumError indicates a response whose computed checksum
// disagrees with the checksum carried in its header.
type ChecksumError struct {
	Want uint16 // carried in the response
	Got  uint16 // computed over the payload
}

func (e *ChecksumError) Error() string {
	return fmt.Sprintf("checksum mismatch: response carries 0x%04x, computed 0x%04x", e.Want, e.Got)
}
