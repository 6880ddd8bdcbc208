// Package lego decodes the register-window protocol of the first Pixy
// camera: LEGO firmware queries and the extended queries of the FTC firmware.
// The camera refreshes these registers continuously; a read samples the
// current state. There is no framing, checksum or retry.
package lego

import (
	"errors"
	"fmt"

	"github.com/sergev/pixy/blob"
	"github.com/sergev/pixy/link"
)

// Register map, relative to the firmware base
const (
	QueryBase         = 0x50 // general query; QueryBase+sig is the per-signature query
	QueryColorCode    = 0x58 // color code query, followed by the code
	ExtendedQueryBase = 0x70 // extended general list; ExtendedQueryBase+sig per signature
)

// Window sizes and record layouts
const (
	queryCount           = 6  // sigLo sigHi x y w h
	querySigCount        = 5  // cnt x y w h
	queryCCCount         = 6  // cnt x y w h angle
	extendedCount        = 26 // cnt + 5 × (sig x y w h)
	extendedBlockSize    = 5
	extendedSigCount     = 25 // cnt + 6 × (x y w h)
	extendedSigBlockSize = 4
)

// window is a fixed register range sampled by a single read
type window struct {
	register byte
	count    int
}

// Client reads blocks from a camera running the register-window protocol
type Client struct {
	bus  link.Bus
	addr byte

	general        window
	signature      [blob.MaxSignature]window
	extended       window
	extendedPerSig [blob.MaxSignature]window
}

// Option configures a Client.
type Option func(*Client)

// WithAddress sets the 7-bit bus address of the camera.
func WithAddress(addr byte) Option {
	return func(c *Client) {
		c.addr = addr
	}
}

// New creates a register-window client on the given bus.
// All register windows are laid out here once and reused for every poll.
func New(bus link.Bus, opts ...Option) *Client {
	c := &Client{
		bus:      bus,
		addr:     link.DefaultAddress,
		general:  window{register: QueryBase, count: queryCount},
		extended: window{register: ExtendedQueryBase, count: extendedCount},
	}
	for sig := blob.MinSignature; sig <= blob.MaxSignature; sig++ {
		c.signature[sig-1] = window{register: byte(QueryBase + sig), count: querySigCount}
		c.extendedPerSig[sig-1] = window{register: byte(ExtendedQueryBase + sig), count: extendedSigCount}
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// readWindow samples an entire register window.
// A short read is fatal for the call; a truncated block is never produced.
func (c *Client) readWindow(w window) ([]byte, error) {
	buf := make([]byte, w.count)
	err := c.bus.ReadFromReg(c.addr, w.register, buf)
	if err != nil {
		var short *blob.ShortReadError
		if errors.As(err, &short) {
			return nil, short
		}
		return nil, fmt.Errorf("failed to read register 0x%02x: %w", w.register, err)
	}
	return buf, nil
}

// BiggestBlock returns the largest block detected of any signature.
// An empty block (see blob.Block.IsEmpty) means nothing was detected.
func (c *Client) BiggestBlock() (blob.Block, error) {
	buf, err := c.readWindow(c.general)
	if err != nil {
		return blob.Block{}, err
	}

	// bytes 0-1: signature (uint16, little-endian)
	// bytes 2-5: x, y, width, height
	return blob.Block{
		Signature: blob.Signature(uint16(buf[1])<<8 | uint16(buf[0])),
		X:         int(buf[2]),
		Y:         int(buf[3]),
		Width:     int(buf[4]),
		Height:    int(buf[5]),
		Count:     blob.NoCount,
	}, nil
}

// SignatureBlock returns the largest block of the given signature (1..7),
// with the number of blocks of that signature in Count.
func (c *Client) SignatureBlock(sig int) (blob.Block, error) {
	if err := blob.CheckSignature(sig); err != nil {
		return blob.Block{}, err
	}
	buf, err := c.readWindow(c.signature[sig-1])
	if err != nil {
		return blob.Block{}, err
	}

	// byte 0: count, bytes 1-4: x, y, width, height
	return blob.Block{
		Signature: blob.Signature(sig),
		X:         int(buf[1]),
		Y:         int(buf[2]),
		Width:     int(buf[3]),
		Height:    int(buf[4]),
		Count:     int(buf[0]),
	}, nil
}

// Blocks returns up to five of the largest blocks of any signature.
func (c *Client) Blocks() (blob.List, error) {
	buf, err := c.readWindow(c.extended)
	if err != nil {
		return blob.List{}, err
	}

	list := blob.List{Total: int(buf[0])}
	for i := 1; i+extendedBlockSize <= len(buf); i += extendedBlockSize {
		list.Blocks = append(list.Blocks, blob.Block{
			Signature: blob.Signature(buf[i]),
			X:         int(buf[i+1]),
			Y:         int(buf[i+2]),
			Width:     int(buf[i+3]),
			Height:    int(buf[i+4]),
			Count:     blob.NoCount,
		})
	}
	return list, nil
}

// SignatureBlocks returns up to six of the largest blocks of the given signature (1..7).
func (c *Client) SignatureBlocks(sig int) (blob.List, error) {
	if err := blob.CheckSignature(sig); err != nil {
		return blob.List{}, err
	}
	buf, err := c.readWindow(c.extendedPerSig[sig-1])
	if err != nil {
		return blob.List{}, err
	}

	list := blob.List{Total: int(buf[0])}
	for i := 1; i+extendedSigBlockSize <= len(buf); i += extendedSigBlockSize {
		list.Blocks = append(list.Blocks, blob.Block{
			Signature: blob.Signature(sig),
			X:         int(buf[i]),
			Y:         int(buf[i+1]),
			Width:     int(buf[i+2]),
			Height:    int(buf[i+3]),
			Count:     blob.NoCount,
		})
	}
	return list, nil
}

// ColorCodeBlock returns the largest block of the given color code.
// The code is written after the query register, then six bytes are read back:
// count, x, y, width, height, angle.
func (c *Client) ColorCodeBlock(cc blob.Signature) (blob.Block, error) {
	if !cc.IsColorCode() {
		return blob.Block{}, fmt.Errorf("signature %s is not a color code", cc)
	}
	cmd := []byte{QueryColorCode, byte(cc), byte(cc >> 8)}
	if err := c.bus.WriteBytes(c.addr, cmd); err != nil {
		return blob.Block{}, fmt.Errorf("failed to write color code query: %w", err)
	}
	buf, err := c.bus.ReadBytes(c.addr, queryCCCount)
	if err != nil {
		return blob.Block{}, fmt.Errorf("failed to read color code response: %w", err)
	}
	if len(buf) < queryCCCount {
		return blob.Block{}, &blob.ShortReadError{Register: QueryColorCode, Want: queryCCCount, Got: len(buf)}
	}

	// Angle is scaled so that 256 units are a full turn
	return blob.Block{
		Signature: cc,
		X:         int(buf[1]),
		Y:         int(buf[2]),
		Width:     int(buf[3]),
		Height:    int(buf[4]),
		Angle:     int(buf[5]) * 360 / 256,
		Count:     int(buf[0]),
	}, nil
}

// Close releases the bus.
func (c *Client) Close() error {
	return c.bus.Close()
}
