package pixy2

import (
	"context"
	"encoding/binary"
	"fmt"

	"github.com/sergev/pixy/blob"
)

// Block request parameters
const (
	AllSignatures = 0xff // signature bitmap selecting every signature
	MaxBlocks     = 0xff
	blockSize     = 14
)

// GetBlocks returns the blocks of the most recent frame matching the
// signature bitmap (bit 0 is signature 1), at most maxBlocks of them.
// When the camera has no new frame yet it answers busy, which yields
// an empty list rather than an error.
func (c *Client) GetBlocks(ctx context.Context, sigmap, maxBlocks uint8) (blob.List, error) {
	pkt, err := c.engine.Exchange(ctx, TypeRequestBlocks, []byte{sigmap, maxBlocks})
	if err != nil {
		return blob.List{}, err
	}
	if pkt.isError(CodeBusy) {
		return blob.List{}, nil
	}
	if pkt.Type != TypeResponseBlocks {
		return blob.List{}, pkt.err()
	}
	return decodeBlocks(pkt.Payload)
}

// decodeBlocks parses block records, 14 bytes each:
// bytes 0-1: signature, 2-3: x, 4-5: y, 6-7: width, 8-9: height (uint16, little-endian)
// bytes 10-11: angle (int16, little-endian), byte 12: tracking index, byte 13: age
func decodeBlocks(p []byte) (blob.List, error) {
	if len(p)%blockSize != 0 {
		return blob.List{}, fmt.Errorf("block payload length %d is not a multiple of %d", len(p), blockSize)
	}
	list := blob.List{Total: len(p) / blockSize}
	for i := 0; i+blockSize <= len(p); i += blockSize {
		r := p[i : i+blockSize]
		list.Blocks = append(list.Blocks, blob.Block{
			Signature: blob.Signature(binary.LittleEndian.Uint16(r[0:2])),
			X:         int(binary.LittleEndian.Uint16(r[2:4])),
			Y:         int(binary.LittleEndian.Uint16(r[4:6])),
			Width:     int(binary.LittleEndian.Uint16(r[6:8])),
			Height:    int(binary.LittleEndian.Uint16(r[8:10])),
			Angle:     int(int16(binary.LittleEndian.Uint16(r[10:12]))),
			Index:     int(r[12]),
			Age:       int(r[13]),
			Count:     blob.NoCount,
		})
	}
	return list, nil
}

// BiggestBlock returns the largest block of any signature.
// An empty block means nothing was detected.
func (c *Client) BiggestBlock() (blob.Block, error) {
	ctx, cancel := c.withTimeout()
	defer cancel()

	list, err := c.GetBlocks(ctx, AllSignatures, 1)
	if err != nil {
		return blob.Block{}, err
	}
	block, _ := list.Biggest()
	return block, nil
}

// Blocks returns every block of the most recent frame.
func (c *Client) Blocks() (blob.List, error) {
	ctx, cancel := c.withTimeout()
	defer cancel()
	return c.GetBlocks(ctx, AllSignatures, MaxBlocks)
}

// SignatureBlocks returns the blocks of one signature (1..7).
func (c *Client) SignatureBlocks(sig int) (blob.List, error) {
	if err := blob.CheckSignature(sig); err != nil {
		return blob.List{}, err
	}
	ctx, cancel := c.withTimeout()
	defer cancel()
	return c.GetBlocks(ctx, 1<<(sig-1), MaxBlocks)
}
