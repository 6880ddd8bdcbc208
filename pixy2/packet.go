package pixy2

import (
	"context"
	"encoding/binary"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/sergev/pixy/blob"
)

// Sync words, little-endian on the wire
const (
	SyncChecksum   = 0xc1af // response carries a checksum
	SyncNoChecksum = 0xc1ae // requests, and responses without checksum
)

// Packet types
const (
	TypeResponseResult     = 0x01
	TypeRequestChangeProg  = 0x02
	TypeResponseError      = 0x03
	TypeRequestResolution  = 0x0c
	TypeResponseResolution = 0x0d
	TypeRequestVersion     = 0x0e
	TypeResponseVersion    = 0x0f
	TypeRequestBrightness  = 0x10
	TypeRequestServo       = 0x12
	TypeRequestLED         = 0x14
	TypeRequestLamp        = 0x16
	TypeRequestFPS         = 0x18
	TypeRequestBlocks      = 0x20
	TypeResponseBlocks     = 0x21
	TypeRequestGetRGB      = 0x70
)

// Header sizes
const (
	requestHeaderSize        = 4 // sync(2) type len
	responseHeaderSize       = 4 // type len checksum(2), after the sync
	responseHeaderNoChecksum = 2 // type len, after the sync
	maxPayload               = 255
)

// Packet is one decoded response
type Packet struct {
	Type    byte
	Payload []byte
}

// isError reports whether the packet is an error response with the given code.
func (p Packet) isError(code int) bool {
	return p.Type == TypeResponseError && len(p.Payload) > 0 && int(int8(p.Payload[0])) == code
}

// err converts a packet that is not the expected response into an error.
func (p Packet) err() error {
	if p.Type == TypeResponseError && len(p.Payload) > 0 {
		return &ResultError{Code: int(int8(p.Payload[0]))}
	}
	return &ResultError{Code: CodeError}
}

// result decodes the 32-bit result carried by a result response.
func (p Packet) result() (int32, error) {
	if p.Type != TypeResponseResult || len(p.Payload) < 4 {
		return 0, p.err()
	}
	return int32(binary.LittleEndian.Uint32(p.Payload)), nil
}

// encodeRequest frames a request: sync, type, length, payload.
func encodeRequest(reqType byte, payload []byte) ([]byte, error) {
	if len(payload) > maxPayload {
		return nil, fmt.Errorf("payload length %d exceeds maximum %d", len(payload), maxPayload)
	}
	frame := make([]byte, 0, requestHeaderSize+len(payload))
	frame = binary.LittleEndian.AppendUint16(frame, SyncNoChecksum)
	frame = append(frame, reqType, byte(len(payload)))
	frame = append(frame, payload...)
	return frame, nil
}

// SendPacket frames and sends one request.
func (e *Engine) SendPacket(reqType byte, payload []byte) error {
	frame, err := encodeRequest(reqType, payload)
	if err != nil {
		return err
	}
	_, err = e.Send(frame)
	return err
}

// findSync reads one byte at a time until a sync word shows up.
// It reports whether the response carries a checksum.
func (e *Engine) findSync(ctx context.Context) (bool, error) {
	var prev byte
	for i := 0; i < e.conf.syncLimit; i++ {
		b, err := e.Receive(ctx, 1, nil)
		if err != nil {
			return false, err
		}
		word := uint16(b[0])<<8 | uint16(prev)
		switch {
		case i > 0 && word == SyncChecksum:
			return true, nil
		case i > 0 && word == SyncNoChecksum:
			return false, nil
		}
		prev = b[0]
	}
	log.Debug().Int("bytes", e.conf.syncLimit).Msg("no sync word in response")
	return false, ErrNoSync
}

// ReceivePacket reads one response and validates its checksum.
func (e *Engine) ReceivePacket(ctx context.Context) (Packet, error) {
	withChecksum, err := e.findSync(ctx)
	if err != nil {
		return Packet{}, err
	}

	if !withChecksum {
		header, err := e.Receive(ctx, responseHeaderNoChecksum, nil)
		if err != nil {
			return Packet{}, fmt.Errorf("failed to read response header: %w", err)
		}
		payload, err := e.Receive(ctx, int(header[1]), nil)
		if err != nil {
			return Packet{}, fmt.Errorf("failed to read response payload: %w", err)
		}
		return Packet{Type: header[0], Payload: payload}, nil
	}

	// bytes 0-1: type, length; bytes 2-3: checksum (uint16, little-endian)
	header, err := e.Receive(ctx, responseHeaderSize, nil)
	if err != nil {
		return Packet{}, fmt.Errorf("failed to read response header: %w", err)
	}
	want := binary.LittleEndian.Uint16(header[2:4])

	var cs Checksum
	payload, err := e.Receive(ctx, int(header[1]), &cs)
	if err != nil {
		return Packet{}, fmt.Errorf("failed to read response payload: %w", err)
	}
	if cs.Sum() != want {
		return Packet{}, &blob.ChecksumError{Want: want, Got: cs.Sum()}
	}
	return Packet{Type: header[0], Payload: payload}, nil
}

// Exchange sends one request and returns the response.
// The request is fully sent before any response byte is read.
func (e *Engine) Exchange(ctx context.Context, reqType byte, payload []byte) (Packet, error) {
	if err := e.SendPacket(reqType, payload); err != nil {
		return Packet{}, fmt.Errorf("failed to send request 0x%02x: %w", reqType, err)
	}
	pkt, err := e.ReceivePacket(ctx)
	if err != nil {
		return Packet{}, fmt.Errorf("failed to receive response to request 0x%02x: %w", reqType, err)
	}
	return pkt, nil
}
