// Package pixy2 implements the framed packet protocol of the Pixy2 camera:
// chunked sends, checksummed responses, typed requests, and the pixel color
// query with its retry on "program changing".
package pixy2

import (
	"bytes"
	"context"
	"encoding/binary"
	"fmt"

	"github.com/sergev/pixy/link"
)

// MaxProgName is the size of the program name field of a change program request
const MaxProgName = 33

// Version describes the camera hardware and firmware
type Version struct {
	Hardware      uint16
	FirmwareMajor uint8
	FirmwareMinor uint8
	FirmwareBuild uint16
	FirmwareType  string
}

func (v Version) String() string {
	return fmt.Sprintf("hardware 0x%04x firmware %d.%d.%d %s",
		v.Hardware, v.FirmwareMajor, v.FirmwareMinor, v.FirmwareBuild, v.FirmwareType)
}

// Client issues typed requests to a Pixy2 camera
type Client struct {
	engine *Engine
}

// New creates a Pixy2 client on the given bus.
func New(bus link.Bus, opts ...Option) *Client {
	return &Client{engine: NewEngine(bus, opts...)}
}

// Engine returns the underlying protocol engine.
func (c *Client) Engine() *Engine {
	return c.engine
}

// Close releases the bus.
func (c *Client) Close() error {
	return c.engine.Close()
}

// withTimeout bounds exchanges made on behalf of callers without a context.
func (c *Client) withTimeout() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), c.engine.conf.timeout)
}

// command sends a request answered by a result response and returns the result.
func (c *Client) command(ctx context.Context, reqType byte, payload []byte) (int32, error) {
	pkt, err := c.engine.Exchange(ctx, reqType, payload)
	if err != nil {
		return 0, err
	}
	res, err := pkt.result()
	if err != nil {
		return 0, err
	}
	if res < 0 {
		return res, &ResultError{Code: int(res)}
	}
	return res, nil
}

// Version returns hardware and firmware versions.
func (c *Client) Version(ctx context.Context) (Version, error) {
	var v Version
	pkt, err := c.engine.Exchange(ctx, TypeRequestVersion, nil)
	if err != nil {
		return v, err
	}
	if pkt.Type != TypeResponseVersion || len(pkt.Payload) < 6 {
		return v, pkt.err()
	}

	// bytes 0-1: hardware (uint16, little-endian)
	// byte 2: firmware major, byte 3: firmware minor
	// bytes 4-5: firmware build (uint16, little-endian)
	// bytes 6-15: firmware type (NUL-terminated string)
	p := pkt.Payload
	v.Hardware = binary.LittleEndian.Uint16(p[0:2])
	v.FirmwareMajor = p[2]
	v.FirmwareMinor = p[3]
	v.FirmwareBuild = binary.LittleEndian.Uint16(p[4:6])
	if name, _, _ := bytes.Cut(p[6:], []byte{0}); len(name) > 0 {
		v.FirmwareType = string(name)
	}
	return v, nil
}

// Resolution returns the frame width and height of the current program.
func (c *Client) Resolution(ctx context.Context) (width, height int, err error) {
	pkt, err := c.engine.Exchange(ctx, TypeRequestResolution, []byte{0})
	if err != nil {
		return 0, 0, err
	}
	if pkt.Type != TypeResponseResolution || len(pkt.Payload) < 4 {
		return 0, 0, pkt.err()
	}
	width = int(binary.LittleEndian.Uint16(pkt.Payload[0:2]))
	height = int(binary.LittleEndian.Uint16(pkt.Payload[2:4]))
	return width, height, nil
}

// SetCameraBrightness sets the exposure of the image sensor.
func (c *Client) SetCameraBrightness(ctx context.Context, brightness uint8) error {
	_, err := c.command(ctx, TypeRequestBrightness, []byte{brightness})
	return err
}

// SetServos sets the pan and tilt servo positions (0..1000).
func (c *Client) SetServos(ctx context.Context, s0, s1 uint16) error {
	payload := make([]byte, 0, 4)
	payload = binary.LittleEndian.AppendUint16(payload, s0)
	payload = binary.LittleEndian.AppendUint16(payload, s1)
	_, err := c.command(ctx, TypeRequestServo, payload)
	return err
}

// SetLED sets the color of the RGB LED.
func (c *Client) SetLED(ctx context.Context, r, g, b uint8) error {
	_, err := c.command(ctx, TypeRequestLED, []byte{r, g, b})
	return err
}

// SetLamp turns the white lamps (upper) and the RGB LED at full white (lower) on or off.
func (c *Client) SetLamp(ctx context.Context, upper, lower bool) error {
	_, err := c.command(ctx, TypeRequestLamp, []byte{boolByte(upper), boolByte(lower)})
	return err
}

// FPS returns the current frame rate.
func (c *Client) FPS(ctx context.Context) (int, error) {
	res, err := c.command(ctx, TypeRequestFPS, nil)
	return int(res), err
}

// ChangeProg switches the camera to the named program, e.g. "color_connected_components".
// The camera answers zero while the switch is still in progress; the request
// is repeated under the retry policy until it reports completion.
func (c *Client) ChangeProg(ctx context.Context, name string) error {
	if len(name) >= MaxProgName {
		return fmt.Errorf("program name %q too long", name)
	}
	payload := make([]byte, MaxProgName)
	copy(payload, name)

	policy := c.engine.conf.retry
	start := policy.now()
	for attempt := 1; ; attempt++ {
		res, err := c.command(ctx, TypeRequestChangeProg, payload)
		if err != nil {
			return fmt.Errorf("failed to change program to %q: %w", name, err)
		}
		if res > 0 {
			return nil
		}
		if policy.exhausted(start, attempt) {
			return fmt.Errorf("failed to change program to %q: %w", name, ErrTimeout)
		}
		if err := policy.sleep(ctx); err != nil {
			return err
		}
	}
}

func boolByte(v bool) byte {
	if v {
		return 1
	}
	return 0
}
