package adapter

import (
	"context"

	"github.com/sergev/pixy/blob"
)

// Camera defines the interface shared by both camera protocols
type Camera interface {
	// BiggestBlock returns the largest detected block, empty when nothing is detected
	BiggestBlock() (blob.Block, error)

	// Blocks returns every block of the most recent frame
	Blocks() (blob.List, error)

	// PrintStatus prints camera status information to stdout
	PrintStatus()

	// Close releases the transport
	Close() error
}

// SignatureSource is a camera that can filter blocks by signature
type SignatureSource interface {
	SignatureBlocks(sig int) (blob.List, error)
}

// ColorCodeSource is a camera that can look up one color code
type ColorCodeSource interface {
	ColorCodeBlock(cc blob.Signature) (blob.Block, error)
}

// ColorSensor is a camera that can report the color of a pixel
type ColorSensor interface {
	RGB(ctx context.Context, x, y int, saturate bool) (blob.RGB, error)
}

// LightController is a camera with controllable lamps and RGB LED
type LightController interface {
	SetLamp(ctx context.Context, upper, lower bool) error
	SetLED(ctx context.Context, r, g, b uint8) error
}
