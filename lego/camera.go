package lego

import (
	"github.com/sergev/pixy/adapter"
	"github.com/sergev/pixy/config"
	"github.com/sergev/pixy/link"
)

var (
	_ adapter.Camera          = (*Client)(nil)
	_ adapter.SignatureSource = (*Client)(nil)
	_ adapter.ColorCodeSource = (*Client)(nil)
)

// NewCamera creates a client for the camera profile
func NewCamera(bus link.Bus, settings config.Settings) (adapter.Camera, error) {
	return New(bus, WithAddress(settings.Address)), nil
}

func init() {
	adapter.RegisterProtocol("lego", NewCamera)
}
