package pixy2

import (
	"github.com/sergev/pixy/adapter"
	"github.com/sergev/pixy/config"
	"github.com/sergev/pixy/link"
)

var (
	_ adapter.Camera          = (*Client)(nil)
	_ adapter.SignatureSource = (*Client)(nil)
	_ adapter.ColorSensor     = (*Client)(nil)
	_ adapter.LightController = (*Client)(nil)
)

// NewCamera creates a client for the camera profile
func NewCamera(bus link.Bus, settings config.Settings) (adapter.Camera, error) {
	policy := DefaultRetryPolicy()
	if settings.RetryBudget > 0 {
		policy.Budget = settings.RetryBudget
	}
	if settings.RetryDelay > 0 {
		policy.Delay = settings.RetryDelay
	}
	return New(bus, WithAddress(settings.Address), WithRetryPolicy(policy)), nil
}

func init() {
	adapter.RegisterProtocol("pixy2", NewCamera)
}
