package adapter

import (
	"fmt"
	"sort"

	"github.com/sergev/pixy/config"
	"github.com/sergev/pixy/link"
)

// CameraFactory is a function that creates a camera on an open bus
type CameraFactory func(bus link.Bus, settings config.Settings) (Camera, error)

var registeredProtocols = map[string]CameraFactory{}

// RegisterProtocol registers a camera factory under the protocol name used in the config file
func RegisterProtocol(name string, factory CameraFactory) {
	registeredProtocols[name] = factory
}

// Protocols returns the names of registered protocols, sorted
func Protocols() []string {
	names := make([]string, 0, len(registeredProtocols))
	for name := range registeredProtocols {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NewCamera creates a camera of the configured protocol on the given bus
func NewCamera(bus link.Bus, settings config.Settings) (Camera, error) {
	factory, ok := registeredProtocols[settings.Protocol]
	if !ok {
		return nil, fmt.Errorf("unsupported protocol %q (registered: %v)", settings.Protocol, Protocols())
	}
	return factory(bus, settings)
}
