package link

import (
	"fmt"

	"github.com/reef-pi/rpi/i2c"
)

// OpenI2C opens the Linux I2C bus (/dev/i2c-1) the camera is wired to.
func OpenI2C() (Bus, error) {
	bus, err := i2c.New()
	if err != nil {
		return nil, fmt.Errorf("failed to open I2C bus: %w", err)
	}
	return bus, nil
}
