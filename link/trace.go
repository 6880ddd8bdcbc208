package link

import (
	"github.com/rs/zerolog/log"
)

type traced struct {
	bus Bus
}

// Trace wraps bus so that all traffic is logged at debug level.
func Trace(bus Bus) Bus {
	return &traced{bus: bus}
}

func (t *traced) ReadBytes(addr byte, n int) ([]byte, error) {
	data, err := t.bus.ReadBytes(addr, n)
	log.Debug().
		Uint8("addr", addr).
		Int("want", n).
		Hex("data", data).
		Err(err).
		Msg("bus read")
	return data, err
}

func (t *traced) WriteBytes(addr byte, p []byte) error {
	err := t.bus.WriteBytes(addr, p)
	log.Debug().
		Uint8("addr", addr).
		Hex("data", p).
		Err(err).
		Msg("bus write")
	return err
}

func (t *traced) ReadFromReg(addr, reg byte, p []byte) error {
	err := t.bus.ReadFromReg(addr, reg, p)
	log.Debug().
		Uint8("addr", addr).
		Uint8("reg", reg).
		Hex("data", p).
		Err(err).
		Msg("register read")
	return err
}

func (t *traced) WriteToReg(addr, reg byte, p []byte) error {
	err := t.bus.WriteToReg(addr, reg, p)
	log.Debug().
		Uint8("addr", addr).
		Uint8("reg", reg).
		Hex("data", p).
		Err(err).
		Msg("register write")
	return err
}

func (t *traced) Close() error {
	return t.bus.Close()
}
