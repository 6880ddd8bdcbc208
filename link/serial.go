package link

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"go.bug.st/serial"
	"go.bug.st/serial/enumerator"
)

// DefaultBaudRate is the UART speed the camera ships with
const DefaultBaudRate = 19200

// ErrNoRegisters is returned by transports without a register map.
var ErrNoRegisters = errors.New("transport has no register access")

// serialBus carries the packet protocol over a UART.
// UART is point to point, so the bus address is ignored.
type serialBus struct {
	port io.ReadWriteCloser
}

// OpenSerial opens the named serial port at the given baud rate.
// Reads return whatever arrived within readTimeout, possibly nothing.
func OpenSerial(name string, baud int, readTimeout time.Duration) (Bus, error) {
	if baud <= 0 {
		baud = DefaultBaudRate
	}
	mode := &serial.Mode{
		BaudRate: baud,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}
	port, err := serial.Open(name, mode)
	if err != nil {
		return nil, fmt.Errorf("failed to open serial port %s: %w", name, err)
	}
	if readTimeout > 0 {
		if err := port.SetReadTimeout(readTimeout); err != nil {
			port.Close()
			return nil, fmt.Errorf("failed to set read timeout on %s: %w", name, err)
		}
	}
	// Drop anything left over from a previous session.
	if err := port.ResetInputBuffer(); err != nil {
		port.Close()
		return nil, fmt.Errorf("failed to reset input buffer on %s: %w", name, err)
	}
	return newSerialBus(port), nil
}

func newSerialBus(port io.ReadWriteCloser) *serialBus {
	return &serialBus{port: port}
}

func (s *serialBus) ReadBytes(_ byte, n int) ([]byte, error) {
	buf := make([]byte, n)
	got, err := s.port.Read(buf)
	if err != nil {
		return buf[:got], fmt.Errorf("failed to read from serial port: %w", err)
	}
	return buf[:got], nil
}

func (s *serialBus) WriteBytes(_ byte, p []byte) error {
	for len(p) > 0 {
		n, err := s.port.Write(p)
		if err != nil {
			return fmt.Errorf("failed to write to serial port: %w", err)
		}
		if n == 0 {
			return io.ErrShortWrite
		}
		p = p[n:]
	}
	return nil
}

func (s *serialBus) ReadFromReg(_, _ byte, _ []byte) error {
	return ErrNoRegisters
}

func (s *serialBus) WriteToReg(_, _ byte, _ []byte) error {
	return ErrNoRegisters
}

func (s *serialBus) Close() error {
	return s.port.Close()
}

// PortInfo describes a serial port found on the host
type PortInfo struct {
	Name         string
	IsUSB        bool
	VendorID     uint16
	ProductID    uint16
	SerialNumber string
	Product      string
}

// Ports lists the serial ports of the host.
func Ports() ([]PortInfo, error) {
	ports, err := enumerator.GetDetailedPortsList()
	if err != nil {
		return nil, fmt.Errorf("failed to list serial ports: %w", err)
	}
	out := make([]PortInfo, 0, len(ports))
	for _, port := range ports {
		info := PortInfo{
			Name:         port.Name,
			IsUSB:        port.IsUSB,
			SerialNumber: port.SerialNumber,
			Product:      port.Product,
		}
		if port.IsUSB {
			// VID/PID come as hex strings; ignore malformed ones
			if vid, err := strconv.ParseUint(port.VID, 16, 16); err == nil {
				info.VendorID = uint16(vid)
			}
			if pid, err := strconv.ParseUint(port.PID, 16, 16); err == nil {
				info.ProductID = uint16(pid)
			}
		}
		out = append(out, info)
	}
	return out, nil
}
