package link

import (
	"github.com/sergev/pixy/blob"
)

// Mock is a scripted in-memory bus for tests.
//
// Register reads are served from Registers. Plain reads consume the queue
// of chunks in Pending, each read returning at most one chunk (split when the
// caller asks for less). Every write is recorded, and when Respond is set its
// result is appended to Pending, which models a request/response device.
type Mock struct {
	Registers map[byte][]byte
	Pending   [][]byte
	Respond   func(write []byte) [][]byte

	Writes       [][]byte // every WriteBytes payload, copied
	ReadRequests []int    // byte count asked by every ReadBytes call
	Addresses    []byte   // bus address of every call

	ReadErr  error
	WriteErr error
	Closed   bool
}

// NewMock returns an empty mock bus.
func NewMock() *Mock {
	return &Mock{Registers: make(map[byte][]byte)}
}

// Queue appends chunks to be returned by subsequent reads.
func (m *Mock) Queue(chunks ...[]byte) {
	m.Pending = append(m.Pending, chunks...)
}

func (m *Mock) ReadBytes(addr byte, n int) ([]byte, error) {
	m.Addresses = append(m.Addresses, addr)
	m.ReadRequests = append(m.ReadRequests, n)
	if m.ReadErr != nil {
		return nil, m.ReadErr
	}
	if len(m.Pending) == 0 {
		return nil, nil
	}
	chunk := m.Pending[0]
	if len(chunk) > n {
		m.Pending[0] = chunk[n:]
		chunk = chunk[:n]
	} else {
		m.Pending = m.Pending[1:]
	}
	return append([]byte(nil), chunk...), nil
}

func (m *Mock) WriteBytes(addr byte, p []byte) error {
	m.Addresses = append(m.Addresses, addr)
	if m.WriteErr != nil {
		return m.WriteErr
	}
	m.Writes = append(m.Writes, append([]byte(nil), p...))
	if m.Respond != nil {
		m.Pending = append(m.Pending, m.Respond(p)...)
	}
	return nil
}

func (m *Mock) ReadFromReg(addr, reg byte, p []byte) error {
	m.Addresses = append(m.Addresses, addr)
	if m.ReadErr != nil {
		return m.ReadErr
	}
	data := m.Registers[reg]
	n := copy(p, data)
	if n < len(p) {
		return &blob.ShortReadError{Register: reg, Want: len(p), Got: n}
	}
	return nil
}

func (m *Mock) WriteToReg(addr, reg byte, p []byte) error {
	m.Addresses = append(m.Addresses, addr)
	if m.WriteErr != nil {
		return m.WriteErr
	}
	m.Registers[reg] = append([]byte(nil), p...)
	return nil
}

func (m *Mock) Close() error {
	m.Closed = true
	return nil
}
