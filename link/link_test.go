package link

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/sergev/pixy/blob"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakePort writes into out and reads from in, at most limit bytes per call.
type fakePort struct {
	in     *bytes.Buffer
	out    bytes.Buffer
	limit  int
	closed bool
}

func (p *fakePort) Read(b []byte) (int, error) {
	if p.in.Len() == 0 {
		return 0, nil // read timeout
	}
	if p.limit > 0 && len(b) > p.limit {
		b = b[:p.limit]
	}
	return p.in.Read(b)
}

func (p *fakePort) Write(b []byte) (int, error) {
	if p.limit > 0 && len(b) > p.limit {
		b = b[:p.limit]
	}
	return p.out.Write(b)
}

func (p *fakePort) Close() error {
	p.closed = true
	return nil
}

func TestSerialBusReadReturnsWhatArrived(t *testing.T) {
	port := &fakePort{in: bytes.NewBuffer([]byte{1, 2, 3, 4, 5}), limit: 3}
	bus := newSerialBus(port)

	data, err := bus.ReadBytes(DefaultAddress, 10)
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3}, data)

	data, err = bus.ReadBytes(DefaultAddress, 10)
	require.NoError(t, err)
	assert.Equal(t, []byte{4, 5}, data)

	data, err = bus.ReadBytes(DefaultAddress, 10)
	require.NoError(t, err)
	assert.Empty(t, data)
}

func TestSerialBusWriteCompletesPartialWrites(t *testing.T) {
	port := &fakePort{in: &bytes.Buffer{}, limit: 2}
	bus := newSerialBus(port)

	require.NoError(t, bus.WriteBytes(DefaultAddress, []byte{9, 8, 7, 6, 5}))
	assert.Equal(t, []byte{9, 8, 7, 6, 5}, port.out.Bytes())

	require.NoError(t, bus.Close())
	assert.True(t, port.closed)
}

func TestSerialBusHasNoRegisters(t *testing.T) {
	bus := newSerialBus(&fakePort{in: &bytes.Buffer{}})
	assert.ErrorIs(t, bus.ReadFromReg(DefaultAddress, 0x50, make([]byte, 6)), ErrNoRegisters)
	assert.ErrorIs(t, bus.WriteToReg(DefaultAddress, 0x50, []byte{1}), ErrNoRegisters)
}

func TestMockSplitsChunks(t *testing.T) {
	m := NewMock()
	m.Queue([]byte{1, 2, 3, 4}, []byte{5})

	data, err := m.ReadBytes(DefaultAddress, 3)
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3}, data)

	data, err = m.ReadBytes(DefaultAddress, 3)
	require.NoError(t, err)
	assert.Equal(t, []byte{4}, data)

	data, err = m.ReadBytes(DefaultAddress, 3)
	require.NoError(t, err)
	assert.Equal(t, []byte{5}, data)

	data, err = m.ReadBytes(DefaultAddress, 3)
	require.NoError(t, err)
	assert.Empty(t, data)
	assert.Equal(t, []int{3, 3, 3, 3}, m.ReadRequests)
}

func TestMockRespond(t *testing.T) {
	m := NewMock()
	m.Respond = func(write []byte) [][]byte {
		return [][]byte{{write[0] + 1}}
	}
	require.NoError(t, m.WriteBytes(0x10, []byte{41}))
	data, err := m.ReadBytes(0x10, 1)
	require.NoError(t, err)
	assert.Equal(t, []byte{42}, data)
	assert.Equal(t, [][]byte{{41}}, m.Writes)
	assert.Equal(t, []byte{0x10, 0x10}, m.Addresses)
}

func TestMockShortRegisterRead(t *testing.T) {
	m := NewMock()
	m.Registers[0x50] = []byte{1, 2, 3}

	err := m.ReadFromReg(DefaultAddress, 0x50, make([]byte, 6))
	var short *blob.ShortReadError
	require.ErrorAs(t, err, &short)
	assert.Equal(t, 6, short.Want)
	assert.Equal(t, 3, short.Got)

	require.NoError(t, m.WriteToReg(DefaultAddress, 0x51, []byte{7}))
	buf := make([]byte, 1)
	require.NoError(t, m.ReadFromReg(DefaultAddress, 0x51, buf))
	assert.Equal(t, []byte{7}, buf)
}

func TestTracePassesThrough(t *testing.T) {
	m := NewMock()
	m.Queue([]byte{0xaa})
	m.Registers[0x70] = []byte{1, 2}
	bus := Trace(m)

	require.NoError(t, bus.WriteBytes(DefaultAddress, []byte{1}))
	data, err := bus.ReadBytes(DefaultAddress, 1)
	require.NoError(t, err)
	assert.Equal(t, []byte{0xaa}, data)

	buf := make([]byte, 2)
	require.NoError(t, bus.ReadFromReg(DefaultAddress, 0x70, buf))
	assert.Equal(t, []byte{1, 2}, buf)

	m.WriteErr = io.ErrClosedPipe
	assert.True(t, errors.Is(bus.WriteBytes(DefaultAddress, nil), io.ErrClosedPipe))

	require.NoError(t, bus.Close())
	assert.True(t, m.Closed)
}
