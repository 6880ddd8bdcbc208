package pixy2

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/sergev/pixy/blob"
	"github.com/sergev/pixy/link"
)

// frame builds a checksummed response packet.
func frame(respType byte, payload []byte) []byte {
	var cs Checksum
	cs.Add(payload)
	out := []byte{0xaf, 0xc1, respType, byte(len(payload)), byte(cs.Sum()), byte(cs.Sum() >> 8)}
	return append(out, payload...)
}

// plainFrame builds a response packet without checksum.
func plainFrame(respType byte, payload []byte) []byte {
	out := []byte{0xae, 0xc1, respType, byte(len(payload))}
	return append(out, payload...)
}

func sequence(n int) []byte {
	p := make([]byte, n)
	for i := range p {
		p[i] = byte(i*7 + 3)
	}
	return p
}

func TestChecksumIncremental(t *testing.T) {
	data := sequence(300)

	var whole Checksum
	whole.Add(data)

	var split Checksum
	split.Add(data[:100])
	for _, b := range data[100:200] {
		split.Update(b)
	}
	split.Add(data[200:])

	if whole.Sum() != split.Sum() {
		t.Errorf("split checksum 0x%04x != whole checksum 0x%04x", split.Sum(), whole.Sum())
	}

	var ff Checksum
	ff.Add(bytes.Repeat([]byte{0xff}, 300))
	// 300 * 0xff = 76500, wrapped to 16 bits
	if ff.Sum() != 0x2ad4 {
		t.Errorf("checksum of 300 x 0xff = 0x%04x, expected 0x2ad4", ff.Sum())
	}

	ff.Reset()
	if ff.Sum() != 0 {
		t.Errorf("checksum after Reset = %d", ff.Sum())
	}
}

func TestSendChunks(t *testing.T) {
	m := link.NewMock()
	e := NewEngine(m)
	payload := sequence(40)

	n, err := e.Send(payload)
	if err != nil {
		t.Fatalf("Send() returned error: %v", err)
	}
	if n != 40 {
		t.Errorf("Send() = %d, expected 40", n)
	}
	if len(m.Writes) != 3 {
		t.Fatalf("got %d writes, expected 3", len(m.Writes))
	}
	for i, want := range []int{16, 16, 8} {
		if len(m.Writes[i]) != want {
			t.Errorf("write %d has %d bytes, expected %d", i, len(m.Writes[i]), want)
		}
	}
	if got := bytes.Join(m.Writes, nil); !bytes.Equal(got, payload) {
		t.Errorf("concatenated writes differ from payload")
	}
	for _, addr := range m.Addresses {
		if addr != link.DefaultAddress {
			t.Errorf("write to address 0x%02x, expected 0x%02x", addr, link.DefaultAddress)
		}
	}
}

func TestSendChunkSize(t *testing.T) {
	m := link.NewMock()
	e := NewEngine(m, WithChunkSize(5), WithAddress(0x55))

	if _, err := e.Send(sequence(12)); err != nil {
		t.Fatalf("Send() returned error: %v", err)
	}
	if len(m.Writes) != 3 || len(m.Writes[2]) != 2 {
		t.Errorf("unexpected writes %v", m.Writes)
	}
	if m.Addresses[0] != 0x55 {
		t.Errorf("write to address 0x%02x, expected 0x55", m.Addresses[0])
	}

	if n, err := e.Send(nil); n != 0 || err != nil {
		t.Errorf("Send(nil) = %d, %v", n, err)
	}
}

func TestSendError(t *testing.T) {
	m := link.NewMock()
	m.WriteErr = errors.New("bus fault")
	e := NewEngine(m)

	n, err := e.Send(sequence(20))
	if !errors.Is(err, m.WriteErr) {
		t.Errorf("Send() error = %v, expected to wrap bus fault", err)
	}
	if n != 0 {
		t.Errorf("Send() = %d, expected 0", n)
	}
}

func TestReceiveChunked(t *testing.T) {
	payload := sequence(10)

	single := link.NewMock()
	single.Queue(payload)
	var cs1 Checksum
	got1, err := NewEngine(single).Receive(context.Background(), 10, &cs1)
	if err != nil {
		t.Fatalf("Receive() returned error: %v", err)
	}

	chunked := link.NewMock()
	chunked.Queue(payload[0:3], payload[3:6], payload[6:9], payload[9:10])
	var cs2 Checksum
	got2, err := NewEngine(chunked).Receive(context.Background(), 10, &cs2)
	if err != nil {
		t.Fatalf("Receive() returned error: %v", err)
	}

	if !bytes.Equal(got1, payload) || !bytes.Equal(got2, payload) {
		t.Errorf("Receive() = %v and %v, expected %v", got1, got2, payload)
	}
	if cs1.Sum() != cs2.Sum() {
		t.Errorf("checksums differ: 0x%04x vs 0x%04x", cs1.Sum(), cs2.Sum())
	}

	want := []int{10, 7, 4, 1}
	if len(chunked.ReadRequests) != len(want) {
		t.Fatalf("read requests %v, expected %v", chunked.ReadRequests, want)
	}
	for i := range want {
		if chunked.ReadRequests[i] != want[i] {
			t.Errorf("read request %d asked %d bytes, expected %d", i, chunked.ReadRequests[i], want[i])
		}
	}
}

func TestReceiveResetsChecksum(t *testing.T) {
	m := link.NewMock()
	m.Queue([]byte{1, 2, 3})
	cs := Checksum{sum: 1000}
	if _, err := NewEngine(m).Receive(context.Background(), 3, &cs); err != nil {
		t.Fatalf("Receive() returned error: %v", err)
	}
	if cs.Sum() != 6 {
		t.Errorf("checksum = %d, expected 6", cs.Sum())
	}
}

func TestReceiveNoData(t *testing.T) {
	m := link.NewMock()
	m.Queue([]byte{1, 2})
	e := NewEngine(m, WithMaxEmptyReads(3))

	got, err := e.Receive(context.Background(), 5, nil)
	if !errors.Is(err, ErrNoData) {
		t.Errorf("Receive() error = %v, expected ErrNoData", err)
	}
	if len(got) != 2 {
		t.Errorf("Receive() returned %d bytes, expected 2", len(got))
	}
	if len(m.ReadRequests) != 4 {
		t.Errorf("got %d reads, expected 4", len(m.ReadRequests))
	}
}

func TestReceiveCanceled(t *testing.T) {
	m := link.NewMock()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewEngine(m).Receive(ctx, 4, nil)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Receive() error = %v, expected context.Canceled", err)
	}
	if len(m.ReadRequests) != 0 {
		t.Errorf("canceled receive read the bus %d times", len(m.ReadRequests))
	}
}

func TestReceivePacket(t *testing.T) {
	m := link.NewMock()
	// Leading noise before the sync word
	m.Queue([]byte{0x00, 0x13, 0xaf})
	m.Queue(frame(TypeResponseResolution, []byte{0x3c, 0x01, 0xc8, 0x00}))

	pkt, err := NewEngine(m).ReceivePacket(context.Background())
	if err != nil {
		t.Fatalf("ReceivePacket() returned error: %v", err)
	}
	if pkt.Type != TypeResponseResolution {
		t.Errorf("packet type 0x%02x, expected 0x%02x", pkt.Type, TypeResponseResolution)
	}
	if !bytes.Equal(pkt.Payload, []byte{0x3c, 0x01, 0xc8, 0x00}) {
		t.Errorf("packet payload %v", pkt.Payload)
	}
}

func TestReceivePacketNoChecksum(t *testing.T) {
	m := link.NewMock()
	m.Queue(plainFrame(TypeResponseResult, []byte{5, 0, 0, 0}))

	pkt, err := NewEngine(m).ReceivePacket(context.Background())
	if err != nil {
		t.Fatalf("ReceivePacket() returned error: %v", err)
	}
	res, err := pkt.result()
	if err != nil || res != 5 {
		t.Errorf("result = %d, %v, expected 5", res, err)
	}
}

func TestReceivePacketChecksumMismatch(t *testing.T) {
	m := link.NewMock()
	data := frame(TypeResponseBlocks, sequence(14))
	data[4]++
	m.Queue(data)

	_, err := NewEngine(m).ReceivePacket(context.Background())
	var csErr *blob.ChecksumError
	if !errors.As(err, &csErr) {
		t.Fatalf("ReceivePacket() error = %v, expected ChecksumError", err)
	}
	if csErr.Want == csErr.Got {
		t.Errorf("checksum error reports equal sums %d", csErr.Got)
	}
}

func TestReceivePacketNoSync(t *testing.T) {
	m := link.NewMock()
	m.Queue(bytes.Repeat([]byte{0x55}, 40))

	_, err := NewEngine(m).ReceivePacket(context.Background())
	if !errors.Is(err, ErrNoSync) {
		t.Errorf("ReceivePacket() error = %v, expected ErrNoSync", err)
	}
	if len(m.ReadRequests) != 20 {
		t.Errorf("sync search read %d bytes, expected 20", len(m.ReadRequests))
	}
}

func TestEncodeRequest(t *testing.T) {
	got, err := encodeRequest(TypeRequestLED, []byte{1, 2, 3})
	if err != nil {
		t.Fatalf("encodeRequest() returned error: %v", err)
	}
	want := []byte{0xae, 0xc1, 0x14, 0x03, 1, 2, 3}
	if !bytes.Equal(got, want) {
		t.Errorf("encodeRequest() = %v, expected %v", got, want)
	}

	if _, err := encodeRequest(TypeRequestLED, make([]byte, 256)); err == nil {
		t.Errorf("encodeRequest() accepted 256-byte payload")
	}
}

func TestResultErrorMatchesFailed(t *testing.T) {
	err := error(&ResultError{Code: CodeButtonOverride})
	if !errors.Is(err, ErrFailed) {
		t.Errorf("ResultError does not match ErrFailed")
	}
	if errors.Is(err, ErrTimeout) {
		t.Errorf("ResultError matches ErrTimeout")
	}
	if !errors.Is(ErrTimeout, ErrFailed) {
		t.Errorf("ErrTimeout does not match ErrFailed")
	}
	if got := err.Error(); got != "camera error: button override (-5)" {
		t.Errorf("Error() = %q", got)
	}
}
