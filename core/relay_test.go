package core

import (
	"bytes"
	"errors"
	"testing"

	"pulserelay/buffer"
)

// mockChannel is a Channel whose receive side is a FIFO the test fills
// and whose transmit side records every byte written
type mockChannel struct {
	rx        *buffer.FifoBuffer
	tx        []byte
	readErr   error
	failWrite func(b byte) bool
}

func newMockChannel() *mockChannel {
	return &mockChannel{rx: buffer.NewFifoBuffer(256)}
}

func (m *mockChannel) Buffered() int {
	return m.rx.Buffered()
}

func (m *mockChannel) ReadByte() (byte, error) {
	if m.readErr != nil {
		return 0, m.readErr
	}
	return m.rx.ReadByte()
}

func (m *mockChannel) WriteByte(b byte) error {
	if m.failWrite != nil && m.failWrite(b) {
		return errors.New("write failed")
	}
	m.tx = append(m.tx, b)
	return nil
}

func (m *mockChannel) inject(data []byte) {
	m.rx.Write(data)
}

func TestDrainPreservesOrder(t *testing.T) {
	src := newMockChannel()
	dst := newMockChannel()

	data := []byte("hello, relay\r\n\x00\xff")
	src.inject(data)

	n := Drain(src, dst)
	if n != len(data) {
		t.Errorf("Expected %d bytes drained, got %d", len(data), n)
	}
	if !bytes.Equal(dst.tx, data) {
		t.Errorf("Relayed data mismatch: expected %q, got %q", data, dst.tx)
	}
	if src.Buffered() != 0 {
		t.Errorf("Source should be empty after drain, %d left", src.Buffered())
	}
}

func TestDrainEmptySource(t *testing.T) {
	src := newMockChannel()
	dst := newMockChannel()

	if n := Drain(src, dst); n != 0 {
		t.Errorf("Expected 0 bytes from empty source, got %d", n)
	}
	if len(dst.tx) != 0 {
		t.Errorf("Nothing should be written, got %v", dst.tx)
	}
}

func TestDrainReadErrorActsAsEmpty(t *testing.T) {
	src := newMockChannel()
	dst := newMockChannel()
	src.inject([]byte{1, 2, 3})
	src.readErr = errors.New("uart fault")

	if n := Drain(src, dst); n != 0 {
		t.Errorf("Expected 0 bytes on read error, got %d", n)
	}
}

func TestDrainDropsFailedWrites(t *testing.T) {
	src := newMockChannel()
	dst := newMockChannel()
	dst.failWrite = func(b byte) bool { return b == 2 }
	src.inject([]byte{1, 2, 3})

	if n := Drain(src, dst); n != 3 {
		t.Errorf("Expected all 3 bytes consumed, got %d", n)
	}
	if !bytes.Equal(dst.tx, []byte{1, 3}) {
		t.Errorf("Expected failed byte to be dropped, got %v", dst.tx)
	}
}

func TestRelayBothDirections(t *testing.T) {
	primary := newMockChannel()
	secondary := newMockChannel()
	relay := NewRelay(primary, secondary)

	primary.inject([]byte("AT+GMR\r\n"))
	secondary.inject([]byte("OK\r\n"))

	toSecondary, toPrimary := relay.Poll()
	if toSecondary != 8 || toPrimary != 4 {
		t.Errorf("Expected 8/4 bytes forwarded, got %d/%d", toSecondary, toPrimary)
	}
	if string(secondary.tx) != "AT+GMR\r\n" {
		t.Errorf("Secondary received %q", secondary.tx)
	}
	if string(primary.tx) != "OK\r\n" {
		t.Errorf("Primary received %q", primary.tx)
	}

	// Nothing pending: a poll is a no-op
	toSecondary, toPrimary = relay.Poll()
	if toSecondary != 0 || toPrimary != 0 {
		t.Errorf("Expected idle poll, got %d/%d", toSecondary, toPrimary)
	}

	stats := relay.Stats()
	if stats.ToSecondary != 8 || stats.ToPrimary != 4 {
		t.Errorf("Unexpected stats: %+v", stats)
	}
}

func TestRelayLosslessAcrossPolls(t *testing.T) {
	primary := newMockChannel()
	secondary := newMockChannel()
	relay := NewRelay(primary, secondary)

	var sent []byte
	for i := 0; i < 1000; i++ {
		chunk := []byte{byte(i), byte(i >> 8), byte(i * 7)}
		primary.inject(chunk)
		sent = append(sent, chunk...)
		relay.Poll()
	}

	if !bytes.Equal(secondary.tx, sent) {
		t.Errorf("Relay lost or reordered bytes: sent %d, received %d", len(sent), len(secondary.tx))
	}
	if len(primary.tx) != 0 {
		t.Errorf("No traffic expected on primary, got %d bytes", len(primary.tx))
	}
}

// lossyChannel reports receive-side losses like a UART with a full buffer
type lossyChannel struct {
	*mockChannel
	lost uint32
}

func (l *lossyChannel) Overruns() uint32 {
	return l.lost
}

func TestRelayStatsOverruns(t *testing.T) {
	primary := newMockChannel()
	secondary := &lossyChannel{mockChannel: newMockChannel(), lost: 3}
	relay := NewRelay(primary, secondary)

	primary.inject([]byte{1, 2})
	relay.Poll()

	stats := relay.Stats()
	want := RelayStats{ToSecondary: 2, PrimaryOverruns: 0, SecondaryOverruns: 3}
	if stats != want {
		t.Errorf("Expected %+v, got %+v", want, stats)
	}
}
