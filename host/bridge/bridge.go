// Package bridge adapts blocking byte streams, such as host serial ports,
// into the non-blocking channels the relay loop polls.
package bridge

import (
	"errors"
	"io"
	"sync"
	"time"

	"pulserelay/buffer"
)

// DefaultBufferSize is the receive buffer used when none is given
const DefaultBufferSize = 1024

var ErrClosed = errors.New("bridge closed")

// PortChannel reads a stream in the background into a FIFO so that
// Buffered and ReadByte never block. Writes go straight to the stream.
type PortChannel struct {
	rw io.ReadWriter

	// eofIsTimeout treats io.EOF as an empty read, as serial ports
	// with a read timeout report it
	eofIsTimeout bool

	mu       sync.Mutex
	rx       *buffer.FifoBuffer
	overruns uint32 // Bytes lost to a full receive buffer
	err      error  // Error that stopped the reader
	closed   bool

	done chan struct{}
}

// NewPortChannel starts the background reader on a stream.
// io.EOF ends the stream: the reader stops and Err returns io.EOF.
// bufSize <= 0 selects DefaultBufferSize.
func NewPortChannel(rw io.ReadWriter, bufSize int) *PortChannel {
	return newPortChannel(rw, bufSize, false)
}

// NewSerialChannel starts the background reader on a serial port opened
// with a read timeout. io.EOF is an expired timeout and reading continues.
func NewSerialChannel(rw io.ReadWriter, bufSize int) *PortChannel {
	return newPortChannel(rw, bufSize, true)
}

func newPortChannel(rw io.ReadWriter, bufSize int, eofIsTimeout bool) *PortChannel {
	if bufSize <= 0 {
		bufSize = DefaultBufferSize
	}
	p := &PortChannel{
		rw:           rw,
		eofIsTimeout: eofIsTimeout,
		rx:           buffer.NewFifoBuffer(bufSize + 1),
		done:         make(chan struct{}),
	}
	go p.readLoop()
	return p
}

func (p *PortChannel) readLoop() {
	defer close(p.done)

	var chunk [64]byte
	for {
		n, err := p.rw.Read(chunk[:])
		if n > 0 {
			p.mu.Lock()
			written := p.rx.Write(chunk[:n])
			p.overruns += uint32(n - written)
			p.mu.Unlock()
		}

		if err == nil {
			continue
		}

		p.mu.Lock()
		closed := p.closed
		p.mu.Unlock()
		if closed {
			return
		}

		if err == io.EOF && p.eofIsTimeout {
			time.Sleep(time.Millisecond)
			continue
		}

		p.mu.Lock()
		p.err = err
		p.mu.Unlock()
		return
	}
}

// Buffered returns the number of received bytes waiting to be read
func (p *PortChannel) Buffered() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.rx.Buffered()
}

// ReadByte returns the oldest received byte
func (p *PortChannel) ReadByte() (byte, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.rx.ReadByte()
}

// WriteByte writes one byte to the stream
func (p *PortChannel) WriteByte(c byte) error {
	p.mu.Lock()
	closed := p.closed
	p.mu.Unlock()
	if closed {
		return ErrClosed
	}

	_, err := p.rw.Write([]byte{c})
	return err
}

// Overruns returns how many received bytes were discarded because the buffer was full
func (p *PortChannel) Overruns() uint32 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.overruns
}

// Err returns the error that stopped the background reader, if any
func (p *PortChannel) Err() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.err
}

// Close marks the channel closed and closes the stream if it is an io.Closer.
// It waits for the background reader to exit, so a stream that is not an
// io.Closer must return from Read on its own (timeout, EOF or error).
func (p *PortChannel) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	p.mu.Unlock()

	var err error
	if c, ok := p.rw.(io.Closer); ok {
		err = c.Close()
	}
	<-p.done
	return err
}
