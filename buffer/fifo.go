// Package buffer provides the byte buffers used between serial drivers and the relay loop.
package buffer

import "errors"

var (
	ErrBufferEmpty = errors.New("fifo buffer empty")
	ErrBufferFull  = errors.New("fifo buffer full")
)

// FifoBuffer is a circular buffer for serial I/O.
// One slot is kept free to tell full from empty, so it holds capacity-1 bytes.
// It is not safe for concurrent use; callers that fill it from another
// goroutine or an interrupt must provide their own locking.
type FifoBuffer struct {
	buf   []byte
	read  int
	write int
	size  int
}

// NewFifoBuffer creates a new FifoBuffer with the specified capacity
func NewFifoBuffer(capacity int) *FifoBuffer {
	if capacity < 2 {
		capacity = 2
	}
	return &FifoBuffer{
		buf:  make([]byte, capacity),
		size: capacity,
	}
}

// Write appends data to the FIFO buffer, returning how many bytes fit
func (f *FifoBuffer) Write(data []byte) int {
	written := 0
	for _, b := range data {
		nextWrite := (f.write + 1) % f.size
		if nextWrite == f.read {
			// Buffer full
			break
		}
		f.buf[f.write] = b
		f.write = nextWrite
		written++
	}
	return written
}

// WriteByte appends a single byte
func (f *FifoBuffer) WriteByte(b byte) error {
	nextWrite := (f.write + 1) % f.size
	if nextWrite == f.read {
		return ErrBufferFull
	}
	f.buf[f.write] = b
	f.write = nextWrite
	return nil
}

// ReadByte removes and returns the oldest byte
func (f *FifoBuffer) ReadByte() (byte, error) {
	if f.read == f.write {
		return 0, ErrBufferEmpty
	}
	b := f.buf[f.read]
	f.read = (f.read + 1) % f.size
	return b, nil
}

// Buffered returns the number of bytes available for reading
func (f *FifoBuffer) Buffered() int {
	if f.write >= f.read {
		return f.write - f.read
	}
	return f.size - f.read + f.write
}

// Reset clears the buffer
func (f *FifoBuffer) Reset() {
	f.read = 0
	f.write = 0
}
