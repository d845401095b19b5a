package kernel

import "sync"

// SharedBuffer is a fixed-size region handed from one producer task to readers.
//
// Payloads too large for a mailbox (e.g. a console frame) are copied here and
// announced with a small notify message. Readers compare Seq to skip stale notifies.
type SharedBuffer struct {
	mu  sync.Mutex
	seq uint32
	n   int
	buf []byte
}

// NewSharedBuffer allocates a shared region of size bytes.
func NewSharedBuffer(size int) *SharedBuffer {
	if size < 0 {
		size = 0
	}
	return &SharedBuffer{buf: make([]byte, size)}
}

// Size returns the capacity in bytes.
func (b *SharedBuffer) Size() int { return len(b.buf) }

// Write copies data into the buffer and bumps the sequence counter.
// Data beyond the capacity is dropped.
func (b *SharedBuffer) Write(data []byte) uint32 {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.n = copy(b.buf, data)
	b.seq++
	return b.seq
}

// Read copies the last written data into dst and returns the sequence number.
func (b *SharedBuffer) Read(dst []byte) (seq uint32, count int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	n := b.n
	if n > len(dst) {
		n = len(dst)
	}
	copy(dst[:n], b.buf[:n])
	return b.seq, n
}

// Seq returns the current sequence number.
func (b *SharedBuffer) Seq() uint32 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.seq
}
