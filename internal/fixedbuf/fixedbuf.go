// Package fixedbuf implements the backing storage shared by the request
// parser and the response composer: a single byte slice of fixed capacity,
// filled from the front and never reallocated.
//
// It exists because of the chunk-handoff protocol: a caller must be able to
// borrow a pointer directly into unwritten storage, perform I/O into it
// itself, and only afterwards report how much of it was actually used. That
// rules out an append-only buffer such as github.com/indigo-web/utils/buffer,
// whose Append only accepts data the caller already has in hand.
package fixedbuf

// Buffer is a contiguous byte area of fixed capacity with a single write
// cursor. It never grows: once N bytes have been written, Chunk reports no
// remaining room.
type Buffer struct {
	data []byte
	len  uint16
}

// New allocates a Buffer with the given capacity. The capacity is fixed for
// the lifetime of the Buffer (short of Reset, which never changes it).
func New(capacity int) Buffer {
	return Buffer{data: make([]byte, capacity)}
}

// Cap returns the fixed capacity of the buffer.
func (b *Buffer) Cap() int {
	return len(b.data)
}

// Len returns the number of bytes written so far.
func (b *Buffer) Len() int {
	return int(b.len)
}

// Free returns the number of bytes of unwritten room left.
func (b *Buffer) Free() int {
	return len(b.data) - int(b.len)
}

// Bytes returns the written prefix of the buffer, aliasing its storage.
func (b *Buffer) Bytes() []byte {
	return b.data[:b.len]
}

// Slice returns the sub-range [idx, idx+n) of the buffer, aliasing its
// storage. The caller must ensure the range lies within what has been
// written; out-of-range slicing panics, same as slicing any Go byte slice.
func (b *Buffer) Slice(idx, n int) []byte {
	return b.data[idx : idx+n]
}

// Chunk returns a window of at most desired bytes starting at the write
// cursor, aliasing unwritten storage. It returns an empty slice once the
// buffer is full. The caller may write into the returned slice and must then
// report the number of bytes actually used via Advance.
func (b *Buffer) Chunk(desired int) []byte {
	free := b.Free()
	if desired < 0 {
		desired = 0
	}
	if desired > free {
		desired = free
	}

	return b.data[b.len : int(b.len)+desired]
}

// Advance moves the write cursor forward by n bytes, committing bytes a
// caller wrote into a slice previously returned by Chunk. Advancing past the
// buffer's capacity is the caller's error to avoid; Chunk never hands out a
// window larger than the remaining room, so a caller that honors the window
// it was given cannot overrun.
func (b *Buffer) Advance(n int) {
	b.len += uint16(n)
}

// Reset rewinds the write cursor to zero. When zero is true, every byte of
// the underlying storage is cleared; otherwise stale bytes are left in place
// until overwritten.
func (b *Buffer) Reset(zero bool) {
	if zero {
		clear(b.data)
	}
	b.len = 0
}
