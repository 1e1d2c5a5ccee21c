package recvbuf

import "fmt"

/**
  valid | spare
    valid: [0, len), bytes confirmed by Commit
    spare: [len, cap), only handed out by Spare(); never read before Commit
*/

// Increment is the capacity added whenever the spare region runs out.
const Increment = 128 << 10

type Buffer struct {
  b         []byte
  increment int
  // spare 是否已交给调用方写入
  lent int
}

func New() *Buffer {
  return NewWithIncrement(Increment)
}

func NewWithIncrement(increment int) *Buffer {
  if increment <= 0 {
    increment = Increment
  }
  return &Buffer{increment: increment}
}

func (b *Buffer) Len() int {
  return len(b.b)
}

func (b *Buffer) Cap() int {
  return cap(b.b)
}

func (b *Buffer) Increment() int {
  return b.increment
}

// Bytes returns the valid region. It is only valid until the next mutating call.
func (b *Buffer) Bytes() []byte {
  return b.b
}

// EnsureSpare grows the buffer so that at least min bytes of spare capacity exist.
// Growth happens in whole increments; the valid bytes are moved, the spare region is not read.
func (b *Buffer) EnsureSpare(min int) {
  if cap(b.b)-len(b.b) >= min {
    return
  }

  grow := b.increment
  for grow < min {
    grow += b.increment
  }

  nb := make([]byte, len(b.b), len(b.b)+grow)
  copy(nb, b.b)
  b.b = nb
}

// Spare exposes the writable region past the valid bytes. The caller owns it
// exclusively until Commit; nothing in it counts as data until then.
func (b *Buffer) Spare() []byte {
  s := b.b[len(b.b):cap(b.b)]
  b.lent = len(s)
  return s
}

// Commit marks the first n bytes of the last Spare() as valid.
func (b *Buffer) Commit(n int) {
  if n < 0 || n > b.lent {
    panic(fmt.Sprintf("recvbuf: commit %d bytes, only %d spare bytes were lent", n, b.lent))
  }
  b.b = b.b[:len(b.b)+n]
  b.lent = 0
}

// ConsumePrefix drops the first n valid bytes without copying the rest.
func (b *Buffer) ConsumePrefix(n int) {
  b.checkPrefix(n)
  b.b = b.b[n:]
  b.lent = 0
}

// SplitTo removes the first n valid bytes and returns them as an independent chunk.
// The chunk's capacity is clipped, so no later write through the buffer can reach it.
func (b *Buffer) SplitTo(n int) []byte {
  b.checkPrefix(n)
  chunk := b.b[:n:n]
  b.b = b.b[n:]
  b.lent = 0
  return chunk
}

func (b *Buffer) checkPrefix(n int) {
  if n < 0 || n > len(b.b) {
    panic(fmt.Sprintf("recvbuf: prefix of %d bytes, only %d valid", n, len(b.b)))
  }
}
