package stress

import (
  "fmt"
  "sync/atomic"
  "unsafe"
)

// Balloon is one large allocation held for the life of the process.
type Balloon struct {
  mem []byte
  // 防止读最后一个字节被编译器优化掉
  last atomic.Uint32
}

// NewBalloon allocates size bytes, every one set to 1 so the pages are really touched.
func NewBalloon(size int) *Balloon {
  b := &Balloon{mem: make([]byte, size)}
  for i := range b.mem {
    b.mem[i] = 1
  }
  return b
}

func (b *Balloon) Len() int {
  return len(b.mem)
}

// Range is the address span [start, end) of the allocation.
func (b *Balloon) Range() (start, end uintptr) {
  if len(b.mem) == 0 {
    return 0, 0
  }
  start = uintptr(unsafe.Pointer(&b.mem[0]))
  return start, start + uintptr(len(b.mem))
}

func (b *Balloon) String() string {
  start, end := b.Range()
  return fmt.Sprintf("balloon start=%#x end=%#x", start, end)
}

// Touch reads the last byte. Safe to call from several streams at once.
func (b *Balloon) Touch() byte {
  if len(b.mem) == 0 {
    return 0
  }
  v := b.mem[len(b.mem)-1]
  b.last.Store(uint32(v))
  return v
}
