package bufl

import "io"

// List is an ordered list of chunks. Chunks are kept as pushed, never copied.
type List struct {
  chunks [][]byte
  n      int64
}

func New() *List {
  return &List{}
}

// Push appends chunk. Empty chunks are dropped. The list takes ownership.
func (l *List) Push(chunk []byte) {
  if len(chunk) == 0 {
    return
  }
  l.chunks = append(l.chunks, chunk)
  l.n += int64(len(chunk))
}

func (l *List) NumBytes() int64 {
  return l.n
}

func (l *List) NumChunks() int {
  return len(l.chunks)
}

// Chunks returns the chunks in arrival order. Callers must not modify them.
func (l *List) Chunks() [][]byte {
  return l.chunks
}

func (l *List) WriteTo(w io.Writer) (n int64, err error) {
  for _, c := range l.chunks {
    m, err := w.Write(c)
    n += int64(m)
    if err != nil {
      return n, err
    }
  }
  return n, nil
}

// Bytes copies the whole list into one slice.
func (l *List) Bytes() []byte {
  ret := make([]byte, 0, l.n)
  for _, c := range l.chunks {
    ret = append(ret, c...)
  }
  return ret
}
