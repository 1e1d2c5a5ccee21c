package verify

import (
  "bytes"
  "fmt"
  "os"
)

type Mismatch struct {
  Offset   int64
  Expected byte
  Got      byte
}

func (m Mismatch) String() string {
  return fmt.Sprintf("offset=%#10x expected=%02x got=%02x", m.Offset, m.Expected, m.Got)
}

// Reference is the known-good body, indexed by absolute stream offset. Read only.
type Reference struct {
  data []byte
}

func NewReference(data []byte) *Reference {
  return &Reference{data: data}
}

func LoadReference(path string) (*Reference, error) {
  data, err := os.ReadFile(path)
  if err != nil {
    return nil, fmt.Errorf("failed to read reference data: %w", err)
  }
  return NewReference(data), nil
}

func (r *Reference) Len() int64 {
  return int64(len(r.data))
}

// Compare checks chunk against the reference at offset. Every differing byte
// is returned. overrun is the number of chunk bytes past the end of the reference;
// those are not compared.
func (r *Reference) Compare(offset int64, chunk []byte) (mismatches []Mismatch, overrun int) {
  if offset >= int64(len(r.data)) {
    return nil, len(chunk)
  }

  want := r.data[offset:]
  if len(want) < len(chunk) {
    overrun = len(chunk) - len(want)
    chunk = chunk[:len(want)]
  }
  want = want[:len(chunk)]

  if bytes.Equal(want, chunk) {
    return nil, overrun
  }

  for i := range chunk {
    if chunk[i] != want[i] {
      mismatches = append(mismatches, Mismatch{Offset: offset + int64(i), Expected: want[i], Got: chunk[i]})
    }
  }
  return mismatches, overrun
}
