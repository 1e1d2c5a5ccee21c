package verify

import (
  "errors"
  "fmt"
  "unsafe"
)

var ErrZeroChunk = errors.New("all-zero chunk")

type ZeroPolicy int

const (
  // ZeroOff skips the all-zero check.
  ZeroOff ZeroPolicy = iota
  // ZeroReport reports the chunk and keeps going.
  ZeroReport
  // ZeroAbort reports the chunk and fails the whole run.
  ZeroAbort
)

func (p ZeroPolicy) String() string {
  switch p {
  case ZeroOff:
    return "off"
  case ZeroReport:
    return "report"
  case ZeroAbort:
    return "abort"
  }
  return fmt.Sprintf("ZeroPolicy(%d)", int(p))
}

// Finding is what the detector saw in one chunk.
type Finding struct {
  Offset     int64
  Len        int
  Addr       uintptr
  Mismatches []Mismatch
  Overrun    int
  Zero       bool
}

func (f *Finding) Clean() bool {
  return len(f.Mismatches) == 0 && f.Overrun == 0 && !f.Zero
}

type Detector struct {
  Ref  *Reference
  Zero ZeroPolicy
}

// Check runs the active policies over one chunk at its absolute offset.
// Mismatches never fail; an all-zero chunk fails only under ZeroAbort.
func (d *Detector) Check(offset int64, chunk []byte) (f Finding, err error) {
  f.Offset = offset
  f.Len = len(chunk)
  if len(chunk) > 0 {
    f.Addr = uintptr(unsafe.Pointer(&chunk[0]))
  }

  if d.Ref != nil {
    f.Mismatches, f.Overrun = d.Ref.Compare(offset, chunk)
  }

  if d.Zero != ZeroOff && IsZero(chunk) {
    f.Zero = true
    if d.Zero == ZeroAbort {
      err = fmt.Errorf("%w at offset=%#x len=%d", ErrZeroChunk, offset, len(chunk))
    }
  }

  return
}
