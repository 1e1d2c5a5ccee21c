package stress

import (
  "context"
  "sync/atomic"
)

// Spinners burn CPU. Each one increments its own counter as fast as it can;
// nothing else in the process waits on them.
type Spinners struct {
  counters []atomic.Uint64
}

func StartSpinners(ctx context.Context, n int) *Spinners {
  s := &Spinners{counters: make([]atomic.Uint64, n)}
  for i := range s.counters {
    go spin(ctx, &s.counters[i])
  }
  return s
}

func spin(ctx context.Context, c *atomic.Uint64) {
  done := ctx.Done()
  for {
    // ctx is only looked at every 64Ki increments
    for i := 0; i < 1<<16; i++ {
      c.Add(1)
    }
    select {
    case <-done:
      return
    default:
    }
  }
}

func (s *Spinners) Len() int {
  return len(s.counters)
}

func (s *Spinners) Total() uint64 {
  var t uint64
  for i := range s.counters {
    t += s.counters[i].Load()
  }
  return t
}
