package chunkq

import (
  "context"
  "encoding/binary"
  "math/rand"
  "testing"
  "time"

  "github.com/stretchr/testify/require"
)

func TestQueue(t *testing.T) {
  t.Run("order preserved under producer jitter", func(t *testing.T) {
    q := New()
    const n = 500

    go func() {
      r := rand.New(rand.NewSource(7))
      for i := 0; i < n; i++ {
        c := make([]byte, 4)
        binary.BigEndian.PutUint32(c, uint32(i))
        _ = q.Send(c)
        if r.Intn(10) == 0 {
          time.Sleep(time.Duration(r.Intn(200)) * time.Microsecond)
        }
      }
      q.Close()
    }()

    next := uint32(0)
    for {
      c, ok, err := q.Recv(context.Background())
      require.NoError(t, err)
      if !ok {
        break
      }
      require.Equal(t, next, binary.BigEndian.Uint32(c))
      next++
    }
    require.EqualValues(t, n, next)
  })

  t.Run("send never blocks", func(t *testing.T) {
    q := New()
    for i := 0; i < 10000; i++ {
      require.NoError(t, q.Send([]byte{1}))
    }
    require.Equal(t, 10000, q.Len())
  })

  t.Run("close drains remaining", func(t *testing.T) {
    q := New()
    require.NoError(t, q.Send([]byte("a")))
    require.NoError(t, q.Send([]byte("b")))
    q.Close()
    require.ErrorIs(t, q.Send([]byte("c")), ErrClosed)

    c, ok, err := q.Recv(context.Background())
    require.NoError(t, err)
    require.True(t, ok)
    require.Equal(t, "a", string(c))
    c, ok, _ = q.Recv(context.Background())
    require.True(t, ok)
    require.Equal(t, "b", string(c))
    _, ok, err = q.Recv(context.Background())
    require.NoError(t, err)
    require.False(t, ok)
  })

  t.Run("recv honours context", func(t *testing.T) {
    q := New()
    ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
    defer cancel()
    _, ok, err := q.Recv(ctx)
    require.False(t, ok)
    require.ErrorIs(t, err, context.DeadlineExceeded)
  })
}
