package digest

import (
  "crypto/sha256"
  "math/rand"
  "testing"

  "github.com/jgallagher/wtaf2/bufl"
  "github.com/stretchr/testify/require"
)

func TestEngine(t *testing.T) {
  t.Run("scenario 0123456789 in 4 and 6", func(t *testing.T) {
    l := bufl.New()
    l.Push([]byte("0123"))
    l.Push([]byte("456789"))

    e := New()
    e.FoldList(l)
    r := e.Sum()
    require.EqualValues(t, 10, r.NumBytes)
    require.Equal(t, sha256.Sum256([]byte("0123456789")), r.Sum)
    require.Equal(t, "read 10 bytes; hash=84d89877f0d4041efb6bf91a16f0248f2fd573e6af05c19f96bedb9f882f7882", r.String())
  })

  t.Run("independent of chunking", func(t *testing.T) {
    rnd := rand.New(rand.NewSource(3))
    data := make([]byte, 10000)
    rnd.Read(data)

    one := New()
    one.Fold(data)
    want := one.Sum()

    for i := 0; i < 50; i++ {
      e := New()
      rest := data
      for len(rest) > 0 {
        n := 1 + rnd.Intn(len(rest))
        e.Fold(rest[:n])
        rest = rest[n:]
      }
      require.Equal(t, want, e.Sum())
    }
  })

  t.Run("sum resets", func(t *testing.T) {
    e := New()
    e.Fold([]byte("abc"))
    e.Sum()
    e.Fold([]byte("xyz"))
    r := e.Sum()
    require.EqualValues(t, 3, r.NumBytes)
    require.Equal(t, sha256.Sum256([]byte("xyz")), r.Sum)
  })
}
