package verify

import (
  "os"
  "path/filepath"
  "testing"

  "github.com/stretchr/testify/require"
)

func body(n int) []byte {
  b := make([]byte, n)
  for i := range b {
    b[i] = byte(i*7 + 3)
  }
  return b
}

func TestReference(t *testing.T) {
  t.Run("reports exactly the corrupted offsets", func(t *testing.T) {
    ref := body(1000)
    got := append([]byte(nil), ref...)
    bad := map[int64]bool{0: true, 5: true, 511: true, 512: true, 999: true}
    for off := range bad {
      got[off] ^= 0x5a
    }

    r := NewReference(ref)
    var all []Mismatch
    // chunks of uneven size
    for off, n := 0, 1; off < len(got); off, n = off+n, n*3 {
      end := off + n
      if end > len(got) {
        end = len(got)
      }
      n = end - off
      m, overrun := r.Compare(int64(off), got[off:end])
      require.Zero(t, overrun)
      all = append(all, m...)
    }

    require.Len(t, all, len(bad))
    for _, m := range all {
      require.True(t, bad[m.Offset], "false positive at %d", m.Offset)
      require.Equal(t, ref[m.Offset], m.Expected)
      require.Equal(t, ref[m.Offset]^0x5a, m.Got)
    }
  })

  t.Run("single corrupted byte at offset 5", func(t *testing.T) {
    r := NewReference([]byte("0123456789"))
    m, _ := r.Compare(4, []byte("4X6789"))
    require.Equal(t, []Mismatch{{Offset: 5, Expected: '5', Got: 'X'}}, m)
  })

  t.Run("overrun", func(t *testing.T) {
    r := NewReference([]byte("0123"))
    m, overrun := r.Compare(2, []byte("23ab"))
    require.Empty(t, m)
    require.Equal(t, 2, overrun)

    m, overrun = r.Compare(10, []byte("zz"))
    require.Empty(t, m)
    require.Equal(t, 2, overrun)
  })

  t.Run("load", func(t *testing.T) {
    p := filepath.Join(t.TempDir(), "ref.bin")
    require.NoError(t, os.WriteFile(p, []byte("abc"), 0o600))
    r, err := LoadReference(p)
    require.NoError(t, err)
    require.EqualValues(t, 3, r.Len())

    _, err = LoadReference(filepath.Join(t.TempDir(), "missing"))
    require.Error(t, err)
  })
}

func TestIsZero(t *testing.T) {
  for _, n := range []int{1, 7, 8, 9, 63, 64, 1000, 128 << 10} {
    z := make([]byte, n)
    require.True(t, IsZero(z), "n=%d", n)

    for i := 0; i < n; i += 1 + n/17 {
      z[i] = 1
      require.False(t, IsZero(z), "n=%d nonzero at %d", n, i)
      z[i] = 0
    }
    z[n-1] = 0x80
    require.False(t, IsZero(z), "n=%d nonzero at tail", n)
  }
  require.False(t, IsZero(nil))
}

func TestDetector(t *testing.T) {
  t.Run("zero chunk reported at its offset", func(t *testing.T) {
    d := &Detector{Zero: ZeroReport}
    f, err := d.Check(0x20000, make([]byte, 128<<10))
    require.NoError(t, err)
    require.True(t, f.Zero)
    require.EqualValues(t, 0x20000, f.Offset)
    require.Equal(t, 128<<10, f.Len)
    require.NotZero(t, f.Addr)
    require.False(t, f.Clean())
  })

  t.Run("zero chunk aborts", func(t *testing.T) {
    d := &Detector{Zero: ZeroAbort}
    f, err := d.Check(10, make([]byte, 16))
    require.ErrorIs(t, err, ErrZeroChunk)
    require.True(t, f.Zero)
  })

  t.Run("zero check off", func(t *testing.T) {
    d := &Detector{}
    f, err := d.Check(0, make([]byte, 16))
    require.NoError(t, err)
    require.True(t, f.Clean())
  })

  t.Run("mismatch never fails", func(t *testing.T) {
    d := &Detector{Ref: NewReference([]byte("abcd")), Zero: ZeroAbort}
    f, err := d.Check(0, []byte("abXd"))
    require.NoError(t, err)
    require.Len(t, f.Mismatches, 1)
    require.EqualValues(t, 2, f.Mismatches[0].Offset)
  })
}
