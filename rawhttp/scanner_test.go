package rawhttp

import (
  "testing"

  "github.com/jgallagher/wtaf2/recvbuf"
  "github.com/stretchr/testify/require"
)

func feed(buf *recvbuf.Buffer, data string) {
  buf.EnsureSpare(len(data))
  buf.Commit(copy(buf.Spare(), data))
}

func scanAll(parts ...string) (s *Scanner, buf *recvbuf.Buffer, done bool, err error) {
  s = NewScanner()
  buf = recvbuf.NewWithIncrement(64)
  for _, p := range parts {
    feed(buf, p)
    if !done {
      done, err = s.Scan(buf)
    }
  }
  return
}

func TestScanner(t *testing.T) {
  t.Run("content-length", func(t *testing.T) {
    s, buf, done, err := scanAll("HTTP/1.1 200 OK\r\ncontent-length: 10\r\n\r\n0123")
    require.NoError(t, err)
    require.True(t, done)
    l, ok := s.ContentLength()
    require.True(t, ok)
    require.EqualValues(t, 10, l)
    require.Equal(t, "0123", string(buf.Bytes()))
  })

  t.Run("mixed case header", func(t *testing.T) {
    s, _, done, err := scanAll("HTTP/1.1 200 OK\r\nContent-Length: 7\r\nServer: x\r\n\r\n")
    require.NoError(t, err)
    require.True(t, done)
    l, _ := s.ContentLength()
    require.EqualValues(t, 7, l)
  })

  t.Run("header name forms", func(t *testing.T) {
    tests := []struct {
      line  string
      found bool
    }{
      {"content-length: 42", true},
      {"Content-Length: 42", true},
      {"CONTENT-LENGTH: 42", true},
      {"content-length:42", false},
      {"content-length:  42", false},
      {"content-length : 42", false},
      {"x-content-length: 42", false},
      {"content-length: 42 ", false},
    }
    for _, tt := range tests {
      t.Run(tt.line, func(t *testing.T) {
        s, _, done, err := scanAll("HTTP/1.1 200 OK\r\n" + tt.line + "\r\n\r\n")
        require.True(t, done)
        l, ok := s.ContentLength()
        require.Equal(t, tt.found, ok)
        if tt.found {
          require.NoError(t, err)
          require.EqualValues(t, 42, l)
        } else {
          require.ErrorIs(t, err, ErrNoContentLength)
        }
      })
    }
  })

  t.Run("last one wins", func(t *testing.T) {
    s, _, _, err := scanAll("HTTP/1.1 200 OK\r\ncontent-length: 3\r\ncontent-length: 12\r\n\r\n")
    require.NoError(t, err)
    l, _ := s.ContentLength()
    require.EqualValues(t, 12, l)
  })

  t.Run("bad value forgets earlier one", func(t *testing.T) {
    _, _, done, err := scanAll("HTTP/1.1 200 OK\r\ncontent-length: 3\r\ncontent-length: x1\r\n\r\n")
    require.True(t, done)
    require.ErrorIs(t, err, ErrNoContentLength)
  })

  t.Run("missing content-length", func(t *testing.T) {
    _, _, done, err := scanAll("HTTP/1.1 200 OK\r\nServer: x\r\n\r\nbody")
    require.True(t, done)
    require.ErrorIs(t, err, ErrNoContentLength)
  })

  t.Run("incomplete", func(t *testing.T) {
    s, buf, done, err := scanAll("HTTP/1.1 200 OK\r\ncontent-len")
    require.NoError(t, err)
    require.False(t, done)
    require.False(t, s.Done())
    require.Equal(t, "content-len", string(buf.Bytes()))
  })

  t.Run("split at every offset", func(t *testing.T) {
    block := "HTTP/1.1 200 OK\r\nServer: test\r\ncontent-length: 1234\r\nX-A: b\r\ncontent-length: 98765\r\n\r\nBODY"

    for i := 0; i <= len(block); i++ {
      for j := i; j <= len(block); j++ {
        s, buf, done, err := scanAll(block[:i], block[i:j], block[j:])
        require.NoError(t, err, "split %d/%d", i, j)
        require.True(t, done, "split %d/%d", i, j)
        l, ok := s.ContentLength()
        require.True(t, ok)
        require.EqualValues(t, 98765, l, "split %d/%d", i, j)
        require.Equal(t, "BODY", string(buf.Bytes()), "split %d/%d", i, j)
      }
    }
  })
}

func TestRequest(t *testing.T) {
  r := NewRequest("example.com", "/big.bin")
  require.Equal(t, "GET /big.bin HTTP/1.1\r\nHost: example.com\r\n\r\n", r.String())

  r = NewRequest("example.com", "")
  require.Equal(t, "GET / HTTP/1.1\r\nHost: example.com\r\n\r\n", r.String())
}
