package rawhttp

import (
  "bytes"
  "strconv"

  "github.com/indigo-web/utils/uf"
  "github.com/jgallagher/wtaf2/recvbuf"
)

var (
  crlf             = []byte("\r\n")
  contentLengthKey = []byte("content-length: ")
)

// Scanner walks the header block line by line, consuming every complete line
// from the receive buffer. It keeps state between calls, so the header block
// may be split across any number of reads.
type Scanner struct {
  contentLength int64
  found         bool
  done          bool
}

func NewScanner() *Scanner {
  return &Scanner{}
}

// Scan consumes every complete header line currently in buf. It returns done
// once the empty line ending the header block was consumed; whatever follows
// it stays in buf and belongs to the body.
func (s *Scanner) Scan(buf *recvbuf.Buffer) (done bool, err error) {
  if s.done {
    return true, nil
  }

  for {
    data := buf.Bytes()
    i := bytes.Index(data, crlf)
    if i == -1 {
      return false, nil
    }

    if i == 0 {
      buf.ConsumePrefix(len(crlf))
      s.done = true
      if !s.found {
        return true, ErrNoContentLength
      }
      return true, nil
    }

    s.header(data[:i])
    buf.ConsumePrefix(i + len(crlf))
  }
}

func (s *Scanner) header(line []byte) {
  // name in any case, then exactly one space
  if len(line) < len(contentLengthKey) || !bytes.EqualFold(line[:len(contentLengthKey)], contentLengthKey) {
    return
  }

  // last one wins, an unparsable value forgets an earlier one
  v, err := strconv.ParseUint(uf.B2S(line[len(contentLengthKey):]), 10, 63)
  if err != nil {
    s.contentLength, s.found = 0, false
    return
  }
  s.contentLength, s.found = int64(v), true
}

func (s *Scanner) Done() bool {
  return s.done
}

func (s *Scanner) ContentLength() (length int64, ok bool) {
  return s.contentLength, s.found
}
