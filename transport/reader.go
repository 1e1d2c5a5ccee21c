package transport

import (
  "github.com/jgallagher/wtaf2/recvbuf"
)

// ReadInto makes one read attempt into buf's spare capacity, growing it by at
// least one increment first, and commits exactly the bytes read.
//
//  n > 0              progress
//  n == 0, err == nil peer closed
//  ErrWouldBlock      nothing yet, yield and retry
func ReadInto(conn Conn, buf *recvbuf.Buffer) (n int, err error) {
  buf.EnsureSpare(buf.Increment())
  n, err = conn.Read(buf.Spare())
  if n < 0 {
    n = 0
  }
  buf.Commit(n)
  return
}
