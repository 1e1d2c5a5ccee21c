//go:build unix

package transport

import (
  "net"
  "syscall"

  "golang.org/x/sys/unix"
)

// pollReader reads straight from the socket fd. The runtime already keeps the
// fd in non-blocking mode; returning true from the callback stops it from
// parking on EAGAIN, so the caller sees ErrWouldBlock and spins.
func pollReader(c net.Conn) (func(p []byte) (int, error), bool) {
  sc, ok := c.(syscall.Conn)
  if !ok {
    return nil, false
  }
  rc, err := sc.SyscallConn()
  if err != nil {
    return nil, false
  }

  return func(p []byte) (n int, err error) {
    cerr := rc.Read(func(fd uintptr) bool {
      n, err = unix.Read(int(fd), p)
      return true
    })
    if cerr != nil {
      return 0, cerr
    }

    switch err {
    case nil:
    case unix.EAGAIN, unix.EINTR:
      return 0, ErrWouldBlock
    default:
      return 0, err
    }

    if n < 0 {
      n = 0
    }
    return n, nil
  }, true
}
