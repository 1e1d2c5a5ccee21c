//go:build !unix

package transport

import "net"

func pollReader(c net.Conn) (func(p []byte) (int, error), bool) {
  return nil, false
}
