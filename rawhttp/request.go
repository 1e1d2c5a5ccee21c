package rawhttp

import (
  "fmt"
  "net"
)

/**
  request:
    GET <path> HTTP/1.1\r\n
    Host: <host>\r\n
    \r\n

  no other headers, no body.
*/

type Request struct {
  Path string
  Host string
}

func NewRequest(host, path string) *Request {
  if path == "" {
    path = "/"
  }
  return &Request{Path: path, Host: host}
}

func (r *Request) Buffers() net.Buffers {
  ret := make(net.Buffers, 0, 2)
  ret = append(ret, []byte(fmt.Sprintf("GET %s HTTP/1.1\r\n", r.Path)))
  ret = append(ret, []byte(fmt.Sprintf("Host: %s\r\n\r\n", r.Host)))
  return ret
}

func (r *Request) String() string {
  s := ""
  for _, b := range r.Buffers() {
    s += string(b)
  }
  return s
}
