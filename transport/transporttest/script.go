// Package transporttest provides scripted connections for exercising the
// transfer loop without a network.
package transporttest

import (
  "context"
  "errors"
  "net"
  "sync"

  "github.com/jgallagher/wtaf2/transport"
  "github.com/xpwu/go-xnet/connid"
)

var ErrNoScript = errors.New("no more scripted connections")

// Step is one scripted read result. Data is returned as is (it must fit in the
// read buffer); Err is returned after Data was copied.
type Step struct {
  Data string
  Err  error
}

func Data(parts ...string) []Step {
  ret := make([]Step, 0, len(parts))
  for _, p := range parts {
    ret = append(ret, Step{Data: p})
  }
  return ret
}

// WouldBlock is a step that reports no data on a non-blocking conn.
var WouldBlock = Step{Err: transport.ErrWouldBlock}

type Conn struct {
  mu      sync.Mutex
  steps   []Step
  written []byte
  closed  bool
  id      connid.Id
  // WriteErr fails WriteBuffers.
  WriteErr error
}

func NewConn(steps ...Step) *Conn {
  return &Conn{steps: steps, id: connid.New()}
}

// Read plays the next step. With no steps left it reports the peer closing.
func (c *Conn) Read(p []byte) (int, error) {
  c.mu.Lock()
  defer c.mu.Unlock()

  if len(c.steps) == 0 {
    return 0, nil
  }
  s := c.steps[0]
  if len(s.Data) > len(p) {
    c.steps[0].Data = s.Data[len(p):]
    return copy(p, s.Data), nil
  }
  c.steps = c.steps[1:]
  return copy(p, s.Data), s.Err
}

func (c *Conn) WriteBuffers(buffers net.Buffers) (n int, err error) {
  c.mu.Lock()
  defer c.mu.Unlock()

  if c.WriteErr != nil {
    return 0, c.WriteErr
  }
  for _, b := range buffers {
    c.written = append(c.written, b...)
    n += len(b)
  }
  return
}

func (c *Conn) Id() connid.Id {
  return c.id
}

func (c *Conn) Close() error {
  c.mu.Lock()
  defer c.mu.Unlock()
  c.closed = true
  return nil
}

func (c *Conn) Written() string {
  c.mu.Lock()
  defer c.mu.Unlock()
  return string(c.written)
}

func (c *Conn) Closed() bool {
  c.mu.Lock()
  defer c.mu.Unlock()
  return c.closed
}

// Connector hands out its conns in order, one per Connect.
type Connector struct {
  mu    sync.Mutex
  conns []*Conn
  Addrs []string
}

func NewConnector(conns ...*Conn) *Connector {
  return &Connector{conns: conns}
}

func (c *Connector) Connect(ctx context.Context, addr string) (transport.Conn, error) {
  c.mu.Lock()
  defer c.mu.Unlock()

  c.Addrs = append(c.Addrs, addr)
  if len(c.conns) == 0 {
    return nil, ErrNoScript
  }
  ret := c.conns[0]
  c.conns = c.conns[1:]
  return ret, nil
}
