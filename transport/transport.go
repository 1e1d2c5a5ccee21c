package transport

import (
  "context"
  "errors"
  "fmt"
  "io"
  "net"

  "github.com/xpwu/go-log/log"
  "github.com/xpwu/go-xnet/connid"
  "github.com/xpwu/go-xnet/xtcp"
)

var (
  // ErrWouldBlock means a non-blocking read found no data. Yield and read again.
  ErrWouldBlock = errors.New("read would block")
  ErrConnect    = errors.New("could not connect")
  ErrWrite      = errors.New("write request failed")
  ErrRead       = errors.New("read failed")
  ErrEarlyClose = errors.New("connection closed before content-length bytes were read")
)

// Conn is one connection as the transfer loop sees it.
type Conn interface {
  // Read makes exactly one read attempt. (0, nil) means the peer closed the
  // connection; (0, ErrWouldBlock) means no data yet on a non-blocking conn.
  Read(p []byte) (n int, err error)
  WriteBuffers(buffers net.Buffers) (n int, err error)
  Id() connid.Id
  Close() error
}

type Connector interface {
  Connect(ctx context.Context, addr string) (Conn, error)
}

// TCPConnector dials plain TCP. With NonBlocking set, reads poll the socket
// and return ErrWouldBlock instead of parking the goroutine.
type TCPConnector struct {
  NonBlocking bool
}

type tcpConn struct {
  *xtcp.Conn
  read func(p []byte) (int, error)
}

func (c *TCPConnector) Connect(ctx context.Context, addr string) (ret Conn, err error) {
  ctx, logger := log.WithCtx(ctx)
  logger.PushPrefix(fmt.Sprintf("connect to %s, ", addr))
  defer logger.PopPrefix()

  var raw net.Conn
  raw, err = xtcp.Dial(ctx, "tcp", addr)
  if err != nil {
    logger.Error(err)
    return nil, fmt.Errorf("%w: %s: %v", ErrConnect, addr, err)
  }

  con := &tcpConn{Conn: xtcp.NewConn(ctx, raw)}
  con.read = con.blockingRead
  if c.NonBlocking {
    if r, ok := pollReader(raw); ok {
      con.read = r
    } else {
      logger.Warning("non-blocking reads not supported here, falling back to blocking reads")
    }
  }

  logger.Debug(fmt.Sprintf("connected(id:%s), non-blocking=%v", con.Id(), c.NonBlocking))

  return con, nil
}

func (c *tcpConn) Read(p []byte) (int, error) {
  return c.read(p)
}

func (c *tcpConn) blockingRead(p []byte) (int, error) {
  n, err := c.Conn.Read(p)
  if err == io.EOF {
    err = nil
  }
  return n, err
}
