package transport

import (
  "context"
  "fmt"
  "runtime"

  "github.com/jgallagher/wtaf2/rawhttp"
  "github.com/jgallagher/wtaf2/recvbuf"
  "github.com/xpwu/go-log/log"
  "github.com/xpwu/go-reqid/reqid"
)

/**
  one cycle:

    Connecting -> SendingRequest -> ReadingHeaders -> StreamingBody -> Closing
        ^                                                                |
        +----------------------------------------------------------------+

  the caller loops; Transfer.Run is one turn of the wheel.
*/

type State int

const (
  Connecting State = iota
  SendingRequest
  ReadingHeaders
  StreamingBody
  Closing
)

func (s State) String() string {
  switch s {
  case Connecting:
    return "connecting"
  case SendingRequest:
    return "sending request"
  case ReadingHeaders:
    return "reading headers"
  case StreamingBody:
    return "streaming body"
  case Closing:
    return "closing"
  }
  return fmt.Sprintf("State(%d)", int(s))
}

type EarlyClosePolicy int

const (
  // EarlyCloseRestart ends the cycle quietly; the caller reconnects.
  EarlyCloseRestart EarlyClosePolicy = iota
  // EarlyCloseFatal fails the run when the body is cut short.
  EarlyCloseFatal
)

type Summary struct {
  ContentLength int64
  Received      int64
  Complete      bool
  // State the cycle ended in.
  State State
}

// Sink receives the body of one cycle.
type Sink interface {
  // Chunk hands over one read's worth of body bytes at its absolute offset.
  // The sink owns chunk from here on. A non-nil error fails the cycle.
  Chunk(ctx context.Context, offset int64, chunk []byte) error
  // Close is called exactly once per Run, whatever happened. cause is the
  // error Run is about to return, if any.
  Close(ctx context.Context, sum Summary, cause error) error
}

type Transfer struct {
  Connector  Connector
  Addr       string
  Request    *rawhttp.Request
  EarlyClose EarlyClosePolicy
  // Increment is the receive buffer growth step, recvbuf.Increment when zero.
  Increment int
}

func (t *Transfer) Run(ctx context.Context, sink Sink) (sum Summary, err error) {
  ctx, reqId := reqid.WithCtx(ctx)
  ctx, logger := log.WithCtx(ctx)
  logger.PushPrefix(fmt.Sprintf("cycle(reqid=%s),", reqId))

  defer func() {
    sum.State = Closing
    cerr := sink.Close(ctx, sum, err)
    if err == nil {
      err = cerr
    }
  }()

  // under EarlyCloseRestart a cut-short body or failed read only ends the cycle
  endEarly := func(cause error) error {
    if t.EarlyClose == EarlyCloseFatal {
      logger.Error(cause)
      return cause
    }
    logger.Warning(cause.Error() + ", reconnecting")
    return nil
  }

  sum.State = Connecting
  logger.Info("connecting to = " + t.Addr)
  conn, err := t.Connector.Connect(ctx, t.Addr)
  if err != nil {
    logger.Error(err)
    return
  }
  defer func() {
    _ = conn.Close()
  }()
  logger.PushPrefix(fmt.Sprintf("conn(id=%s),", conn.Id()))

  sum.State = SendingRequest
  if _, err = conn.WriteBuffers(t.Request.Buffers()); err != nil {
    err = fmt.Errorf("%w: %v", ErrWrite, err)
    logger.Error(err)
    return
  }

  // fresh per connection, nothing left over from the previous cycle
  buf := recvbuf.NewWithIncrement(t.Increment)

  sum.State = ReadingHeaders
  scanner := rawhttp.NewScanner()
  for !scanner.Done() {
    var n int
    n, err = ReadInto(conn, buf)
    if err == ErrWouldBlock {
      runtime.Gosched()
      continue
    }
    if err != nil {
      return sum, endEarly(fmt.Errorf("%w while %s: %v", ErrRead, sum.State, err))
    }
    if n == 0 {
      err = rawhttp.ErrHeadersIncomplete
      logger.Error(err)
      return
    }

    if _, err = scanner.Scan(buf); err != nil {
      logger.Error(err)
      return
    }
  }
  sum.ContentLength, _ = scanner.ContentLength()
  logger.Debug(fmt.Sprintf("headers done, content-length=%d", sum.ContentLength))

  sum.State = StreamingBody
  // what came in with the end of the headers is the start of the body
  if rest := buf.Len(); rest > 0 {
    if err = sink.Chunk(ctx, 0, buf.SplitTo(rest)); err != nil {
      logger.Error(err)
      return
    }
    sum.Received = int64(rest)
  }

  for sum.Received < sum.ContentLength {
    var n int
    n, err = ReadInto(conn, buf)
    if err == ErrWouldBlock {
      runtime.Gosched()
      continue
    }
    if err != nil {
      return sum, endEarly(fmt.Errorf("%w while %s: %v", ErrRead, sum.State, err))
    }
    if n == 0 {
      return sum, endEarly(fmt.Errorf("%w: peer closed after %d of %d bytes", ErrEarlyClose, sum.Received, sum.ContentLength))
    }

    logger.Debug(fmt.Sprintf("read %d bytes at offset=%#x", n, sum.Received))
    if err = sink.Chunk(ctx, sum.Received, buf.SplitTo(n)); err != nil {
      logger.Error(err)
      return
    }
    sum.Received += int64(n)
  }

  sum.Complete = true
  return sum, nil
}
