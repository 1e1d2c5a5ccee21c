package harness

import (
  "context"
  "fmt"
  "sync"

  "github.com/jgallagher/wtaf2/rawhttp"
  "github.com/jgallagher/wtaf2/transport"
  "github.com/jgallagher/wtaf2/verify"
  "github.com/xpwu/go-log/log"
)

type Shape int

const (
  // Inline checks, accumulates and digests on the reading goroutine.
  Inline Shape = iota
  // ProducerConsumer hands every chunk to a consumer goroutine over an unbounded queue.
  ProducerConsumer
)

func (s Shape) String() string {
  if s == ProducerConsumer {
    return "producer/consumer"
  }
  return "inline"
}

type Options struct {
  Connector transport.Connector
  Addr      string
  Host      string
  Path      string

  Shape Shape
  // Streams is the number of independent download streams, at least 1.
  Streams int

  Reference  *verify.Reference
  Zero       verify.ZeroPolicy
  EarlyClose transport.EarlyClosePolicy

  // Cycles per stream, 0 runs forever.
  Cycles    int
  Increment int

  Reporter Reporter
  // OnCycle runs after every completed cycle, on the stream's goroutine.
  OnCycle func()
}

func (o *Options) transfer() *transport.Transfer {
  return &transport.Transfer{
    Connector:  o.Connector,
    Addr:       o.Addr,
    Request:    rawhttp.NewRequest(o.Host, o.Path),
    EarlyClose: o.EarlyClose,
    Increment:  o.Increment,
  }
}

func (o *Options) detector() *verify.Detector {
  return &verify.Detector{Ref: o.Reference, Zero: o.Zero}
}

func (o *Options) reporter() Reporter {
  if o.Reporter == nil {
    return LogReporter{}
  }
  return o.Reporter
}

// Run starts every stream and returns the first fatal error. With Cycles == 0
// it only returns on a fatal error.
func Run(ctx context.Context, opts *Options) error {
  streams := opts.Streams
  if streams < 1 {
    streams = 1
  }
  if streams == 1 {
    return RunStream(ctx, 0, opts)
  }

  ctx, cancel := context.WithCancel(ctx)
  defer cancel()
  ctx, logger := log.WithCtx(ctx)
  logger.Info(fmt.Sprintf("starting %d download streams (%s)", streams, opts.Shape))

  errs := make(chan error, streams)
  wg := sync.WaitGroup{}
  for i := 0; i < streams; i++ {
    wg.Add(1)
    go func(id int) {
      defer wg.Done()
      if err := RunStream(ctx, id, opts); err != nil {
        errs <- err
      }
    }(i)
  }

  go func() {
    wg.Wait()
    close(errs)
  }()

  // first fatal error wins; cancel stops the others at their next cycle
  return <-errs
}

// RunStream runs the cycle loop of one download stream. It stops quietly
// before the next cycle once ctx is done.
func RunStream(ctx context.Context, id int, opts *Options) error {
  ctx, logger := log.WithCtx(ctx)
  logger.PushPrefix(fmt.Sprintf("stream(%d),", id))

  tr := opts.transfer()
  detector := opts.detector()
  reporter := opts.reporter()

  for cycle := 0; opts.Cycles == 0 || cycle < opts.Cycles; cycle++ {
    if ctx.Err() != nil {
      logger.Debug("stopped")
      return nil
    }

    var sink transport.Sink
    if opts.Shape == ProducerConsumer {
      sink = newConsumerSink(ctx, detector, reporter)
    } else {
      sink = newInlineSink(detector, reporter)
    }

    sum, err := tr.Run(ctx, sink)
    if err != nil && ctx.Err() != nil {
      logger.Debug(fmt.Sprintf("stopped mid-cycle: %v", err))
      return nil
    }
    if err != nil {
      err = fmt.Errorf("stream(%d): %w", id, err)
      logger.Error(err)
      return err
    }

    if sum.Complete && opts.OnCycle != nil {
      opts.OnCycle()
    }
  }

  return nil
}
