package harness

import (
  "context"
  "sync"

  "github.com/jgallagher/wtaf2/bufl"
  "github.com/jgallagher/wtaf2/chunkq"
  "github.com/jgallagher/wtaf2/digest"
  "github.com/jgallagher/wtaf2/transport"
  "github.com/jgallagher/wtaf2/verify"
  "github.com/xpwu/go-log/log"
)

/**
  producer (transfer loop)  --- chunkq.Queue --->  consumer goroutine
                                                     check -> bufl.List -> digest

  one consumer per cycle. Close waits for it, so two cycles never share a
  queue or a list.
*/

type consumerSink struct {
  q        *chunkq.Queue
  detector *verify.Detector
  reporter *cycleReporter

  // written by Close before q.Close, read by the consumer after Recv reports closed
  sum   transport.Summary
  cause error

  done   chan struct{}
  failed chan struct{}
  once   sync.Once
  err    error
}

func newConsumerSink(ctx context.Context, detector *verify.Detector, reporter Reporter) *consumerSink {
  s := &consumerSink{
    q:        chunkq.New(),
    detector: detector,
    reporter: &cycleReporter{Reporter: reporter},
    done:     make(chan struct{}),
    failed:   make(chan struct{}),
  }
  go s.consume(ctx)
  return s
}

func (s *consumerSink) fail(err error) {
  s.once.Do(func() {
    s.err = err
    close(s.failed)
  })
}

// Chunk never waits for the consumer; it only notices that the consumer gave up.
func (s *consumerSink) Chunk(ctx context.Context, offset int64, chunk []byte) error {
  select {
  case <-s.failed:
    return s.err
  default:
  }
  return s.q.Send(chunk)
}

func (s *consumerSink) Close(ctx context.Context, sum transport.Summary, cause error) error {
  s.sum = sum
  s.cause = cause
  s.q.Close()
  <-s.done

  select {
  case <-s.failed:
    return s.err
  default:
    return nil
  }
}

func (s *consumerSink) consume(ctx context.Context) {
  defer close(s.done)
  ctx, logger := log.WithCtx(ctx)

  list := bufl.New()
  var offset int64
  for {
    chunk, ok, err := s.q.Recv(ctx)
    if err != nil {
      logger.Error(err)
      s.fail(err)
      return
    }
    if !ok {
      break
    }
    select {
    case <-s.failed:
      // drain only, the producer stops at its next Chunk
      continue
    default:
    }

    f, err := s.detector.Check(offset, chunk)
    s.reporter.finding(ctx, &f)
    if err != nil {
      logger.Error(err)
      s.fail(err)
      continue
    }
    list.Push(chunk)
    offset += int64(len(chunk))
  }

  select {
  case <-s.failed:
    return
  default:
  }
  if s.cause != nil || !s.sum.Complete {
    logger.Debug("cycle ended early, no digest")
    return
  }

  e := digest.New()
  e.FoldList(list)
  s.reporter.Digest(ctx, e.Sum(), s.sum)
}
