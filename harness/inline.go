package harness

import (
  "context"

  "github.com/jgallagher/wtaf2/bufl"
  "github.com/jgallagher/wtaf2/digest"
  "github.com/jgallagher/wtaf2/transport"
  "github.com/jgallagher/wtaf2/verify"
)

// inlineSink checks, accumulates and digests on the reading goroutine.
type inlineSink struct {
  detector *verify.Detector
  reporter *cycleReporter
  list     *bufl.List
}

func newInlineSink(detector *verify.Detector, reporter Reporter) *inlineSink {
  return &inlineSink{
    detector: detector,
    reporter: &cycleReporter{Reporter: reporter},
    list:     bufl.New(),
  }
}

func (s *inlineSink) Chunk(ctx context.Context, offset int64, chunk []byte) error {
  f, err := s.detector.Check(offset, chunk)
  s.reporter.finding(ctx, &f)
  s.list.Push(chunk)
  return err
}

func (s *inlineSink) Close(ctx context.Context, sum transport.Summary, cause error) error {
  list := s.list
  s.list = nil
  if cause != nil || !sum.Complete {
    return nil
  }

  e := digest.New()
  e.FoldList(list)
  s.reporter.Digest(ctx, e.Sum(), sum)
  return nil
}
