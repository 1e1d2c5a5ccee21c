package harness

import (
  "context"
  "fmt"

  "github.com/jgallagher/wtaf2/digest"
  "github.com/jgallagher/wtaf2/transport"
  "github.com/jgallagher/wtaf2/verify"
  "github.com/xpwu/go-log/log"
)

// Reporter receives what a cycle found. Calls for one stream come from one goroutine.
type Reporter interface {
  // Finding is called for every chunk that is not clean.
  Finding(ctx context.Context, f *verify.Finding)
  // Digest is called once per cycle whose body was read completely.
  Digest(ctx context.Context, r digest.Result, sum transport.Summary)
}

// LogReporter writes everything as log lines.
type LogReporter struct{}

func (LogReporter) Finding(ctx context.Context, f *verify.Finding) {
  _, logger := log.WithCtx(ctx)

  if len(f.Mismatches) > 0 {
    logger.Error(fmt.Sprintf("INCORRECT CHUNK offset=%#x len=%d addr=%#x mismatches=%d",
      f.Offset, f.Len, f.Addr, len(f.Mismatches)))
    for _, m := range f.Mismatches {
      logger.Error(m.String())
    }
  }
  if f.Overrun > 0 {
    logger.Warning(fmt.Sprintf("chunk offset=%#x len=%d runs %d bytes past the end of the reference data",
      f.Offset, f.Len, f.Overrun))
  }
  if f.Zero {
    logger.Warning(fmt.Sprintf("ALL-ZERO CHUNK offset=%#x len=%d addr=%#x", f.Offset, f.Len, f.Addr))
  }
}

func (LogReporter) Digest(ctx context.Context, r digest.Result, sum transport.Summary) {
  _, logger := log.WithCtx(ctx)
  logger.Info(r.String())
}

// cycleReporter passes findings of one cycle on. Running past the end of the
// reference is only reported for the first chunk that does it.
type cycleReporter struct {
  Reporter
  overrun bool
}

func (r *cycleReporter) finding(ctx context.Context, f *verify.Finding) {
  if f.Overrun > 0 {
    if r.overrun {
      f.Overrun = 0
    }
    r.overrun = true
  }
  if !f.Clean() {
    r.Finding(ctx, f)
  }
}
