package main

import (
  "context"
  "fmt"
  "os"

  "github.com/jgallagher/wtaf2/config"
  "github.com/jgallagher/wtaf2/harness"
  "github.com/jgallagher/wtaf2/stress"
  "github.com/jgallagher/wtaf2/transport"
  "github.com/jgallagher/wtaf2/verify"
  "github.com/xpwu/go-log/log"
)

func main() {
  if err := run(context.Background()); err != nil {
    fmt.Fprintln(os.Stderr, "wtaf:", err)
    os.Exit(1)
  }
}

// run only returns on a fatal condition.
func run(ctx context.Context) error {
  ctx, logger := log.WithCtx(ctx)

  conf, err := config.Parse(os.Args[1:], os.Getenv, os.Stderr)
  if err != nil {
    return err
  }

  addr, err := conf.Target.Resolve()
  if err != nil {
    logger.Error(err)
    return err
  }

  var ref *verify.Reference
  if conf.ReferencePath != "" {
    if ref, err = verify.LoadReference(conf.ReferencePath); err != nil {
      logger.Error(err)
      return err
    }
    logger.Info(fmt.Sprintf("reference data: %s, %d bytes", conf.ReferencePath, ref.Len()))
  }

  balloon := stress.NewBalloon(conf.BalloonSize)
  logger.Info(balloon.String())

  if conf.Spinners > 0 {
    stress.StartSpinners(ctx, conf.Spinners)
    logger.Info(fmt.Sprintf("started %d spinners", conf.Spinners))
  }

  return harness.Run(ctx, &harness.Options{
    Connector:  &transport.TCPConnector{NonBlocking: conf.NonBlocking},
    Addr:       addr,
    Host:       conf.Target.Host,
    Path:       conf.Target.Path,
    Shape:      conf.Shape(),
    Streams:    conf.Workers,
    Reference:  ref,
    Zero:       conf.Zero,
    EarlyClose: conf.EarlyClose,
    Cycles:     conf.Cycles,
    OnCycle: func() {
      balloon.Touch()
    },
  })
}
