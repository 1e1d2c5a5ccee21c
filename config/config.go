package config

import (
  "errors"
  "flag"
  "fmt"
  "io"
  "net"
  "net/url"
  "strconv"
  "strings"

  "github.com/jgallagher/wtaf2/harness"
  "github.com/jgallagher/wtaf2/transport"
  "github.com/jgallagher/wtaf2/verify"
)

const (
  EnvSpinners = "WTAF_SPINNERS"
  EnvWorkers  = "WTAF_WORKERS"
  EnvNonBlock = "WTAF_NONBLOCK"
)

var ErrUsage = errors.New("usage: wtaf [flags] <url> [<reference-file>] <balloon-bytes>")

type Target struct {
  Host string
  Port string
  // Path is sent as is in the request line, query included.
  Path string
}

func (t Target) HostPort() string {
  return net.JoinHostPort(t.Host, t.Port)
}

// Resolve returns the first address the target resolves to.
func (t Target) Resolve() (string, error) {
  addr, err := net.ResolveTCPAddr("tcp", t.HostPort())
  if err != nil {
    return "", fmt.Errorf("could not get socket addrs: %w", err)
  }
  return addr.String(), nil
}

func ParseTarget(raw string) (t Target, err error) {
  u, err := url.Parse(raw)
  if err != nil {
    return t, fmt.Errorf("first arg is not a url: %w", err)
  }
  if u.Scheme != "http" {
    return t, fmt.Errorf("unsupported scheme %q, only http", u.Scheme)
  }
  if u.Hostname() == "" {
    return t, fmt.Errorf("url %q has no host", raw)
  }

  t.Host = u.Hostname()
  t.Port = u.Port()
  if t.Port == "" {
    t.Port = "80"
  }
  t.Path = u.EscapedPath()
  if t.Path == "" {
    t.Path = "/"
  }
  if u.RawQuery != "" {
    t.Path += "?" + u.RawQuery
  }
  return t, nil
}

type Config struct {
  Target        Target
  ReferencePath string
  BalloonSize   int

  Spinners    int
  Workers     int
  Threaded    bool
  NonBlocking bool

  Zero       verify.ZeroPolicy
  EarlyClose transport.EarlyClosePolicy
  Cycles     int
}

func (c *Config) Shape() harness.Shape {
  if c.Threaded || c.Workers > 1 {
    return harness.ProducerConsumer
  }
  return harness.Inline
}

// Parse reads flags and positional args (without argv[0]) and the environment
// through getenv.
func Parse(args []string, getenv func(string) string, output io.Writer) (*Config, error) {
  c := &Config{}

  fs := flag.NewFlagSet("wtaf", flag.ContinueOnError)
  fs.SetOutput(output)
  fs.BoolVar(&c.Threaded, "threaded", false, "check and digest on a consumer goroutine")
  fs.BoolVar(&c.NonBlocking, "nonblock", false, "busy-poll the socket instead of blocking reads")
  zero := fs.String("zero", "auto", "all-zero chunk policy: off|report|abort|auto")
  early := fs.String("early-close", "auto", "body cut short: restart|fatal|auto")
  fs.IntVar(&c.Cycles, "cycles", 0, "cycles per stream, 0 runs forever")
  fs.Usage = func() {
    _, _ = fmt.Fprintln(output, ErrUsage.Error())
    fs.PrintDefaults()
  }

  if err := fs.Parse(args); err != nil {
    return nil, err
  }

  var err error
  if c.Spinners, err = envInt(getenv, EnvSpinners, 0); err != nil {
    return nil, err
  }
  if c.Workers, err = envInt(getenv, EnvWorkers, 1); err != nil {
    return nil, err
  }
  if c.Workers < 1 {
    return nil, fmt.Errorf("%s must be at least 1, got %d", EnvWorkers, c.Workers)
  }
  if v := getenv(EnvNonBlock); v != "" {
    if c.NonBlocking, err = strconv.ParseBool(v); err != nil {
      return nil, fmt.Errorf("%s: %w", EnvNonBlock, err)
    }
  }

  pos := fs.Args()
  var balloon string
  switch len(pos) {
  case 2:
    balloon = pos[1]
  case 3:
    c.ReferencePath = pos[1]
    balloon = pos[2]
  default:
    return nil, ErrUsage
  }

  if c.Target, err = ParseTarget(pos[0]); err != nil {
    return nil, err
  }
  if c.BalloonSize, err = strconv.Atoi(balloon); err != nil || c.BalloonSize < 0 {
    return nil, fmt.Errorf("failed to parse balloon size %q", balloon)
  }

  if c.Zero, err = c.zeroPolicy(*zero); err != nil {
    return nil, err
  }
  if c.EarlyClose, err = c.earlyClosePolicy(*early); err != nil {
    return nil, err
  }

  return c, nil
}

// auto: the inline shape is the strict one, the consumer shape keeps going.
func (c *Config) zeroPolicy(v string) (verify.ZeroPolicy, error) {
  switch strings.ToLower(v) {
  case "off":
    return verify.ZeroOff, nil
  case "report":
    return verify.ZeroReport, nil
  case "abort":
    return verify.ZeroAbort, nil
  case "auto":
    if c.Shape() == harness.ProducerConsumer {
      return verify.ZeroReport, nil
    }
    return verify.ZeroOff, nil
  }
  return 0, fmt.Errorf("bad -zero value %q", v)
}

func (c *Config) earlyClosePolicy(v string) (transport.EarlyClosePolicy, error) {
  switch strings.ToLower(v) {
  case "restart":
    return transport.EarlyCloseRestart, nil
  case "fatal":
    return transport.EarlyCloseFatal, nil
  case "auto":
    if c.Shape() == harness.ProducerConsumer {
      return transport.EarlyCloseRestart, nil
    }
    return transport.EarlyCloseFatal, nil
  }
  return 0, fmt.Errorf("bad -early-close value %q", v)
}

func envInt(getenv func(string) string, key string, def int) (int, error) {
  v := getenv(key)
  if v == "" {
    return def, nil
  }
  n, err := strconv.Atoi(v)
  if err != nil || n < 0 {
    return 0, fmt.Errorf("%s: bad count %q", key, v)
  }
  return n, nil
}
