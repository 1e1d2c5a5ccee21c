package digest

import (
  "crypto/sha256"
  "encoding/hex"
  "fmt"
  "hash"

  "github.com/jgallagher/wtaf2/bufl"
)

type Result struct {
  NumBytes int64
  Sum      [sha256.Size]byte
}

func (r Result) Hex() string {
  return hex.EncodeToString(r.Sum[:])
}

func (r Result) String() string {
  return fmt.Sprintf("read %d bytes; hash=%s", r.NumBytes, r.Hex())
}

// Engine folds chunks into a SHA-256 state in the order they are given.
type Engine struct {
  h hash.Hash
  n int64
}

func New() *Engine {
  return &Engine{h: sha256.New()}
}

func (e *Engine) Fold(chunk []byte) {
  // hash.Hash.Write never returns an error
  _, _ = e.h.Write(chunk)
  e.n += int64(len(chunk))
}

// FoldList folds every chunk of l in order.
func (e *Engine) FoldList(l *bufl.List) {
  // hash.Hash.Write never returns an error
  n, _ := l.WriteTo(e.h)
  e.n += n
}

// Sum finalizes the digest. The engine starts over afterwards.
func (e *Engine) Sum() (r Result) {
  r.NumBytes = e.n
  e.h.Sum(r.Sum[:0])
  e.h.Reset()
  e.n = 0
  return
}
