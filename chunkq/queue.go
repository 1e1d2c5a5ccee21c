package chunkq

import (
  "context"
  "errors"
  "sync"
)

/**
  single producer, single consumer, FIFO, unbounded.

  Send never waits for the consumer. If the consumer stalls, the queue keeps
  growing; that memory growth is accepted as part of the load the harness puts
  on the machine.
*/

var ErrClosed = errors.New("send on closed chunk queue")

type Queue struct {
  mu     sync.Mutex
  items  [][]byte
  closed bool
  // 有数据或已关闭时通知 consumer
  notify chan struct{}
}

func New() *Queue {
  return &Queue{notify: make(chan struct{}, 1)}
}

// Send hands chunk to the consumer. The producer must not touch chunk afterwards.
func (q *Queue) Send(chunk []byte) error {
  q.mu.Lock()
  if q.closed {
    q.mu.Unlock()
    return ErrClosed
  }
  q.items = append(q.items, chunk)
  q.mu.Unlock()

  q.wake()
  return nil
}

// Close signals that no more chunks will be sent. Chunks already queued are still delivered.
func (q *Queue) Close() {
  q.mu.Lock()
  q.closed = true
  q.mu.Unlock()

  q.wake()
}

func (q *Queue) wake() {
  select {
  case q.notify <- struct{}{}:
  default:
  }
}

// Recv returns the next chunk in send order. ok is false once the queue is
// closed and drained.
func (q *Queue) Recv(ctx context.Context) (chunk []byte, ok bool, err error) {
  for {
    q.mu.Lock()
    if len(q.items) > 0 {
      chunk = q.items[0]
      q.items[0] = nil
      q.items = q.items[1:]
      q.mu.Unlock()
      return chunk, true, nil
    }
    if q.closed {
      q.mu.Unlock()
      return nil, false, nil
    }
    q.mu.Unlock()

    select {
    case <-q.notify:
    case <-ctx.Done():
      return nil, false, ctx.Err()
    }
  }
}

// Len is the number of chunks waiting for the consumer.
func (q *Queue) Len() int {
  q.mu.Lock()
  defer q.mu.Unlock()
  return len(q.items)
}
