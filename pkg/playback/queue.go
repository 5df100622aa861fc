package playback

import (
	"context"
	"time"
)

// pushRecheck bounds how long a Push blocked on a full queue sleeps before
// re-checking for cancellation, so shutdown is never stuck behind a stalled
// consumer.
const pushRecheck = 100 * time.Millisecond

// Queue is the bounded FIFO hand-off between the decode goroutine and the
// presenter. A small capacity bounds memory and decode-ahead latency; Push
// blocking on a full queue is the pipeline's backpressure point.
//
// Only the producer may call Push and Close.
type Queue struct {
	ch chan *Frame
}

// NewQueue creates a queue holding at most capacity frames.
func NewQueue(capacity int) *Queue {
	if capacity < 1 {
		capacity = 1
	}
	return &Queue{ch: make(chan *Frame, capacity)}
}

// Push appends f, blocking while the queue is full. The wait wakes every
// pushRecheck to notice a cancelled context. The queue takes ownership of f.
func (q *Queue) Push(ctx context.Context, f *Frame) error {
	for {
		select {
		case q.ch <- f:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(pushRecheck):
			// still full; loop to keep the wait bounded
		}
	}
}

// TryPop removes the oldest frame without blocking. done reports that the
// queue was closed and fully drained (end of stream).
func (q *Queue) TryPop() (f *Frame, done bool) {
	select {
	case f, ok := <-q.ch:
		if !ok {
			return nil, true
		}
		return f, false
	default:
		return nil, false
	}
}

// Close marks the end of the stream. Buffered frames remain poppable;
// afterwards TryPop reports done.
func (q *Queue) Close() {
	close(q.ch)
}

// Drain discards all buffered frames so a producer blocked on a full queue
// can finish during shutdown.
func (q *Queue) Drain() {
	for {
		select {
		case _, ok := <-q.ch:
			if !ok {
				return
			}
		default:
			return
		}
	}
}

// Len reports the number of buffered frames.
func (q *Queue) Len() int {
	return len(q.ch)
}
