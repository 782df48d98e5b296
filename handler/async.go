package handler

import (
	"sync"

	"github.com/arloliu/binlog/errs"
	"github.com/arloliu/binlog/internal/pool"
	"github.com/arloliu/binlog/logger"
)

// Async decouples the logging goroutine from downstream processing.
//
// Handle copies the handed-off buffer into a pooled byte buffer — the original
// is only valid for the duration of the call — and enqueues it for a single
// background goroutine that drives the next handler in order. Hand-off order
// is preserved, so the concatenation of chunks seen downstream equals the
// concatenation the logger produced.
//
// A downstream error is sticky: it is reported by the first Handle call that
// observes it (poisoning the logger) and again by Close. Handle blocks when
// the queue is full rather than dropping chunks.
type Async struct {
	next  logger.Handler
	queue chan *pool.ByteBuffer
	done  chan struct{}

	mu       sync.Mutex
	firstErr error
	closed   bool

	closeOnce sync.Once
}

var _ logger.Handler = (*Async)(nil)

// NewAsync creates a background handler forwarding chunks to next.
// queueSize bounds the number of chunks in flight; 0 means unbuffered.
func NewAsync(next logger.Handler, queueSize int) *Async {
	h := &Async{
		next:  next,
		queue: make(chan *pool.ByteBuffer, queueSize),
		done:  make(chan struct{}),
	}

	go h.run()

	return h
}

// Handle copies buf and enqueues it for the background goroutine.
// Handing off after Close fails with ErrHandlerFailure.
func (h *Async) Handle(buf []byte) error {
	h.mu.Lock()
	err := h.firstErr
	closed := h.closed
	h.mu.Unlock()

	if err != nil {
		return err
	}
	if closed {
		return errs.ErrHandlerFailure
	}

	bb := pool.GetChunkBuffer()
	bb.MustWrite(buf)
	h.queue <- bb

	return nil
}

// Err returns the first error reported by the downstream handler, if any.
func (h *Async) Err() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	return h.firstErr
}

// Close drains the queue, stops the background goroutine and returns the
// first downstream error observed over the handler's lifetime.
func (h *Async) Close() error {
	h.closeOnce.Do(func() {
		h.mu.Lock()
		h.closed = true
		h.mu.Unlock()

		close(h.queue)
		<-h.done
	})

	return h.Err()
}

// run is the background goroutine: it forwards queued chunks to the next
// handler until the queue is closed.
func (h *Async) run() {
	defer close(h.done)

	for bb := range h.queue {
		if h.Err() == nil {
			if err := h.next.Handle(bb.Bytes()); err != nil {
				h.mu.Lock()
				h.firstErr = err
				h.mu.Unlock()
			}
		}
		pool.PutChunkBuffer(bb)
	}
}
