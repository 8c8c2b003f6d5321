package broadcast

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
)

// Sink is the per-subscriber delivery endpoint of a Relay.
// It holds at most one pending value; a newer value replaces an unconsumed one.
// Receive must be called from a single goroutine at a time.
type Sink[T any] struct {
	id       string
	slot     atomic.Pointer[T]
	wake     chan struct{}
	done     chan struct{}
	detached chan struct{}
	err      error // terminal error, written before done is closed

	doneOnce   sync.Once
	detachOnce sync.Once
	dropped    atomic.Uint64
}

func newSink[T any]() *Sink[T] {
	return &Sink[T]{
		id:       uuid.New().String(),
		wake:     make(chan struct{}, 1),
		done:     make(chan struct{}),
		detached: make(chan struct{}),
	}
}

// ID returns the unique sink identifier.
func (s *Sink[T]) ID() string {
	return s.id
}

// Dropped returns how many pending values were replaced before being consumed.
func (s *Sink[T]) Dropped() uint64 {
	return s.dropped.Load()
}

// Receive blocks until the next value is available and returns it.
// It returns ErrCompleted or an *UpstreamError once the relay terminated and
// the last pending value was consumed, ErrDetached after the sink was
// detached, or the context error.
func (s *Sink[T]) Receive(ctx context.Context) (T, error) {
	var zero T
	for {
		select {
		case <-s.detached:
			return zero, ErrDetached
		default:
		}

		if v := s.slot.Swap(nil); v != nil {
			return *v, nil
		}

		select {
		case <-s.done:
			// A value offered right before termination is still delivered.
			if v := s.slot.Swap(nil); v != nil {
				return *v, nil
			}
			if s.err != nil {
				return zero, s.err
			}
			return zero, ErrCompleted
		default:
		}

		select {
		case <-s.wake:
		case <-s.done:
		case <-s.detached:
		case <-ctx.Done():
			return zero, ctx.Err()
		}
	}
}

// offer stores v as the pending value. It never blocks.
func (s *Sink[T]) offer(v T) {
	if prev := s.slot.Swap(&v); prev != nil {
		s.dropped.Add(1)
	}
	select {
	case s.wake <- struct{}{}:
	default:
	}
}

func (s *Sink[T]) terminate(err error) {
	s.doneOnce.Do(func() {
		s.err = err
		close(s.done)
	})
}

func (s *Sink[T]) detach() {
	s.detachOnce.Do(func() {
		close(s.detached)
	})
}
