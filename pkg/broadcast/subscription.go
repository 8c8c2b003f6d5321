package broadcast

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
)

// Observer receives the values and the terminal event of a subscription.
// Nil callbacks are skipped.
type Observer[T any] struct {
	OnNext     func(T)
	OnError    func(error)
	OnComplete func()
}

// ReceiveFunc blocks until the next value is available.
// It returns ErrCompleted on natural completion.
type ReceiveFunc[T any] func(ctx context.Context) (T, error)

// Subscription is the consumer-owned handle of one attachment.
// Disposing it is the only way to cancel delivery; disposal is never reported
// as an error.
type Subscription struct {
	cancel   context.CancelFunc
	release  func()
	stopOnce sync.Once
	disposed atomic.Bool
	done     chan struct{}
}

// NewSubscription starts delivering values returned by receive to observer
// from a dedicated goroutine. release is called exactly once, when the
// subscription is disposed or delivery ends on its own.
func NewSubscription[T any](ctx context.Context, receive ReceiveFunc[T], observer Observer[T], release func()) *Subscription {
	ctx, cancel := context.WithCancel(ctx)
	s := &Subscription{
		cancel:  cancel,
		release: release,
		done:    make(chan struct{}),
	}
	go deliver(ctx, s, receive, observer)
	return s
}

// Dispose stops delivery and releases the underlying sink or connection.
// No callback starts after Dispose returns; a callback already running may
// finish. Dispose does not wait for it, so it is safe to call from a callback.
// Calling Dispose more than once is a no-op.
func (s *Subscription) Dispose() {
	s.disposed.Store(true)
	s.stop()
}

// Disposed reports whether Dispose was called.
func (s *Subscription) Disposed() bool {
	return s.disposed.Load()
}

// Done is closed when the delivery goroutine has exited.
func (s *Subscription) Done() <-chan struct{} {
	return s.done
}

func (s *Subscription) stop() {
	s.stopOnce.Do(func() {
		s.cancel()
		if s.release != nil {
			s.release()
		}
	})
}

func deliver[T any](ctx context.Context, s *Subscription, receive ReceiveFunc[T], o Observer[T]) {
	defer close(s.done)
	defer s.stop()

	for {
		v, err := receive(ctx)
		if s.disposed.Load() {
			return
		}

		if err != nil {
			switch {
			case errors.Is(err, ErrCompleted):
				if o.OnComplete != nil {
					o.OnComplete()
				}
			case errors.Is(err, ErrDetached), ctx.Err() != nil:
				// cancellation
			default:
				if o.OnError != nil {
					o.OnError(err)
				}
			}
			return
		}

		if o.OnNext != nil {
			o.OnNext(v)
		}
	}
}
