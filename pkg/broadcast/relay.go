package broadcast

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/dmitrymomot/livefeed/pkg/logger"
)

// Option configures a Relay or a Publisher.
type Option func(*options)

type options struct {
	logger *slog.Logger
}

// WithLogger supplies a logger. A nil logger keeps the default noop logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

func newOptions(opts []Option) options {
	o := options{logger: logger.NewNope()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Relay is a hot multicast buffer: values pushed by one producer are offered
// to every sink attached at push time. All methods are safe for concurrent use.
type Relay[T any] struct {
	mu         sync.RWMutex
	sinks      map[*Sink[T]]struct{}
	terminated bool
	err        error
	logger     *slog.Logger
}

// NewRelay creates an empty relay with no attached sinks.
func NewRelay[T any](opts ...Option) *Relay[T] {
	o := newOptions(opts)
	return &Relay[T]{
		sinks:  make(map[*Sink[T]]struct{}),
		logger: o.logger,
	}
}

// Push offers v to every attached sink without blocking.
// With no attached sinks, or after the relay terminated, v is discarded.
func (r *Relay[T]) Push(v T) {
	// Read lock: pushes are frequent, attach and detach are not.
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.terminated {
		return
	}
	for s := range r.sinks {
		s.offer(v)
	}
}

// Attach registers a new sink. The sink observes only values pushed after
// Attach returns. If the relay already terminated, the returned sink yields
// the terminal event immediately.
func (r *Relay[T]) Attach() *Sink[T] {
	s := newSink[T]()

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.terminated {
		s.terminate(r.err)
		return s
	}

	r.sinks[s] = struct{}{}
	r.logger.Debug("sink attached",
		logger.SubscriberID(s.id),
		logger.Subscribers(len(r.sinks)),
	)
	return s
}

// Detach unregisters s. Once Detach returns, no further value is offered to s.
// It is safe to call Detach more than once.
func (r *Relay[T]) Detach(s *Sink[T]) {
	if s == nil {
		return
	}

	r.mu.Lock()
	_, attached := r.sinks[s]
	delete(r.sinks, s)
	count := len(r.sinks)
	r.mu.Unlock()

	s.detach()

	if attached {
		r.logger.Debug("sink detached",
			logger.SubscriberID(s.id),
			logger.Subscribers(count),
			logger.Dropped(s.Dropped()),
		)
	}
}

// Subscribe attaches a new sink and delivers its values to observer from a
// dedicated goroutine until the returned Subscription is disposed, ctx is
// cancelled, or the relay terminates.
func (r *Relay[T]) Subscribe(ctx context.Context, observer Observer[T]) *Subscription {
	sink := r.Attach()
	return NewSubscription(ctx, sink.Receive, observer, func() { r.Detach(sink) })
}

// Complete terminates the relay normally. Every attached sink receives
// ErrCompleted after its pending value. Only the first terminal call has effect.
func (r *Relay[T]) Complete() {
	r.terminate(nil)
}

// Fail terminates the relay with an upstream failure. Every attached sink
// receives an *UpstreamError wrapping err. Only the first terminal call has effect.
func (r *Relay[T]) Fail(err error) {
	if err == nil {
		err = errors.New("unknown upstream failure")
	}
	var upstream *UpstreamError
	if !errors.As(err, &upstream) {
		upstream = &UpstreamError{Err: err}
	}
	r.terminate(upstream)
}

// Len returns the number of attached sinks.
func (r *Relay[T]) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sinks)
}

// Terminated reports whether the relay reached a terminal state and the
// terminal error, which is nil for normal completion.
func (r *Relay[T]) Terminated() (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.terminated, r.err
}

func (r *Relay[T]) terminate(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.terminated {
		return
	}
	r.terminated = true
	r.err = err

	for s := range r.sinks {
		s.terminate(err)
	}
	r.logger.Info("relay terminated",
		logger.Subscribers(len(r.sinks)),
		logger.Error(err),
	)
	clear(r.sinks)
}
