package broadcast

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/dmitrymomot/livefeed/pkg/logger"
)

const (
	stateDisconnected int32 = iota
	stateConnected
	stateClosed
)

// Publisher shares one lazily started Source among all subscribers of its relay.
// The source is connected by the first Attach or Subscribe and stays connected
// until it ends or Close is called, regardless of the subscriber count.
type Publisher[T any] struct {
	relay  *Relay[T]
	source Source[T]
	state  atomic.Int32
	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}
	logger *slog.Logger
}

// NewPublisher creates a disconnected publisher over source.
func NewPublisher[T any](source Source[T], opts ...Option) *Publisher[T] {
	if source == nil {
		panic("broadcast: nil source")
	}
	o := newOptions(opts)
	ctx, cancel := context.WithCancel(context.Background())
	return &Publisher[T]{
		relay:  NewRelay[T](opts...),
		source: source,
		ctx:    ctx,
		cancel: cancel,
		done:   make(chan struct{}),
		logger: o.logger,
	}
}

// Attach registers a new sink on the shared relay and connects the source if
// this is the first attachment.
func (p *Publisher[T]) Attach() *Sink[T] {
	// Attach before connecting so the first subscriber sees the first value.
	sink := p.relay.Attach()
	p.connect()
	return sink
}

// Subscribe is Attach plus callback delivery; see Relay.Subscribe.
func (p *Publisher[T]) Subscribe(ctx context.Context, observer Observer[T]) *Subscription {
	sink := p.Attach()
	return NewSubscription(ctx, sink.Receive, observer, func() { p.relay.Detach(sink) })
}

// Detach unregisters s from the shared relay. The source keeps running.
func (p *Publisher[T]) Detach(s *Sink[T]) {
	p.relay.Detach(s)
}

// Len returns the number of sinks attached to the shared relay.
func (p *Publisher[T]) Len() int {
	return p.relay.Len()
}

// Connected reports whether the source is running: it has been started, has
// not returned yet and the publisher is not closed.
func (p *Publisher[T]) Connected() bool {
	return p.state.Load() == stateConnected
}

// Close stops the source, waits for it to return and completes the relay.
// It is safe to call Close multiple times.
func (p *Publisher[T]) Close() error {
	switch p.state.Swap(stateClosed) {
	case stateDisconnected:
		p.cancel()
		p.relay.Complete()
	case stateConnected:
		p.cancel()
		<-p.done
	}
	return nil
}

func (p *Publisher[T]) connect() {
	if !p.state.CompareAndSwap(stateDisconnected, stateConnected) {
		return
	}
	p.logger.Info("upstream connected", logger.Component("publisher"))
	go p.run()
}

func (p *Publisher[T]) run() {
	defer close(p.done)

	err := p.runSource()
	switch {
	case err == nil, errors.Is(err, context.Canceled) && p.ctx.Err() != nil:
		p.logger.Info("upstream completed", logger.Component("publisher"))
		p.relay.Complete()
	default:
		p.logger.Error("upstream failed", logger.Component("publisher"), logger.Error(err))
		p.relay.Fail(err)
	}
	p.cancel()
	// after the terminal event: a Close that sees stateClosed does not wait
	p.state.Store(stateClosed)
}

func (p *Publisher[T]) runSource() (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("source panicked: %v", r)
		}
	}()
	return p.source.Run(p.ctx, p.relay.Push)
}
