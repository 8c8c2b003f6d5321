package broadcast_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/livefeed/pkg/broadcast"
)

type recorder[T any] struct {
	next      chan T
	errs      chan error
	completed chan struct{}
	calls     atomic.Int32
}

func newRecorder[T any]() *recorder[T] {
	return &recorder[T]{
		next:      make(chan T, 100),
		errs:      make(chan error, 10),
		completed: make(chan struct{}, 10),
	}
}

func (r *recorder[T]) observer() broadcast.Observer[T] {
	return broadcast.Observer[T]{
		OnNext: func(v T) {
			r.calls.Add(1)
			r.next <- v
		},
		OnError: func(err error) {
			r.calls.Add(1)
			r.errs <- err
		},
		OnComplete: func() {
			r.calls.Add(1)
			r.completed <- struct{}{}
		},
	}
}

func (r *recorder[T]) expectNext(t *testing.T, want T) {
	t.Helper()
	select {
	case got := <-r.next:
		assert.Equal(t, want, got)
	case <-time.After(time.Second):
		t.Fatalf("timeout waiting for %v", want)
	}
}

func (r *recorder[T]) expectNothing(t *testing.T) {
	t.Helper()
	select {
	case got := <-r.next:
		t.Fatalf("unexpected value: %v", got)
	case err := <-r.errs:
		t.Fatalf("unexpected error: %v", err)
	case <-r.completed:
		t.Fatal("unexpected completion")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestSubscription_EndToEnd(t *testing.T) {
	t.Parallel()

	relay := broadcast.NewRelay[string]()
	ctx := context.Background()

	a := newRecorder[string]()
	subA := relay.Subscribe(ctx, a.observer())

	relay.Push("x1")
	a.expectNext(t, "x1")

	b := newRecorder[string]()
	subB := relay.Subscribe(ctx, b.observer())
	defer subB.Dispose()

	relay.Push("x2")
	a.expectNext(t, "x2")
	b.expectNext(t, "x2")
	a.expectNothing(t)

	subA.Dispose()
	relay.Push("x3")
	b.expectNext(t, "x3")
	a.expectNothing(t)
}

func TestSubscription_Dispose(t *testing.T) {
	t.Parallel()

	t.Run("dispose is idempotent", func(t *testing.T) {
		t.Parallel()

		relay := broadcast.NewRelay[int]()
		rec := newRecorder[int]()
		sub := relay.Subscribe(context.Background(), rec.observer())

		assert.NotPanics(t, func() {
			sub.Dispose()
			sub.Dispose()
		})
		assert.True(t, sub.Disposed())
		assert.Equal(t, 0, relay.Len())

		select {
		case <-sub.Done():
		case <-time.After(time.Second):
			t.Fatal("delivery goroutine did not exit")
		}
		rec.expectNothing(t)
	})

	t.Run("no delivery after dispose", func(t *testing.T) {
		t.Parallel()

		relay := broadcast.NewRelay[int]()
		rec := newRecorder[int]()
		sub := relay.Subscribe(context.Background(), rec.observer())

		relay.Push(1)
		rec.expectNext(t, 1)

		sub.Dispose()
		for n := 2; n < 100; n++ {
			relay.Push(n)
		}
		time.Sleep(50 * time.Millisecond)

		assert.Equal(t, int32(1), rec.calls.Load())
	})

	t.Run("dispose from callback does not deadlock", func(t *testing.T) {
		t.Parallel()

		relay := broadcast.NewRelay[int]()
		var sub *broadcast.Subscription
		got := make(chan int, 10)
		ready := make(chan struct{})

		sub = relay.Subscribe(context.Background(), broadcast.Observer[int]{
			OnNext: func(v int) {
				<-ready
				got <- v
				sub.Dispose()
			},
		})
		close(ready)

		relay.Push(1)
		select {
		case <-sub.Done():
		case <-time.After(time.Second):
			t.Fatal("subscription did not finish")
		}
		assert.Len(t, got, 1)
	})

	t.Run("dispose never reports an error", func(t *testing.T) {
		t.Parallel()

		relay := broadcast.NewRelay[int]()
		rec := newRecorder[int]()
		sub := relay.Subscribe(context.Background(), rec.observer())

		sub.Dispose()
		relay.Fail(errors.New("after dispose"))
		rec.expectNothing(t)
	})

	t.Run("context cancellation behaves like dispose", func(t *testing.T) {
		t.Parallel()

		relay := broadcast.NewRelay[int]()
		rec := newRecorder[int]()
		ctx, cancel := context.WithCancel(context.Background())
		sub := relay.Subscribe(ctx, rec.observer())

		cancel()
		select {
		case <-sub.Done():
		case <-time.After(time.Second):
			t.Fatal("subscription did not finish")
		}
		assert.Equal(t, 0, relay.Len())
		rec.expectNothing(t)
	})
}

func TestSubscription_Terminal(t *testing.T) {
	t.Parallel()

	t.Run("completion fires once", func(t *testing.T) {
		t.Parallel()

		relay := broadcast.NewRelay[int]()
		rec := newRecorder[int]()
		sub := relay.Subscribe(context.Background(), rec.observer())

		relay.Push(7)
		relay.Complete()

		rec.expectNext(t, 7)
		select {
		case <-rec.completed:
		case <-time.After(time.Second):
			t.Fatal("no completion")
		}
		<-sub.Done()
		assert.Len(t, rec.completed, 0)
		assert.Len(t, rec.errs, 0)
	})

	t.Run("upstream error fires once", func(t *testing.T) {
		t.Parallel()

		relay := broadcast.NewRelay[int]()
		rec := newRecorder[int]()
		sub := relay.Subscribe(context.Background(), rec.observer())

		relay.Fail(errors.New("disk on fire"))

		select {
		case err := <-rec.errs:
			assert.True(t, broadcast.IsUpstreamError(err))
		case <-time.After(time.Second):
			t.Fatal("no error")
		}
		<-sub.Done()
		assert.Len(t, rec.errs, 0)
		assert.Len(t, rec.completed, 0)
	})

	t.Run("late subscriber gets completion immediately", func(t *testing.T) {
		t.Parallel()

		relay := broadcast.NewRelay[int]()
		relay.Complete()

		rec := newRecorder[int]()
		relay.Subscribe(context.Background(), rec.observer())

		select {
		case <-rec.completed:
		case <-time.After(time.Second):
			t.Fatal("no completion")
		}
	})

	t.Run("nil callbacks are skipped", func(t *testing.T) {
		t.Parallel()

		relay := broadcast.NewRelay[int]()
		sub := relay.Subscribe(context.Background(), broadcast.Observer[int]{})

		relay.Push(1)
		relay.Complete()

		select {
		case <-sub.Done():
		case <-time.After(time.Second):
			t.Fatal("subscription did not finish")
		}
	})
}

func TestNewSubscription_CustomReceive(t *testing.T) {
	t.Parallel()

	values := []string{"a", "b"}
	var i int
	receive := func(ctx context.Context) (string, error) {
		if i == len(values) {
			return "", broadcast.ErrCompleted
		}
		i++
		return values[i-1], nil
	}

	var released atomic.Int32
	rec := newRecorder[string]()
	sub := broadcast.NewSubscription(context.Background(), receive, rec.observer(), func() { released.Add(1) })

	rec.expectNext(t, "a")
	rec.expectNext(t, "b")
	<-sub.Done()
	assert.Len(t, rec.completed, 1)

	sub.Dispose()
	require.Equal(t, int32(1), released.Load())
}
