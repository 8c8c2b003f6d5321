package broadcast_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/livefeed/pkg/broadcast"
)

func receiveWithin[T any](s *broadcast.Sink[T], d time.Duration) (T, error) {
	ctx, cancel := context.WithTimeout(context.Background(), d)
	defer cancel()
	return s.Receive(ctx)
}

func TestRelay_Push(t *testing.T) {
	t.Parallel()

	t.Run("push without sinks is a noop", func(t *testing.T) {
		t.Parallel()

		r := broadcast.NewRelay[string]()
		r.Push("lost")

		sink := r.Attach()
		_, err := receiveWithin(sink, 20*time.Millisecond)
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	})

	t.Run("every sink receives all values in order", func(t *testing.T) {
		t.Parallel()

		r := broadcast.NewRelay[int]()
		const numSinks = 5
		sinks := make([]*broadcast.Sink[int], numSinks)
		for i := range numSinks {
			sinks[i] = r.Attach()
		}

		for n := range 100 {
			r.Push(n)
			for i, s := range sinks {
				v, err := receiveWithin(s, time.Second)
				require.NoError(t, err, "sink %d", i)
				assert.Equal(t, n, v, "sink %d", i)
			}
		}
	})

	t.Run("stalled sink keeps only the latest value", func(t *testing.T) {
		t.Parallel()

		r := broadcast.NewRelay[int]()
		sink := r.Attach()

		const k = 10
		for n := 1; n <= k; n++ {
			r.Push(n)
		}

		v, err := receiveWithin(sink, time.Second)
		require.NoError(t, err)
		assert.Equal(t, k, v)
		assert.Equal(t, uint64(k-1), sink.Dropped())

		_, err = receiveWithin(sink, 20*time.Millisecond)
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	})

	t.Run("stalled sink does not affect fast sink", func(t *testing.T) {
		t.Parallel()

		r := broadcast.NewRelay[int]()
		slow := r.Attach()
		fast := r.Attach()

		for n := 1; n <= 3; n++ {
			r.Push(n)
			v, err := receiveWithin(fast, time.Second)
			require.NoError(t, err)
			assert.Equal(t, n, v)
		}

		v, err := receiveWithin(slow, time.Second)
		require.NoError(t, err)
		assert.Equal(t, 3, v)
	})

	t.Run("late sink receives no history", func(t *testing.T) {
		t.Parallel()

		r := broadcast.NewRelay[string]()
		early := r.Attach()

		for _, v := range []string{"a", "b", "c"} {
			r.Push(v)
			got, err := receiveWithin(early, time.Second)
			require.NoError(t, err)
			assert.Equal(t, v, got)
		}

		late := r.Attach()
		_, err := receiveWithin(late, 20*time.Millisecond)
		assert.ErrorIs(t, err, context.DeadlineExceeded)

		r.Push("d")
		got, err := receiveWithin(late, time.Second)
		require.NoError(t, err)
		assert.Equal(t, "d", got)
	})
}

func TestRelay_Detach(t *testing.T) {
	t.Parallel()

	t.Run("detached sink receives nothing", func(t *testing.T) {
		t.Parallel()

		r := broadcast.NewRelay[string]()
		sink := r.Attach()
		r.Push("pending")

		r.Detach(sink)
		r.Push("after")

		_, err := receiveWithin(sink, 20*time.Millisecond)
		assert.ErrorIs(t, err, broadcast.ErrDetached)
		assert.Equal(t, 0, r.Len())
	})

	t.Run("detach is idempotent", func(t *testing.T) {
		t.Parallel()

		r := broadcast.NewRelay[string]()
		sink := r.Attach()

		assert.NotPanics(t, func() {
			r.Detach(sink)
			r.Detach(sink)
			r.Detach(nil)
		})
		assert.Equal(t, 0, r.Len())
	})
}

func TestRelay_Terminal(t *testing.T) {
	t.Parallel()

	t.Run("complete delivers pending value first", func(t *testing.T) {
		t.Parallel()

		r := broadcast.NewRelay[string]()
		sink := r.Attach()

		r.Push("last")
		r.Complete()

		v, err := receiveWithin(sink, time.Second)
		require.NoError(t, err)
		assert.Equal(t, "last", v)

		_, err = receiveWithin(sink, time.Second)
		assert.ErrorIs(t, err, broadcast.ErrCompleted)

		// terminal event is sticky
		_, err = receiveWithin(sink, time.Second)
		assert.ErrorIs(t, err, broadcast.ErrCompleted)
	})

	t.Run("fail wraps upstream error", func(t *testing.T) {
		t.Parallel()

		r := broadcast.NewRelay[string]()
		sink := r.Attach()
		cause := errors.New("sensor offline")

		r.Fail(cause)

		_, err := receiveWithin(sink, time.Second)
		require.Error(t, err)
		assert.True(t, broadcast.IsUpstreamError(err))
		assert.ErrorIs(t, err, cause)
	})

	t.Run("only the first terminal call counts", func(t *testing.T) {
		t.Parallel()

		r := broadcast.NewRelay[string]()
		sink := r.Attach()

		r.Complete()
		r.Fail(errors.New("too late"))

		_, err := receiveWithin(sink, time.Second)
		assert.ErrorIs(t, err, broadcast.ErrCompleted)

		terminated, termErr := r.Terminated()
		assert.True(t, terminated)
		assert.NoError(t, termErr)
	})

	t.Run("push after termination is dropped", func(t *testing.T) {
		t.Parallel()

		r := broadcast.NewRelay[string]()
		sink := r.Attach()
		r.Complete()
		r.Push("ignored")

		_, err := receiveWithin(sink, time.Second)
		assert.ErrorIs(t, err, broadcast.ErrCompleted)
	})

	t.Run("attach after completion yields completion", func(t *testing.T) {
		t.Parallel()

		r := broadcast.NewRelay[string]()
		r.Complete()

		sink := r.Attach()
		_, err := receiveWithin(sink, time.Second)
		assert.ErrorIs(t, err, broadcast.ErrCompleted)
		assert.Equal(t, 0, r.Len())
	})

	t.Run("attach after failure yields the failure", func(t *testing.T) {
		t.Parallel()

		r := broadcast.NewRelay[string]()
		cause := errors.New("boom")
		r.Fail(cause)

		sink := r.Attach()
		_, err := receiveWithin(sink, time.Second)
		assert.ErrorIs(t, err, cause)
	})

	t.Run("nil failure still fails", func(t *testing.T) {
		t.Parallel()

		r := broadcast.NewRelay[string]()
		sink := r.Attach()
		r.Fail(nil)

		_, err := receiveWithin(sink, time.Second)
		assert.True(t, broadcast.IsUpstreamError(err))
	})
}

func TestRelay_Concurrent(t *testing.T) {
	t.Parallel()

	r := broadcast.NewRelay[int]()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		for n := 0; ctx.Err() == nil; n++ {
			r.Push(n)
		}
	}()

	for range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 50 {
				sink := r.Attach()
				last := -1
				for range 5 {
					v, err := receiveWithin(sink, time.Second)
					if err != nil {
						break
					}
					// LATEST may skip values but never reorders or repeats them
					assert.Greater(t, v, last)
					last = v
				}
				r.Detach(sink)
			}
		}()
	}

	time.Sleep(200 * time.Millisecond)
	cancel()
	wg.Wait()
	assert.Equal(t, 0, r.Len())
}
