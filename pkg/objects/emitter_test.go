package objects_test

import (
	"context"
	"testing"
	"time"

	"github.com/neilotoole/slogt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/livefeed/pkg/objects"
)

func TestEmitter_Run(t *testing.T) {
	t.Parallel()

	e := objects.NewEmitter(objects.EmitterConfig{Interval: 5 * time.Millisecond}, slogt.New(t))
	ctx, cancel := context.WithCancel(context.Background())

	items := make(chan objects.Item, 16)
	done := make(chan error, 1)
	go func() {
		done <- e.Run(ctx, func(it objects.Item) {
			select {
			case items <- it:
			default:
			}
		})
	}()

	seen := map[string]bool{}
	for len(seen) < 3 {
		select {
		case it := <-items:
			assert.NotEmpty(t, it.ID)
			seen[it.ID] = true
		case <-time.After(time.Second):
			t.Fatal("emitter produced no items")
		}
	}

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("emitter did not stop")
	}
}

func TestNewEmitter_DefaultInterval(t *testing.T) {
	t.Parallel()

	e := objects.NewEmitter(objects.EmitterConfig{}, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.NoError(t, e.Run(ctx, func(objects.Item) { t.Error("unexpected item") }))
}
