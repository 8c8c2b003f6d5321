package objects_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/neilotoole/slogt"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/livefeed/pkg/broadcast"
	"github.com/dmitrymomot/livefeed/pkg/objects"
	"github.com/dmitrymomot/livefeed/pkg/redis"
)

func TestRedisSource(t *testing.T) {
	url := os.Getenv("REDIS_URL")
	if url == "" {
		t.Skip("REDIS_URL not set")
	}

	client, err := redis.Connect(context.Background(), redis.Config{
		ConnectionURL:  url,
		RetryAttempts:  1,
		ConnectTimeout: 5 * time.Second,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	channel := "objects-test-" + objects.NewItem().ID
	src := objects.NewRedisSource(client, channel, slogt.New(t))
	pub := broadcast.NewPublisher[objects.Item](src, broadcast.WithLogger(slogt.New(t)))
	t.Cleanup(func() { _ = pub.Close() })

	sink := pub.Attach()

	// Wait for the subscription to be registered server side.
	require.Eventually(t, func() bool {
		n, err := client.PubSubNumSub(context.Background(), channel).Result()
		return err == nil && n[channel] > 0
	}, 5*time.Second, 20*time.Millisecond)

	want := objects.NewItem()
	require.NoError(t, client.Publish(context.Background(), channel, `{"id":`).Err())
	require.NoError(t, src.Publish(context.Background(), want))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	got, err := sink.Receive(ctx)
	require.NoError(t, err)
	assert.True(t, want.Equal(got))
}

func TestRedisSource_Unavailable(t *testing.T) {
	t.Parallel()

	client := goredis.NewClient(&goredis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { _ = client.Close() })

	src := objects.NewRedisSource(client, "objects", slogt.New(t))
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err := src.Run(ctx, func(objects.Item) {})
	assert.ErrorIs(t, err, objects.ErrSourceUnavailable)
}
