package objects

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/livefeed/pkg/logger"
)

// RedisSource relays items published on a Redis channel. Payloads are either
// JSON objects ({"id":"..."}) or bare tokens; anything else is skipped.
// It implements broadcast.Source[Item].
type RedisSource struct {
	client  redis.UniversalClient
	channel string
	logger  *slog.Logger
}

// NewRedisSource creates a source relaying channel on client. The client is
// owned by the caller and is not closed by Run.
func NewRedisSource(client redis.UniversalClient, channel string, log *slog.Logger) *RedisSource {
	if log == nil {
		log = logger.NewNope()
	}
	return &RedisSource{
		client:  client,
		channel: channel,
		logger:  log.With(logger.Component("redis_source"), slog.String("channel", channel)),
	}
}

// Run subscribes to the channel and emits every well-formed item until ctx is
// cancelled. It fails if the subscription cannot be confirmed or the message
// channel closes underneath it.
func (s *RedisSource) Run(ctx context.Context, emit func(Item)) error {
	sub := s.client.Subscribe(ctx, s.channel)
	defer sub.Close()

	if _, err := sub.Receive(ctx); err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return errors.Join(ErrSourceUnavailable, err)
	}
	s.logger.InfoContext(ctx, "Subscribed")

	messages := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-messages:
			if !ok {
				return ErrSourceClosed
			}
			item, err := ParseItem(msg.Payload)
			if err != nil {
				s.logger.WarnContext(ctx, "Skipping malformed item", logger.Error(err))
				continue
			}
			s.logger.InfoContext(ctx, "Added", logger.ItemID(item.ID))
			emit(item)
		}
	}
}

// Publish sends item to the channel the source listens on.
func (s *RedisSource) Publish(ctx context.Context, item Item) error {
	payload, err := json.Marshal(item)
	if err != nil {
		return err
	}
	return s.client.Publish(ctx, s.channel, payload).Err()
}
