// Package redis connects to the Redis server used as an alternative item
// source for the feed.
//
// Connect retries the initial ping according to Config, which is usually
// populated from the environment:
//
//	cfg := config.MustLoad[redis.Config]()
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	defer client.Close()
//
// Healthcheck wraps a client into a readiness check for httpserver.HealthCheckHandler.
//
// Errors returned by Connect are joined with ErrFailedToParseRedisConnString
// or ErrRedisNotReady, so callers can test them with errors.Is.
package redis
