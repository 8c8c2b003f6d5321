package objects

import "time"

// Source kinds accepted by SourceConfig.Kind.
const (
	SourceTicker = "ticker" // Emitter: a new item every EMIT_INTERVAL.
	SourceRedis  = "redis"  // RedisSource: items published on a Redis channel.
)

// EmitterConfig configures the ticker source.
type EmitterConfig struct {
	Interval time.Duration `env:"EMIT_INTERVAL" envDefault:"1s"`
}

// StreamConfig configures the GET /objects handler.
type StreamConfig struct {
	KeepAlive time.Duration `env:"STREAM_KEEPALIVE" envDefault:"15s"` // Interval of ping events on an idle stream.
}

// SourceConfig selects where items come from.
type SourceConfig struct {
	Kind         string `env:"OBJECTS_SOURCE" envDefault:"ticker"` // ticker or redis
	RedisChannel string `env:"OBJECTS_REDIS_CHANNEL" envDefault:"objects"`
}

// ClientConfig configures the subscriber process.
type ClientConfig struct {
	URL    string        `env:"OBJECTS_URL" envDefault:"http://localhost:8080"`
	Window time.Duration `env:"CLIENT_WINDOW" envDefault:"10s"` // How long the client stays subscribed.
}
