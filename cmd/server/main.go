package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrymomot/livefeed/pkg/broadcast"
	"github.com/dmitrymomot/livefeed/pkg/config"
	"github.com/dmitrymomot/livefeed/pkg/httpserver"
	"github.com/dmitrymomot/livefeed/pkg/logger"
	"github.com/dmitrymomot/livefeed/pkg/objects"
	"github.com/dmitrymomot/livefeed/pkg/redis"
	"github.com/dmitrymomot/livefeed/pkg/requestid"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var (
		logCfg    logger.Config
		httpCfg   httpserver.Config
		sourceCfg objects.SourceConfig
		streamCfg objects.StreamConfig
	)
	config.MustLoad(&logCfg)
	config.MustLoad(&httpCfg)
	config.MustLoad(&sourceCfg)
	config.MustLoad(&streamCfg)

	log := logger.NewFromConfig(logCfg, logger.WithContextExtractors(requestid.LoggerExtractor()))
	logger.SetAsDefault(log)

	source, checks, err := newSource(ctx, sourceCfg, log)
	if err != nil {
		log.Error("Failed to set up item source", logger.Component("source"), logger.Error(err))
		os.Exit(1)
	}

	pub := broadcast.NewPublisher(source, broadcast.WithLogger(log.With(logger.Component("publisher"))))

	r := chi.NewRouter()
	r.Use(middleware.RealIP, middleware.Recoverer, requestid.Middleware)
	r.Get("/healthz", httpserver.HealthCheckHandler(log))
	r.Get("/ready", httpserver.HealthCheckHandler(log, checks...))
	r.Mount("/", objects.Router(pub, log, objects.WithStreamConfig(streamCfg)))

	srv := httpserver.NewFromConfig(httpCfg,
		httpserver.WithLogger(log),
		// Completing the relay ends every open stream with a complete event.
		httpserver.WithShutdownFunc(func() { _ = pub.Close() }),
	)

	if err := srv.Run(ctx, r); err != nil {
		log.Error("Server stopped", logger.Error(err))
		os.Exit(1)
	}
}

// newSource builds the configured item source and the readiness checks of its
// dependencies.
func newSource(ctx context.Context, cfg objects.SourceConfig, log *slog.Logger) (broadcast.Source[objects.Item], []func(context.Context) error, error) {
	switch cfg.Kind {
	case objects.SourceTicker:
		var emitCfg objects.EmitterConfig
		if err := config.Load(&emitCfg); err != nil {
			return nil, nil, err
		}
		return objects.NewEmitter(emitCfg, log), nil, nil

	case objects.SourceRedis:
		var redisCfg redis.Config
		if err := config.Load(&redisCfg); err != nil {
			return nil, nil, err
		}
		client, err := redis.Connect(ctx, redisCfg)
		if err != nil {
			return nil, nil, err
		}
		checks := []func(context.Context) error{redis.Healthcheck(client)}
		return objects.NewRedisSource(client, cfg.RedisChannel, log), checks, nil

	default:
		return nil, nil, objects.ErrUnknownSource
	}
}
