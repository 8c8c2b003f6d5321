package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dmitrymomot/livefeed/pkg/broadcast"
	"github.com/dmitrymomot/livefeed/pkg/config"
	"github.com/dmitrymomot/livefeed/pkg/logger"
	"github.com/dmitrymomot/livefeed/pkg/objects"
	"github.com/dmitrymomot/livefeed/pkg/requestid"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var (
		logCfg    logger.Config
		clientCfg objects.ClientConfig
	)
	config.MustLoad(&logCfg)
	config.MustLoad(&clientCfg)

	log := logger.NewFromConfig(logCfg, logger.WithContextExtractors(requestid.LoggerExtractor()))

	ctx = requestid.WithContext(ctx, requestid.New())
	client := objects.NewClientFromConfig(clientCfg, objects.WithClientLogger(log))

	stream := client.Subscribe(ctx, broadcast.Observer[objects.Item]{
		OnNext: func(it objects.Item) {
			log.InfoContext(ctx, "Next", logger.ItemID(it.ID))
		},
		OnError: func(err error) {
			log.ErrorContext(ctx, "Error", logger.Error(err))
		},
		OnComplete: func() {
			log.InfoContext(ctx, "Completed")
		},
	})

	select {
	case <-time.After(clientCfg.Window):
	case <-stream.Done():
	case <-ctx.Done():
	}

	stream.Dispose()
	log.InfoContext(ctx, "Disposed")
}
