package objects

import (
	"context"
	"log/slog"
	"time"

	"github.com/dmitrymomot/livefeed/pkg/logger"
)

const defaultEmitInterval = time.Second

// Emitter produces a new item on every tick until its context is cancelled.
// It implements broadcast.Source[Item].
type Emitter struct {
	interval time.Duration
	logger   *slog.Logger
}

// NewEmitter creates an emitter. A non-positive interval falls back to one second.
func NewEmitter(cfg EmitterConfig, log *slog.Logger) *Emitter {
	if cfg.Interval <= 0 {
		cfg.Interval = defaultEmitInterval
	}
	if log == nil {
		log = logger.NewNope()
	}
	return &Emitter{
		interval: cfg.Interval,
		logger:   log.With(logger.Component("emitter")),
	}
}

// Run emits a fresh item on every tick until ctx is done, then returns nil.
func (e *Emitter) Run(ctx context.Context, emit func(Item)) error {
	ticker := time.NewTicker(e.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			item := NewItem()
			e.logger.InfoContext(ctx, "Added", logger.ItemID(item.ID))
			emit(item)
		}
	}
}
