package requestid

import (
	"context"
	"log/slog"

	"github.com/dmitrymomot/livefeed/pkg/logger"
)

// LoggerExtractor adds the request ID from the record's context to log output.
func LoggerExtractor() logger.ContextExtractor {
	return func(ctx context.Context) (slog.Attr, bool) {
		if id := FromContext(ctx); id != "" {
			return logger.RequestID(id), true
		}
		return slog.Attr{}, false
	}
}
