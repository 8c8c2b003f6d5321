// Package logger builds *slog.Logger instances for the service.
//
// New applies functional options (format, level, static attributes, context
// extractors) and wraps the handler with LogHandlerDecorator, which pulls
// request-scoped values such as the request id out of context.Context on
// every record. NewFromConfig does the same from a Config loaded from the
// environment.
//
// Attribute helpers (Error, ItemID, SubscriberID, Subscribers, Component...)
// keep key names consistent across packages.
//
// # Usage
//
//	log := logger.New(
//		logger.WithEnvironment("production", "livefeed"),
//		logger.WithContextExtractors(requestid.LoggerExtractor()),
//	)
//	log.InfoContext(ctx, "Added", logger.ItemID(item.ID))
//
// Components that accept an optional logger fall back to NewNope.
package logger
