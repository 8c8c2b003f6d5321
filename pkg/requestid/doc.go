// Package requestid attaches a correlation ID to every request that reaches
// the feed server and carries it through logs.
//
// Middleware reuses a valid inbound X-Request-ID header or generates a UUID,
// stores it in the request context and echoes it back in the response.
// Propagate copies the ID from a context onto an outbound request, so a
// subscriber's logs and the server's logs share the same key.
//
//	r := chi.NewRouter()
//	r.Use(requestid.Middleware)
//
//	log := logger.New(logger.WithContextExtractors(requestid.LoggerExtractor()))
package requestid
