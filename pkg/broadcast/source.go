package broadcast

import "context"

// Source produces values at its own cadence by calling emit until ctx is
// cancelled or production ends. Returning nil or a context error completes the
// stream; any other error fails it.
type Source[T any] interface {
	Run(ctx context.Context, emit func(T)) error
}

// SourceFunc adapts a function to the Source interface.
type SourceFunc[T any] func(ctx context.Context, emit func(T)) error

// Run calls f(ctx, emit).
func (f SourceFunc[T]) Run(ctx context.Context, emit func(T)) error {
	return f(ctx, emit)
}
