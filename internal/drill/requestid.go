package drill

import (
	"context"

	"github.com/oklog/ulid/v2"
)

// ctxKey is the private type for context values set by this package.
type ctxKey int

// requestIDKey carries the fetch ticket ULID through the fetch call.
const requestIDKey ctxKey = iota

// newRequestID returns a fresh ULID string for fetch correlation.
func newRequestID() string {
	return ulid.Make().String()
}

// withRequestID attaches a fetch ticket ID to the context passed to the
// FetchFunc.
func withRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestIDFromContext returns the fetch ticket ID attached by the engine,
// or "" when the context did not originate from Engine.Fetch. Transport
// layers use it to correlate HTTP logs with navigation events.
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}
