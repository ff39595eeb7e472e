package context

import "context"

// Trace carries the correlation IDs of one request. The trace
// middleware fills it from the incoming headers, generating IDs for
// requests that arrive without them.
type Trace struct {
	TraceID   string
	RequestID string
}

type traceKey struct{}

// WithTrace stores the request trace on the context.
func WithTrace(ctx context.Context, t *Trace) context.Context {
	return context.WithValue(ctx, traceKey{}, t)
}

// GetTrace returns the request trace, or nil outside a request.
func GetTrace(ctx context.Context) *Trace {
	if t, ok := ctx.Value(traceKey{}).(*Trace); ok {
		return t
	}
	return nil
}
