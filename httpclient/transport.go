package httpclient

import (
	"context"
	"net/http"
	"slices"

	"github.com/google/uuid"
)

type correlationKey struct{}

// WithCorrelationID returns a context whose requests carry id in the
// correlation header instead of a generated one.
func WithCorrelationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, correlationKey{}, id)
}

// CorrelationID returns the correlation id stored on ctx, if any.
func CorrelationID(ctx context.Context) string {
	id, _ := ctx.Value(correlationKey{}).(string)
	return id
}

// headerTransport applies a client's default headers to outgoing requests.
type headerTransport struct {
	header            http.Header
	correlationHeader string
	base              http.RoundTripper
}

func (t *headerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	out := req.Clone(req.Context())
	for name, values := range t.header {
		if _, ok := out.Header[name]; !ok {
			out.Header[name] = slices.Clone(values)
		}
	}
	if t.correlationHeader != "" && out.Header.Get(t.correlationHeader) == "" {
		id := CorrelationID(req.Context())
		if id == "" {
			id = uuid.NewString()
		}
		out.Header.Set(t.correlationHeader, id)
	}
	return t.base.RoundTrip(out)
}
