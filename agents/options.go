package agents

import (
	"net/http"

	"github.com/samber/do/v2"

	"github.com/vinayprograms/serviceagents/credentials"
	"github.com/vinayprograms/serviceagents/httpclient"
	"github.com/vinayprograms/serviceagents/logging"
	"github.com/vinayprograms/serviceagents/registry"
)

// ClientCreatedFunc is called after a client has been initialized and
// before it is handed to its agent. A non-nil error fails the resolution.
type ClientCreatedFunc func(i do.Injector, c *httpclient.Client) error

type options struct {
	clientCreated ClientCreatedFunc
	headers       httpclient.HeaderInitializer
	transport     http.RoundTripper
	logger        *logging.Logger
	lifetime      registry.Lifetime
	credentials   credentials.Store
}

// Option configures a registration.
type Option func(*options)

// WithClientCreated sets a hook run on every constructed client.
func WithClientCreated(fn ClientCreatedFunc) Option {
	return func(o *options) {
		o.clientCreated = fn
	}
}

// WithHeaderInitializer replaces the default header initializer.
func WithHeaderInitializer(h httpclient.HeaderInitializer) Option {
	return func(o *options) {
		o.headers = h
	}
}

// WithTransport sets the base transport of every client.
func WithTransport(rt http.RoundTripper) Option {
	return func(o *options) {
		o.transport = rt
	}
}

// WithLogger sets the registration logger.
func WithLogger(l *logging.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithLifetime sets the lifetime of clients and agents.
func WithLifetime(l registry.Lifetime) Option {
	return func(o *options) {
		o.lifetime = l
	}
}

// WithCredentials fills secrets missing from the settings from store,
// before validation.
func WithCredentials(store credentials.Store) Option {
	return func(o *options) {
		o.credentials = store
	}
}

func buildOptions(opts []Option) *options {
	o := &options{lifetime: registry.Transient}
	for _, opt := range opts {
		if opt != nil {
			opt(o)
		}
	}
	if o.headers == nil {
		o.headers = httpclient.NewHeaderInitializer()
	}
	if o.logger == nil {
		o.logger = logging.Nop()
	}
	o.logger = o.logger.WithComponent("agents")
	return o
}
