package adapters

import (
	"context"

	"github.com/kong/go-kong/kong"

	"github.com/vinayprograms/serviceagents/errors"
	"github.com/vinayprograms/serviceagents/httpclient"
)

// Gateway is the capability exposed by API gateway agents.
type Gateway interface {
	Version(ctx context.Context) (string, error)
	LookupService(ctx context.Context, name string) (*kong.Service, bool, error)
}

// KongAdmin is an agent for the Kong admin API.
type KongAdmin struct {
	client *httpclient.Client
	kong   *kong.Client
}

var _ Gateway = (*KongAdmin)(nil)

// NewKongAdmin creates a Kong admin agent.
func NewKongAdmin(c *httpclient.Client) (*KongAdmin, error) {
	if c == nil || c.BaseURL == nil {
		return nil, errors.InvalidArgument("client")
	}
	kc, err := kong.NewClient(kong.String(c.BaseURL.String()), c.HTTP)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrCodeConfiguration, "cannot create kong client",
			errors.WithService(c.Name))
	}
	return &KongAdmin{client: c, kong: kc}, nil
}

// Version returns the version of the Kong node.
func (k *KongAdmin) Version(ctx context.Context) (string, error) {
	info, err := k.kong.Info.Get(ctx)
	if err != nil {
		return "", errors.Wrap(err, "cannot read gateway info", errors.WithService(k.client.Name))
	}
	return info.Version, nil
}

// LookupService returns the gateway service with the given name or id.
// The boolean is false when the gateway does not know the service.
func (k *KongAdmin) LookupService(ctx context.Context, name string) (*kong.Service, bool, error) {
	service, err := k.kong.Services.Get(ctx, &name)
	if kong.IsNotFoundErr(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, errors.Wrap(err, "cannot read gateway service",
			errors.WithService(k.client.Name), errors.WithMetadata("gateway_service", name))
	}
	return service, true, nil
}

// Kong returns the underlying SDK client.
func (k *KongAdmin) Kong() *kong.Client {
	return k.kong
}
