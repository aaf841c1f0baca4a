package adapters

import (
	"context"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/vinayprograms/serviceagents/errors"
	"github.com/vinayprograms/serviceagents/httpclient"
)

// Anthropic is an agent for the Anthropic API.
type Anthropic struct {
	client *httpclient.Client
	sdk    *anthropic.Client
}

// NewAnthropic creates an Anthropic agent. The API key comes from the
// service's apiKey setting when present.
func NewAnthropic(c *httpclient.Client) (*Anthropic, error) {
	if c == nil || c.BaseURL == nil {
		return nil, errors.InvalidArgument("client")
	}

	opts := []option.RequestOption{
		option.WithBaseURL(c.BaseURL.String()),
		option.WithHTTPClient(c.HTTP),
	}
	if s := c.Settings(); s != nil && s.APIKey != "" {
		opts = append(opts, option.WithAPIKey(s.APIKey))
	}

	sdk := anthropic.NewClient(opts...)
	return &Anthropic{client: c, sdk: &sdk}, nil
}

// Models lists the ids of the models available to the account.
func (a *Anthropic) Models(ctx context.Context) ([]string, error) {
	page, err := a.sdk.Models.List(ctx, anthropic.ModelListParams{})
	if err != nil {
		return nil, errors.Wrap(err, "cannot list models", errors.WithService(a.client.Name))
	}
	ids := make([]string, 0, len(page.Data))
	for _, m := range page.Data {
		ids = append(ids, m.ID)
	}
	return ids, nil
}

// SDK returns the underlying SDK client.
func (a *Anthropic) SDK() *anthropic.Client {
	return a.sdk
}
