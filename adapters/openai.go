package adapters

import (
	"context"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/vinayprograms/serviceagents/errors"
	"github.com/vinayprograms/serviceagents/httpclient"
	"github.com/vinayprograms/serviceagents/settings"
)

// OpenAI is an agent for the OpenAI API and compatible endpoints.
type OpenAI struct {
	client *httpclient.Client
	sdk    *openai.Client
}

// NewOpenAI creates an OpenAI agent. The base URL must include the API
// version path, e.g. https://api.openai.com/v1.
func NewOpenAI(c *httpclient.Client) (*OpenAI, error) {
	if c == nil || c.BaseURL == nil {
		return nil, errors.InvalidArgument("client")
	}

	opts := []option.RequestOption{
		option.WithBaseURL(c.BaseURL.String()),
		option.WithHTTPClient(c.HTTP),
	}
	if s := c.Settings(); s != nil {
		switch {
		case s.AuthScheme == settings.AuthBearer && s.BearerToken != "":
			opts = append(opts, option.WithAPIKey(s.BearerToken))
		case s.APIKey != "":
			opts = append(opts, option.WithAPIKey(s.APIKey))
		}
	}

	sdk := openai.NewClient(opts...)
	return &OpenAI{client: c, sdk: &sdk}, nil
}

// Models lists the ids of the models served by the endpoint.
func (o *OpenAI) Models(ctx context.Context) ([]string, error) {
	page, err := o.sdk.Models.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "cannot list models", errors.WithService(o.client.Name))
	}
	ids := make([]string, 0, len(page.Data))
	for _, m := range page.Data {
		ids = append(ids, m.ID)
	}
	return ids, nil
}

// SDK returns the underlying SDK client.
func (o *OpenAI) SDK() *openai.Client {
	return o.sdk
}
