package adapters

import (
	"context"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"

	"github.com/vinayprograms/serviceagents/errors"
	"github.com/vinayprograms/serviceagents/httpclient"
)

// Gemini is an agent for the Google Gemini API.
//
// The SDK sends through the registered client, so the key must reach it as
// a header: use authScheme ApiKey with apiKeyHeaderName x-goog-api-key.
type Gemini struct {
	client *httpclient.Client
	sdk    *genai.Client
}

// NewGemini creates a Gemini agent.
func NewGemini(c *httpclient.Client) (*Gemini, error) {
	if c == nil || c.BaseURL == nil {
		return nil, errors.InvalidArgument("client")
	}

	opts := []option.ClientOption{
		option.WithEndpoint(c.BaseURL.String()),
		option.WithHTTPClient(c.HTTP),
	}
	if s := c.Settings(); s != nil && s.APIKey != "" {
		opts = append(opts, option.WithAPIKey(s.APIKey))
	}

	sdk, err := genai.NewClient(context.Background(), opts...)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrCodeConfiguration, "cannot create gemini client",
			errors.WithService(c.Name))
	}
	return &Gemini{client: c, sdk: sdk}, nil
}

// Models lists the ids of the models available to the key.
func (g *Gemini) Models(ctx context.Context) ([]string, error) {
	var ids []string
	it := g.sdk.ListModels(ctx)
	for {
		m, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "cannot list models", errors.WithService(g.client.Name))
		}
		ids = append(ids, strings.TrimPrefix(m.Name, "models/"))
	}
	return ids, nil
}

// Close releases the SDK client.
func (g *Gemini) Close() error {
	return g.sdk.Close()
}
