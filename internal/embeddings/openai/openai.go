// Package openai implements embeddings.Provider for any OpenAI-compatible
// embeddings endpoint.
package openai

import (
	"context"
	"errors"
	"net/http"
	"time"

	goopenai "github.com/sashabaranov/go-openai"

	"github.com/peerlink/matchmaker/internal/embeddings"
)

const providerName = "openai"

type Provider struct {
	client *goopenai.Client
	model  string
}

// New builds a provider. baseURL may point at any OpenAI-compatible server;
// empty keeps the public API.
func New(apiKey, baseURL, model string, timeout time.Duration) *Provider {
	cfg := goopenai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	cfg.HTTPClient = &http.Client{Timeout: timeout}
	return &Provider{client: goopenai.NewClientWithConfig(cfg), model: model}
}

func (p *Provider) Embed(ctx context.Context, text string) ([]float32, error) {
	if err := embeddings.CheckInput(providerName, text); err != nil {
		return nil, err
	}

	resp, err := p.client.CreateEmbeddings(ctx, goopenai.EmbeddingRequest{
		Input: []string{text},
		Model: goopenai.EmbeddingModel(p.model),
	})
	if err != nil {
		var apiErr *goopenai.APIError
		if errors.As(err, &apiErr) {
			return nil, embeddings.StatusError(providerName, apiErr.HTTPStatusCode, apiErr.Message)
		}
		var reqErr *goopenai.RequestError
		if errors.As(err, &reqErr) {
			return nil, &embeddings.ProviderError{Provider: providerName, StatusCode: reqErr.HTTPStatusCode, Err: reqErr}
		}
		return nil, embeddings.NewError(providerName, err)
	}
	if len(resp.Data) == 0 || len(resp.Data[0].Embedding) == 0 {
		return nil, embeddings.NewError(providerName, embeddings.ErrEmptyVector)
	}
	return resp.Data[0].Embedding, nil
}
