// Package ollama implements embeddings.Provider against a local Ollama server.
package ollama

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/peerlink/matchmaker/internal/embeddings"
)

const (
	providerName   = "ollama"
	defaultBaseURL = "http://localhost:11434"
)

// ErrModelNotFound is returned by HealthPing when the server does not carry the model.
var ErrModelNotFound = errors.New("ollama model not found")

type Provider struct {
	client *resty.Client
	model  string
}

// New returns a provider for model served at baseURL. An empty baseURL means
// the default local server; a missing scheme defaults to http.
func New(baseURL, model string, timeout time.Duration) *Provider {
	c := resty.New().
		SetBaseURL(normalizeBaseURL(baseURL)).
		SetHeader("Content-Type", "application/json").
		SetTimeout(timeout)
	return &Provider{client: c, model: model}
}

func normalizeBaseURL(base string) string {
	base = strings.TrimRight(strings.TrimSpace(base), "/")
	if base == "" {
		return defaultBaseURL
	}
	if !strings.HasPrefix(base, "http://") && !strings.HasPrefix(base, "https://") {
		base = "http://" + base
	}
	return base
}

type embedRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
}

type embedResponse struct {
	Embedding []float64 `json:"embedding"`
	Error     string    `json:"error"`
}

func (p *Provider) Embed(ctx context.Context, text string) ([]float32, error) {
	if err := embeddings.CheckInput(providerName, text); err != nil {
		return nil, err
	}

	resp, err := p.client.R().
		SetContext(ctx).
		SetBody(&embedRequest{Model: p.model, Prompt: text}).
		Post("/api/embeddings")
	if err != nil {
		return nil, embeddings.NewError(providerName, fmt.Errorf("request: %w", err))
	}

	var er embedResponse
	decodeErr := json.Unmarshal(resp.Body(), &er)
	if resp.StatusCode() != http.StatusOK {
		msg := er.Error
		if decodeErr != nil || msg == "" {
			msg = resp.String()
		}
		return nil, embeddings.StatusError(providerName, resp.StatusCode(), msg)
	}
	if decodeErr != nil {
		return nil, embeddings.NewError(providerName, fmt.Errorf("decode response: %w", decodeErr))
	}
	if er.Error != "" {
		return nil, embeddings.NewError(providerName, errors.New(er.Error))
	}
	if len(er.Embedding) == 0 {
		return nil, embeddings.NewError(providerName, embeddings.ErrEmptyVector)
	}

	vec := make([]float32, len(er.Embedding))
	for i, v := range er.Embedding {
		vec[i] = float32(v)
	}
	return vec, nil
}

// HealthPing implements health.HealthPinger. It checks /api/tags for the
// configured model.
func (p *Provider) HealthPing(ctx context.Context) error {
	resp, err := p.client.R().SetContext(ctx).Get("/api/tags")
	if err != nil {
		return err
	}
	if resp.StatusCode() != http.StatusOK {
		return fmt.Errorf("ollama status %d", resp.StatusCode())
	}
	var data struct {
		Models []struct {
			Name string `json:"name"`
		} `json:"models"`
	}
	if err := json.Unmarshal(resp.Body(), &data); err != nil {
		return fmt.Errorf("decode tags: %w", err)
	}
	want := baseModelName(p.model)
	for _, m := range data.Models {
		if baseModelName(m.Name) == want {
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrModelNotFound, want)
}

// EnsureModel pulls the model when the server does not have it yet.
func (p *Provider) EnsureModel(ctx context.Context) error {
	err := p.HealthPing(ctx)
	if err == nil || !errors.Is(err, ErrModelNotFound) {
		return err
	}
	resp, err := p.client.R().
		SetContext(ctx).
		SetBody(map[string]any{"name": p.model, "stream": false}).
		Post("/api/pull")
	if err != nil {
		return fmt.Errorf("pull %s: %w", p.model, err)
	}
	if resp.StatusCode() != http.StatusOK {
		return fmt.Errorf("pull %s: status %d: %s", p.model, resp.StatusCode(), resp.String())
	}
	return nil
}

// baseModelName drops the tag: "nomic-embed-text:latest" -> "nomic-embed-text".
func baseModelName(name string) string {
	if i := strings.IndexByte(name, ':'); i >= 0 {
		return name[:i]
	}
	return name
}
