package factory

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/peerlink/matchmaker/internal/config"
	emb "github.com/peerlink/matchmaker/internal/embeddings"
	"github.com/peerlink/matchmaker/internal/embeddings/ollama"
	"github.com/peerlink/matchmaker/internal/embeddings/openai"
)

// Embedder pairs the driver used for health probes with the decorated
// provider used for requests.
type Embedder struct {
	Base     emb.Provider
	Provider emb.Provider
}

// NewEmbeddingProvider creates an embedding provider based on config and
// decorates it with metrics, retries and a circuit breaker.
// Launches optional async warmup; returns provider immediately for fast startup.
func NewEmbeddingProvider(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*Embedder, error) {
	timeout := time.Duration(cfg.EmbedTimeoutSeconds) * time.Second

	var base emb.Provider
	var warmup func(context.Context) error
	switch cfg.EmbedProvider {
	case "", "ollama":
		p := ollama.New(cfg.OllamaURL, cfg.EmbedModel, timeout)
		base, warmup = p, p.EnsureModel
	case "openai":
		if cfg.OpenAIAPIKey == "" {
			return nil, fmt.Errorf("%s_OPENAI_API_KEY is required when EMBED_PROVIDER=openai", config.EnvPrefix)
		}
		base = openai.New(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.EmbedModel, timeout)
		warmup = func(ctx context.Context) error {
			_, err := base.Embed(ctx, "factory-warmup-check")
			return err
		}
	default:
		return nil, fmt.Errorf("unknown EMBED_PROVIDER: %s", cfg.EmbedProvider)
	}

	provider := emb.WithMetrics(base, cfg.EmbedProvider)
	provider = emb.WithRetry(provider, cfg.EmbedMaxAttempts, log)
	provider = emb.WithBreaker(provider, cfg.EmbedProvider, cfg.EmbedBreakerFailures,
		time.Duration(cfg.EmbedBreakerOpenSeconds)*time.Second, log)

	// Optional async warmup with configurable timeout; don't block startup
	go func() {
		warmupTimeout := time.Duration(cfg.BootstrapTimeoutSeconds) * time.Second
		warmupCtx, cancel := context.WithTimeout(ctx, warmupTimeout)
		defer cancel()

		if err := warmup(warmupCtx); err != nil {
			log.Warn().Err(err).
				Str("provider", cfg.EmbedProvider).Str("model", cfg.EmbedModel).
				Msg("embedding provider warmup failed")
		} else {
			log.Debug().Str("provider", cfg.EmbedProvider).Str("model", cfg.EmbedModel).
				Msg("embedding provider warmup completed")
		}
	}()

	return &Embedder{Base: base, Provider: provider}, nil
}
