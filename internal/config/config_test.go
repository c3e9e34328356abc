package config

import (
	"os"
	"testing"
)

// unsetEnv clears keys for the duration of the test.
func unsetEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, k := range keys {
		t.Setenv(k, "")
		_ = os.Unsetenv(k)
	}
}

func TestConfigLoad_EmbedDefaults(t *testing.T) {
	unsetEnv(t, "MATCH_BACKEND_EMBED_PROVIDER", "MATCH_BACKEND_EMBED_MODEL",
		"MATCH_BACKEND_EMBED_MAX_ATTEMPTS", "MATCH_BACKEND_MATCH_TOP_K")

	cfg, err := New()
	if err != nil {
		t.Fatalf("config load: %v", err)
	}
	if cfg.EmbedProvider != "ollama" || cfg.EmbedModel != "nomic-embed-text" {
		t.Fatalf("unexpected default embed config: %+v", cfg)
	}
	if cfg.EmbedMaxAttempts != 1 || cfg.MatchTopK != 3 {
		t.Fatalf("unexpected defaults: attempts=%d topK=%d", cfg.EmbedMaxAttempts, cfg.MatchTopK)
	}
}

func TestConfigLoad_EnvOverride(t *testing.T) {
	t.Setenv("MATCH_BACKEND_EMBED_MODEL", "test-model")
	t.Setenv("MATCH_BACKEND_MATCH_TOP_K", "5")
	t.Setenv("MATCH_BACKEND_EMBED_PROVIDER", "OpenAI")

	cfg, err := New()
	if err != nil {
		t.Fatalf("config load: %v", err)
	}
	if cfg.EmbedModel != "test-model" {
		t.Fatalf("embed model env override failed, got %s", cfg.EmbedModel)
	}
	if cfg.MatchTopK != 5 {
		t.Fatalf("top k override failed, got %d", cfg.MatchTopK)
	}
	if cfg.EmbedProvider != "openai" {
		t.Fatalf("provider should be lower-cased, got %s", cfg.EmbedProvider)
	}
}

func TestConfigLoad_BootstrapTimeoutDefault(t *testing.T) {
	unsetEnv(t, "MATCH_BACKEND_BOOTSTRAP_TIMEOUT_SECONDS")

	cfg, err := New()
	if err != nil {
		t.Fatalf("config load: %v", err)
	}
	if cfg.BootstrapTimeoutSeconds != 5 {
		t.Fatalf("unexpected default bootstrap timeout: %d", cfg.BootstrapTimeoutSeconds)
	}
}

func TestConfigLoad_RejectsUnknownProvider(t *testing.T) {
	t.Setenv("MATCH_BACKEND_EMBED_PROVIDER", "carrier-pigeon")
	if _, err := New(); err == nil {
		t.Fatalf("expected error for unknown provider")
	}
}

func TestConfigLoad_RejectsNonPositiveTopK(t *testing.T) {
	t.Setenv("MATCH_BACKEND_MATCH_TOP_K", "0")
	if _, err := New(); err == nil {
		t.Fatalf("expected error for top k 0")
	}
}
