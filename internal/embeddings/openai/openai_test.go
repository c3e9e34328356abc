package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peerlink/matchmaker/internal/embeddings"
)

func newProvider(t *testing.T, h http.HandlerFunc) *Provider {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return New("test-key", srv.URL+"/v1", "text-embedding-3-small", 2*time.Second)
}

func TestEmbed_Success(t *testing.T) {
	p := newProvider(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/embeddings", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var body map[string]any
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "text-embedding-3-small", body["model"])
		assert.Equal(t, []any{"Ada | Go"}, body["input"])

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"object":"list","model":"text-embedding-3-small",
			"data":[{"object":"embedding","index":0,"embedding":[0.25,0.5,-1]}],
			"usage":{"prompt_tokens":3,"total_tokens":3}}`))
	})

	vec, err := p.Embed(context.Background(), "Ada | Go")
	require.NoError(t, err)
	assert.Equal(t, []float32{0.25, 0.5, -1}, vec)
}

func TestEmbed_EmptyInput(t *testing.T) {
	var calls atomic.Int32
	p := newProvider(t, func(http.ResponseWriter, *http.Request) { calls.Add(1) })

	_, err := p.Embed(context.Background(), "")
	assert.ErrorIs(t, err, embeddings.ErrEmptyInput)
	assert.Zero(t, calls.Load())
}

func TestEmbed_APIError(t *testing.T) {
	p := newProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"message":"invalid api key","type":"invalid_request_error"}}`))
	})

	_, err := p.Embed(context.Background(), "hello")
	require.Error(t, err)
	assert.ErrorIs(t, err, embeddings.ErrProvider)

	var pe *embeddings.ProviderError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, http.StatusUnauthorized, pe.StatusCode)
	assert.Contains(t, err.Error(), "invalid api key")
}

func TestEmbed_NoData(t *testing.T) {
	p := newProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"object":"list","data":[],"model":"m"}`))
	})

	vec, err := p.Embed(context.Background(), "hello")
	assert.Nil(t, vec)
	assert.ErrorIs(t, err, embeddings.ErrEmptyVector)
}
