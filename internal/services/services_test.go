package services

import (
	"context"
	"errors"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/peerlink/matchmaker/internal/core/profile"
	"github.com/peerlink/matchmaker/internal/embeddings"
	"github.com/peerlink/matchmaker/internal/embedstore"
	"github.com/peerlink/matchmaker/internal/model"
	"github.com/peerlink/matchmaker/internal/store"
	"github.com/peerlink/matchmaker/internal/store/sqlite"
)

// --- Fakes ---

// tableProvider embeds text by lookup; unknown text fails like a provider outage.
type tableProvider struct {
	vectors map[string][]float32
	calls   atomic.Int32
	fail    atomic.Bool
}

func (p *tableProvider) Embed(_ context.Context, text string) ([]float32, error) {
	if err := embeddings.CheckInput("table", text); err != nil {
		return nil, err
	}
	p.calls.Add(1)
	if p.fail.Load() {
		return nil, embeddings.StatusError("table", 503, "unavailable")
	}
	v, ok := p.vectors[text]
	if !ok {
		return nil, embeddings.NewError("table", errors.New("no vector for "+text))
	}
	return v, nil
}

type fixture struct {
	store    store.Store
	provider *tableProvider
	gateway  *embedstore.Gateway
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db, err := sqlite.Open(filepath.Join(t.TempDir(), "match.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, sqlite.EnsureSchema(context.Background(), db))

	s := sqlite.NewWithDB(db)
	p := &tableProvider{vectors: map[string][]float32{}}
	return &fixture{
		store:    s,
		provider: p,
		gateway:  embedstore.NewGateway(s.Embeddings(), p, "test-model", embedstore.NewLRUCache(64, 0), zerolog.Nop()),
	}
}

// add stores p and registers vec as the embedding of its normalized text.
func (f *fixture) add(t *testing.T, p *model.Profile, vec []float32) {
	t.Helper()
	_, err := f.store.Profiles().Upsert(context.Background(), p)
	require.NoError(t, err)
	text, err := profile.Normalize(p)
	require.NoError(t, err)
	if vec != nil {
		f.provider.vectors[text] = vec
	}
}
