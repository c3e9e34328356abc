// Package embedstore persists profile embeddings and computes missing ones.
package embedstore

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/peerlink/matchmaker/internal/embeddings"
	"github.com/peerlink/matchmaker/internal/metrics"
	"github.com/peerlink/matchmaker/internal/model"
	"github.com/peerlink/matchmaker/internal/store"
)

// TextFunc produces the text to embed for a profile on a cache miss.
type TextFunc func(ctx context.Context) (string, error)

// resolveTimeout bounds the shared work of one Resolve flight. The flight
// outlives the caller that started it, so it cannot use that caller's deadline.
const resolveTimeout = time.Minute

const lockStripes = 64

// Gateway fronts store.Embeddings with a cache and an embedding provider.
// Vectors produced by a model other than the configured one are treated as
// absent.
//
// Every profile has a generation that Invalidate bumps. Writes computed
// under an older generation are dropped, so an embed that was already
// running when the profile changed cannot restore the stale vector.
type Gateway struct {
	store    store.Embeddings
	provider embeddings.Provider
	model    string
	cache    Cache
	log      zerolog.Logger
	group    singleflight.Group

	genMu   sync.Mutex
	gens    map[string]uint64
	stripes [lockStripes]sync.Mutex
}

// NewGateway builds a gateway for vectors of the named model. A nil cache
// disables caching.
func NewGateway(s store.Embeddings, p embeddings.Provider, model string, cache Cache, log zerolog.Logger) *Gateway {
	if cache == nil {
		cache = NopCache{}
	}
	return &Gateway{store: s, provider: p, model: model, cache: cache, log: log, gens: map[string]uint64{}}
}

// Model is the embedding model vectors are produced with.
func (g *Gateway) Model() string { return g.model }

func (g *Gateway) cacheKey(profileID string) string { return g.model + "/" + profileID }

func (g *Gateway) generation(profileID string) uint64 {
	g.genMu.Lock()
	defer g.genMu.Unlock()
	return g.gens[profileID]
}

// lock serialises writers of one profile. Readers never take it.
func (g *Gateway) lock(profileID string) func() {
	h := fnv.New32a()
	_, _ = h.Write([]byte(profileID))
	m := &g.stripes[h.Sum32()%lockStripes]
	m.Lock()
	return m.Unlock
}

// Get returns the stored vector for profileID. A missing vector is
// (nil, false, nil).
func (g *Gateway) Get(ctx context.Context, profileID string) ([]float32, bool, error) {
	return g.get(ctx, profileID, g.generation(profileID))
}

func (g *Gateway) get(ctx context.Context, profileID string, gen uint64) ([]float32, bool, error) {
	key := g.cacheKey(profileID)
	vec, ok, err := g.cache.Get(ctx, key)
	switch {
	case err != nil:
		metrics.CacheLookups.WithLabelValues(g.cache.Name(), "error").Inc()
		g.log.Warn().Err(err).Str("profile_id", profileID).Msg("embedding cache read failed")
	case ok:
		metrics.CacheLookups.WithLabelValues(g.cache.Name(), "hit").Inc()
		return vec, true, nil
	default:
		metrics.CacheLookups.WithLabelValues(g.cache.Name(), "miss").Inc()
	}

	stored, err := g.store.Get(ctx, profileID)
	if errors.Is(err, model.ErrNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	if stored.Model != g.model || len(stored.Vector) == 0 {
		g.log.Debug().Str("profile_id", profileID).Str("stored_model", stored.Model).
			Str("model", g.model).Msg("stored embedding ignored")
		return nil, false, nil
	}

	unlock := g.lock(profileID)
	if g.generation(profileID) == gen {
		g.cacheSet(ctx, key, stored.Vector)
	}
	unlock()
	return stored.Vector, true, nil
}

// Save stores vec for profileID, replacing any previous vector.
func (g *Gateway) Save(ctx context.Context, profileID string, vec []float32) error {
	unlock := g.lock(profileID)
	defer unlock()
	return g.save(ctx, profileID, vec)
}

func (g *Gateway) save(ctx context.Context, profileID string, vec []float32) error {
	if len(vec) == 0 {
		return fmt.Errorf("save embedding %s: empty vector: %w", profileID, model.ErrValidation)
	}
	err := g.store.Put(ctx, &model.StoredEmbedding{
		ProfileID:    profileID,
		Model:        g.model,
		Vector:       vec,
		CreationTime: time.Now().UTC(),
	})
	if err != nil {
		return err
	}
	g.cacheSet(ctx, g.cacheKey(profileID), vec)
	return nil
}

// Invalidate drops the vector of profileID so the next Resolve recomputes
// it. Resolves already in flight for the profile do not persist their result.
func (g *Gateway) Invalidate(ctx context.Context, profileID string) error {
	unlock := g.lock(profileID)
	defer unlock()

	g.genMu.Lock()
	g.gens[profileID]++
	g.genMu.Unlock()

	if err := g.cache.Delete(ctx, g.cacheKey(profileID)); err != nil {
		g.log.Warn().Err(err).Str("profile_id", profileID).Msg("embedding cache delete failed")
	}
	return g.store.Delete(ctx, profileID)
}

// Resolve returns the vector of profileID, embedding text(ctx) and saving
// the result when none is stored. Concurrent calls for one profile share a
// single provider call; the shared call is not cancelled when one of the
// waiting callers gives up.
func (g *Gateway) Resolve(ctx context.Context, profileID string, text TextFunc) ([]float32, error) {
	gen := g.generation(profileID)
	flight := profileID + "@" + strconv.FormatUint(gen, 10)

	ch := g.group.DoChan(flight, func() (any, error) {
		wctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), resolveTimeout)
		defer cancel()
		return g.resolve(wctx, profileID, gen, text)
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.([]float32), nil
	}
}

func (g *Gateway) resolve(ctx context.Context, profileID string, gen uint64, text TextFunc) ([]float32, error) {
	vec, ok, err := g.get(ctx, profileID, gen)
	if err != nil {
		return nil, err
	}
	if ok {
		return vec, nil
	}

	t, err := text(ctx)
	if err != nil {
		return nil, err
	}
	vec, err = g.provider.Embed(ctx, t)
	if err != nil {
		return nil, err
	}

	unlock := g.lock(profileID)
	defer unlock()
	if g.generation(profileID) != gen {
		g.log.Debug().Str("profile_id", profileID).Msg("profile changed during embed, vector not saved")
		return vec, nil
	}
	if err := g.save(ctx, profileID, vec); err != nil {
		return nil, err
	}
	return vec, nil
}

func (g *Gateway) cacheSet(ctx context.Context, key string, vec []float32) {
	if err := g.cache.Set(ctx, key, vec); err != nil {
		g.log.Warn().Err(err).Str("key", key).Msg("embedding cache write failed")
	}
}
