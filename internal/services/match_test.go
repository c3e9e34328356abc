package services

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peerlink/matchmaker/internal/embeddings"
	"github.com/peerlink/matchmaker/internal/model"
)

func seedMatchFixture(t *testing.T) *fixture {
	f := newFixture(t)
	f.add(t, &model.Profile{UserID: "u1", FirstName: "Ada", Skills: []string{"go"}}, []float32{1, 0})
	f.add(t, &model.Profile{UserID: "u2", FirstName: "Ben", Skills: []string{"go", "sql"}}, []float32{1, 0.1})
	f.add(t, &model.Profile{UserID: "u3", FirstName: "Cleo", Skills: []string{"design"}}, []float32{0, 1})
	f.add(t, &model.Profile{UserID: "u4", FirstName: "Dev", Skills: []string{"go", "design"}}, []float32{0.5, 0.5})
	f.add(t, &model.Profile{UserID: "u5"}, nil)
	f.add(t, &model.Profile{UserID: "u6", FirstName: "Zero"}, []float32{0, 0})
	f.add(t, &model.Profile{UserID: "u7", FirstName: "Wide"}, []float32{1, 0, 0})
	return f
}

func ids(results []model.MatchResult) []string {
	out := make([]string, len(results))
	for i, r := range results {
		out[i] = r.UserID
	}
	return out
}

func TestFindMatches_RanksTopK(t *testing.T) {
	f := seedMatchFixture(t)
	svc := NewMatchService(f.store, f.gateway, 3, zerolog.Nop())

	got, err := svc.FindMatches(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, []string{"u2", "u4", "u3"}, ids(got))
	assert.InDelta(t, 0.995, got[0].Similarity, 0.001)
	assert.InDelta(t, 0.7071, got[1].Similarity, 0.001)
	assert.InDelta(t, 0, got[2].Similarity, 1e-9)
	assert.Equal(t, "Ben", got[0].FirstName)
	assert.Equal(t, []string{"go", "sql"}, got[0].Skills)
	for _, m := range got {
		assert.NotEqual(t, "u1", m.UserID, "target never matches itself")
	}
}

func TestFindMatches_ReusesStoredVectors(t *testing.T) {
	f := seedMatchFixture(t)
	svc := NewMatchService(f.store, f.gateway, 3, zerolog.Nop())

	_, err := svc.FindMatches(context.Background(), "u1")
	require.NoError(t, err)
	first := f.provider.calls.Load()
	assert.EqualValues(t, 6, first, "one call per embeddable profile")

	_, err = svc.FindMatches(context.Background(), "u2")
	require.NoError(t, err)
	assert.Equal(t, first, f.provider.calls.Load())
}

func TestFindMatches_DefaultTopK(t *testing.T) {
	f := seedMatchFixture(t)
	got, err := NewMatchService(f.store, f.gateway, 0, zerolog.Nop()).FindMatches(context.Background(), "u1")
	require.NoError(t, err)
	assert.Len(t, got, 3)
}

func TestFindMatches_NoCandidates(t *testing.T) {
	f := newFixture(t)
	f.add(t, &model.Profile{UserID: "solo", FirstName: "Solo"}, []float32{1, 1})

	got, err := NewMatchService(f.store, f.gateway, 3, zerolog.Nop()).FindMatches(context.Background(), "solo")
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestFindMatches_Errors(t *testing.T) {
	f := seedMatchFixture(t)
	svc := NewMatchService(f.store, f.gateway, 3, zerolog.Nop())
	ctx := context.Background()

	_, err := svc.FindMatches(ctx, "  ")
	assert.ErrorIs(t, err, model.ErrValidation)

	_, err = svc.FindMatches(ctx, "nobody")
	assert.ErrorIs(t, err, model.ErrNotFound)

	_, err = svc.FindMatches(ctx, "u5")
	assert.ErrorIs(t, err, model.ErrValidation, "profile without content cannot be matched")
}

func TestFindMatches_ProviderFailure(t *testing.T) {
	f := seedMatchFixture(t)
	f.provider.fail.Store(true)
	svc := NewMatchService(f.store, f.gateway, 3, zerolog.Nop())

	got, err := svc.FindMatches(context.Background(), "u1")
	assert.Nil(t, got)
	assert.ErrorIs(t, err, model.ErrUpstream)
	assert.ErrorIs(t, err, embeddings.ErrProvider)
}

func TestFindMatches_CandidateFailureAborts(t *testing.T) {
	f := seedMatchFixture(t)
	f.add(t, &model.Profile{UserID: "u8", FirstName: "Unknown to provider"}, nil)
	svc := NewMatchService(f.store, f.gateway, 3, zerolog.Nop())

	_, err := svc.FindMatches(context.Background(), "u1")
	assert.ErrorIs(t, err, model.ErrUpstream)
}
