package store

import (
	"context"

	"github.com/peerlink/matchmaker/internal/model"
)

// Store exposes persistence operations required by services.
// Implementations live under internal/store/<driver>/ (postgres, sqlite).
type Store interface {
	Profiles() Profiles
	Embeddings() Embeddings
}

// Profiles returns model.ErrNotFound for unknown user ids.
type Profiles interface {
	Get(ctx context.Context, userID string) (*model.Profile, error)
	// ListCandidates returns every profile except excludeID ordered by user id.
	ListCandidates(ctx context.Context, excludeID string) ([]*model.Profile, error)
	// Upsert replaces the whole profile and stamps UpdateTime.
	Upsert(ctx context.Context, p *model.Profile) (*model.Profile, error)
}

// Embeddings holds at most one vector per profile; Put is last-write-wins.
type Embeddings interface {
	Get(ctx context.Context, profileID string) (*model.StoredEmbedding, error)
	Put(ctx context.Context, e *model.StoredEmbedding) error
	// Delete is a no-op for profiles without a vector.
	Delete(ctx context.Context, profileID string) error
}
