package storetest

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/peerlink/matchmaker/internal/model"
	"github.com/peerlink/matchmaker/internal/store"
)

// Run exercises a minimal compliance suite against a store.Store implementation.
// Implementations should provide a clean, isolated store and return it from makeStore.
func Run(t *testing.T, makeStore func(t *testing.T) store.Store) {
	t.Helper()

	s := makeStore(t)
	ctx := context.Background()

	// Unique test identifiers; ordering of candidates is by user id
	prefix := "u-" + uuid.New().String()
	idA, idB, idC := prefix+"-a", prefix+"-b", prefix+"-c"

	// Profiles
	if _, err := s.Profiles().Get(ctx, idA); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("Get missing profile: want ErrNotFound, got %v", err)
	}

	a := &model.Profile{
		UserID:              idA,
		FirstName:           "Ada",
		LastName:            "Park",
		Bio:                 "Builds compilers",
		Skills:              []string{"go", "rust"},
		Roles:               []string{"backend"},
		ExperienceLevel:     model.ExperienceAdvanced,
		TimeCommitment:      "10h/week",
		CollaborationStyles: []string{"async"},
		Location:            "Berlin",
		CompetitionInterests: []model.CompetitionInterest{
			{CompetitionID: "hack-1", Interest: model.InterestLookingForPartner},
		},
	}
	before := time.Now().Add(-time.Second)
	saved, err := s.Profiles().Upsert(ctx, a)
	if err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	if saved.UpdateTime.Before(before) {
		t.Fatalf("Upsert: update time not stamped: %v", saved.UpdateTime)
	}

	got, err := s.Profiles().Get(ctx, idA)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.FirstName != "Ada" || got.Bio != "Builds compilers" || got.Location != "Berlin" ||
		got.ExperienceLevel != model.ExperienceAdvanced || got.TimeCommitment != "10h/week" {
		t.Fatalf("Get: scalar fields mismatch: %+v", got)
	}
	if !equalStrings(got.Skills, a.Skills) || !equalStrings(got.Roles, a.Roles) || !equalStrings(got.CollaborationStyles, a.CollaborationStyles) {
		t.Fatalf("Get: list fields mismatch: %+v", got)
	}
	if len(got.CompetitionInterests) != 1 || got.CompetitionInterests[0] != a.CompetitionInterests[0] {
		t.Fatalf("Get: interests mismatch: %+v", got.CompetitionInterests)
	}

	// Upsert replaces the whole record
	a2 := *a
	a2.Bio = "Now builds databases"
	a2.Skills = nil
	if _, err := s.Profiles().Upsert(ctx, &a2); err != nil {
		t.Fatalf("Upsert replace: %v", err)
	}
	if got, err := s.Profiles().Get(ctx, idA); err != nil || got.Bio != "Now builds databases" || len(got.Skills) != 0 {
		t.Fatalf("Get after replace: got=%+v err=%v", got, err)
	}

	for _, id := range []string{idC, idB} {
		if _, err := s.Profiles().Upsert(ctx, &model.Profile{UserID: id, FirstName: id}); err != nil {
			t.Fatalf("Upsert %s: %v", id, err)
		}
	}

	// ListCandidates excludes the target and orders by user id
	cands, err := s.Profiles().ListCandidates(ctx, idA)
	if err != nil {
		t.Fatalf("ListCandidates: %v", err)
	}
	var mine []string
	for _, p := range cands {
		if p.UserID == idA {
			t.Fatalf("ListCandidates: target %s not excluded", idA)
		}
		if p.UserID == idB || p.UserID == idC {
			mine = append(mine, p.UserID)
		}
	}
	if !equalStrings(mine, []string{idB, idC}) {
		t.Fatalf("ListCandidates: want [%s %s], got %v", idB, idC, mine)
	}

	// Embeddings
	if _, err := s.Embeddings().Get(ctx, idA); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("Get missing embedding: want ErrNotFound, got %v", err)
	}
	if err := s.Embeddings().Put(ctx, &model.StoredEmbedding{ProfileID: idA, Model: "m1", Vector: []float32{0.5, -1, 2}}); err != nil {
		t.Fatalf("Put embedding: %v", err)
	}
	e, err := s.Embeddings().Get(ctx, idA)
	if err != nil {
		t.Fatalf("Get embedding: %v", err)
	}
	if e.Model != "m1" || !equalVectors(e.Vector, []float32{0.5, -1, 2}) || e.CreationTime.IsZero() {
		t.Fatalf("Get embedding: got %+v", e)
	}

	// last write wins
	if err := s.Embeddings().Put(ctx, &model.StoredEmbedding{ProfileID: idA, Model: "m2", Vector: []float32{1, 0}}); err != nil {
		t.Fatalf("Put embedding overwrite: %v", err)
	}
	if e, err := s.Embeddings().Get(ctx, idA); err != nil || e.Model != "m2" || !equalVectors(e.Vector, []float32{1, 0}) {
		t.Fatalf("Get embedding after overwrite: got=%+v err=%v", e, err)
	}

	if err := s.Embeddings().Delete(ctx, idA); err != nil {
		t.Fatalf("Delete embedding: %v", err)
	}
	if _, err := s.Embeddings().Get(ctx, idA); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("Get after delete: want ErrNotFound, got %v", err)
	}
	if err := s.Embeddings().Delete(ctx, idB); err != nil {
		t.Fatalf("Delete missing embedding: %v", err)
	}
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func equalVectors(a, b []float32) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
