package ranking

import (
	"sort"

	"github.com/peerlink/matchmaker/internal/model"
)

// DefaultTopK is the number of matches returned when callers do not choose.
const DefaultTopK = 3

// Candidate pairs a profile projection with its embedding.
type Candidate struct {
	Profile model.ProfileSummary
	Vector  []float32
}

// Rank scores every candidate against query and returns at most topK
// results ordered by similarity, highest first. Candidates whose vector
// cannot be compared with the query (length mismatch or zero magnitude)
// are left out. Equal scores keep their input order.
func Rank(query []float32, candidates []Candidate, topK int) []model.MatchResult {
	scored, _ := RankWithExclusions(query, candidates, topK)
	return scored
}

// RankWithExclusions is Rank that also reports how many candidates were
// left out because they were incomparable with the query.
func RankWithExclusions(query []float32, candidates []Candidate, topK int) ([]model.MatchResult, int) {
	out := make([]model.MatchResult, 0, min(len(candidates), max(topK, 0)))
	if topK <= 0 || len(query) == 0 || len(candidates) == 0 {
		return out, 0
	}

	scored := make([]model.MatchResult, 0, len(candidates))
	excluded := 0
	for _, c := range candidates {
		sim, err := Cosine(query, c.Vector)
		if err != nil {
			excluded++
			continue
		}
		scored = append(scored, model.MatchResult{ProfileSummary: c.Profile, Similarity: sim})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Similarity > scored[j].Similarity
	})
	if len(scored) > topK {
		scored = scored[:topK]
	}
	return append(out, scored...), excluded
}
