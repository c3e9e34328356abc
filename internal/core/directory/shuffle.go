package directory

import (
	"math/rand/v2"

	"github.com/peerlink/matchmaker/internal/model"
)

// Shuffle returns a Fisher-Yates permutation of records. The same seed
// always yields the same order; records itself is left untouched.
func Shuffle(records []model.MentorRecord, seed uint64) []model.MentorRecord {
	order := Permutation(len(records), seed)
	out := make([]model.MentorRecord, len(records))
	for i, idx := range order {
		out[i] = records[idx]
	}
	return out
}

// Permutation returns a seeded Fisher-Yates shuffle of the indexes [0, n).
func Permutation(n int, seed uint64) []int32 {
	order := make([]int32, n)
	for i := range order {
		order[i] = int32(i)
	}
	r := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	for i := n - 1; i > 0; i-- {
		j := r.IntN(i + 1)
		order[i], order[j] = order[j], order[i]
	}
	return order
}
