package directory

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPermutation_IsPermutation(t *testing.T) {
	order := Permutation(50, 42)
	require.Len(t, order, 50)

	seen := make(map[int32]bool, 50)
	for _, i := range order {
		assert.False(t, seen[i], "duplicate index %d", i)
		seen[i] = true
	}
	assert.Len(t, seen, 50)
}

func TestShuffle_SameSeedSameOrder(t *testing.T) {
	recs := numbered(30)
	assert.Equal(t, Shuffle(recs, 7), Shuffle(recs, 7))
}

func TestShuffle_DifferentSeedsDiffer(t *testing.T) {
	recs := numbered(30)
	assert.NotEqual(t, names(Shuffle(recs, 1)), names(Shuffle(recs, 2)))
}

func TestShuffle_KeepsAllRecordsAndInput(t *testing.T) {
	recs := numbered(20)
	before := names(recs)

	got := names(Shuffle(recs, 99))
	sort.Strings(got)
	assert.Equal(t, before, got)
	assert.Equal(t, before, names(recs))
}

func TestShuffle_Small(t *testing.T) {
	assert.Empty(t, Shuffle(nil, 1))
	one := numbered(1)
	assert.Equal(t, one, Shuffle(one, 1))
}
