package ranking

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCosine_KnownValues(t *testing.T) {
	tests := []struct {
		name string
		a, b []float32
		want float64
	}{
		{"identical", []float32{1, 0}, []float32{1, 0}, 1},
		{"orthogonal", []float32{1, 0}, []float32{0, 1}, 0},
		{"opposite", []float32{1, 0}, []float32{-1, 0}, -1},
		{"scaled", []float32{1, 2, 3}, []float32{2, 4, 6}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Cosine(tt.a, tt.b)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestCosine_ZeroMagnitude(t *testing.T) {
	_, err := Cosine([]float32{0, 0}, []float32{1, 0})
	assert.ErrorIs(t, err, ErrZeroMagnitude)

	_, err = Cosine([]float32{1, 0}, []float32{0, 0})
	assert.ErrorIs(t, err, ErrZeroMagnitude)
}

func TestCosine_DimensionMismatch(t *testing.T) {
	_, err := Cosine([]float32{1, 0}, []float32{1, 0, 0})
	assert.ErrorIs(t, err, ErrDimensionMismatch)

	_, err = Cosine(nil, nil)
	assert.ErrorIs(t, err, ErrDimensionMismatch)
}

func TestCosine_SymmetricAndBounded(t *testing.T) {
	r := rand.New(rand.NewPCG(7, 11))
	for i := 0; i < 200; i++ {
		n := 1 + r.IntN(16)
		a := make([]float32, n)
		b := make([]float32, n)
		for j := range a {
			a[j] = float32(r.NormFloat64())
			b[j] = float32(r.NormFloat64())
		}
		ab, errAB := Cosine(a, b)
		ba, errBA := Cosine(b, a)
		if errAB != nil || errBA != nil {
			// all-zero draws are practically impossible but stay consistent
			assert.Equal(t, errAB, errBA)
			continue
		}
		assert.Equal(t, ab, ba)
		assert.False(t, math.IsNaN(ab))
		assert.GreaterOrEqual(t, ab, -1.0)
		assert.LessOrEqual(t, ab, 1.0)
	}
}
