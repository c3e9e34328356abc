// Package ranking scores candidate profiles against a query embedding.
package ranking

import (
	"errors"
	"math"
)

var (
	// ErrDimensionMismatch is returned when two vectors differ in length.
	ErrDimensionMismatch = errors.New("vector dimensions differ")
	// ErrZeroMagnitude is returned when a vector has no direction, which
	// makes the angle between it and anything else undefined.
	ErrZeroMagnitude = errors.New("vector has zero magnitude")
)

// Cosine returns dot(a,b) / (|a| * |b|), clamped to [-1, 1].
func Cosine(a, b []float32) (float64, error) {
	if len(a) != len(b) || len(a) == 0 {
		return 0, ErrDimensionMismatch
	}

	var dot, normA, normB float64
	for i := range a {
		x, y := float64(a[i]), float64(b[i])
		dot += x * y
		normA += x * x
		normB += y * y
	}
	if normA == 0 || normB == 0 {
		return 0, ErrZeroMagnitude
	}

	sim := dot / (math.Sqrt(normA) * math.Sqrt(normB))
	switch {
	case math.IsNaN(sim):
		return 0, ErrZeroMagnitude
	case sim > 1:
		sim = 1
	case sim < -1:
		sim = -1
	}
	return sim, nil
}
