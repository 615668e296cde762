package weather

import (
	"cmp"

	"github.com/aclements/go-moremath/stats"
)

// Extreme is a minimum or maximum together with the position it was found at.
type Extreme[T cmp.Ordered] struct {
	Value T
	Index int
}

// Mean returns the arithmetic mean of xs.
func Mean(xs []float64) (float64, error) {
	if len(xs) == 0 {
		return 0, ErrEmptyInput
	}
	return stats.Mean(xs), nil
}

// FindMin returns the smallest value in xs. Among equal minima the last index wins.
// ok is false when xs is empty.
func FindMin[T cmp.Ordered](xs []T) (Extreme[T], bool) {
	return findExtreme(xs, func(a, b T) bool { return a <= b })
}

// FindMax returns the largest value in xs. Among equal maxima the last index wins.
// ok is false when xs is empty.
func FindMax[T cmp.Ordered](xs []T) (Extreme[T], bool) {
	return findExtreme(xs, func(a, b T) bool { return a >= b })
}

// findExtreme keeps the candidate whenever better (inclusive) holds, so ties move forward.
func findExtreme[T cmp.Ordered](xs []T, better func(a, b T) bool) (Extreme[T], bool) {
	if len(xs) == 0 {
		return Extreme[T]{}, false
	}
	best := Extreme[T]{Value: xs[0], Index: 0}
	for i := 1; i < len(xs); i++ {
		if better(xs[i], best.Value) {
			best = Extreme[T]{Value: xs[i], Index: i}
		}
	}
	return best, true
}
