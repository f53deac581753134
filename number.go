package zcli

import (
	"golang.org/x/exp/constraints"
)

// Number returns a numeric input converted to T, or 0 if the
// input is absent or not a number.
func Number[T constraints.Integer | constraints.Float](in Inputs, key string) T {
	switch val := in[key].(type) {
	case int:
		return T(val)
	case float64:
		return T(val)
	default:
		return 0
	}
}

// Numbers returns a numeric list input converted to T, or nil.
func Numbers[T constraints.Integer | constraints.Float](in Inputs, key string) []T {
	switch vals := in[key].(type) {
	case []int:
		return convert[T](vals)
	case []float64:
		return convert[T](vals)
	default:
		return nil
	}
}

func convert[T, S constraints.Integer | constraints.Float](vals []S) []T {
	converted := make([]T, len(vals))
	for i, val := range vals {
		converted[i] = T(val)
	}

	return converted
}
