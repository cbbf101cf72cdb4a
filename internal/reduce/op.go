package reduce

import "math"

// Number is the set of element types the reduction operators support.
type Number interface {
	int32 | int64 | uint32 | uint64 | float32 | float64
}

// Op is a combining operator over elements of type E. Fold must be
// associative and commutative, and Identity must be its neutral element.
type Op[E any] interface {
	Fold(a, b E) E
	Identity() E
}

// SumOp folds by addition.
type SumOp[T Number] struct{}

func (SumOp[T]) Fold(a, b T) T { return a + b }

func (SumOp[T]) Identity() T { var zero T; return zero }

// MinOp folds by taking the smaller value.
type MinOp[T Number] struct{}

func (MinOp[T]) Fold(a, b T) T {
	if b < a {
		return b
	}
	return a
}

func (MinOp[T]) Identity() T { return maxValue[T]() }

// MaxOp folds by taking the larger value.
type MaxOp[T Number] struct{}

func (MaxOp[T]) Fold(a, b T) T {
	if b > a {
		return b
	}
	return a
}

func (MaxOp[T]) Identity() T { return minValue[T]() }

// maxValue returns the largest representable value of T (+Inf for floats).
func maxValue[T Number]() T {
	var v T
	switch p := any(&v).(type) {
	case *int32:
		*p = math.MaxInt32
	case *int64:
		*p = math.MaxInt64
	case *uint32:
		*p = math.MaxUint32
	case *uint64:
		*p = math.MaxUint64
	case *float32:
		*p = float32(math.Inf(1))
	case *float64:
		*p = math.Inf(1)
	}
	return v
}

// minValue returns the smallest representable value of T (-Inf for floats).
func minValue[T Number]() T {
	var v T
	switch p := any(&v).(type) {
	case *int32:
		*p = math.MinInt32
	case *int64:
		*p = math.MinInt64
	case *uint32:
		*p = 0
	case *uint64:
		*p = 0
	case *float32:
		*p = float32(math.Inf(-1))
	case *float64:
		*p = math.Inf(-1)
	}
	return v
}
