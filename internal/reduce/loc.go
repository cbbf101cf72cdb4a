package reduce

// LocValue pairs a value with the index of the context that produced it.
// Idx -1 marks an identity entry that has absorbed no real contribution.
type LocValue[T Number] struct {
	Val T
	Idx int
}

// MinLocOp folds toward the smallest value; ties resolve to the lower
// original index, and identity entries never win a tie.
type MinLocOp[T Number] struct{}

func (MinLocOp[T]) Fold(a, b LocValue[T]) LocValue[T] {
	if b.Val < a.Val {
		return b
	}
	if a.Val < b.Val {
		return a
	}
	if b.Idx >= 0 && (a.Idx < 0 || b.Idx < a.Idx) {
		return b
	}
	return a
}

func (MinLocOp[T]) Identity() LocValue[T] {
	return LocValue[T]{Val: maxValue[T](), Idx: -1}
}

// MaxLocOp folds toward the largest value; ties resolve to the lower
// original index, and identity entries never win a tie.
type MaxLocOp[T Number] struct{}

func (MaxLocOp[T]) Fold(a, b LocValue[T]) LocValue[T] {
	if b.Val > a.Val {
		return b
	}
	if a.Val > b.Val {
		return a
	}
	if b.Idx >= 0 && (a.Idx < 0 || b.Idx < a.Idx) {
		return b
	}
	return a
}

func (MaxLocOp[T]) Identity() LocValue[T] {
	return LocValue[T]{Val: minValue[T](), Idx: -1}
}
