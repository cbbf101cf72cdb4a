package reduce

import (
	"math"
	"testing"
)

func TestSumOp(t *testing.T) {
	var s SumOp[int64]
	if got := s.Identity(); got != 0 {
		t.Errorf("sum identity = %d", got)
	}
	if got := s.Fold(3, 4); got != 7 {
		t.Errorf("Fold(3, 4) = %d", got)
	}
}

func TestMinMaxIdentities(t *testing.T) {
	if got := (MinOp[int32]{}).Identity(); got != math.MaxInt32 {
		t.Errorf("min int32 identity = %d", got)
	}
	if got := (MaxOp[int32]{}).Identity(); got != math.MinInt32 {
		t.Errorf("max int32 identity = %d", got)
	}
	if got := (MinOp[uint64]{}).Identity(); got != math.MaxUint64 {
		t.Errorf("min uint64 identity = %d", got)
	}
	if got := (MaxOp[uint64]{}).Identity(); got != 0 {
		t.Errorf("max uint64 identity = %d", got)
	}
	if got := (MinOp[float64]{}).Identity(); !math.IsInf(got, 1) {
		t.Errorf("min float64 identity = %v", got)
	}
	if got := (MaxOp[float64]{}).Identity(); !math.IsInf(got, -1) {
		t.Errorf("max float64 identity = %v", got)
	}
	if got := (MinOp[float32]{}).Identity(); !math.IsInf(float64(got), 1) {
		t.Errorf("min float32 identity = %v", got)
	}
}

func TestMinMaxFold(t *testing.T) {
	if got := (MinOp[float64]{}).Fold(2.5, -1.0); got != -1.0 {
		t.Errorf("min fold = %v", got)
	}
	if got := (MaxOp[float64]{}).Fold(2.5, -1.0); got != 2.5 {
		t.Errorf("max fold = %v", got)
	}
	// Folding the identity leaves the value alone.
	if got := (MinOp[int32]{}).Fold(5, (MinOp[int32]{}).Identity()); got != 5 {
		t.Errorf("min fold with identity = %d", got)
	}
}

func TestMinLocFold(t *testing.T) {
	op := MinLocOp[float64]{}

	id := op.Identity()
	if id.Idx != -1 || !math.IsInf(id.Val, 1) {
		t.Fatalf("identity = %+v", id)
	}

	a := LocValue[float64]{Val: 2.0, Idx: 4}
	b := LocValue[float64]{Val: 1.0, Idx: 9}
	if got := op.Fold(a, b); got != b {
		t.Errorf("Fold(%+v, %+v) = %+v", a, b, got)
	}
	if got := op.Fold(b, a); got != b {
		t.Errorf("Fold(%+v, %+v) = %+v", b, a, got)
	}

	// Equal values resolve to the lower index regardless of order.
	lo := LocValue[float64]{Val: 3.0, Idx: 2}
	hi := LocValue[float64]{Val: 3.0, Idx: 6}
	if got := op.Fold(lo, hi); got != lo {
		t.Errorf("tie Fold(lo, hi) = %+v", got)
	}
	if got := op.Fold(hi, lo); got != lo {
		t.Errorf("tie Fold(hi, lo) = %+v", got)
	}

	// The identity never wins, in either position.
	if got := op.Fold(a, id); got != a {
		t.Errorf("Fold(a, identity) = %+v", got)
	}
	if got := op.Fold(id, a); got != a {
		t.Errorf("Fold(identity, a) = %+v", got)
	}
}

func TestMaxLocFold(t *testing.T) {
	op := MaxLocOp[int32]{}

	id := op.Identity()
	if id.Idx != -1 || id.Val != math.MinInt32 {
		t.Fatalf("identity = %+v", id)
	}

	a := LocValue[int32]{Val: 10, Idx: 3}
	b := LocValue[int32]{Val: 20, Idx: 1}
	if got := op.Fold(a, b); got != b {
		t.Errorf("Fold = %+v, want %+v", got, b)
	}

	lo := LocValue[int32]{Val: 7, Idx: 0}
	hi := LocValue[int32]{Val: 7, Idx: 5}
	if got := op.Fold(hi, lo); got != lo {
		t.Errorf("tie Fold = %+v, want %+v", got, lo)
	}
}
