package reduce

import (
	"math"
	"sync"
	"sync/atomic"
	"testing"
)

func TestAtomicFoldSum(t *testing.T) {
	const workers, per = 8, 1000
	var total float64

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < per; i++ {
				atomicFold[float64](SumOp[float64]{}, &total, 1)
			}
		}()
	}
	wg.Wait()

	if total != workers*per {
		t.Fatalf("total = %v, want %d", total, workers*per)
	}
}

func TestAtomicFoldMin32(t *testing.T) {
	const workers = 16
	slot := int32(math.MaxInt32)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			atomicFold[int32](MinOp[int32]{}, &slot, int32(w*10))
		}()
	}
	wg.Wait()

	if slot != 0 {
		t.Fatalf("min = %d, want 0", slot)
	}
}

func TestAtomicIncWrap(t *testing.T) {
	var c uint32
	const wrap = 3

	wantOld := []uint32{0, 1, 2, 3, 0, 1}
	for i, want := range wantOld {
		if got := atomicIncWrap(&c, wrap); got != want {
			t.Fatalf("call %d: old = %d, want %d", i, got, want)
		}
	}
	if c != 2 {
		t.Fatalf("counter = %d after sequence, want 2", c)
	}
}

func TestBitwiseZero(t *testing.T) {
	if !bitwiseZero(float64(0)) {
		t.Error("+0.0 should be bitwise zero")
	}
	if bitwiseZero(math.Copysign(0, -1)) {
		t.Error("-0.0 is not bitwise zero")
	}
	if !bitwiseZero(int32(0)) {
		t.Error("int32 0 should be bitwise zero")
	}
	if bitwiseZero(uint64(1)) {
		t.Error("1 is not bitwise zero")
	}
}

func TestPublishSlotNonZeroIdentity(t *testing.T) {
	const claimants = 8
	var count uint32
	slot := int64(0)

	var wg sync.WaitGroup
	for i := 0; i < claimants; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			publishSlot[int64](MinOp[int64]{}, &slot, &count)
			// Past publishSlot the identity must be in place.
			if got := atomicLoad(&slot); got != math.MaxInt64 {
				t.Errorf("slot = %d before any fold, want identity", got)
			}
		}()
	}
	wg.Wait()

	if got := atomic.LoadUint32(&count); got != 2 {
		t.Fatalf("count = %d after publish, want 2", got)
	}
}

func TestPublishSlotZeroIdentity(t *testing.T) {
	var count uint32
	var slot float64

	publishSlot[float64](SumOp[float64]{}, &slot, &count)
	// The claim still advances the counter so completion accounting starts
	// from the same state as for non-zero identities.
	if got := atomic.LoadUint32(&count); got != 2 {
		t.Fatalf("count = %d, want 2", got)
	}
	if slot != 0 {
		t.Fatalf("slot = %v, want untouched zero", slot)
	}
}
