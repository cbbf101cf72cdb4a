package reduce

import (
	"runtime"
	"sync/atomic"
	"unsafe"
)

// atomicFold folds v into *p with a compare-and-swap loop over the value's
// bit pattern. Supported for add/min/max on 4- and 8-byte elements; the
// mempool arenas hand out 8-byte-aligned slabs, so *p is always safely
// addressable for the CAS width.
func atomicFold[T Number](op Op[T], p *T, v T) {
	switch unsafe.Sizeof(v) {
	case 4:
		addr := (*uint32)(unsafe.Pointer(p))
		for {
			old := atomic.LoadUint32(addr)
			next := op.Fold(*(*T)(unsafe.Pointer(&old)), v)
			nb := *(*uint32)(unsafe.Pointer(&next))
			if nb == old || atomic.CompareAndSwapUint32(addr, old, nb) {
				return
			}
		}
	default:
		addr := (*uint64)(unsafe.Pointer(p))
		for {
			old := atomic.LoadUint64(addr)
			next := op.Fold(*(*T)(unsafe.Pointer(&old)), v)
			nb := *(*uint64)(unsafe.Pointer(&next))
			if nb == old || atomic.CompareAndSwapUint64(addr, old, nb) {
				return
			}
		}
	}
}

// atomicLoad reads *p with atomic ordering.
func atomicLoad[T Number](p *T) T {
	switch unsafe.Sizeof(*p) {
	case 4:
		v := atomic.LoadUint32((*uint32)(unsafe.Pointer(p)))
		return *(*T)(unsafe.Pointer(&v))
	default:
		v := atomic.LoadUint64((*uint64)(unsafe.Pointer(p)))
		return *(*T)(unsafe.Pointer(&v))
	}
}

// atomicIncWrap increments *p, wrapping back to zero when the previous value
// had reached wrap. Returns the previous value.
func atomicIncWrap(p *uint32, wrap uint32) uint32 {
	for {
		old := atomic.LoadUint32(p)
		next := old + 1
		if old >= wrap {
			next = 0
		}
		if atomic.CompareAndSwapUint32(p, old, next) {
			return old
		}
	}
}

// bitwiseZero reports whether v's bit pattern is all zeros, in which case a
// zero-initialized slot already holds it.
func bitwiseZero[T Number](v T) bool {
	switch unsafe.Sizeof(v) {
	case 4:
		return *(*uint32)(unsafe.Pointer(&v)) == 0
	default:
		return *(*uint64)(unsafe.Pointer(&v)) == 0
	}
}

// publishSlot makes slot hold op's identity exactly once per launch and
// advances the counter from its initial state to the ready state (2). Every
// block's elected lane calls this before folding. The claim always runs so
// that the completion count afterwards starts from 2 for every operator;
// only the identity write and the readiness wait are skipped when the
// identity is all-zero bits, since the slot arrives zero-initialized.
func publishSlot[T Number](op Op[T], slot *T, count *uint32) {
	id := op.Identity()
	zero := bitwiseZero(id)
	if atomic.CompareAndSwapUint32(count, 0, 1) {
		if !zero {
			*slot = id
		}
		atomic.AddUint32(count, 1)
		return
	}
	if !zero {
		// The claiming goroutine is runnable, so this wait is bounded.
		for atomic.LoadUint32(count) < 2 {
			runtime.Gosched()
		}
	}
}
