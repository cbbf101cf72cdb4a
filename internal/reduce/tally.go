package reduce

import (
	"sync"

	"github.com/ember-hpc/ember/internal/engine"
	"github.com/ember-hpc/ember/internal/mempool"
)

// bucket collects the pinned result slots reserved against one stream, in
// reservation order.
type bucket[E any] struct {
	stream *engine.Stream
	slabs  [][]E // one single-element pinned slab per slot
}

// tally tracks the pending result slots of an accumulator, per stream. It is
// owned by the root accumulator and shared by reference with every launch
// state. reserve and drain are mutex-guarded so host threads may finalize
// launches concurrently; drain must not race a reserve on the same
// accumulator without that guard.
type tally[E any] struct {
	pools *mempool.Context

	mu      sync.Mutex
	buckets []*bucket[E]
}

func newTally[E any](pools *mempool.Context) *tally[E] {
	return &tally[E]{pools: pools}
}

// reserve returns a pinned slot for a launch pending on s. The first
// reservation against a stream creates its bucket; later ones append.
func (t *tally[E]) reserve(s *engine.Stream) *E {
	t.mu.Lock()
	defer t.mu.Unlock()

	var b *bucket[E]
	for _, have := range t.buckets {
		if have.stream == s {
			b = have
			break
		}
	}
	if b == nil {
		b = &bucket[E]{stream: s}
		t.buckets = append(t.buckets, b)
	}

	slab := mempool.Alloc[E](t.pools.Pinned, 1)
	b.slabs = append(b.slabs, slab)
	return &slab[0]
}

// drain synchronizes every stream holding outstanding slots, then returns
// the slot values in reservation order per stream (arbitrary order across
// streams) and releases the pinned storage. Destructive and non-restartable.
func (t *tally[E]) drain() []E {
	t.mu.Lock()
	defer t.mu.Unlock()

	var out []E
	for _, b := range t.buckets {
		if len(b.slabs) == 0 {
			continue
		}
		b.stream.Synchronize()
		for _, slab := range b.slabs {
			out = append(out, slab[0])
			mempool.Free(t.pools.Pinned, slab)
		}
	}
	t.buckets = nil
	return out
}

// release frees all pending storage without reading it.
func (t *tally[E]) release() {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, b := range t.buckets {
		for _, slab := range b.slabs {
			mempool.Free(t.pools.Pinned, slab)
		}
	}
	t.buckets = nil
}
