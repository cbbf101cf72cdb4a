package engine

import "sync"

// barrier is a reusable block-wide rendezvous with an OR-vote: wait returns
// true for every lane if any lane passed true in the current phase.
type barrier struct {
	mu    sync.Mutex
	cond  *sync.Cond
	n     int
	count int
	phase uint64
	vote  bool
	out   bool
}

func newBarrier(n int) *barrier {
	b := &barrier{n: n}
	b.cond = sync.NewCond(&b.mu)
	return b
}

// wait blocks until all n lanes have arrived. The vote result is stable
// until the next phase completes, which requires this lane to arrive again.
func (b *barrier) wait(pred bool) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	if pred {
		b.vote = true
	}
	b.count++
	if b.count == b.n {
		b.out = b.vote
		b.vote = false
		b.count = 0
		b.phase++
		b.cond.Broadcast()
		return b.out
	}

	phase := b.phase
	for phase == b.phase {
		b.cond.Wait()
	}
	return b.out
}
