package reduce

import "github.com/ember-hpc/ember/internal/engine"

// gridReduce runs the staged grid combination: each block's elected lane
// writes the block value into its slot, increments the completion counter
// (wrapping at #blocks-1), and the block whose increment hits the wrap value
// is last. The last block folds every slot from the identity, re-reduces,
// and lane 0 of it returns (finalValue, true). The slot array needs no
// pre-zeroing. Block-collective.
func gridReduce[E any](op Op[E], tc *engine.Thread, val E, slots []E, count *uint32, xchg, stage []E) (E, bool) {
	blocks := tc.NumBlocks()
	lanes := tc.NumLanes()

	temp := blockReduce(op, tc, val, xchg, stage)

	if blocks == 1 {
		return temp, tc.Lane() == 0
	}

	wrap := uint32(blocks - 1)
	last := false
	if tc.Lane() == 0 {
		slots[tc.Block()] = temp
		// The increment is the fence making the slot write visible to
		// whichever block observes the wrap value.
		last = atomicIncWrap(count, wrap) == wrap
	}
	last = tc.SyncOr(last)

	if last {
		temp = op.Identity()
		for i := tc.Lane(); i < blocks; i += lanes {
			temp = op.Fold(temp, slots[i])
		}
		// Second pass over the strided partials. Required whenever the grid
		// holds more blocks than the block holds lanes.
		temp = blockReduce(op, tc, temp, xchg, stage)
	}

	return temp, last && tc.Lane() == 0
}

// gridReduceAtomic runs the single-slot grid combination: after the slot is
// published (see publishSlot) every block folds its value in with a
// hardware-style atomic and increments the completion counter, wrapping at
// #blocks+1; the block observing the wrap value is last and reads the
// completed slot. O(1) device memory; add/min/max only. Block-collective.
func gridReduceAtomic[T Number](op Op[T], tc *engine.Thread, val T, slot *T, count *uint32, xchg, stage []T) (T, bool) {
	blocks := tc.NumBlocks()

	temp := blockReduce[T](op, tc, val, xchg, stage)

	if blocks == 1 {
		return temp, tc.Lane() == 0
	}

	wrap := uint32(blocks + 1)
	last := false
	if tc.Lane() == 0 {
		publishSlot(op, slot, count)
		atomicFold(op, slot, temp)
		last = atomicIncWrap(count, wrap) == wrap
		if last {
			temp = atomicLoad(slot)
		}
	}
	return temp, last
}
