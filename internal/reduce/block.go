package reduce

import "github.com/ember-hpc/ember/internal/engine"

// exchange emulates a register exchange: every lane of the block offers v
// and reads lane src's offering. All lanes must call it, in step, with the
// same xchg slice; the two barriers keep write and read phases apart. Lanes
// whose partner is out of range read back their own value.
func exchange[E any](tc *engine.Thread, xchg []E, v E, src int) E {
	xchg[tc.Lane()] = v
	tc.Sync()
	rhs := v
	if src >= 0 && src < len(xchg) {
		rhs = xchg[src]
	}
	tc.Sync()
	return rhs
}

// exchangeXor exchanges with the lane whose index differs by stride, the
// butterfly partner pattern.
func exchangeXor[E any](tc *engine.Thread, xchg []E, v E, stride int) E {
	return exchange(tc, xchg, v, tc.Lane()^stride)
}

// blockReduce combines every lane's value into one, returned in lane 0.
// Other lanes return an unspecified partial. Block-collective: every lane
// must call it with its own value.
//
// Group-width-aligned blocks run a pure butterfly. Irregular trailing
// populations check partner existence each round so a missing partner's
// value is never double counted. Blocks spanning several exchange groups
// stage each group's lane-0 result into the stage scratch, then group 0
// re-runs the butterfly over the staged values.
func blockReduce[E any](op Op[E], tc *engine.Thread, val E, xchg, stage []E) E {
	lanes := tc.NumLanes()
	lane := tc.Lane()
	group := lane / engine.GroupWidth
	groupLane := lane % engine.GroupWidth

	temp := val

	if lanes%engine.GroupWidth == 0 {
		for stride := 1; stride < engine.GroupWidth; stride *= 2 {
			rhs := exchangeXor(tc, xchg, temp, stride)
			temp = op.Fold(temp, rhs)
		}
	} else {
		for stride := 1; stride < engine.GroupWidth; stride *= 2 {
			src := lane ^ stride
			rhs := exchange(tc, xchg, temp, src)
			// Only fold partners that exist.
			if src < lanes {
				temp = op.Fold(temp, rhs)
			}
		}
	}

	if lanes > engine.GroupWidth {
		if groupLane == 0 {
			stage[group] = temp
		}
		tc.Sync()

		// Group 0 reduces the per-group values. Every lane still drives
		// the exchange rounds so the barrier sequence stays uniform.
		var folded E
		if group == 0 {
			if groupLane*engine.GroupWidth < lanes {
				folded = stage[groupLane]
			} else {
				folded = op.Identity()
			}
		}
		for stride := 1; stride < engine.GroupWidth; stride *= 2 {
			rhs := exchangeXor(tc, xchg, folded, stride)
			if group == 0 {
				folded = op.Fold(folded, rhs)
			}
		}
		if group == 0 {
			temp = folded
		}
		tc.Sync()
	}

	return temp
}
