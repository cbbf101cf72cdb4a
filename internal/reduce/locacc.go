package reduce

import "github.com/ember-hpc/ember/internal/engine"

// LocAccumulator tracks an extremum together with the index of the context
// that produced it. Location tracking rides the staged protocol; the atomic
// protocol cannot carry (value, index) pairs.
type LocAccumulator[T Number] struct {
	*Accumulator[LocValue[T]]
}

// NewMinLoc creates a min-with-location accumulator.
func NewMinLoc[T Number](eng *engine.Engine, initial T, initialIdx int) *LocAccumulator[T] {
	return &LocAccumulator[T]{
		NewStaged[LocValue[T]](eng, MinLocOp[T]{}, LocValue[T]{Val: initial, Idx: initialIdx}),
	}
}

// NewMaxLoc creates a max-with-location accumulator.
func NewMaxLoc[T Number](eng *engine.Engine, initial T, initialIdx int) *LocAccumulator[T] {
	return &LocAccumulator[T]{
		NewStaged[LocValue[T]](eng, MaxLocOp[T]{}, LocValue[T]{Val: initial, Idx: initialIdx}),
	}
}

// Combine folds (v, idx) into the host-local value.
func (l *LocAccumulator[T]) Combine(v T, idx int) {
	l.Accumulator.Combine(LocValue[T]{Val: v, Idx: idx})
}

// Replica returns the calling lane's fold handle.
func (l *LocAccumulator[T]) Replica(tc *engine.Thread) *LocReplica[T] {
	return &LocReplica[T]{r: l.Accumulator.Replica(tc)}
}

// Get returns the combined extremum, draining the tally if needed.
func (l *LocAccumulator[T]) Get() T {
	return l.Accumulator.Get().Val
}

// GetLoc returns the index paired with the combined extremum.
func (l *LocAccumulator[T]) GetLoc() int {
	return l.Accumulator.Get().Idx
}

// LocReplica is one replica's fold handle for a location accumulator.
type LocReplica[T Number] struct {
	r *Replica[LocValue[T]]
}

// Combine folds (v, idx) into this replica's partial value.
func (lr *LocReplica[T]) Combine(v T, idx int) {
	lr.r.Combine(LocValue[T]{Val: v, Idx: idx})
}

// Fork creates a nested child handle; see Replica.Fork.
func (lr *LocReplica[T]) Fork() *LocReplica[T] {
	return &LocReplica[T]{r: lr.r.Fork()}
}

// Close folds a forked child into its parent; see Replica.Close.
func (lr *LocReplica[T]) Close() {
	lr.r.Close()
}
