package reduce

import (
	"sync"

	"github.com/ember-hpc/ember/internal/engine"
	"github.com/ember-hpc/ember/internal/mempool"
)

// launchState is the device-side state one accumulator owns for one launch:
// the grid combination buffers, the exchange scratch, the reserved pinned
// tally slot, and the replica fold arena. Exactly one launchState exists per
// (accumulator, launch) pair; it is created by BeginLaunch and torn down
// exactly once by EndLaunch.
type launchState[E any] struct {
	info *engine.LaunchInfo

	slots []E      // staged: one per block; atomic: a single shared slot
	count []uint32 // completion counter, zero-initialized
	xchg  []E      // butterfly exchange scratch, one slot per replica
	stage []E      // group staging scratch, MaxGroups per block
	out   *E       // pinned tally slot for this launch's final value

	// Fold arena: one slot per replica, indexed by global lane id. Each
	// replica folds its contributions here before the collective
	// combination runs.
	replicas []E
}

// protocol selects the grid combination strategy for an accumulator.
type protocol[E any] interface {
	newSlots(pools *mempool.Context, blocks int) []E
	freeSlots(pools *mempool.Context, slots []E)
	combine(op Op[E], tc *engine.Thread, val E, ls *launchState[E]) (E, bool)
}

// stagedProtocol stages one slot per block; O(#blocks) device memory, works
// for every operator including location tracking.
type stagedProtocol[E any] struct{}

func (stagedProtocol[E]) newSlots(pools *mempool.Context, blocks int) []E {
	return mempool.Alloc[E](pools.Device, blocks)
}

func (stagedProtocol[E]) freeSlots(pools *mempool.Context, slots []E) {
	mempool.Free(pools.Device, slots)
}

func (stagedProtocol[E]) combine(op Op[E], tc *engine.Thread, val E, ls *launchState[E]) (E, bool) {
	block := tc.Block()
	lanes := tc.NumLanes()
	xchg := ls.xchg[block*lanes : (block+1)*lanes]
	stage := ls.stage[block*engine.MaxGroups : (block+1)*engine.MaxGroups]
	return gridReduce(op, tc, val, ls.slots, &ls.count[0], xchg, stage)
}

// atomicProtocol folds every block into a single zero-initialized slot with
// compare-and-swap atomics; O(1) device memory, add/min/max only.
type atomicProtocol[T Number] struct{}

func (atomicProtocol[T]) newSlots(pools *mempool.Context, _ int) []T {
	return mempool.Alloc[T](pools.DeviceZeroed, 1)
}

func (atomicProtocol[T]) freeSlots(pools *mempool.Context, slots []T) {
	mempool.Free(pools.DeviceZeroed, slots)
}

func (atomicProtocol[T]) combine(op Op[T], tc *engine.Thread, val T, ls *launchState[T]) (T, bool) {
	block := tc.Block()
	lanes := tc.NumLanes()
	xchg := ls.xchg[block*lanes : (block+1)*lanes]
	stage := ls.stage[block*engine.MaxGroups : (block+1)*engine.MaxGroups]
	return gridReduceAtomic(op, tc, val, &ls.slots[0], &ls.count[0], xchg, stage)
}

// Accumulator combines one scalar across launches. The zero value is not
// usable; construct with NewStaged or NewAtomic and capture it in launches
// by passing it to Engine.Launch.
//
// The root accumulator owns the tally and the host-local value. Each launch
// it is captured by gets its own launchState, so repeated, overlapping and
// multi-stream launches coexist; their results stay in separate tally slots
// until the next Get folds them.
type Accumulator[E any] struct {
	op    Op[E]
	proto protocol[E]
	pools *mempool.Context
	tally *tally[E]

	mu       sync.Mutex // guards value and launches
	value    E
	launches map[*engine.LaunchInfo]*launchState[E]
}

// NewStaged creates an accumulator using the staged grid protocol.
func NewStaged[E any](eng *engine.Engine, op Op[E], initial E) *Accumulator[E] {
	return &Accumulator[E]{
		op:       op,
		proto:    stagedProtocol[E]{},
		pools:    eng.Pools(),
		tally:    newTally[E](eng.Pools()),
		value:    initial,
		launches: make(map[*engine.LaunchInfo]*launchState[E]),
	}
}

// NewAtomic creates an accumulator using the single-slot atomic protocol.
// Valid for add/min/max operators only.
func NewAtomic[T Number](eng *engine.Engine, op Op[T], initial T) *Accumulator[T] {
	return &Accumulator[T]{
		op:       op,
		proto:    atomicProtocol[T]{},
		pools:    eng.Pools(),
		tally:    newTally[T](eng.Pools()),
		value:    initial,
		launches: make(map[*engine.LaunchInfo]*launchState[T]),
	}
}

// BeginLaunch implements engine.Capturable. It performs the host-side device
// setup for one launch: allocates the combination buffers and scratch,
// reserves a pinned tally slot on the launch's stream, and builds the
// replica fold arena seeded with the operator's identity.
func (a *Accumulator[E]) BeginLaunch(info *engine.LaunchInfo) {
	blocks := info.Blocks()
	lanes := info.Lanes()

	ls := &launchState[E]{
		info:     info,
		slots:    a.proto.newSlots(a.pools, blocks),
		count:    mempool.Alloc[uint32](a.pools.DeviceZeroed, 1),
		xchg:     mempool.Alloc[E](a.pools.Device, blocks*lanes),
		stage:    mempool.Alloc[E](a.pools.Device, blocks*engine.MaxGroups),
		out:      a.tally.reserve(info.Stream),
		replicas: make([]E, info.Replicas()),
	}
	for i := range ls.replicas {
		ls.replicas[i] = a.op.Identity()
	}

	a.mu.Lock()
	a.launches[info] = ls
	a.mu.Unlock()
}

// FinishReplica implements engine.Capturable. Block-collective: it folds the
// calling lane's arena slot through the block and grid protocols, and the
// elected context writes the launch's final value into the tally slot.
func (a *Accumulator[E]) FinishReplica(tc *engine.Thread) {
	ls := a.state(tc.Launch())
	val := ls.replicas[tc.Global()]
	final, elected := a.proto.combine(a.op, tc, val, ls)
	if elected {
		*ls.out = final
	}
}

// EndLaunch implements engine.Capturable. It tears down the device buffers
// exactly once; the pinned tally slot survives until the next drain.
func (a *Accumulator[E]) EndLaunch(info *engine.LaunchInfo) {
	a.mu.Lock()
	ls := a.launches[info]
	delete(a.launches, info)
	a.mu.Unlock()
	if ls == nil {
		return
	}

	a.proto.freeSlots(a.pools, ls.slots)
	mempool.Free(a.pools.DeviceZeroed, ls.count)
	mempool.Free(a.pools.Device, ls.xchg)
	mempool.Free(a.pools.Device, ls.stage)
}

func (a *Accumulator[E]) state(info *engine.LaunchInfo) *launchState[E] {
	a.mu.Lock()
	defer a.mu.Unlock()
	ls := a.launches[info]
	if ls == nil {
		panic("reduce: accumulator was not captured by this launch")
	}
	return ls
}

// Replica returns the calling lane's view of the accumulator: a handle that
// folds into this replica's private arena slot. Valid only inside the
// kernel body of a launch that captured the accumulator.
func (a *Accumulator[E]) Replica(tc *engine.Thread) *Replica[E] {
	ls := a.state(tc.Launch())
	return &Replica[E]{op: a.op, slot: &ls.replicas[tc.Global()]}
}

// Combine folds v into the host-local value. Host side only; inside kernels
// use the replica view instead.
func (a *Accumulator[E]) Combine(v E) {
	a.mu.Lock()
	a.value = a.op.Fold(a.value, v)
	a.mu.Unlock()
}

// Get returns the combined value. If the tally holds pending slots it drains
// them first, which synchronizes the streams involved; once drained, Get is
// idempotent and returns the already-folded scalar.
func (a *Accumulator[E]) Get() E {
	drained := a.tally.drain()
	a.mu.Lock()
	defer a.mu.Unlock()
	for _, v := range drained {
		a.value = a.op.Fold(a.value, v)
	}
	return a.value
}

// Close releases the tally storage without reading it. The accumulator must
// not be used afterwards.
func (a *Accumulator[E]) Close() {
	a.tally.release()
}

// Replica is one replica's fold handle. Combining through it is not
// synchronized: each replica owns its slot exclusively.
type Replica[E any] struct {
	op     Op[E]
	slot   *E
	parent *Replica[E]
	local  E
}

// Combine folds v into this replica's partial value.
func (r *Replica[E]) Combine(v E) {
	*r.slot = r.op.Fold(*r.slot, v)
}

// Value returns the current partial value.
func (r *Replica[E]) Value() E { return *r.slot }

// Fork creates a nested child handle seeded with the identity. The child
// must be Closed before its parent's replica finishes; Close folds the
// child's partial into the parent, forming an in-kernel fold tree that feeds
// one grid-visible location.
func (r *Replica[E]) Fork() *Replica[E] {
	c := &Replica[E]{op: r.op, parent: r, local: r.op.Identity()}
	c.slot = &c.local
	return c
}

// Close folds a forked child into its parent. Closing twice folds the
// identity, a no-op. Closing a non-forked replica handle does nothing; the
// engine folds arena slots upward when the replica finishes.
func (r *Replica[E]) Close() {
	if r.parent == nil {
		return
	}
	r.parent.Combine(r.local)
	r.local = r.op.Identity()
	r.parent = nil
}
