package engine

// Dim3 represents 3D grid or block dimensions.
type Dim3 struct {
	X, Y, Z int
}

// Dim is shorthand for a one-dimensional extent.
func Dim(x int) Dim3 { return Dim3{X: x, Y: 1, Z: 1} }

// Size returns the linear extent, or 0 if any axis is non-positive.
func (d Dim3) Size() int {
	if d.X <= 0 || d.Y <= 0 || d.Z <= 0 {
		return 0
	}
	return d.X * d.Y * d.Z
}

// LaunchInfo describes one launch: its topology and the stream it was
// submitted to. The engine creates exactly one LaunchInfo per launch, so its
// identity also identifies the launch to captured objects.
type LaunchInfo struct {
	Grid   Dim3
	Block  Dim3
	Stream *Stream

	blocks int
	lanes  int
}

// Blocks returns the number of blocks in the grid.
func (li *LaunchInfo) Blocks() int { return li.blocks }

// Lanes returns the number of lanes per block.
func (li *LaunchInfo) Lanes() int { return li.lanes }

// Replicas returns the total number of execution contexts in the launch.
func (li *LaunchInfo) Replicas() int { return li.blocks * li.lanes }

// blockState is the per-block shared state: identity plus the barrier the
// block's lanes rendezvous on.
type blockState struct {
	id  int
	bar *barrier
}

// Thread is one execution context's view of a launch. A Thread is valid
// only inside the kernel body and capture hooks of the lane it was created
// for; it must not escape the launch.
type Thread struct {
	info  *LaunchInfo
	block *blockState
	lane  int
}

// Lane returns this context's linear index within its block.
func (tc *Thread) Lane() int { return tc.lane }

// Block returns the linear index of this context's block within the grid.
func (tc *Thread) Block() int { return tc.block.id }

// NumLanes returns the number of lanes per block.
func (tc *Thread) NumLanes() int { return tc.info.lanes }

// NumBlocks returns the number of blocks in the grid.
func (tc *Thread) NumBlocks() int { return tc.info.blocks }

// Global returns this context's replica id, unique within the launch.
func (tc *Thread) Global() int { return tc.block.id*tc.info.lanes + tc.lane }

// Launch returns the launch this context belongs to.
func (tc *Thread) Launch() *LaunchInfo { return tc.info }

// Sync blocks until every lane of the block has arrived. Every lane must
// execute the same sequence of Sync and SyncOr calls.
func (tc *Thread) Sync() { tc.block.bar.wait(false) }

// SyncOr is Sync with a block-wide vote: it returns true for every lane if
// any lane passed true.
func (tc *Thread) SyncOr(pred bool) bool { return tc.block.bar.wait(pred) }
