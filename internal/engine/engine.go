package engine

import (
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/ember-hpc/ember/internal/mempool"
)

// GroupWidth is the hardware-synchronous exchange width: the number of lanes
// that can trade register values in one butterfly round.
const GroupWidth = 32

// MaxGroups bounds the number of exchange groups per block, so a block holds
// at most GroupWidth*MaxGroups lanes.
const MaxGroups = 32

// Kernel is the body run once per execution context.
type Kernel func(tc *Thread)

// Capturable is implemented by host objects that are logically copied into a
// launch once per replica. The engine calls BeginLaunch on the host side
// before the launch is enqueued, FinishReplica on every lane after the
// kernel body returns (a block-collective call), and EndLaunch after all
// replicas have finished, before the launch's stream task completes.
type Capturable interface {
	BeginLaunch(info *LaunchInfo)
	FinishReplica(tc *Thread)
	EndLaunch(info *LaunchInfo)
}

// Config describes one launch.
type Config struct {
	Grid  Dim3
	Block Dim3
	// Stream to submit to; nil uses the engine's default stream.
	Stream *Stream
}

// Engine owns the execution streams and the allocator context shared by all
// launches.
type Engine struct {
	pools *mempool.Context

	mu      sync.Mutex
	def     *Stream
	streams []*Stream
	closed  bool
}

// Option configures an Engine.
type Option func(*Engine)

// WithPools makes the engine use an existing allocator context instead of
// constructing its own.
func WithPools(pools *mempool.Context) Option {
	return func(e *Engine) { e.pools = pools }
}

// New creates an engine with a default stream.
func New(opts ...Option) *Engine {
	e := &Engine{}
	for _, opt := range opts {
		opt(e)
	}
	if e.pools == nil {
		e.pools = mempool.NewContext()
	}
	e.def = newStream()
	e.streams = append(e.streams, e.def)
	return e
}

// Pools returns the engine's allocator context.
func (e *Engine) Pools() *mempool.Context { return e.pools }

// DefaultStream returns the stream used when a launch names none.
func (e *Engine) DefaultStream() *Stream { return e.def }

// NewStream creates an additional stream whose work overlaps the default
// stream's.
func (e *Engine) NewStream() *Stream {
	s := newStream()
	e.mu.Lock()
	e.streams = append(e.streams, s)
	e.mu.Unlock()
	return s
}

// Close drains and stops every stream. Launching after Close panics.
func (e *Engine) Close() {
	e.mu.Lock()
	streams := e.streams
	e.streams = nil
	e.closed = true
	e.mu.Unlock()
	for _, s := range streams {
		s.close()
	}
}

// Launch enqueues one kernel execution over the configured grid.
//
// The call returns as soon as the launch is submitted; captured objects have
// had their host-side setup performed by then, so results can be read (with
// an implied stream synchronization) at any later point. Every lane runs as
// its own goroutine: block barriers require all lanes of a block to be live
// at once, so lane fan-out is never pooled.
func (e *Engine) Launch(cfg Config, kernel Kernel, caps ...Capturable) error {
	if kernel == nil {
		return fmt.Errorf("engine: launch with nil kernel")
	}
	blocks := cfg.Grid.Size()
	lanes := cfg.Block.Size()
	if blocks == 0 || lanes == 0 {
		return fmt.Errorf("engine: empty launch topology %+v / %+v", cfg.Grid, cfg.Block)
	}
	if lanes > GroupWidth*MaxGroups {
		return fmt.Errorf("engine: block of %d lanes exceeds the %d-lane limit", lanes, GroupWidth*MaxGroups)
	}

	stream := cfg.Stream
	if stream == nil {
		stream = e.def
	}

	info := &LaunchInfo{
		Grid:   cfg.Grid,
		Block:  cfg.Block,
		Stream: stream,
		blocks: blocks,
		lanes:  lanes,
	}

	// Host-side setup happens synchronously so that result slots exist
	// before the caller can attempt a read.
	for _, c := range caps {
		c.BeginLaunch(info)
	}

	stream.submit(func() {
		var g errgroup.Group
		for b := 0; b < blocks; b++ {
			bs := &blockState{id: b, bar: newBarrier(lanes)}
			for lane := 0; lane < lanes; lane++ {
				tc := &Thread{info: info, block: bs, lane: lane}
				g.Go(func() error {
					kernel(tc)
					for _, c := range caps {
						c.FinishReplica(tc)
					}
					return nil
				})
			}
		}
		_ = g.Wait()
		for _, c := range caps {
			c.EndLaunch(info)
		}
	})
	return nil
}
