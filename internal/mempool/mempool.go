// Package mempool implements the free-list memory arenas that back the
// reduction subsystem: pinned host slabs for result delivery, plain device
// slabs for staging arrays and exchange scratch, and zero-initialized device
// slabs for completion counters and atomic slots.
package mempool

import (
	"fmt"
	"sync"
	"unsafe"
)

// Kind identifies the arena a pool draws from.
type Kind int

// Supported arenas.
const (
	Pinned Kind = iota
	Device
	DeviceZeroed
)

// String returns a human-readable arena name.
func (k Kind) String() string {
	switch k {
	case Pinned:
		return "pinned"
	case Device:
		return "device"
	case DeviceZeroed:
		return "device-zeroed"
	default:
		return "unknown"
	}
}

// Pool is a free-list allocator over fixed-size slabs.
//
// Slabs are recycled by exact word count. A slab handed back via Free must
// never be used by the caller afterwards; there is no reuse guarantee beyond
// simple allocate/free.
type Pool struct {
	kind Kind

	mu   sync.Mutex
	free map[int][][]uint64 // word count -> recycled slabs

	// Statistics
	allocated uint64
	recycled  uint64
}

func newPool(kind Kind) *Pool {
	return &Pool{
		kind: kind,
		free: make(map[int][][]uint64),
	}
}

// Kind reports the arena this pool draws from.
func (p *Pool) Kind() Kind { return p.kind }

// Stats returns the number of fresh allocations and free-list hits.
func (p *Pool) Stats() (allocated, recycled uint64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.allocated, p.recycled
}

// take returns a recycled or freshly made slab of the given word count.
// Slabs are uint64-backed so every element type up to 8 bytes is aligned
// for atomic access.
func (p *Pool) take(words int) []uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()

	if list := p.free[words]; len(list) > 0 {
		slab := list[len(list)-1]
		p.free[words] = list[:len(list)-1]
		p.recycled++
		if p.kind == DeviceZeroed {
			clear(slab)
		}
		return slab
	}

	p.allocated++
	return make([]uint64, words)
}

func (p *Pool) put(slab []uint64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.free[len(slab)] = append(p.free[len(slab)], slab)
}

// Context owns one pool per arena. It is constructed explicitly and threaded
// through the components that need it; there are no process-wide singletons.
type Context struct {
	Pinned       *Pool
	Device       *Pool
	DeviceZeroed *Pool
}

// NewContext creates a fresh allocator context with empty free lists.
func NewContext() *Context {
	return &Context{
		Pinned:       newPool(Pinned),
		Device:       newPool(Device),
		DeviceZeroed: newPool(DeviceZeroed),
	}
}

// Alloc returns a typed slab of n elements from the pool. Slabs from the
// zeroed arena arrive with every byte cleared. Allocation failure is fatal:
// an impossible request panics and an out-of-memory condition aborts the
// process with no fallback.
func Alloc[T any](p *Pool, n int) []T {
	if n <= 0 {
		panic(fmt.Sprintf("mempool: invalid allocation of %d elements from %s pool", n, p.kind))
	}
	var zero T
	elem := int(unsafe.Sizeof(zero))
	words := (n*elem + 7) / 8
	slab := p.take(words)
	return unsafe.Slice((*T)(unsafe.Pointer(&slab[0])), n)
}

// Free hands a slab back to the pool. The caller must not touch s afterwards.
func Free[T any](p *Pool, s []T) {
	if len(s) == 0 {
		return
	}
	var zero T
	elem := int(unsafe.Sizeof(zero))
	words := (len(s)*elem + 7) / 8
	p.put(unsafe.Slice((*uint64)(unsafe.Pointer(&s[0])), words))
}
