//go:build windows

package webgpu

import (
	"sync"

	"github.com/go-webgpu/webgpu/wgpu"
)

const maxPooledPerClass = 16

// bufferPool recycles storage buffers between dispatches. Buffers are
// bucketed by rounded-up size so a reduction over a slightly different input
// length still hits the pool.
type bufferPool struct {
	device *wgpu.Device

	mu   sync.Mutex
	free map[uint64][]*wgpu.Buffer

	hits   uint64
	misses uint64
}

func newBufferPool(device *wgpu.Device) *bufferPool {
	return &bufferPool{
		device: device,
		free:   make(map[uint64][]*wgpu.Buffer),
	}
}

// roundSize rounds up to the next power of two, 256 bytes minimum.
func roundSize(size uint64) uint64 {
	r := uint64(256)
	for r < size {
		r <<= 1
	}
	return r
}

// acquire returns a storage buffer of at least size bytes, usable as a
// compute input or output and as a copy source.
func (p *bufferPool) acquire(size uint64) (*wgpu.Buffer, uint64) {
	rounded := roundSize(size)

	p.mu.Lock()
	if bufs := p.free[rounded]; len(bufs) > 0 {
		buf := bufs[len(bufs)-1]
		p.free[rounded] = bufs[:len(bufs)-1]
		p.hits++
		p.mu.Unlock()
		return buf, rounded
	}
	p.misses++
	p.mu.Unlock()

	buf := p.device.CreateBuffer(&wgpu.BufferDescriptor{
		Usage: wgpu.BufferUsageStorage | wgpu.BufferUsageCopySrc | wgpu.BufferUsageCopyDst,
		Size:  rounded,
	})
	return buf, rounded
}

// release hands a buffer back for reuse. rounded must be the size acquire
// reported for it.
func (p *bufferPool) release(buf *wgpu.Buffer, rounded uint64) {
	p.mu.Lock()
	if len(p.free[rounded]) < maxPooledPerClass {
		p.free[rounded] = append(p.free[rounded], buf)
		p.mu.Unlock()
		return
	}
	p.mu.Unlock()
	buf.Release()
}

// clear releases every pooled buffer.
func (p *bufferPool) clear() {
	p.mu.Lock()
	defer p.mu.Unlock()
	for size, bufs := range p.free {
		for _, buf := range bufs {
			buf.Release()
		}
		delete(p.free, size)
	}
}

// stats reports pool hit and miss counts.
func (p *bufferPool) stats() (hits, misses uint64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.hits, p.misses
}
