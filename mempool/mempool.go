// Copyright 2026 Ember Compute Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package mempool exposes Ember's allocator context: typed free-list arenas
// for pinned host memory, plain device memory and zero-initialized device
// memory. A Context is constructed explicitly and handed to the engine with
// launch.WithPools; there are no process-wide singleton pools.
package mempool

import "github.com/ember-hpc/ember/internal/mempool"

// Kind identifies the arena a pool draws from.
type Kind = mempool.Kind

// Supported arenas.
const (
	Pinned       = mempool.Pinned
	Device       = mempool.Device
	DeviceZeroed = mempool.DeviceZeroed
)

// Pool is a free-list allocator over fixed-size slabs.
type Pool = mempool.Pool

// Context owns one pool per arena.
type Context = mempool.Context

// New creates a fresh allocator context with empty free lists.
func New() *Context {
	return mempool.NewContext()
}

// Alloc returns a typed slab of n elements from the pool. Allocation
// failure is fatal.
func Alloc[T any](p *Pool, n int) []T {
	return mempool.Alloc[T](p, n)
}

// Free hands a slab back to the pool. The caller must not touch s
// afterwards.
func Free[T any](p *Pool, s []T) {
	mempool.Free(p, s)
}
