// Copyright 2026 Ember Compute Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package launch exposes Ember's execution engine: grids of blocks of lanes
// running a kernel, submitted to in-order asynchronous streams.
//
// Example:
//
//	import (
//	    "github.com/ember-hpc/ember/launch"
//	    "github.com/ember-hpc/ember/reduce"
//	)
//
//	func main() {
//	    eng := launch.New()
//	    defer eng.Close()
//
//	    sum := reduce.Sum(eng, 0.0)
//	    _ = eng.Launch(launch.Config{Grid: launch.Dim(8), Block: launch.Dim(64)},
//	        func(tc *launch.Thread) {
//	            sum.Replica(tc).Combine(1.0)
//	        }, sum)
//
//	    total := sum.Get() // 512
//	    _ = total
//	}
package launch

import "github.com/ember-hpc/ember/internal/engine"

// GroupWidth is the hardware-synchronous exchange width of the engine.
const GroupWidth = engine.GroupWidth

// MaxGroups bounds the exchange groups per block; a block holds at most
// GroupWidth*MaxGroups lanes.
const MaxGroups = engine.MaxGroups

// Engine owns streams and the allocator context shared by launches.
type Engine = engine.Engine

// Stream is an in-order asynchronous task queue.
type Stream = engine.Stream

// Config describes one launch: grid and block topology plus the target
// stream (nil for the engine's default stream).
type Config = engine.Config

// Dim3 represents 3D grid or block dimensions.
type Dim3 = engine.Dim3

// Thread is one execution context's view of a launch.
type Thread = engine.Thread

// Kernel is the body run once per execution context.
type Kernel = engine.Kernel

// Capturable is implemented by host objects copied into a launch once per
// replica, such as reduction accumulators.
type Capturable = engine.Capturable

// LaunchInfo identifies one launch and reports its topology.
type LaunchInfo = engine.LaunchInfo

// Option configures an Engine.
type Option = engine.Option

// New creates an engine with a default stream.
func New(opts ...Option) *Engine {
	return engine.New(opts...)
}

// WithPools makes the engine use an existing allocator context.
var WithPools = engine.WithPools

// Dim is shorthand for a one-dimensional extent.
func Dim(x int) Dim3 {
	return engine.Dim(x)
}
