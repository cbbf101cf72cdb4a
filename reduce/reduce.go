// Copyright 2026 Ember Compute Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package reduce provides scalar reduction accumulators for Ember launches:
// sum, min, max and min/max-with-location, combined race-free across every
// execution context of a kernel launch.
//
// An accumulator is constructed on the host, captured by any number of
// launches (pass it to Engine.Launch), and read back with Get, which
// synchronizes the streams involved and folds every launch's contribution
// exactly once. Inside a kernel, lanes fold through their replica view:
//
//	sum := reduce.Sum(eng, 0.0)
//	_ = eng.Launch(cfg, func(tc *launch.Thread) {
//	    r := sum.Replica(tc)
//	    r.Combine(work(tc.Global()))
//	}, sum)
//	total := sum.Get()
//
// Staged accumulators (Sum, Min, ...) combine blocks through a per-block
// slot array and support every operator. Atomic accumulators (SumAtomic,
// MinAtomic, MaxAtomic) fold blocks into a single slot with atomics, using
// O(1) device memory; location tracking is staged-only.
package reduce

import (
	"github.com/ember-hpc/ember/internal/engine"
	ireduce "github.com/ember-hpc/ember/internal/reduce"
)

// Number is the set of element types the operators support.
type Number = ireduce.Number

// Accumulator combines one scalar across launches; see the package example.
type Accumulator[E any] = ireduce.Accumulator[E]

// Replica is one replica's fold handle inside a kernel.
type Replica[E any] = ireduce.Replica[E]

// LocAccumulator tracks an extremum and the index that produced it.
type LocAccumulator[T Number] = ireduce.LocAccumulator[T]

// LocReplica is one replica's fold handle for a location accumulator.
type LocReplica[T Number] = ireduce.LocReplica[T]

// LocValue pairs a value with the index of the context that produced it.
type LocValue[T Number] = ireduce.LocValue[T]

// Sum creates a staged sum accumulator starting from initial.
func Sum[T Number](eng *engine.Engine, initial T) *Accumulator[T] {
	return ireduce.NewStaged[T](eng, ireduce.SumOp[T]{}, initial)
}

// SumAtomic creates a sum accumulator using the single-slot atomic protocol.
func SumAtomic[T Number](eng *engine.Engine, initial T) *Accumulator[T] {
	return ireduce.NewAtomic(eng, ireduce.SumOp[T]{}, initial)
}

// Min creates a staged minimum accumulator starting from initial.
func Min[T Number](eng *engine.Engine, initial T) *Accumulator[T] {
	return ireduce.NewStaged[T](eng, ireduce.MinOp[T]{}, initial)
}

// MinAtomic creates a minimum accumulator using the atomic protocol.
func MinAtomic[T Number](eng *engine.Engine, initial T) *Accumulator[T] {
	return ireduce.NewAtomic(eng, ireduce.MinOp[T]{}, initial)
}

// Max creates a staged maximum accumulator starting from initial.
func Max[T Number](eng *engine.Engine, initial T) *Accumulator[T] {
	return ireduce.NewStaged[T](eng, ireduce.MaxOp[T]{}, initial)
}

// MaxAtomic creates a maximum accumulator using the atomic protocol.
func MaxAtomic[T Number](eng *engine.Engine, initial T) *Accumulator[T] {
	return ireduce.NewAtomic(eng, ireduce.MaxOp[T]{}, initial)
}

// MinLoc creates a min-with-location accumulator starting from
// (initial, initialIdx).
func MinLoc[T Number](eng *engine.Engine, initial T, initialIdx int) *LocAccumulator[T] {
	return ireduce.NewMinLoc(eng, initial, initialIdx)
}

// MaxLoc creates a max-with-location accumulator starting from
// (initial, initialIdx).
func MaxLoc[T Number](eng *engine.Engine, initial T, initialIdx int) *LocAccumulator[T] {
	return ireduce.NewMaxLoc(eng, initial, initialIdx)
}
