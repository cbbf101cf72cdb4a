// Copyright 2026 Ember Compute Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package webgpu provides GPU offload for bulk array reductions.
//
// WebGPU is a cross-platform graphics and compute API; the bindings used
// here are zero-CGO and load wgpu_native at runtime. On platforms without
// the native library, New returns an error and IsAvailable reports false,
// so callers can fall back to the in-process engine:
//
//	gpu, err := webgpu.New()
//	if err != nil {
//	    // fall back to launch.Engine reductions
//	}
//	defer gpu.Release()
//
//	total, err := gpu.ReduceSum(samples)
package webgpu

import internalwebgpu "github.com/ember-hpc/ember/internal/backend/webgpu"

// Backend runs reduction dispatches on a WebGPU device.
type Backend = internalwebgpu.Backend

// New creates a WebGPU backend. Call Release when done to free GPU
// resources. Returns an error if WebGPU initialization fails.
func New() (*Backend, error) {
	return internalwebgpu.New()
}

// IsAvailable checks if WebGPU is available on the current system. Useful
// for graceful fallback to the in-process engine when no compatible GPU or
// driver is present.
func IsAvailable() bool {
	return internalwebgpu.IsAvailable()
}
