//go:build !windows

// Package webgpu offloads bulk array reductions to the GPU through WebGPU.
// On platforms where the wgpu_native bindings are unavailable the backend
// compiles to stubs that report unavailability.
package webgpu

import "errors"

// ErrUnavailable is returned when the platform has no WebGPU bindings.
var ErrUnavailable = errors.New("webgpu: not available on this platform")

// Backend runs reduction dispatches on a WebGPU device.
type Backend struct{}

// New reports that WebGPU is unavailable on this platform.
func New() (*Backend, error) {
	return nil, ErrUnavailable
}

// IsAvailable reports whether WebGPU can be initialized.
func IsAvailable() bool { return false }

// Release frees backend resources.
func (b *Backend) Release() {}

// Name returns the backend name.
func (b *Backend) Name() string { return "WebGPU (unavailable)" }

// ReduceSum sums input on the GPU.
func (b *Backend) ReduceSum(input []float32) (float32, error) {
	return 0, ErrUnavailable
}

// ReduceMin returns the minimum of input on the GPU.
func (b *Backend) ReduceMin(input []float32) (float32, error) {
	return 0, ErrUnavailable
}

// ReduceMax returns the maximum of input on the GPU.
func (b *Backend) ReduceMax(input []float32) (float32, error) {
	return 0, ErrUnavailable
}
