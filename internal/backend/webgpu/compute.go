//go:build windows

package webgpu

import (
	"encoding/binary"
	"fmt"
	"math"
	"unsafe"

	"github.com/go-webgpu/webgpu/wgpu"
)

// compileShader compiles WGSL shader code into a ShaderModule. Results are
// cached in the Backend's shaders map.
func (b *Backend) compileShader(name, code string) *wgpu.ShaderModule {
	b.mu.RLock()
	if shader, exists := b.shaders[name]; exists {
		b.mu.RUnlock()
		return shader
	}
	b.mu.RUnlock()

	shader := b.device.CreateShaderModuleWGSL(code)

	b.mu.Lock()
	b.shaders[name] = shader
	b.mu.Unlock()

	return shader
}

// getOrCreatePipeline returns a cached ComputePipeline or creates a new one.
func (b *Backend) getOrCreatePipeline(name string, shader *wgpu.ShaderModule) *wgpu.ComputePipeline {
	b.mu.RLock()
	if pipeline, exists := b.pipelines[name]; exists {
		b.mu.RUnlock()
		return pipeline
	}
	b.mu.RUnlock()

	// Auto layout (nil layout)
	pipeline := b.device.CreateComputePipelineSimple(nil, shader, "main")

	b.mu.Lock()
	b.pipelines[name] = pipeline
	b.mu.Unlock()

	return pipeline
}

// createBuffer creates a storage buffer and uploads initial data through
// MappedAtCreation.
func (b *Backend) createBuffer(data []byte, usage wgpu.BufferUsage) *wgpu.Buffer {
	size := uint64(len(data))

	buffer := b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Usage:            usage,
		Size:             size,
		MappedAtCreation: wgpu.True,
	})

	mappedPtr := buffer.GetMappedRange(0, size)
	mappedSlice := unsafe.Slice((*byte)(mappedPtr), size)
	copy(mappedSlice, data)
	buffer.Unmap()

	return buffer
}

// createUniformBuffer creates a uniform buffer with 16-byte alignment.
func (b *Backend) createUniformBuffer(data []byte) *wgpu.Buffer {
	size := uint64(len(data))
	alignedSize := (size + 15) &^ 15

	buffer := b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Usage:            wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
		Size:             alignedSize,
		MappedAtCreation: wgpu.True,
	})

	mappedPtr := buffer.GetMappedRange(0, alignedSize)
	mappedSlice := unsafe.Slice((*byte)(mappedPtr), alignedSize)
	copy(mappedSlice, data)
	buffer.Unmap()

	return buffer
}

// readBuffer reads data back from a GPU buffer through a staging buffer,
// since storage buffers cannot be mapped directly.
func (b *Backend) readBuffer(srcBuffer *wgpu.Buffer, size uint64) ([]byte, error) {
	stagingBuffer := b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Usage: wgpu.BufferUsageMapRead | wgpu.BufferUsageCopyDst,
		Size:  size,
	})
	defer stagingBuffer.Release()

	encoder := b.device.CreateCommandEncoder(nil)
	encoder.CopyBufferToBuffer(srcBuffer, 0, stagingBuffer, 0, size)
	cmdBuffer := encoder.Finish(nil)
	b.queue.Submit(cmdBuffer)

	err := stagingBuffer.MapAsync(b.device, wgpu.MapModeRead, 0, size)
	if err != nil {
		return nil, fmt.Errorf("failed to map staging buffer: %w", err)
	}

	mappedPtr := stagingBuffer.GetMappedRange(0, size)
	mappedSlice := unsafe.Slice((*byte)(mappedPtr), size)
	result := make([]byte, size)
	copy(result, mappedSlice)

	stagingBuffer.Unmap()

	return result, nil
}

// runReduce dispatches one tree-reduction pass producing a partial per
// workgroup, reads the partials back, and folds them on the host.
func (b *Backend) runReduce(name, shaderCode string, input []float32, identity float32, fold func(a, v float32) float32) (float32, error) {
	if len(input) == 0 {
		return identity, nil
	}

	shader := b.compileShader(name, shaderCode)
	pipeline := b.getOrCreatePipeline(name, shader)

	inputBytes := unsafe.Slice((*byte)(unsafe.Pointer(&input[0])), len(input)*4)
	inputBuf := b.createBuffer(inputBytes, wgpu.BufferUsageStorage|wgpu.BufferUsageCopySrc)
	defer inputBuf.Release()

	workgroups := (len(input) + workgroupSize - 1) / workgroupSize
	partialsSize := uint64(workgroups) * 4
	partialsBuf, partialsRounded := b.bufferPool.acquire(partialsSize)
	defer b.bufferPool.release(partialsBuf, partialsRounded)

	params := make([]byte, 16)
	binary.LittleEndian.PutUint32(params[0:4], uint32(len(input)))
	paramsBuf := b.createUniformBuffer(params)
	defer paramsBuf.Release()

	bindGroupLayout := pipeline.GetBindGroupLayout(0)
	bindGroup := b.device.CreateBindGroupSimple(bindGroupLayout, []wgpu.BindGroupEntry{
		wgpu.BufferBindingEntry(0, inputBuf, 0, uint64(len(inputBytes))),
		wgpu.BufferBindingEntry(1, partialsBuf, 0, partialsSize),
		wgpu.BufferBindingEntry(2, paramsBuf, 0, 16),
	})
	defer bindGroup.Release()

	encoder := b.device.CreateCommandEncoder(nil)
	computePass := encoder.BeginComputePass(nil)
	computePass.SetPipeline(pipeline)
	computePass.SetBindGroup(0, bindGroup, nil)
	computePass.DispatchWorkgroups(uint32(workgroups), 1, 1)
	computePass.End()

	cmdBuffer := encoder.Finish(nil)
	b.queue.Submit(cmdBuffer)

	partialBytes, err := b.readBuffer(partialsBuf, partialsSize)
	if err != nil {
		return identity, err
	}

	result := identity
	for i := 0; i < workgroups; i++ {
		bits := binary.LittleEndian.Uint32(partialBytes[i*4 : i*4+4])
		result = fold(result, math.Float32frombits(bits))
	}
	return result, nil
}

// ReduceSum sums input on the GPU.
func (b *Backend) ReduceSum(input []float32) (float32, error) {
	return b.runReduce("reduce_sum", sumShader, input, 0,
		func(a, v float32) float32 { return a + v })
}

// ReduceMin returns the minimum of input on the GPU. Empty input yields +inf.
func (b *Backend) ReduceMin(input []float32) (float32, error) {
	return b.runReduce("reduce_min", minShader, input, float32(math.Inf(1)),
		func(a, v float32) float32 {
			if v < a {
				return v
			}
			return a
		})
}

// ReduceMax returns the maximum of input on the GPU. Empty input yields -inf.
func (b *Backend) ReduceMax(input []float32) (float32, error) {
	return b.runReduce("reduce_max", maxShader, input, float32(math.Inf(-1)),
		func(a, v float32) float32 {
			if v > a {
				return v
			}
			return a
		})
}
