// Copyright 2025 go-highway Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package matmul

import (
	"github.com/HaibinLai/mini-llama/hwy/contrib/quant"
	"k8s.io/klog/v2"
)

// MatMul is the single public entry point for this package: it computes
// C = A * B^T, where A is M x K and B is N x K (both row-major, K last -
// the PyTorch weight layout), and returns whether it found a kernel for
// the requested (A.Type, B.Type) pair. C is always dense f32 and is left
// untouched on a false return.
//
// Supported pairs:
//   - dense x dense, same type: f32xf32, f16xf16, bf16xbf16
//   - quantized A x q8_0 B: {q8_0, q4_0, q5_0, iq4_nl} x q8_0
//
// A always carries the kernel family for the quantized path; B must be
// q8_0 in every quantized row, including when A is itself q8_0. There is
// no f32-times-quantized row: a dense operand that needs dotting against
// a quantized one must be quantized by the caller (quant.QuantizeQ8_0)
// before calling MatMul. Any other pair - including that f32xquantized
// mismatch - is an unsupported configuration: MatMul returns false rather
// than panicking, since the caller may legitimately probe for a kernel
// before falling back to a generic path.
//
// A non-nil params.Pool with params.Nth > 1 enables the parallel path: the
// dense schedulers start Nth goroutines of their own that coordinate
// through the pool's Barrier/ChunkSet/ChunkAdd, and the quantized
// scheduler splits rows across the pool's workers with ParallelFor.
// MatMul is called once, from one goroutine; params.Ith is not read. Pass
// KernelParams{} (Nth<=1, Pool nil) to always run single-threaded.
func MatMul(params KernelParams, m, n, k int, a, b, c MatrixView) bool {
	debugAssert(m >= 0 && n >= 0 && k >= 0, "negative dimension")
	if c.Type != TypeF32 {
		klog.V(2).Infof("matmul: unsupported result type %v, want f32", c.Type)
		return false
	}
	if m == 0 || n == 0 {
		return true
	}
	debugAssert(len(c.F32) >= m*c.Stride, "C buffer too short for m*ldc")

	nth := params.Nth
	if nth < 1 {
		nth = 1
	}

	switch {
	case a.Type == TypeF32 && b.Type == TypeF32:
		debugAssert(len(a.F32) >= m*a.Stride, "A buffer too short for m*lda")
		debugAssert(len(b.F32) >= n*b.Stride, "B buffer too short for n*ldb")
		shape, ok := TileShapeFor(m, n, nth)
		if !ok {
			klog.V(2).Infof("matmul: no tile shape for dense f32xf32 m=%d nth=%d", m, nth)
			return false
		}
		klog.V(2).Infof("matmul: dense f32xf32 m=%d n=%d k=%d nth=%d", m, n, k, nth)
		scheduleDenseF32(params.Pool, nth, a.F32, b.F32, c.F32, m, n, k, a.Stride, b.Stride, c.Stride, shape)
		return true

	case a.Type == TypeF16 && b.Type == TypeF16:
		debugAssert(len(a.F16) >= m*a.Stride, "A buffer too short for m*lda")
		debugAssert(len(b.F16) >= n*b.Stride, "B buffer too short for n*ldb")
		shape, ok := TileShapeFor(m, n, nth)
		if !ok {
			klog.V(2).Infof("matmul: no tile shape for dense f16xf16 m=%d nth=%d", m, nth)
			return false
		}
		klog.V(2).Infof("matmul: dense f16xf16 m=%d n=%d k=%d nth=%d", m, n, k, nth)
		scheduleDenseF16(params.Pool, nth, a.F16, b.F16, c.F32, m, n, k, a.Stride, b.Stride, c.Stride, shape)
		return true

	case a.Type == TypeBF16 && b.Type == TypeBF16:
		debugAssert(len(a.BF16) >= m*a.Stride, "A buffer too short for m*lda")
		debugAssert(len(b.BF16) >= n*b.Stride, "B buffer too short for n*ldb")
		shape, ok := TileShapeFor(m, n, nth)
		if !ok {
			klog.V(2).Infof("matmul: no tile shape for dense bf16xbf16 m=%d nth=%d", m, nth)
			return false
		}
		klog.V(2).Infof("matmul: dense bf16xbf16 m=%d n=%d k=%d nth=%d", m, n, k, nth)
		scheduleDenseBF16(params.Pool, nth, a.BF16, b.BF16, c.F32, m, n, k, a.Stride, b.Stride, c.Stride, shape)
		return true

	case a.Type.IsQuantized() && b.Type == TypeQ8_0:
		if k%quant.QK != 0 {
			klog.V(2).Infof("matmul: k=%d not a multiple of QK=%d for quantized A", k, quant.QK)
			return false
		}
		debugAssert(len(a.Blocks) >= m*a.Stride*quant.BlockSize(a.Type), "A buffer too short for m*lda blocks")
		debugAssert(len(b.Blocks) >= n*b.Stride*quant.SizeQ8_0, "B buffer too short for n*ldb blocks")
		klog.V(2).Infof("matmul: quantized %vxq8_0 m=%d n=%d k=%d nth=%d", a.Type, m, n, k, nth)
		scheduleQuant(params.Pool, nth, a.Type, a.Blocks, b.Blocks, c.F32, m, n, k, a.Stride, b.Stride, c.Stride)
		return true

	default:
		klog.V(2).Infof("matmul: no kernel for A=%v B=%v", a.Type, b.Type)
		return false
	}
}
