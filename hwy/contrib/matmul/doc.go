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

// Package matmul computes C = A^T * B for the transposed-left-operand
// layout transformer inference uses: A is M x K row-major, B is N x K
// row-major (PyTorch weight layout), and C = A * B^T is M x N, so both
// operands are read with K as their contiguous last dimension and no
// transpose step is ever materialized.
//
// A may be dense f32, f16 or bf16, with B the same dense type as A; or A
// may be one of the GGUF block-quantized formats (q8_0, q4_0, q5_0,
// iq4_nl), in which case B must be q8_0. Quantized operands arrive
// already encoded: MatMul does not quantize anything itself. C is always
// dense f32.
//
// Example usage:
//
//	a := matmul.F32View(aData, K)   // M x K, row-major
//	b := matmul.F32View(bData, K)   // N x K, row-major
//	c := matmul.F32View(cData, N)   // M x N, row-major, pre-allocated
//
//	ok := matmul.MatMul(matmul.KernelParams{}, M, N, K, a, b, c)
//
// Pass a non-nil KernelParams.Pool and Nth > 1 to have the call partition
// itself across Nth cooperating goroutines instead of running
// single-threaded; see workerpool.Pool.Barrier/ChunkSet/ChunkAdd for the
// coordination primitives the scheduler is built on.
package matmul
