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
	"github.com/HaibinLai/mini-llama/hwy"
	"github.com/HaibinLai/mini-llama/hwy/contrib/quant"
	"github.com/HaibinLai/mini-llama/hwy/contrib/workerpool"
)

// DType tags the element type of one operand or result. It is re-exported
// from quant rather than redefined, since the block-quantized formats it
// enumerates are decoded there.
type DType = quant.DType

const (
	TypeF32   = quant.TypeF32
	TypeF16   = quant.TypeF16
	TypeBF16  = quant.TypeBF16
	TypeQ8_0  = quant.TypeQ8_0
	TypeQ4_0  = quant.TypeQ4_0
	TypeQ5_0  = quant.TypeQ5_0
	TypeIQ4NL = quant.TypeIQ4NL
)

// MatrixView describes one operand or the result of MatMul: a base buffer
// plus the row stride (ld) needed to walk it, and the element type tag
// that picks which union member holds the data.
//
// For dense types the stride is in elements; for block-quantized types it
// is in blocks (quant.QK values each) rather than bytes, matching how the
// dispatcher's lda/ldb/ldc parameters are described in spec.md's wire
// contract.
type MatrixView struct {
	Type DType

	Stride int

	F32    []float32   // valid when Type == TypeF32, or always for C
	F16    []hwy.Float16
	BF16   []hwy.BFloat16
	Blocks []byte // valid when Type.IsQuantized(); Stride counts blocks/row
}

// F32View wraps a dense float32 matrix with row stride ld.
func F32View(data []float32, ld int) MatrixView {
	return MatrixView{Type: TypeF32, Stride: ld, F32: data}
}

// F16View wraps a dense Float16 matrix with row stride ld.
func F16View(data []hwy.Float16, ld int) MatrixView {
	return MatrixView{Type: TypeF16, Stride: ld, F16: data}
}

// BF16View wraps a dense BFloat16 matrix with row stride ld.
func BF16View(data []hwy.BFloat16, ld int) MatrixView {
	return MatrixView{Type: TypeBF16, Stride: ld, BF16: data}
}

// QuantView wraps a block-quantized matrix. ldBlocks is the number of
// blocks per row (K / quant.QK).
func QuantView(dtype DType, data []byte, ldBlocks int) MatrixView {
	return MatrixView{Type: dtype, Stride: ldBlocks, Blocks: data}
}

// KernelParams is the immutable per-call record a caller binds once and
// passes into MatMul: how many goroutines the call may partition itself
// across (Nth) and the worker pool backing Barrier/ChunkSet/ChunkAdd.
// MatMul starts its participants itself, so Ith is carried but not read.
// A nil Pool or Nth<=1 means "run single-threaded."
type KernelParams struct {
	Ith  int
	Nth  int
	Pool *workerpool.Pool
}
