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
)

// tileQuant computes C = A * B^T where both A and B are block-quantized:
// A in one of q8_0/q4_0/q5_0/iq4_nl (wtype), B always in q8_0 - the pair
// spec's dispatch table requires, and the only pair the quantized kernel
// ever sees. Quantizing a dense operand on the fly is the caller's job
// (quant.QuantizeQ8_0), not this kernel's: every block this function reads
// is already on-format.
//
// ldaBlocks/ldbBlocks count *blocks* per row (K / quant.QK), matching the
// on-disk block layout rather than elements.
func tileQuant(wtype quant.DType, aBlocks, bBlocks []byte, c []float32, m, n, k, ldaBlocks, ldbBlocks, ldc int) {
	aBlockSize := quant.BlockSize(wtype)
	bBlockSize := quant.SizeQ8_0
	aRowBytes := ldaBlocks * aBlockSize
	bRowBytes := ldbBlocks * bBlockSize
	nblocks := k / quant.QK

	for i := 0; i < m; i++ {
		aRow := aBlocks[i*aRowBytes : i*aRowBytes+nblocks*aBlockSize]
		cRow := c[i*ldc:]
		for j := 0; j < n; j++ {
			bRow := bBlocks[j*bRowBytes : j*bRowBytes+nblocks*bBlockSize]
			cRow[j] = quant.VecDot(wtype, aRow, bRow, nblocks)
		}
	}
}
