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

package quant

import "github.com/HaibinLai/mini-llama/hwy/contrib/dot"

// VecDot computes the dot product between nblocks quantized weight blocks
// of format wtype and nblocks q8_0 activation blocks, returning the sum
// scaled by each pair's per-block delta:
//
//	sum_b delta_w[b] * delta_a[b] * sum_i(weight[b,i] * activation[b,i])
//
// Each block's integer products are summed in int32 (blockUpdot); only
// the delta-scaled per-block results are accumulated in float32.
func VecDot(wtype DType, wdata []byte, adata []byte, nblocks int) float32 {
	switch wtype {
	case TypeQ8_0:
		return vecDotQ8_0(wdata, adata, nblocks)
	case TypeQ4_0:
		return vecDotGeneric(wdata, adata, nblocks, SizeQ4_0, DecodeQ4_0AsQ8)
	case TypeQ5_0:
		return vecDotGeneric(wdata, adata, nblocks, SizeQ5_0, DecodeQ5_0AsQ8)
	case TypeIQ4NL:
		return vecDotGeneric(wdata, adata, nblocks, SizeIQ4NL, DecodeIQ4NLAsQ8)
	default:
		panic("quant: unsupported weight dtype for VecDot")
	}
}

// DecodeQ4_0AsQ8, DecodeQ5_0AsQ8 and DecodeIQ4NLAsQ8 re-express a block's
// dequantized (but unscaled) integer values as [QK]int8, so the mixed-format
// dot product can share one int8xint8 inner loop regardless of weight
// format. This mirrors updot's "fold to a common signed-byte shape before
// the hot loop" strategy (see dot.UpdateDot).
func DecodeQ4_0AsQ8(raw []byte) (delta float32, qs [QK]int8) {
	blk := DecodeQ4_0(raw)
	return blk.Delta, blk.Qs
}

func DecodeQ5_0AsQ8(raw []byte) (delta float32, qs [QK]int8) {
	blk := DecodeQ5_0(raw)
	return blk.Delta, blk.Qs
}

func DecodeIQ4NLAsQ8(raw []byte) (delta float32, qs [QK]int8) {
	blk := DecodeIQ4NL(raw)
	return blk.Delta, blk.Qs
}

func vecDotQ8_0(wdata, adata []byte, nblocks int) float32 {
	var sumf float32
	for b := 0; b < nblocks; b++ {
		wb := wdata[b*SizeQ8_0 : (b+1)*SizeQ8_0]
		ab := adata[b*SizeQ8_0 : (b+1)*SizeQ8_0]
		dw := blockDelta(wb)
		da := blockDelta(ab)
		wqs := bytesToInt8(wb[2:SizeQ8_0])
		aqs := bytesToInt8(ab[2:SizeQ8_0])

		sumf += dw * da * float32(blockUpdot(wqs, aqs))
	}
	return sumf
}

func vecDotGeneric(wdata, adata []byte, nblocks, wblockSize int, decode func([]byte) (float32, [QK]int8)) float32 {
	var sumf float32
	for b := 0; b < nblocks; b++ {
		wb := wdata[b*wblockSize : (b+1)*wblockSize]
		ab := adata[b*SizeQ8_0 : (b+1)*SizeQ8_0]
		dw, wqsArr := decode(wb)
		da := blockDelta(ab)
		wqs := append([]int8(nil), wqsArr[:]...)
		aqs := bytesToInt8(ab[2:SizeQ8_0])

		sumf += dw * da * float32(blockUpdot(wqs, aqs))
	}
	return sumf
}

// bytesToInt8 reinterprets a raw byte slice as signed bytes without
// copying semantics beyond the conversion itself - every quant block
// format here stores its values as two's-complement bytes.
func bytesToInt8(bs []byte) []int8 {
	out := make([]int8, len(bs))
	for i, b := range bs {
		out[i] = int8(b)
	}
	return out
}

// blockUpdot computes sum_i(w[i]*a[i]) for one block's worth of signed
// weight/activation values via dot.SignFold + dot.UpdateDot: w is folded
// into the unsigned shape VNNI-class hardware wants (dot.SignFold also
// folds a's sign in place to match), then UpdateDot does the actual
// unsigned-by-signed byte dot product. This is spec's
// updot(sign(w,w), sign(a,w)) with w playing the "A" role and a playing
// "B" in the sign() notation. The result is exact except where a[i] is
// -128 and w[i] is negative (see dot.SignFold).
func blockUpdot(w, a []int8) int32 {
	u := dot.SignFold(w, a)
	return dot.UpdateDot(u, a)
}
