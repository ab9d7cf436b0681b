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

// Package quant decodes the GGUF-style block-quantized matrix element
// formats consumed by the left-hand operand (A) of the quantized matmul
// path: q8_0, q4_0, q5_0 and iq4_nl; the right-hand operand (B) is always
// q8_0. Every format stores QK=32 values per block,
// preceded by a Float16 delta (and, for q5_0, a 4-byte high-bit mask).
package quant

import "github.com/HaibinLai/mini-llama/hwy"

// QK is the number of quantized values per block across all formats here.
const QK = 32

// Block byte sizes.
const (
	SizeQ8_0  = 2 + QK       // delta + 32 int8
	SizeQ4_0  = 2 + QK/2     // delta + 16 nibble bytes
	SizeQ5_0  = 2 + 4 + QK/2 // delta + 4-byte high-bit mask + 16 nibble bytes
	SizeIQ4NL = 2 + QK/2     // delta + 16 nibble bytes
)

// kvaluesIQ4NL is the non-linear lookup table used by iq4_nl, taken from
// llama.cpp's ggml-common.h kvalues_iq4nl.
var kvaluesIQ4NL = [16]int8{
	-127, -104, -83, -65, -49, -35, -22, -10,
	1, 13, 25, 38, 53, 69, 89, 113,
}

// blockDelta reads the little-endian Float16 scale at the front of any
// block and returns it as a float32.
func blockDelta(b []byte) float32 {
	return hwy.Float16ToFloat32(hwy.Float16(uint16(b[0]) | uint16(b[1])<<8))
}

// BlockQ8_0 is a decoded q8_0 block: 32 signed bytes scaled by one delta.
type BlockQ8_0 struct {
	Delta float32
	Qs    [QK]int8
}

// BlockQ4_0 is a decoded q4_0 block: 32 nibbles biased by 8, scaled by delta.
type BlockQ4_0 struct {
	Delta float32
	Qs    [QK]int8 // already de-biased, range [-8, 7]
}

// BlockQ5_0 is a decoded q5_0 block: 32 five-bit values (four packed nibble
// bits plus one bit borrowed from the sign mask), biased by 16.
type BlockQ5_0 struct {
	Delta float32
	Qs    [QK]int8 // already de-biased, range [-16, 15]
}

// BlockIQ4NL is a decoded iq4_nl block: 32 nibble indices into kvaluesIQ4NL.
type BlockIQ4NL struct {
	Delta float32
	Qs    [QK]int8 // already looked up, range matches kvaluesIQ4NL
}

// DecodeQ8_0 parses one 34-byte q8_0 block.
func DecodeQ8_0(raw []byte) BlockQ8_0 {
	var blk BlockQ8_0
	blk.Delta = blockDelta(raw)
	qs := raw[2:SizeQ8_0]
	for i := 0; i < QK; i++ {
		blk.Qs[i] = int8(qs[i])
	}
	return blk
}

// DecodeQ4_0 parses one 18-byte q4_0 block. Low nibbles fill values
// [0,16), high nibbles fill values [16,32), matching GGUF's split layout.
func DecodeQ4_0(raw []byte) BlockQ4_0 {
	var blk BlockQ4_0
	blk.Delta = blockDelta(raw)
	qs := raw[2:SizeQ4_0]
	for i := 0; i < QK/2; i++ {
		blk.Qs[i] = int8(qs[i]&0x0F) - 8
		blk.Qs[QK/2+i] = int8((qs[i]>>4)&0x0F) - 8
	}
	return blk
}

// DecodeQ5_0 parses one 22-byte q5_0 block. The 4-byte mask supplies the
// fifth (high) bit for each of the 32 values, packed the same split-nibble
// way as q4_0 for the low four bits.
func DecodeQ5_0(raw []byte) BlockQ5_0 {
	var blk BlockQ5_0
	blk.Delta = blockDelta(raw)
	mask := uint32(raw[2]) | uint32(raw[3])<<8 | uint32(raw[4])<<16 | uint32(raw[5])<<24
	qs := raw[6:SizeQ5_0]
	for i := 0; i < QK/2; i++ {
		loHigh := int8((mask >> i) & 1)
		hiHigh := int8((mask >> (i + QK/2)) & 1)
		lo := int8(qs[i]&0x0F) | (loHigh << 4)
		hi := int8((qs[i]>>4)&0x0F) | (hiHigh << 4)
		blk.Qs[i] = lo - 16
		blk.Qs[QK/2+i] = hi - 16
	}
	return blk
}

// DecodeIQ4NL parses one 18-byte iq4_nl block, looking each nibble up in
// the non-linear table instead of treating it as a biased linear value.
func DecodeIQ4NL(raw []byte) BlockIQ4NL {
	var blk BlockIQ4NL
	blk.Delta = blockDelta(raw)
	qs := raw[2:SizeIQ4NL]
	for i := 0; i < QK/2; i++ {
		blk.Qs[i] = kvaluesIQ4NL[qs[i]&0x0F]
		blk.Qs[QK/2+i] = kvaluesIQ4NL[(qs[i]>>4)&0x0F]
	}
	return blk
}

// Dequantize expands a full buffer of blocks for one of the four formats
// into a flat float32 slice, scaling each value by its block's delta.
// dtype selects the format; out must hold nblocks*QK elements.
func Dequantize(dtype DType, data []byte, out []float32) {
	switch dtype {
	case TypeQ8_0:
		n := len(data) / SizeQ8_0
		for b := 0; b < n; b++ {
			blk := DecodeQ8_0(data[b*SizeQ8_0 : (b+1)*SizeQ8_0])
			for i := 0; i < QK; i++ {
				out[b*QK+i] = blk.Delta * float32(blk.Qs[i])
			}
		}
	case TypeQ4_0:
		n := len(data) / SizeQ4_0
		for b := 0; b < n; b++ {
			blk := DecodeQ4_0(data[b*SizeQ4_0 : (b+1)*SizeQ4_0])
			for i := 0; i < QK; i++ {
				out[b*QK+i] = blk.Delta * float32(blk.Qs[i])
			}
		}
	case TypeQ5_0:
		n := len(data) / SizeQ5_0
		for b := 0; b < n; b++ {
			blk := DecodeQ5_0(data[b*SizeQ5_0 : (b+1)*SizeQ5_0])
			for i := 0; i < QK; i++ {
				out[b*QK+i] = blk.Delta * float32(blk.Qs[i])
			}
		}
	case TypeIQ4NL:
		n := len(data) / SizeIQ4NL
		for b := 0; b < n; b++ {
			blk := DecodeIQ4NL(data[b*SizeIQ4NL : (b+1)*SizeIQ4NL])
			for i := 0; i < QK; i++ {
				out[b*QK+i] = blk.Delta * float32(blk.Qs[i])
			}
		}
	default:
		panic("quant: unsupported dtype for Dequantize")
	}
}

// BlockSize returns the on-wire byte size of one block of dtype, or 0 if
// dtype is not a block-quantized format.
func BlockSize(dtype DType) int {
	switch dtype {
	case TypeQ8_0:
		return SizeQ8_0
	case TypeQ4_0:
		return SizeQ4_0
	case TypeQ5_0:
		return SizeQ5_0
	case TypeIQ4NL:
		return SizeIQ4NL
	default:
		return 0
	}
}
