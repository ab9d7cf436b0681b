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

import "github.com/HaibinLai/mini-llama/hwy"

// QuantizeQ8_0 converts a buffer of float32 activations into q8_0 blocks.
// len(input) must be a multiple of QK; out must hold (len(input)/QK)*SizeQ8_0
// bytes. This is how a caller turns a dense f32 operand into the q8_0
// right-hand operand (B) that the quantized matmul path dots against a
// q8_0/q4_0/q5_0/iq4_nl left-hand operand (A); MatMul itself never calls it.
//
// Per block:
//
//	d = max(|input[i]|) / 127
//	qs[i] = round(input[i] / d), clamped to int8
func QuantizeQ8_0(input []float32, out []byte) {
	if len(input) == 0 {
		return
	}
	nblocks := len(input) / QK

	for b := 0; b < nblocks; b++ {
		in := input[b*QK : (b+1)*QK]
		blk := out[b*SizeQ8_0 : (b+1)*SizeQ8_0]

		var amax float32
		for _, v := range in {
			av := v
			if av < 0 {
				av = -av
			}
			if av > amax {
				amax = av
			}
		}

		d := amax / 127.0
		var id float32
		if d > 0 {
			id = 1.0 / d
		}

		delta := hwy.Float32ToFloat16(d)
		blk[0] = byte(delta)
		blk[1] = byte(delta >> 8)

		qs := blk[2:SizeQ8_0]
		for i, v := range in {
			q := v * id
			if q >= 0 {
				q += 0.5
			} else {
				q -= 0.5
			}
			if q > 127 {
				q = 127
			} else if q < -128 {
				q = -128
			}
			qs[i] = byte(int8(q))
		}
	}
}
