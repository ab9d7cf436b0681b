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

//go:build amd64 && goexperiment.simd

package dot

import "github.com/HaibinLai/mini-llama/hwy"

// UpdateDot is the VNNI tier, built only when GOEXPERIMENT=simd is enabled.
// It widens each byte lane in two steps (u8->u16->u32, i8->i16->i32) via
// hwy's promote vocabulary, the same widen-pairwise shape the VNNI
// dpbusd/dpbusds instructions collapse into one step in hardware, then
// multiplies and accumulates as int32 so the underlying archsimd lowering
// can fuse the chain where the target CPU supports it; on CPUs without
// VNNI the same code still executes correctly via the wider AVX2
// lowering.
func UpdateDot(u []uint8, s []int8) int32 {
	n := min(len(u), len(s))

	lanes := hwy.Zero[uint8]().NumLanes()
	acc := hwy.Zero[int32]()

	i := 0
	for ; i+lanes <= n; i += lanes {
		vu := hwy.Load(u[i : i+lanes])
		vs := hwy.Load(s[i : i+lanes])

		u32 := hwy.PromoteU16ToU32(hwy.PromoteU8ToU16(vu))
		s32 := hwy.PromoteI16ToI32(hwy.PromoteI8ToI16(vs))

		prod := make([]int32, len(u32.Data()))
		for j := range prod {
			prod[j] = int32(u32.Data()[j]) * s32.Data()[j]
		}
		acc = hwy.Add(acc, hwy.Load(prod))
	}

	sum := hwy.ReduceSum(acc)
	for ; i < n; i++ {
		sum += int32(u[i]) * int32(s[i])
	}
	return sum
}
