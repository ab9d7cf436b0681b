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

// Package dot provides dense and mixed-precision dot-product primitives:
// plain float dot products (Dot, DotBatch and their float64 variants),
// and an unsigned-by-signed byte dot product (updot) that the quantized
// tile engine reaches through quant.VecDot.
package dot

import "github.com/HaibinLai/mini-llama/hwy"

// Dot computes the dot product of a and b, using the shorter length.
func Dot(a, b []float32) float32 {
	n := min(len(a), len(b))
	lanes := hwy.Zero[float32]().NumLanes()

	acc := hwy.Zero[float32]()
	var p int
	for ; p+lanes <= n; p += lanes {
		va := hwy.Load(a[p:])
		vb := hwy.Load(b[p:])
		acc = hwy.MulAdd(va, vb, acc)
	}
	sum := hwy.ReduceSum(acc)
	for ; p < n; p++ {
		sum += a[p] * b[p]
	}
	return sum
}

// DotFloat64 computes the dot product of a and b, using the shorter length.
func DotFloat64(a, b []float64) float64 {
	n := min(len(a), len(b))
	lanes := hwy.Zero[float64]().NumLanes()

	acc := hwy.Zero[float64]()
	var p int
	for ; p+lanes <= n; p += lanes {
		va := hwy.Load(a[p:])
		vb := hwy.Load(b[p:])
		acc = hwy.MulAdd(va, vb, acc)
	}
	sum := hwy.ReduceSum(acc)
	for ; p < n; p++ {
		sum += a[p] * b[p]
	}
	return sum
}
