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

//go:build amd64 && !goexperiment.simd

package dot

// UpdateDot is the AVX-VNNI tier: unrolled by 4 so the compiler's own
// autovectorizer can fold groups of widening multiply-adds into
// vpmaddubsw/vpmaddwd-style sequences on AVX2-capable amd64 targets. The
// VNNI dpbusd tier lives in updot_vnni_amd64.go, selected at compile time
// by the goexperiment.simd build tag rather than a runtime CPU check.
func UpdateDot(u []uint8, s []int8) int32 {
	n := min(len(u), len(s))
	var sum0, sum1, sum2, sum3 int32

	i := 0
	for ; i+4 <= n; i += 4 {
		sum0 += int32(u[i]) * int32(s[i])
		sum1 += int32(u[i+1]) * int32(s[i+1])
		sum2 += int32(u[i+2]) * int32(s[i+2])
		sum3 += int32(u[i+3]) * int32(s[i+3])
	}
	sum := sum0 + sum1 + sum2 + sum3
	for ; i < n; i++ {
		sum += int32(u[i]) * int32(s[i])
	}
	return sum
}
