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

//go:build !amd64

package dot

// UpdateDot computes sum_i(u[i] * s[i]) for an unsigned byte vector u and
// a signed byte vector s of equal length, widening each pair to int32
// before accumulating.
//
// This is the portable fallback tier: no hardware byte-dot instruction is
// assumed. amd64 builds use updot_amd64.go instead, or updot_vnni_amd64.go
// when GOEXPERIMENT=simd is enabled; the file is selected at compile time
// by the build tag, never by a runtime CPU check.
func UpdateDot(u []uint8, s []int8) int32 {
	n := min(len(u), len(s))
	var sum int32
	for i := 0; i < n; i++ {
		sum += int32(u[i]) * int32(s[i])
	}
	return sum
}
