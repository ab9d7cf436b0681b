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

package dot

// SignFold rewrites a signed×signed byte dot product as an unsigned×signed
// one, matching the operand shape the hardware VNNI dpbusd instruction (and
// UpdateDot's AVX-VNNI/fallback tiers) require: the left operand unsigned,
// the right operand signed.
//
// Given s (the signed operand to fold) and paired (the other signed
// operand), it negates paired wherever s is negative and takes |s|:
//
//	u[i]            = |s[i]|
//	foldedPaired[i] = s[i] < 0 ? -paired[i] : paired[i]
//
// so that s*paired == u*foldedPaired for every element except one case:
// where s[i] is negative and paired[i] is -128, the int8 negation wraps
// back to -128 and that element's product comes out with the wrong sign.
//
// foldedPaired is written in place into paired. u is unsigned because
// |s[i]| can reach 128, which overflows int8 (max 127) but fits uint8
// exactly - and matches the unsigned operand UpdateDot expects. Go's
// wrapping unary minus on int8(-128) reproduces its own bit pattern
// (10000000), which is the correct uint8 value 128 once reinterpreted, so
// the -128 edge case needs no special-casing here.
func SignFold(s []int8, paired []int8) (u []uint8) {
	n := min(len(s), len(paired))
	u = make([]uint8, n)
	for i := 0; i < n; i++ {
		if s[i] < 0 {
			u[i] = uint8(-s[i])
			paired[i] = -paired[i]
		} else {
			u[i] = uint8(s[i])
		}
	}
	return u
}
