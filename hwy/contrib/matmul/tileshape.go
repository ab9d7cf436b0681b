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

import "github.com/HaibinLai/mini-llama/hwy"

// TileShape picks the register-block dimensions of the dense tile engine's
// inner gemm_bloc<RM,RN> step.
//
//   - RM: rows of A held in registers per block
//   - RN: columns of B held in registers per block
//   - BM: outer multiplier applied to RM when tiling the M dimension, so a
//     "row tile" handed to one worker spans BM*RM rows rather than a single
//     RM-row block
//
// These are the same three knobs as the teacher's CacheParams.Mr/Nr, minus
// the GEBP-specific Kc/Mc/Nc fields: this engine reads A and B directly by
// stride rather than packing them into panels first, so there is no
// packed-panel cache-blocking parameter to carry.
type TileShape struct {
	RM int
	RN int
	BM int
}

// registerCount maps the compiled-in ISA tier to the vector-register-file
// size the selection table below is keyed on. This is a compile-time
// property of which ops_*.go file was built (hwy.CurrentLevel), not a
// runtime CPU probe: AVX-512, SVE and SME carry 32 architectural vector
// registers, NEON carries 32 128-bit v-registers, AVX2/SSE2 carry 16, and
// the portable scalar build has no vector register file to tile against.
func registerCount() int {
	switch hwy.CurrentLevel() {
	case hwy.DispatchAVX512, hwy.DispatchNEON, hwy.DispatchSVE, hwy.DispatchSME:
		return 32
	case hwy.DispatchAVX2, hwy.DispatchSSE2:
		return 16
	default:
		return 0
	}
}

// TileShapeFor selects (RM, RN, BM) for an m x n x k product running with
// nth cooperating participants, following the two-tier table keyed on
// vector-register count and how evenly m divides:
//
//	32 registers: RN=6, BM = 4 if m%16==0 && m/16>=nth, else 2 if m%8==0, else 1 if m%4==0
//	16 registers: RN=3, BM = 4 if m%16==0 && m/16>=nth, else 2 if m%8==0, else 1 if m%4==0
//
// RM is always 4 in every row that matches. If register count is 0 (no
// SIMD extension enabled) or m doesn't divide by 4 at all, no row matches
// and TileShapeFor reports ok=false: the dense tile engine has no kernel
// for this shape, matching the "fallback returns false" row in spec's
// dispatch table.
//
// Once a row matches, RN is narrowed against n by actualColumnWidth: while
// splitting n into ceil(n/RN) equal-width stripes gives stripes narrower
// than RN, RN steps down (RN-1, RN-2, ...), to a floor of 1.
func TileShapeFor(m, n, nth int) (TileShape, bool) {
	if nth < 1 {
		nth = 1
	}
	var rn int
	switch registerCount() {
	case 32:
		rn = 6
	case 16:
		rn = 3
	default:
		return TileShape{}, false
	}

	var bm int
	switch {
	case m%16 == 0 && m/16 >= nth:
		bm = 4
	case m%8 == 0:
		bm = 2
	case m%4 == 0:
		bm = 1
	default:
		return TileShape{}, false
	}

	return TileShape{RM: 4, RN: actualColumnWidth(n, rn), BM: bm}, true
}

// actualColumnWidth narrows rn against n: it picks SIZE_N =
// ceil(n/ceil(n/rn)), the width an RN-wide stripe actually ends up with
// once n is split into an equal number of stripes, and if that width
// still falls short of rn it retries one RN narrower, down to a floor of
// 1 (n==0 is rejected by MatMul before this is ever reached).
func actualColumnWidth(n, rn int) int {
	for rn > 1 {
		xtiles := (n + rn - 1) / rn
		sizeN := (n + xtiles - 1) / xtiles
		if sizeN >= rn {
			return rn
		}
		rn--
	}
	return 1
}

// RowsPerStrip is the row-tile height the two-level floating scheduler
// falls back to when the tile shape has no positive BM*RM; otherwise a
// row tile is BM*RM rows.
var RowsPerStrip = 64

// MinParallelOps is the total op-count (m*n*k) below which the floating
// tile engine runs single-threaded rather than paying scheduling overhead.
var MinParallelOps = 64 * 64 * 64
