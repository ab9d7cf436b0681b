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
	"sync"

	"github.com/HaibinLai/mini-llama/hwy"
	"github.com/HaibinLai/mini-llama/hwy/contrib/quant"
	"github.com/HaibinLai/mini-llama/hwy/contrib/workerpool"
)

// scheduleDenseF32 is the two-level floating-point scheduler: the output
// is tiled into row-tiles (rowTile = shape.BM*shape.RM rows) crossed with
// column-stripes (colStripe = shape.RN columns), flattened into one job
// index per (row-tile, column-stripe) pair. All nth participants race to
// claim jobs from a single shared atomic counter rather than each owning
// a fixed contiguous range, so a participant that finishes its share of
// cheap jobs early steals from one still working a cache-unfriendly tile.
//
// Two barriers bound the claim loop: the first makes sure every
// participant observes the freshly-ChunkSet(0) counter rather than a
// stale value left over from a previous call on the same pool, and the
// second keeps C from being read by the caller before every participant
// has finished writing its last claimed tile.
func scheduleDenseF32(pool *workerpool.Pool, nth int, a, b, c []float32, m, n, k, lda, ldb, ldc int, shape TileShape) {
	if pool == nil || nth <= 1 || m*n*k < MinParallelOps {
		tileDenseF32(a, b, c, m, n, k, lda, ldb, ldc, shape)
		return
	}

	rowTile := shape.BM * shape.RM
	if rowTile <= 0 {
		rowTile = RowsPerStrip
	}
	colStripe := shape.RN
	if colStripe <= 0 {
		colStripe = n
	}
	numRowTiles := (m + rowTile - 1) / rowTile
	numColStripes := (n + colStripe - 1) / colStripe
	totalJobs := int32(numRowTiles * numColStripes)
	lanes := hwy.Zero[float32]().NumLanes()
	rm := shape.RM
	if rm <= 0 {
		rm = 1
	}

	var wg sync.WaitGroup
	wg.Add(nth)
	for ith := 0; ith < nth; ith++ {
		go func(ith int) {
			defer wg.Done()
			if ith == 0 {
				pool.ChunkSet(0)
			}
			pool.Barrier(nth)
			for {
				job := pool.ChunkAdd(1)
				if job >= totalJobs {
					break
				}
				rt := int(job) / numColStripes
				ct := int(job) % numColStripes
				ii := rt * rowTile
				iEnd := min(ii+rowTile, m)
				jj := ct * colStripe
				jEnd := min(jj+colStripe, n)
				gemmBlock(a, b, c, ii, iEnd, jj, jEnd, rm, k, lda, ldb, ldc, lanes)
			}
			pool.Barrier(nth)
		}(ith)
	}
	wg.Wait()
}

// scheduleDenseF16 promotes the whole operand set to f32 once, up front,
// then reuses the f32 scheduler for the parallel case - promoting once
// per call instead of once per claimed tile avoids redoing the widen for
// every job a participant steals. Below the parallel threshold it calls
// tileDenseF16 directly so the promote-per-row inner path still gets
// exercised on small inputs and single-threaded callers.
func scheduleDenseF16(pool *workerpool.Pool, nth int, a, b []hwy.Float16, c []float32, m, n, k, lda, ldb, ldc int, shape TileShape) {
	if pool == nil || nth <= 1 || m*n*k < MinParallelOps {
		tileDenseF16(a, b, c, m, n, k, lda, ldb, ldc, shape)
		return
	}
	af32 := make([]float32, m*k)
	bf32 := make([]float32, n*k)
	for i := 0; i < m; i++ {
		promoteRowF16(a[i*lda:i*lda+k], af32[i*k:(i+1)*k])
	}
	for j := 0; j < n; j++ {
		promoteRowF16(b[j*ldb:j*ldb+k], bf32[j*k:(j+1)*k])
	}
	scheduleDenseF32(pool, nth, af32, bf32, c, m, n, k, k, k, ldc, shape)
}

// scheduleDenseBF16 is bf16's own two-level scheduler, structurally
// identical to scheduleDenseF32 but claiming gemmBlockBF16 jobs directly
// against the bf16 operands - unlike f16, bf16 never needs a promoted f32
// copy to share across workers, since tileDenseBF16/gemmBlockBF16 already
// operate on bf16 lanes natively via hwy.MulAddBF16/hwy.ReduceSumBF16.
func scheduleDenseBF16(pool *workerpool.Pool, nth int, a, b []hwy.BFloat16, c []float32, m, n, k, lda, ldb, ldc int, shape TileShape) {
	if pool == nil || nth <= 1 || m*n*k < MinParallelOps {
		tileDenseBF16(a, b, c, m, n, k, lda, ldb, ldc, shape)
		return
	}

	rowTile := shape.BM * shape.RM
	if rowTile <= 0 {
		rowTile = RowsPerStrip
	}
	colStripe := shape.RN
	if colStripe <= 0 {
		colStripe = n
	}
	numRowTiles := (m + rowTile - 1) / rowTile
	numColStripes := (n + colStripe - 1) / colStripe
	totalJobs := int32(numRowTiles * numColStripes)
	lanes := hwy.Zero[hwy.BFloat16]().NumLanes()
	rm := shape.RM
	if rm <= 0 {
		rm = 1
	}

	var wg sync.WaitGroup
	wg.Add(nth)
	for ith := 0; ith < nth; ith++ {
		go func(ith int) {
			defer wg.Done()
			if ith == 0 {
				pool.ChunkSet(0)
			}
			pool.Barrier(nth)
			for {
				job := pool.ChunkAdd(1)
				if job >= totalJobs {
					break
				}
				rt := int(job) / numColStripes
				ct := int(job) % numColStripes
				ii := rt * rowTile
				iEnd := min(ii+rowTile, m)
				jj := ct * colStripe
				jEnd := min(jj+colStripe, n)
				gemmBlockBF16(a, b, c, ii, iEnd, jj, jEnd, rm, k, lda, ldb, ldc, lanes)
			}
			pool.Barrier(nth)
		}(ith)
	}
	wg.Wait()
}

// scheduleQuant is the quantized path's scheduler: flat, contiguous
// per-worker row chunks, no barrier. Unlike the floating path there is no
// cross-call shared counter to reset, so there is nothing a stale-counter
// race could corrupt - ParallelFor's static chunking is enough, and
// skipping the atomic-steal/barrier machinery avoids its overhead on the
// already-more-expensive-per-row quantized inner loop.
//
// aBlocks holds A's rows pre-quantized to wtype; bBlocks holds B's rows
// pre-quantized to q8_0 (spec's dispatch table always pairs a quantized A
// with a q8_0 B). Both are split by block count, not element count: a
// worker's row range [start,end) maps to byte range
// [start*ldaBlocks*wBlockSize, end*ldaBlocks*wBlockSize) in aBlocks.
func scheduleQuant(pool *workerpool.Pool, nth int, wtype quant.DType, aBlocks, bBlocks []byte, c []float32, m, n, k, ldaBlocks, ldbBlocks, ldc int) {
	if pool == nil || nth <= 1 || m*n*k < MinParallelOps {
		tileQuant(wtype, aBlocks, bBlocks, c, m, n, k, ldaBlocks, ldbBlocks, ldc)
		return
	}
	wBlockSize := quant.BlockSize(wtype)
	aRowBytes := ldaBlocks * wBlockSize
	pool.ParallelFor(m, func(start, end int) {
		rows := end - start
		tileQuant(
			wtype,
			aBlocks[start*aRowBytes:end*aRowBytes],
			bBlocks,
			c[start*ldc:end*ldc],
			rows, n, k, ldaBlocks, ldbBlocks, ldc,
		)
	})
}
