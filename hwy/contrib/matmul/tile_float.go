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

// tileDenseF32 computes C[ii:iEnd, jj:jEnd] = A[ii:iEnd,:] * B[jj:jEnd,:]^T
// for the dense f32xf32->f32 pair, where A is M x K row-major (lda == K)
// and B is N x K row-major (ldb == K, PyTorch weight layout) - the K-last
// shape that makes spec's C = A^T * B a direct strided dot product with no
// transpose step.
//
// The outer two loops tile the output into shape.BM*shape.RM x shape.RN
// blocks so repeatedly-read B rows stay resident in cache across the row
// block. Within a block, gemmBlock further tiles rows into RM-row groups
// and hands each group to gemmBloc, the register-tiled inner step.
func tileDenseF32(a, b, c []float32, m, n, k, lda, ldb, ldc int, shape TileShape) {
	lanes := hwy.Zero[float32]().NumLanes()
	blockM := shape.BM * shape.RM
	if blockM <= 0 {
		blockM = m
	}
	blockN := shape.RN
	if blockN <= 0 {
		blockN = n
	}
	rm := shape.RM
	if rm <= 0 {
		rm = 1
	}

	for ii := 0; ii < m; ii += blockM {
		iEnd := min(ii+blockM, m)
		for jj := 0; jj < n; jj += blockN {
			jEnd := min(jj+blockN, n)
			gemmBlock(a, b, c, ii, iEnd, jj, jEnd, rm, k, lda, ldb, ldc, lanes)
		}
	}
}

// gemmBlock splits one (row-tile, col-stripe) block into RM-row groups and
// hands each one to gemmBloc, the register-tiled kernel. A ragged last
// group (fewer than RM rows left) is handed to gemmBloc with its actual
// row count - gemmBloc's Cv array is sized from the row/col counts it is
// given, not hardcoded to RM/RN, so a short group costs fewer registers
// rather than needing special-casing here.
func gemmBlock(a, b, c []float32, iStart, iEnd, jStart, jEnd, rm, k, lda, ldb, ldc, lanes int) {
	for bi := iStart; bi < iEnd; bi += rm {
		biEnd := min(bi+rm, iEnd)
		gemmBloc(a, b, c, bi, jStart, biEnd-bi, jEnd-jStart, k, lda, ldb, ldc, lanes)
	}
}

// gemmBloc is the real gemm_bloc<RM,RN> register-tiled step: it allocates
// an rn x rm array of accumulator vectors Cv, one per output cell in the
// tile, and walks K in steps of lanes, feeding every Cv cell an FMA per
// step rather than recomputing an independent dot product per cell.
//
// When rm<=rn the loop nest loads rm A-vectors once per K-step and reuses
// them across all rn B-vectors (the smaller dimension's loads are shared);
// otherwise it swaps the nest to load rn B-vectors once and reuse them
// across rm A-vectors. Either way every vector loaded is reused the
// maximum number of times the blocking allows, matching the register-reuse
// rationale behind sgemm.cpp's gemm_bloc<RM,RN>.
func gemmBloc(a, b, c []float32, ii, jj, rm, rn, k, lda, ldb, ldc, lanes int) {
	cv := make([]hwy.Vec[float32], rm*rn)
	for i := range cv {
		cv[i] = hwy.Zero[float32]()
	}

	var p int
	if rm <= rn {
		va := make([]hwy.Vec[float32], rm)
		for ; p+lanes <= k; p += lanes {
			for i := 0; i < rm; i++ {
				va[i] = hwy.Load(a[(ii+i)*lda+p:])
			}
			for j := 0; j < rn; j++ {
				vb := hwy.Load(b[(jj+j)*ldb+p:])
				for i := 0; i < rm; i++ {
					cv[j*rm+i] = hwy.MulAdd(va[i], vb, cv[j*rm+i])
				}
			}
		}
	} else {
		vb := make([]hwy.Vec[float32], rn)
		for ; p+lanes <= k; p += lanes {
			for j := 0; j < rn; j++ {
				vb[j] = hwy.Load(b[(jj+j)*ldb+p:])
			}
			for i := 0; i < rm; i++ {
				va := hwy.Load(a[(ii+i)*lda+p:])
				for j := 0; j < rn; j++ {
					cv[j*rm+i] = hwy.MulAdd(va, vb[j], cv[j*rm+i])
				}
			}
		}
	}

	sums := make([]float32, rm*rn)
	for idx := range cv {
		sums[idx] = hwy.ReduceSum(cv[idx])
	}
	for ; p < k; p++ {
		for i := 0; i < rm; i++ {
			av := a[(ii+i)*lda+p]
			for j := 0; j < rn; j++ {
				sums[j*rm+i] += av * b[(jj+j)*ldb+p]
			}
		}
	}

	for i := 0; i < rm; i++ {
		for j := 0; j < rn; j++ {
			c[(ii+i)*ldc+jj+j] = sums[j*rm+i]
		}
	}
}

// tileDenseF16 computes the f16xf16->f32 pair by promoting each row to a
// float32 scratch buffer once and reusing tileDenseF32's kernel, the same
// promote-compute-demote strategy ops_f16.go uses for elementwise ops -
// generalized here from one vector's worth of lanes to one row at a time.
func tileDenseF16(a, b []hwy.Float16, c []float32, m, n, k, lda, ldb, ldc int, shape TileShape) {
	af32 := make([]float32, m*k)
	bf32 := make([]float32, n*k)
	for i := 0; i < m; i++ {
		promoteRowF16(a[i*lda:i*lda+k], af32[i*k:(i+1)*k])
	}
	for j := 0; j < n; j++ {
		promoteRowF16(b[j*ldb:j*ldb+k], bf32[j*k:(j+1)*k])
	}
	tileDenseF32(af32, bf32, c, m, n, k, k, k, ldc, shape)
}

func promoteRowF16(src []hwy.Float16, dst []float32) {
	for i, v := range src {
		dst[i] = hwy.Float16ToFloat32(v)
	}
}

// tileDenseBF16 computes the bf16xbf16->f32 pair with the same
// register-tiled Cv-array strategy as tileDenseF32/gemmBloc, built on
// hwy.MulAddBF16/hwy.ReduceSumBF16 instead of their f32 counterparts so it
// never materializes a promoted f32 copy of either operand - on a build
// whose SIMD dispatch level backs it with a native bf16 FMA instruction
// ops_bf16.go issues that instruction directly; on scalar dispatch it
// falls back to per-lane BFloat16ToFloat32, the same split ops_bf16.go
// documents for bf16 arithmetic generally.
func tileDenseBF16(a, b []hwy.BFloat16, c []float32, m, n, k, lda, ldb, ldc int, shape TileShape) {
	lanes := hwy.Zero[hwy.BFloat16]().NumLanes()
	blockM := shape.BM * shape.RM
	if blockM <= 0 {
		blockM = m
	}
	blockN := shape.RN
	if blockN <= 0 {
		blockN = n
	}
	rm := shape.RM
	if rm <= 0 {
		rm = 1
	}

	for ii := 0; ii < m; ii += blockM {
		iEnd := min(ii+blockM, m)
		for jj := 0; jj < n; jj += blockN {
			jEnd := min(jj+blockN, n)
			gemmBlockBF16(a, b, c, ii, iEnd, jj, jEnd, rm, k, lda, ldb, ldc, lanes)
		}
	}
}

func gemmBlockBF16(a, b []hwy.BFloat16, c []float32, iStart, iEnd, jStart, jEnd, rm, k, lda, ldb, ldc, lanes int) {
	for bi := iStart; bi < iEnd; bi += rm {
		biEnd := min(bi+rm, iEnd)
		gemmBlocBF16(a, b, c, bi, jStart, biEnd-bi, jEnd-jStart, k, lda, ldb, ldc, lanes)
	}
}

func gemmBlocBF16(a, b []hwy.BFloat16, c []float32, ii, jj, rm, rn, k, lda, ldb, ldc, lanes int) {
	cv := make([]hwy.Vec[hwy.BFloat16], rm*rn)
	for i := range cv {
		cv[i] = hwy.Zero[hwy.BFloat16]()
	}

	var p int
	if rm <= rn {
		va := make([]hwy.Vec[hwy.BFloat16], rm)
		for ; p+lanes <= k; p += lanes {
			for i := 0; i < rm; i++ {
				va[i] = hwy.Load(a[(ii+i)*lda+p:])
			}
			for j := 0; j < rn; j++ {
				vb := hwy.Load(b[(jj+j)*ldb+p:])
				for i := 0; i < rm; i++ {
					cv[j*rm+i] = hwy.MulAddBF16(va[i], vb, cv[j*rm+i])
				}
			}
		}
	} else {
		vb := make([]hwy.Vec[hwy.BFloat16], rn)
		for ; p+lanes <= k; p += lanes {
			for j := 0; j < rn; j++ {
				vb[j] = hwy.Load(b[(jj+j)*ldb+p:])
			}
			for i := 0; i < rm; i++ {
				va := hwy.Load(a[(ii+i)*lda+p:])
				for j := 0; j < rn; j++ {
					cv[j*rm+i] = hwy.MulAddBF16(va, vb[j], cv[j*rm+i])
				}
			}
		}
	}

	sums := make([]float32, rm*rn)
	for idx := range cv {
		sums[idx] = hwy.ReduceSumBF16(cv[idx])
	}
	for ; p < k; p++ {
		for i := 0; i < rm; i++ {
			av := hwy.BFloat16ToFloat32(a[(ii+i)*lda+p])
			for j := 0; j < rn; j++ {
				sums[j*rm+i] += av * hwy.BFloat16ToFloat32(b[(jj+j)*ldb+p])
			}
		}
	}

	for i := 0; i < rm; i++ {
		for j := 0; j < rn; j++ {
			c[(ii+i)*ldc+jj+j] = sums[j*rm+i]
		}
	}
}
