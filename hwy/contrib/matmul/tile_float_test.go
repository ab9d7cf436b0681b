package matmul

import (
	"math"
	"math/rand"
	"testing"

	"github.com/HaibinLai/mini-llama/hwy"
)

func referenceKLast(a, b []float32, m, n, k int) []float32 {
	c := make([]float32, m*n)
	for i := 0; i < m; i++ {
		for j := 0; j < n; j++ {
			var sum float32
			for p := 0; p < k; p++ {
				sum += a[i*k+p] * b[j*k+p]
			}
			c[i*n+j] = sum
		}
	}
	return c
}

func randomMatrix(rng *rand.Rand, n int) []float32 {
	out := make([]float32, n)
	for i := range out {
		out[i] = rng.Float32()*2 - 1
	}
	return out
}

func maxAbs(v []float32) float32 {
	var m float32
	for _, x := range v {
		if ax := float32(math.Abs(float64(x))); ax > m {
			m = ax
		}
	}
	return m
}

func assertClose(t *testing.T, got, want []float32, k int, maxA, maxB float32) {
	t.Helper()
	eps := float64(1e-3) * float64(k) * float64(maxA) * float64(maxB)
	if eps < 1e-3 {
		eps = 1e-3
	}
	for i := range want {
		if diff := math.Abs(float64(got[i] - want[i])); diff > eps {
			t.Fatalf("index %d: got %v want %v diff %v (eps %v)", i, got[i], want[i], diff, eps)
		}
	}
}

func TestTileDenseF32MatchesReference(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for _, size := range []struct{ m, n, k int }{
		{1, 1, 1}, {3, 5, 7}, {4, 4, 32}, {16, 16, 64}, {17, 31, 33},
	} {
		a := randomMatrix(rng, size.m*size.k)
		b := randomMatrix(rng, size.n*size.k)
		c := make([]float32, size.m*size.n)

		tileDenseF32(a, b, c, size.m, size.n, size.k, size.k, size.k, size.n, TileShape{RM: 4, RN: 4, BM: 1})

		want := referenceKLast(a, b, size.m, size.n, size.k)
		assertClose(t, c, want, size.k, maxAbs(a), maxAbs(b))
	}
}

func TestTileShapeInvariance(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	m, n, k := 20, 24, 40
	a := randomMatrix(rng, m*k)
	b := randomMatrix(rng, n*k)
	want := referenceKLast(a, b, m, n, k)

	shapes := []TileShape{
		{RM: 4, RN: 32, BM: 4},
		{RM: 4, RN: 16, BM: 4},
		{RM: 4, RN: 8, BM: 2},
		{RM: 2, RN: 4, BM: 2},
		{RM: 1, RN: 1, BM: 1},
	}
	for _, shape := range shapes {
		c := make([]float32, m*n)
		tileDenseF32(a, b, c, m, n, k, k, k, n, shape)
		assertClose(t, c, want, k, maxAbs(a), maxAbs(b))
	}
}

func TestTileDenseF16MatchesReferenceWithinF16Precision(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	m, n, k := 8, 8, 32
	af32 := randomMatrix(rng, m*k)
	bf32 := randomMatrix(rng, n*k)

	a := make([]hwy.Float16, m*k)
	b := make([]hwy.Float16, n*k)
	for i := range af32 {
		a[i] = hwy.Float32ToFloat16(af32[i])
	}
	for i := range bf32 {
		b[i] = hwy.Float32ToFloat16(bf32[i])
	}

	c := make([]float32, m*n)
	tileDenseF16(a, b, c, m, n, k, k, k, n, TileShape{RM: 4, RN: 4, BM: 1})

	want := referenceKLast(af32, bf32, m, n, k)
	for i := range want {
		if diff := math.Abs(float64(c[i] - want[i])); diff > 0.05*float64(k) {
			t.Fatalf("index %d: got %v want %v", i, c[i], want[i])
		}
	}
}

func TestTileDenseBF16MatchesReferenceWithinBF16Precision(t *testing.T) {
	rng := rand.New(rand.NewSource(4))
	m, n, k := 8, 8, 32
	af32 := randomMatrix(rng, m*k)
	bf32 := randomMatrix(rng, n*k)

	a := make([]hwy.BFloat16, m*k)
	b := make([]hwy.BFloat16, n*k)
	for i := range af32 {
		a[i] = hwy.Float32ToBFloat16(af32[i])
	}
	for i := range bf32 {
		b[i] = hwy.Float32ToBFloat16(bf32[i])
	}

	c := make([]float32, m*n)
	tileDenseBF16(a, b, c, m, n, k, k, k, n, TileShape{RM: 4, RN: 4, BM: 1})

	want := referenceKLast(af32, bf32, m, n, k)
	for i := range want {
		if diff := math.Abs(float64(c[i] - want[i])); diff > 0.05*float64(k) {
			t.Fatalf("index %d: got %v want %v", i, c[i], want[i])
		}
	}
}

func TestTileShapeForRejectsMNotMultipleOf4(t *testing.T) {
	for _, m := range []int{1, 2, 3, 5, 6, 7, 33, 130} {
		if _, ok := TileShapeFor(m, 16, 1); ok {
			t.Errorf("TileShapeFor(m=%d): got ok=true, want false (m not a multiple of 4)", m)
		}
	}
}

func TestTileShapeForSelectsBMByMAlignment(t *testing.T) {
	for _, tc := range []struct {
		m, nth, wantBM int
	}{
		{m: 16, nth: 1, wantBM: 4},  // m%16==0 && m/16=1 >= nth=1
		{m: 16, nth: 2, wantBM: 2},  // m/16=1 < nth=2, falls to m%8==0
		{m: 8, nth: 1, wantBM: 2},   // m%16!=0, m%8==0
		{m: 12, nth: 1, wantBM: 1},  // m%8!=0, m%4==0
	} {
		shape, ok := TileShapeFor(tc.m, 16, tc.nth)
		if !ok {
			t.Fatalf("m=%d nth=%d: TileShapeFor returned ok=false", tc.m, tc.nth)
		}
		if shape.BM != tc.wantBM {
			t.Errorf("m=%d nth=%d: BM = %d, want %d", tc.m, tc.nth, shape.BM, tc.wantBM)
		}
		if shape.RM != 4 {
			t.Errorf("m=%d nth=%d: RM = %d, want 4", tc.m, tc.nth, shape.RM)
		}
	}
}

func TestActualColumnWidthNarrowsToFitN(t *testing.T) {
	// n=7 doesn't split evenly into 6-wide stripes (ceil(7/6)=2 tiles of
	// width ceil(7/2)=4 < 6), so it should narrow until it does.
	if got := actualColumnWidth(7, 6); got > 6 || got < 1 {
		t.Fatalf("actualColumnWidth(7, 6) = %d, out of range", got)
	}
	// n exactly divisible by rn should keep rn unchanged.
	if got := actualColumnWidth(12, 6); got != 6 {
		t.Errorf("actualColumnWidth(12, 6) = %d, want 6", got)
	}
}

// TestGemmBlocRegisterSwapBothOrderings exercises gemmBloc on both sides
// of the RM<=RN loop-nest swap (rm<rn and rm>rn) against the same
// reference, so a regression that breaks either branch of the swap (e.g.
// reusing the wrong operand's loaded vectors) shows up as a wrong answer
// rather than passing trivially regardless of shape.
func TestGemmBlocRegisterSwapBothOrderings(t *testing.T) {
	rng := rand.New(rand.NewSource(99))
	m, n, k := 8, 8, 64
	a := randomMatrix(rng, m*k)
	b := randomMatrix(rng, n*k)
	want := referenceKLast(a, b, m, n, k)
	lanes := hwy.Zero[float32]().NumLanes()

	for _, shape := range []TileShape{
		{RM: 2, RN: 6, BM: 1}, // RM < RN: reuse A-vectors across B
		{RM: 6, RN: 2, BM: 1}, // RM > RN: reuse B-vectors across A
	} {
		c := make([]float32, m*n)
		for ii := 0; ii < m; ii += shape.RM {
			iEnd := min(ii+shape.RM, m)
			for jj := 0; jj < n; jj += shape.RN {
				jEnd := min(jj+shape.RN, n)
				gemmBloc(a, b, c, ii, jj, iEnd-ii, jEnd-jj, k, k, k, n, lanes)
			}
		}
		assertClose(t, c, want, k, maxAbs(a), maxAbs(b))
	}
}
