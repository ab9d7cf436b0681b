package quant

import (
	"math"
	"math/rand"
	"testing"
)

func TestQuantizeDequantizeQ8_0RoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	const n = QK * 4
	input := make([]float32, n)
	for i := range input {
		input[i] = rng.Float32()*2 - 1
	}

	raw := make([]byte, (n/QK)*SizeQ8_0)
	QuantizeQ8_0(input, raw)

	out := make([]float32, n)
	Dequantize(TypeQ8_0, raw, out)

	for i := range input {
		if diff := math.Abs(float64(input[i] - out[i])); diff > 0.02 {
			t.Fatalf("index %d: input=%v out=%v diff=%v", i, input[i], out[i], diff)
		}
	}
}

func TestDecodeQ4_0Range(t *testing.T) {
	raw := make([]byte, SizeQ4_0)
	raw[0], raw[1] = 0x00, 0x3C // delta = 1.0
	for i := 2; i < SizeQ4_0; i++ {
		raw[i] = 0xF0 // lo nibble 0 -> -8, hi nibble 15 -> 7
	}
	blk := DecodeQ4_0(raw)
	if blk.Delta != 1.0 {
		t.Fatalf("delta = %v, want 1.0", blk.Delta)
	}
	for i := 0; i < QK/2; i++ {
		if blk.Qs[i] != -8 {
			t.Fatalf("Qs[%d] = %v, want -8", i, blk.Qs[i])
		}
		if blk.Qs[QK/2+i] != 7 {
			t.Fatalf("Qs[%d] = %v, want 7", QK/2+i, blk.Qs[QK/2+i])
		}
	}
}

func TestDecodeIQ4NLUsesLUT(t *testing.T) {
	raw := make([]byte, SizeIQ4NL)
	raw[0], raw[1] = 0x00, 0x3C // delta = 1.0
	raw[2] = 0x00 // lo nibble 0, hi nibble 0 -> both index 0
	blk := DecodeIQ4NL(raw)
	if blk.Qs[0] != kvaluesIQ4NL[0] || blk.Qs[QK/2] != kvaluesIQ4NL[0] {
		t.Fatalf("iq4_nl decode did not use the LUT: got %v / %v", blk.Qs[0], blk.Qs[QK/2])
	}
}

func TestVecDotQ8_0MatchesManualSum(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	wdata := make([]byte, SizeQ8_0)
	adata := make([]byte, SizeQ8_0)
	for _, buf := range [][]byte{wdata, adata} {
		vals := make([]float32, QK)
		for i := range vals {
			vals[i] = rng.Float32()*2 - 1
		}
		QuantizeQ8_0(vals, buf)
	}

	got := VecDot(TypeQ8_0, wdata, adata, 1)

	dw := blockDelta(wdata)
	da := blockDelta(adata)
	var want float32
	for i := 0; i < QK; i++ {
		want += dw * da * float32(int8(wdata[2+i])) * float32(int8(adata[2+i]))
	}
	if math.Abs(float64(got-want)) > 1e-3 {
		t.Fatalf("VecDot = %v, want %v", got, want)
	}
}

func TestBlockSize(t *testing.T) {
	cases := map[DType]int{
		TypeQ8_0:  34,
		TypeQ4_0:  18,
		TypeQ5_0:  22,
		TypeIQ4NL: 18,
		TypeF32:   0,
	}
	for dtype, want := range cases {
		if got := BlockSize(dtype); got != want {
			t.Errorf("BlockSize(%v) = %d, want %d", dtype, got, want)
		}
	}
}
