package hwy

import "testing"

func TestPromoteI8ToI16(t *testing.T) {
	input := Vec[int8]{data: []int8{-128, -1, 0, 1, 127}}
	result := PromoteI8ToI16(input)

	for i := 0; i < len(input.data); i++ {
		expected := int16(input.data[i])
		if result.data[i] != expected {
			t.Errorf("PromoteI8ToI16 lane %d: got %v, want %v", i, result.data[i], expected)
		}
	}
}

func TestPromoteI16ToI32(t *testing.T) {
	input := Vec[int16]{data: []int16{-32768, -1, 0, 1, 32767}}
	result := PromoteI16ToI32(input)

	for i := 0; i < len(input.data); i++ {
		expected := int32(input.data[i])
		if result.data[i] != expected {
			t.Errorf("PromoteI16ToI32 lane %d: got %v, want %v", i, result.data[i], expected)
		}
	}
}

func TestPromoteU8ToU16(t *testing.T) {
	input := Vec[uint8]{data: []uint8{0, 1, 127, 128, 255}}
	result := PromoteU8ToU16(input)

	for i := 0; i < len(input.data); i++ {
		expected := uint16(input.data[i])
		if result.data[i] != expected {
			t.Errorf("PromoteU8ToU16 lane %d: got %v, want %v", i, result.data[i], expected)
		}
	}
}

func TestPromoteU16ToU32(t *testing.T) {
	input := Vec[uint16]{data: []uint16{0, 1, 32767, 32768, 65535}}
	result := PromoteU16ToU32(input)

	for i := 0; i < len(input.data); i++ {
		expected := uint32(input.data[i])
		if result.data[i] != expected {
			t.Errorf("PromoteU16ToU32 lane %d: got %v, want %v", i, result.data[i], expected)
		}
	}
}
