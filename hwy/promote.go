package hwy

// This file provides pure Go (scalar) implementations of type promotion
// operations used by the quantized dot-product path: widening int8/uint8
// lanes to int32/uint32 two steps at a time (x8->x16->x32), the same
// widen-pairwise shape VNNI-class hardware collapses into one instruction.
//
// Note: Go generics don't support type relationships like "T is narrower than U",
// so we provide concrete type-specific functions.

// PromoteI8ToI16 widens int8 to int16 (sign-extended).
func PromoteI8ToI16(v Vec[int8]) Vec[int16] {
	result := make([]int16, len(v.data))
	for i := 0; i < len(v.data); i++ {
		result[i] = int16(v.data[i])
	}
	return Vec[int16]{data: result}
}

// PromoteI16ToI32 widens int16 to int32 (sign-extended).
func PromoteI16ToI32(v Vec[int16]) Vec[int32] {
	result := make([]int32, len(v.data))
	for i := 0; i < len(v.data); i++ {
		result[i] = int32(v.data[i])
	}
	return Vec[int32]{data: result}
}

// PromoteU8ToU16 widens uint8 to uint16.
func PromoteU8ToU16(v Vec[uint8]) Vec[uint16] {
	result := make([]uint16, len(v.data))
	for i := 0; i < len(v.data); i++ {
		result[i] = uint16(v.data[i])
	}
	return Vec[uint16]{data: result}
}

// PromoteU16ToU32 widens uint16 to uint32.
func PromoteU16ToU32(v Vec[uint16]) Vec[uint32] {
	result := make([]uint32, len(v.data))
	for i := 0; i < len(v.data); i++ {
		result[i] = uint32(v.data[i])
	}
	return Vec[uint32]{data: result}
}
