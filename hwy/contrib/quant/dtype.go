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

package quant

// DType tags the element type of an operand or result matrix. It is the
// integer enumeration shared between this module and its caller: the
// dispatcher accepts one DType per operand instead of a separate typed
// entry point per format.
type DType int

const (
	TypeF32 DType = iota
	TypeF16
	TypeBF16
	TypeQ8_0
	TypeQ4_0
	TypeQ5_0
	TypeIQ4NL
)

// IsQuantized reports whether dtype is one of the block-quantized formats
// decoded by this package, as opposed to a dense float representation.
func (d DType) IsQuantized() bool {
	switch d {
	case TypeQ8_0, TypeQ4_0, TypeQ5_0, TypeIQ4NL:
		return true
	default:
		return false
	}
}

// String returns a lowercase GGUF-style name for dtype.
func (d DType) String() string {
	switch d {
	case TypeF32:
		return "f32"
	case TypeF16:
		return "f16"
	case TypeBF16:
		return "bf16"
	case TypeQ8_0:
		return "q8_0"
	case TypeQ4_0:
		return "q4_0"
	case TypeQ5_0:
		return "q5_0"
	case TypeIQ4NL:
		return "iq4_nl"
	default:
		return "unknown"
	}
}
