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

//go:build matmuldebug

package matmul

// debugAssert panics with msg if cond is false. Compiled in only under the
// matmuldebug build tag, so a precondition violation panics in debug
// builds and is simply not checked in release builds - the release-vs-debug
// split the dispatcher's preconditions are specified against.
func debugAssert(cond bool, msg string) {
	if !cond {
		panic("matmul: " + msg)
	}
}
