// Copyright 2025 go-qsim Authors
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

package statevec

import "unsafe"

// allocAligned returns a Buffer of length n whose first element is aligned
// to alignBytes, by over-allocating and slicing into the aligned region.
// Per spec.md §9, amplitude buffers must guarantee at least 2L*sizeof(fp)
// byte alignment; callers pass that as alignBytes.
func allocAligned[T Float](n, alignBytes int) (Buffer[T], error) {
	if n <= 0 {
		return nil, &InvalidQubitCountError{}
	}

	var zero T
	elemSize := int(unsafe.Sizeof(zero))
	extra := (alignBytes + elemSize - 1) / elemSize

	raw := make([]T, n+extra)
	if raw == nil {
		return nil, ErrAllocationFailure
	}

	addr := uintptr(unsafe.Pointer(&raw[0]))
	align := uintptr(alignBytes)
	alignedAddr := (addr + align - 1) &^ (align - 1)
	offset := int((alignedAddr - addr) / uintptr(elemSize))

	return Buffer[T](raw[offset : offset+n]), nil
}

// isAligned reports whether buf's backing array starts at an alignBytes
// boundary, i.e. whether allocAligned's guarantee holds for buf. Nothing
// in the package calls it.
func isAligned[T Float](buf Buffer[T], alignBytes int) bool {
	if len(buf) == 0 {
		return true
	}
	addr := uintptr(unsafe.Pointer(&buf[0]))
	return addr&(uintptr(alignBytes)-1) == 0
}
