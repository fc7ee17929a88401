// Licensed to the Apache Software Foundation (ASF) under one
// or more contributor license agreements.  See the NOTICE file
// distributed with this work for additional information
// regarding copyright ownership.  The ASF licenses this file
// to you under the Apache License, Version 2.0 (the
// "License"); you may not use this file except in compliance
// with the License.  You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package tagged packs a small type tag into the unused high bits of a
// 64-bit pointer, giving a word-sized discriminated pointer for code that
// dispatches over a closed set of pointee types.
//
// A Ptr stores the address as a uintptr, which the garbage collector does
// not trace. The pointee must be kept reachable by other means, typically
// by the arena or resource that owns its storage.
package tagged

import (
	"fmt"
	"unsafe"
)

const (
	// tagShift leaves the low 59 bits for the address, which covers every
	// current 64-bit virtual address space.
	tagShift = 59

	ptrMask = 1<<tagShift - 1

	// MaxTag is the largest usable tag. Tag 0 is reserved for the nil Ptr.
	MaxTag = 1<<(64-tagShift) - 1
)

// Ptr is a pointer with a type tag in its high bits. The zero value is the
// nil Ptr with tag 0. Ptr is comparable with ==.
type Ptr struct {
	bits uintptr
}

// Nil returns the nil Ptr.
func Nil() Ptr { return Ptr{} }

// Pack combines p and tag. It panics if tag is 0 or above MaxTag, or if
// p's address does not fit below the tag bits.
func Pack(p unsafe.Pointer, tag uint8) Ptr {
	if tag == 0 || tag > MaxTag {
		panic(fmt.Sprintf("tagged: tag %d out of range [1, %d]", tag, MaxTag))
	}
	addr := uintptr(p)
	if addr&^uintptr(ptrMask) != 0 {
		panic(fmt.Sprintf("tagged: address %#x does not fit in %d bits", addr, tagShift))
	}
	return Ptr{bits: addr | uintptr(tag)<<tagShift}
}

// IsNil reports whether p holds no pointer.
func (p Ptr) IsNil() bool { return p.bits == 0 }

// Tag returns the type tag; 0 for the nil Ptr.
func (p Ptr) Tag() uint8 { return uint8(p.bits >> tagShift) }

// Pointer returns the untyped address with the tag stripped.
func (p Ptr) Pointer() unsafe.Pointer {
	return unsafe.Pointer(p.bits & ptrMask) //nolint:govet // uintptr round-trip; pointee is kept alive externally
}

// As returns the pointee as *T when p carries tag, and nil otherwise.
func As[T any](p Ptr, tag uint8) *T {
	if p.Tag() != tag {
		return nil
	}
	return (*T)(p.Pointer())
}

// MustAs is As but panics on a tag mismatch.
func MustAs[T any](p Ptr, tag uint8) *T {
	if p.Tag() != tag {
		panic(fmt.Sprintf("tagged: pointer carries tag %d, want %d", p.Tag(), tag))
	}
	return (*T)(p.Pointer())
}
