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

package memory

import (
	"unsafe"

	"github.com/JohnCGriffin/overflow"
	"golang.org/x/xerrors"
)

// Allocator adapts a Resource to typed allocations for one element type.
// It is a cheap value type holding only a borrowed resource reference and
// may be copied freely. The zero value allocates from DefaultResource.
type Allocator[T any] struct {
	res Resource
}

// NewAllocator returns an allocator bound to r. A nil resource binds
// DefaultResource.
func NewAllocator[T any](r Resource) Allocator[T] {
	return Allocator[T]{res: r}
}

// Resource returns the bound resource; never nil.
func (a Allocator[T]) Resource() Resource {
	if a.res == nil {
		return DefaultResource()
	}
	return a.res
}

// Equal reports whether a and b allocate from equal resources.
func (a Allocator[T]) Equal(b Allocator[T]) bool {
	return a.Resource().IsEqual(b.Resource())
}

// AllocatorsEqual reports whether two allocators over possibly different
// element types allocate from equal resources.
func AllocatorsEqual[T, U any](a Allocator[T], b Allocator[U]) bool {
	return a.Resource().IsEqual(b.Resource())
}

// Allocate returns storage for n elements of T. The slice has length and
// capacity n and must be returned with Deallocate on the same allocator.
// Element contents are unspecified.
func (a Allocator[T]) Allocate(n int) ([]T, error) {
	nbytes, err := byteCount(n, sizeOf[T]())
	if err != nil {
		return nil, err
	}
	if n > 0 && sizeOf[T]() == 0 {
		// Zero-size elements occupy no storage but callers still index
		// the slice, so it needs its full length.
		return make([]T, n), nil
	}
	b, err := Allocate(a.Resource(), nbytes, alignOf[T]())
	if err != nil || b == nil {
		return nil, err
	}
	return unsafe.Slice((*T)(unsafe.Pointer(&b[0])), n), nil
}

// AllocateZeroed is Allocate with every element set to the zero value.
func (a Allocator[T]) AllocateZeroed(n int) ([]T, error) {
	s, err := a.Allocate(n)
	if err != nil || s == nil {
		return nil, err
	}
	Set(sliceBytes(s), 0)
	return s, nil
}

// Deallocate returns s to the bound resource. s must be exactly the slice
// returned by a prior Allocate call on an equal resource.
func (a Allocator[T]) Deallocate(s []T) {
	if len(s) == 0 || sizeOf[T]() == 0 {
		return
	}
	nbytes := len(s) * sizeOf[T]()
	Deallocate(a.Resource(), sliceBytes(s), nbytes, alignOf[T]())
}

// Construct places v at p. It performs no allocation.
func (a Allocator[T]) Construct(p *T, v T) { *p = v }

// Destroy resets *p to the zero value so that any references it holds are
// dropped. It performs no deallocation.
func (a Allocator[T]) Destroy(p *T) {
	var zero T
	*p = zero
}

// byteCount returns n*size, rejecting the request before multiplying if
// the product is not representable.
func byteCount(n, size int) (int, error) {
	if n < 0 {
		return 0, xerrors.Errorf("memory: negative count %d: %w", n, ErrSizeOverflow)
	}
	nbytes, ok := overflow.Mul(n, size)
	if !ok {
		return 0, xerrors.Errorf("memory: %d elements of %d bytes: %w", n, size, ErrSizeOverflow)
	}
	return nbytes, nil
}

func sizeOf[T any]() int {
	var zero T
	return int(unsafe.Sizeof(zero))
}

func alignOf[T any]() int {
	var zero T
	return int(unsafe.Alignof(zero))
}

// sliceBytes reinterprets a non-empty typed slice as its backing bytes.
func sliceBytes[T any](s []T) []byte {
	return unsafe.Slice((*byte)(unsafe.Pointer(&s[0])), len(s)*sizeOf[T]())
}
