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

import "unsafe"

// Object-level helpers. Go methods cannot introduce type parameters, so
// allocating a U through an Allocator[T] bound to the same resource is
// spelled as a package function over the resource itself.

// AllocateObject returns storage for n objects of type U from r, applying
// the same overflow check as Allocator.Allocate.
func AllocateObject[U any](r Resource, n int) ([]U, error) {
	return NewAllocator[U](r).Allocate(n)
}

// DeallocateObject returns storage obtained from AllocateObject.
func DeallocateObject[U any](r Resource, s []U) {
	NewAllocator[U](r).Deallocate(s)
}

// NewObject allocates a single U from r and initializes it with v.
// Initialization is plain assignment and cannot fail, so there is no
// partially constructed state to leak.
func NewObject[U any](r Resource, v U) (*U, error) {
	if sizeOf[U]() == 0 {
		// Zero-size types need no storage.
		return new(U), nil
	}
	s, err := AllocateObject[U](r, 1)
	if err != nil {
		return nil, err
	}
	p := &s[0]
	*p = v
	return p, nil
}

// DeleteObject zeroes *p and returns its storage to r. p must come from
// NewObject on an equal resource. Nil is a no-op.
func DeleteObject[U any](r Resource, p *U) {
	if p == nil {
		return
	}
	var zero U
	*p = zero
	if sizeOf[U]() == 0 {
		return
	}
	DeallocateObject(r, unsafe.Slice(p, 1))
}
