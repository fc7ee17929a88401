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

// Package memory provides polymorphic memory resources: an abstract
// allocation capability, a Go-heap backed system resource, a monotonic
// arena resource that serves allocations from growing chunks, and a typed
// allocator adaptor for generic containers.
package memory

import (
	"errors"

	"golang.org/x/xerrors"
)

const (
	// DefaultAlignment is the alignment used when a call site has no
	// stricter requirement. 64 bytes keeps allocations cache-line aligned.
	DefaultAlignment = 64
)

var (
	// ErrAllocationFailure indicates the resource could not satisfy an
	// allocation request.
	ErrAllocationFailure = errors.New("memory: allocation failure")

	// ErrSizeOverflow indicates a computed byte size exceeds the
	// representable range. It is always detected before the multiplication
	// is performed.
	ErrSizeOverflow = errors.New("memory: size overflow")

	// ErrInvalidAlignment indicates a requested alignment is not a
	// positive power of two.
	ErrInvalidAlignment = errors.New("memory: alignment is not a power of two")
)

// Resource grants raw, aligned memory. Implementations provide exactly the
// three hooks below; callers should go through Allocate and Deallocate,
// which apply the zero-size and nil fast paths so that no implementation
// needs to repeat them.
//
// Resources are not internally synchronized. Concurrent calls on the same
// instance must be serialized by the caller. A resource must outlive every
// allocator and container that references it.
type Resource interface {
	// AllocateRaw returns a slice of at least size bytes whose base
	// address is a multiple of align. Callers reaching this hook through
	// Allocate have size > 0 and align a power of two.
	AllocateRaw(size, align int) ([]byte, error)

	// DeallocateRaw returns memory obtained from AllocateRaw. The slice,
	// size and align must exactly match a prior AllocateRaw call on the
	// same resource; this is not runtime-checked.
	DeallocateRaw(b []byte, size, align int)

	// IsEqual reports whether memory allocated from the receiver can be
	// deallocated through other. Concrete resources compare by identity
	// unless documented otherwise.
	IsEqual(other Resource) bool
}

// Allocate requests size bytes aligned to align from r. A zero size
// returns a nil slice without invoking the resource hook. A non-power-of-two
// alignment fails with ErrInvalidAlignment.
func Allocate(r Resource, size, align int) ([]byte, error) {
	if size == 0 {
		return nil, nil
	}
	if size < 0 {
		return nil, xerrors.Errorf("memory: allocate %d bytes: %w", size, ErrSizeOverflow)
	}
	if !isPowerOf2(align) {
		return nil, xerrors.Errorf("memory: allocate %d bytes with alignment %d: %w", size, align, ErrInvalidAlignment)
	}
	return r.AllocateRaw(size, align)
}

// Deallocate returns b to r. A nil slice is a no-op without invoking the
// resource hook. b, size and align must match the original Allocate call.
func Deallocate(r Resource, b []byte, size, align int) {
	if b == nil {
		return
	}
	r.DeallocateRaw(b, size, align)
}
