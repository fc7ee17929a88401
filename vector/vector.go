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

// Package vector implements a growable sequence whose storage is acquired
// through a typed allocator instead of the Go heap directly, so a single
// arena can back many short-lived vectors and reclaim them in bulk.
package vector

import (
	"github.com/memkit/memkit/memory"
)

const minCapacity = 4

// Vector is a growable sequence of T. All storage is requested from the
// bound allocator's resource; the vector never calls make for element
// storage. The zero value is empty and allocates from the default
// resource.
//
// A Vector is not synchronized and borrows its resource: the resource must
// stay alive, and unreleased, for as long as the vector is in use.
type Vector[T any] struct {
	alloc memory.Allocator[T]
	data  []T // capacity; only data[:n] holds live elements
	n     int
}

// New returns an empty vector allocating from alloc's resource.
func New[T any](alloc memory.Allocator[T]) *Vector[T] {
	return &Vector[T]{alloc: alloc}
}

// NewWithCapacity returns an empty vector with storage reserved for
// capacity elements.
func NewWithCapacity[T any](alloc memory.Allocator[T], capacity int) (*Vector[T], error) {
	v := New[T](alloc)
	if err := v.Reserve(capacity); err != nil {
		return nil, err
	}
	return v, nil
}

// Len returns the number of elements.
func (v *Vector[T]) Len() int { return v.n }

// Cap returns the number of elements the current storage can hold.
func (v *Vector[T]) Cap() int { return len(v.data) }

// Allocator returns the bound allocator.
func (v *Vector[T]) Allocator() memory.Allocator[T] { return v.alloc }

// Values returns the live elements as a slice view. The view is
// invalidated by any growth, Release, or release of the backing resource.
func (v *Vector[T]) Values() []T { return v.data[:v.n] }

// Reserve grows the storage to hold at least capacity elements. Shrinking
// is not supported; a smaller capacity is a no-op.
func (v *Vector[T]) Reserve(capacity int) error {
	if capacity <= len(v.data) {
		return nil
	}
	newData, err := v.alloc.Allocate(capacity)
	if err != nil {
		return err
	}
	copy(newData, v.data[:v.n])
	old := v.data
	v.data = newData
	if old != nil {
		v.alloc.Deallocate(old)
	}
	return nil
}

// PushBack appends x, growing the storage when full.
func (v *Vector[T]) PushBack(x T) error {
	if v.n == len(v.data) {
		newCap := 2 * len(v.data)
		if newCap < minCapacity {
			newCap = minCapacity
		}
		if err := v.Reserve(newCap); err != nil {
			return err
		}
	}
	v.alloc.Construct(&v.data[v.n], x)
	v.n++
	return nil
}

// PopBack removes and returns the last element. The second result is false
// on an empty vector.
func (v *Vector[T]) PopBack() (T, bool) {
	if v.n == 0 {
		var zero T
		return zero, false
	}
	v.n--
	x := v.data[v.n]
	v.alloc.Destroy(&v.data[v.n])
	return x, true
}

// At returns the element at index i. It panics if i is out of range, like
// indexing a slice.
func (v *Vector[T]) At(i int) T {
	return v.data[:v.n][i]
}

// Set replaces the element at index i. It panics if i is out of range.
func (v *Vector[T]) Set(i int, x T) {
	v.data[:v.n][i] = x
}

// Resize changes the length to n. New elements are set to fill; removed
// elements are destroyed. Capacity only ever grows.
func (v *Vector[T]) Resize(n int, fill T) error {
	if n < 0 {
		n = 0
	}
	if n > len(v.data) {
		if err := v.Reserve(n); err != nil {
			return err
		}
	}
	for i := v.n; i < n; i++ {
		v.alloc.Construct(&v.data[i], fill)
	}
	for i := n; i < v.n; i++ {
		v.alloc.Destroy(&v.data[i])
	}
	v.n = n
	return nil
}

// Clear destroys all elements but keeps the storage for reuse.
func (v *Vector[T]) Clear() {
	for i := 0; i < v.n; i++ {
		v.alloc.Destroy(&v.data[i])
	}
	v.n = 0
}

// Release destroys all elements and returns the storage to the resource.
// The vector is empty and reusable afterwards.
func (v *Vector[T]) Release() {
	v.Clear()
	if v.data != nil {
		v.alloc.Deallocate(v.data)
		v.data = nil
	}
}
