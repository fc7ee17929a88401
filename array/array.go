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

// Package array implements a fixed-length sequence whose storage is
// acquired through a typed allocator. Unlike a native Go array, its
// length is chosen at construction time and its storage can come from an
// arena, so many short-lived arrays share one bulk release.
package array

import (
	"github.com/memkit/memkit/memory"
)

// Array is a fixed-length sequence of T. The length never changes after
// construction. Elements start at the zero value.
//
// An Array is not synchronized and borrows its resource: the resource
// must stay alive, and unreleased, for as long as the array is in use.
type Array[T any] struct {
	alloc memory.Allocator[T]
	data  []T
}

// New returns an array of n zero-valued elements allocating from alloc's
// resource. A negative n is treated as zero.
func New[T any](alloc memory.Allocator[T], n int) (*Array[T], error) {
	if n < 0 {
		n = 0
	}
	data, err := alloc.AllocateZeroed(n)
	if err != nil {
		return nil, err
	}
	return &Array[T]{alloc: alloc, data: data}, nil
}

// Of returns an array holding copies of the given values.
func Of[T any](alloc memory.Allocator[T], values ...T) (*Array[T], error) {
	a, err := New(alloc, len(values))
	if err != nil {
		return nil, err
	}
	copy(a.data, values)
	return a, nil
}

// Len returns the fixed length.
func (a *Array[T]) Len() int { return len(a.data) }

// Allocator returns the bound allocator.
func (a *Array[T]) Allocator() memory.Allocator[T] { return a.alloc }

// Values returns the elements as a slice view. The view is invalidated by
// Release or release of the backing resource.
func (a *Array[T]) Values() []T { return a.data }

// At returns the element at index i. It panics if i is out of range, like
// indexing a slice.
func (a *Array[T]) At(i int) T { return a.data[i] }

// Set replaces the element at index i. It panics if i is out of range.
func (a *Array[T]) Set(i int, x T) { a.data[i] = x }

// Front returns the first element. It panics on an empty array.
func (a *Array[T]) Front() T { return a.data[0] }

// Back returns the last element. It panics on an empty array.
func (a *Array[T]) Back() T { return a.data[len(a.data)-1] }

// Fill sets every element to v.
func (a *Array[T]) Fill(v T) {
	for i := range a.data {
		a.data[i] = v
	}
}

// Swap exchanges the contents of two arrays of the same length. It panics
// if the lengths differ.
func (a *Array[T]) Swap(other *Array[T]) {
	if len(a.data) != len(other.data) {
		panic("array: swap of arrays with different lengths")
	}
	for i := range a.data {
		a.data[i], other.data[i] = other.data[i], a.data[i]
	}
}

// Release zeroes the elements and returns the storage to the resource.
// The array is empty afterwards.
func (a *Array[T]) Release() {
	for i := range a.data {
		a.alloc.Destroy(&a.data[i])
	}
	if a.data != nil {
		a.alloc.Deallocate(a.data)
		a.data = nil
	}
}

// Equal reports whether two arrays have the same length and equal
// elements.
func Equal[T comparable](a, b *Array[T]) bool {
	if len(a.data) != len(b.data) {
		return false
	}
	for i := range a.data {
		if a.data[i] != b.data[i] {
			return false
		}
	}
	return true
}
