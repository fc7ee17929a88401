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

// Package optional provides a value-or-empty box with explicit access
// semantics instead of pointer-based nullability.
package optional

import "errors"

// ErrNoValue is returned by Get on an empty Optional.
var ErrNoValue = errors.New("optional: no value")

// Optional holds either a T or nothing. The zero value is empty. It is a
// plain value type and performs no allocation.
type Optional[T any] struct {
	value    T
	hasValue bool
}

// Some returns an Optional holding v.
func Some[T any](v T) Optional[T] {
	return Optional[T]{value: v, hasValue: true}
}

// None returns an empty Optional.
func None[T any]() Optional[T] {
	return Optional[T]{}
}

// HasValue reports whether a value is present.
func (o Optional[T]) HasValue() bool { return o.hasValue }

// Get returns the held value, or ErrNoValue when empty.
func (o Optional[T]) Get() (T, error) {
	if !o.hasValue {
		var zero T
		return zero, ErrNoValue
	}
	return o.value, nil
}

// MustGet returns the held value and panics when empty.
func (o Optional[T]) MustGet() T {
	if !o.hasValue {
		panic(ErrNoValue)
	}
	return o.value
}

// GetOr returns the held value, or def when empty.
func (o Optional[T]) GetOr(def T) T {
	if !o.hasValue {
		return def
	}
	return o.value
}

// Set stores v.
func (o *Optional[T]) Set(v T) {
	o.value = v
	o.hasValue = true
}

// Reset empties the Optional, zeroing the stored value so any references
// it held are dropped.
func (o *Optional[T]) Reset() {
	var zero T
	o.value = zero
	o.hasValue = false
}
