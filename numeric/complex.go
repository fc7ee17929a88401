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

// Package numeric provides small generic value types; unlike the built-in
// complex64/complex128 pair, Complex is generic over the float width.
package numeric

import (
	"math"

	"golang.org/x/exp/constraints"
)

// Complex is a complex number with components of type T.
type Complex[T constraints.Float] struct {
	Real, Imag T
}

// FromReal returns value as a complex number with a zero imaginary part.
func FromReal[T constraints.Float](value T) Complex[T] {
	return Complex[T]{Real: value}
}

func (z Complex[T]) Neg() Complex[T] {
	return Complex[T]{Real: -z.Real, Imag: -z.Imag}
}

func (z Complex[T]) Add(w Complex[T]) Complex[T] {
	return Complex[T]{Real: z.Real + w.Real, Imag: z.Imag + w.Imag}
}

func (z Complex[T]) Sub(w Complex[T]) Complex[T] {
	return Complex[T]{Real: z.Real - w.Real, Imag: z.Imag - w.Imag}
}

func (z Complex[T]) Mul(w Complex[T]) Complex[T] {
	return Complex[T]{
		Real: z.Real*w.Real - z.Imag*w.Imag,
		Imag: z.Real*w.Imag + z.Imag*w.Real,
	}
}

func (z Complex[T]) Div(w Complex[T]) Complex[T] {
	scale := 1 / (w.Real*w.Real + w.Imag*w.Imag)
	return Complex[T]{
		Real: scale * (z.Real*w.Real + z.Imag*w.Imag),
		Imag: scale * (z.Imag*w.Real - z.Real*w.Imag),
	}
}

// Conj returns the complex conjugate.
func (z Complex[T]) Conj() Complex[T] {
	return Complex[T]{Real: z.Real, Imag: -z.Imag}
}

// Abs returns the modulus |z|.
func (z Complex[T]) Abs() T {
	return T(math.Hypot(float64(z.Real), float64(z.Imag)))
}

// Sqrt returns the principal square root, the one with a non-negative
// real part.
func (z Complex[T]) Sqrt() Complex[T] {
	r := z.Abs()
	re := T(math.Sqrt(float64(r+z.Real) / 2))
	im := T(math.Sqrt(float64(r-z.Real) / 2))
	if z.Imag < 0 {
		im = -im
	}
	return Complex[T]{Real: re, Imag: im}
}

// Polar returns the modulus and phase angle of z, with theta in
// (-pi, pi].
func (z Complex[T]) Polar() (r, theta T) {
	return z.Abs(), T(math.Atan2(float64(z.Imag), float64(z.Real)))
}

// FromPolar returns the complex number with modulus r and phase theta.
func FromPolar[T constraints.Float](r, theta T) Complex[T] {
	return Complex[T]{
		Real: r * T(math.Cos(float64(theta))),
		Imag: r * T(math.Sin(float64(theta))),
	}
}

// AddReal, SubReal, MulReal and DivReal apply a real operand on the left.

func (z Complex[T]) AddReal(value T) Complex[T] { return FromReal(value).Add(z) }

func (z Complex[T]) SubReal(value T) Complex[T] { return FromReal(value).Sub(z) }

func (z Complex[T]) MulReal(value T) Complex[T] { return FromReal(value).Mul(z) }

func (z Complex[T]) DivReal(value T) Complex[T] { return FromReal(value).Div(z) }
