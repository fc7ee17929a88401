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

package optional

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptionalSomeNone(t *testing.T) {
	s := Some(42)
	assert.True(t, s.HasValue())
	v, err := s.Get()
	require.NoError(t, err)
	assert.Equal(t, 42, v)
	assert.Equal(t, 42, s.MustGet())
	assert.Equal(t, 42, s.GetOr(-1))

	n := None[int]()
	assert.False(t, n.HasValue())
	_, err = n.Get()
	assert.ErrorIs(t, err, ErrNoValue)
	assert.Equal(t, -1, n.GetOr(-1))
	assert.Panics(t, func() { n.MustGet() })
}

func TestOptionalZeroValueIsEmpty(t *testing.T) {
	var o Optional[string]
	assert.False(t, o.HasValue())
	_, err := o.Get()
	assert.ErrorIs(t, err, ErrNoValue)
}

func TestOptionalSetReset(t *testing.T) {
	var o Optional[*int]
	x := 7
	o.Set(&x)
	require.True(t, o.HasValue())
	assert.Same(t, &x, o.MustGet())

	o.Reset()
	assert.False(t, o.HasValue())
	assert.Nil(t, o.GetOr(nil), "reset drops the held reference")
}
