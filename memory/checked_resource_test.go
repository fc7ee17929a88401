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
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeT collects failures so leak reporting itself can be tested.
type fakeT struct {
	errs []string
}

func (f *fakeT) Errorf(format string, args ...interface{}) {
	f.errs = append(f.errs, fmt.Sprintf(format, args...))
}

func (f *fakeT) Helper() {}

func TestCheckedResourceBalanced(t *testing.T) {
	checked := NewCheckedResource(NewSystemResource())

	b, err := Allocate(checked, 64, 8)
	require.NoError(t, err)
	assert.Equal(t, 64, checked.CurrentAlloc())

	Deallocate(checked, b, 64, 8)
	assert.Equal(t, 0, checked.CurrentAlloc())

	ft := &fakeT{}
	checked.AssertSize(ft, 0)
	assert.Empty(t, ft.errs)
}

func TestCheckedResourceReportsLeak(t *testing.T) {
	checked := NewCheckedResource(NewSystemResource())

	_, err := Allocate(checked, 32, 8)
	require.NoError(t, err)

	ft := &fakeT{}
	checked.AssertSize(ft, 0)
	require.NotEmpty(t, ft.errs)
	assert.True(t, strings.Contains(ft.errs[0], "LEAK of 32 bytes"))
}

func TestCheckedResourceScope(t *testing.T) {
	checked := NewCheckedResource(NewSystemResource())

	b, err := Allocate(checked, 16, 8)
	require.NoError(t, err)

	scope := NewCheckedResourceScope(checked)
	inner, err := Allocate(checked, 128, 8)
	require.NoError(t, err)
	Deallocate(checked, inner, 128, 8)

	ft := &fakeT{}
	scope.CheckSize(ft)
	assert.Empty(t, ft.errs, "scope was allocation-balanced")

	Deallocate(checked, b, 16, 8)
	scope.CheckSize(ft)
	assert.NotEmpty(t, ft.errs)
}

func TestCheckedResourceErrorPassthrough(t *testing.T) {
	rec := &recordingResource{failWith: ErrAllocationFailure}
	checked := NewCheckedResource(rec)

	_, err := Allocate(checked, 16, 8)
	assert.ErrorIs(t, err, ErrAllocationFailure)
	assert.Equal(t, 0, checked.CurrentAlloc(), "failed allocations are not counted")
}
