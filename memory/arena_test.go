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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArenaDefaults(t *testing.T) {
	a := NewArenaResource()
	defer a.Release()

	assert.Same(t, DefaultResource(), a.Upstream())
	assert.Equal(t, DefaultChunkSize, a.ChunkSize())

	b := NewArenaResource(WithChunkSize(-5))
	defer b.Release()
	assert.Equal(t, DefaultChunkSize, b.ChunkSize())
}

func TestArenaAlignment(t *testing.T) {
	a := NewArenaResource(WithChunkSize(256))
	defer a.Release()

	for _, align := range []int{1, 2, 8, 16, 64, 128, 4096} {
		t.Run(fmt.Sprintf("align%d", align), func(t *testing.T) {
			for i := 0; i < 10; i++ {
				buf, err := Allocate(a, 7, align)
				require.NoError(t, err)
				assert.True(t, isAlignedTo(int(addressOf(buf)), align))
			}
		})
	}
}

func TestArenaBumpMonotonicity(t *testing.T) {
	a := NewArenaResource(WithChunkSize(1024))
	defer a.Release()

	const n = 16
	prevEnd := uintptr(0)
	for i := 0; i < 1024/n; i++ {
		buf, err := Allocate(a, n, 8)
		require.NoError(t, err)
		addr := addressOf(buf)
		if prevEnd != 0 {
			// Ranges within a chunk never overlap and the cursor only
			// moves forward.
			assert.GreaterOrEqual(t, addr, prevEnd)
		}
		prevEnd = addr + n
	}
}

func TestArenaChunkScenario(t *testing.T) {
	rec := &recordingResource{}
	a := NewArenaResource(WithUpstream(rec), WithChunkSize(64))

	// First two allocations share the first chunk.
	_, err := Allocate(a, 10, 8)
	require.NoError(t, err)
	_, err = Allocate(a, 10, 8)
	require.NoError(t, err)
	require.Len(t, rec.allocs, 1)
	assert.Equal(t, rawCall{size: 64, align: 64}, rec.allocs[0])

	// 50 bytes no longer fit; a second chunk is grown while the first
	// stays in the list.
	_, err = Allocate(a, 50, 8)
	require.NoError(t, err)
	require.Len(t, rec.allocs, 2)
	assert.Equal(t, rawCall{size: 64, align: 64}, rec.allocs[1])

	// Release returns both chunks upstream.
	a.Release()
	require.Len(t, rec.deallocs, 2)
	for _, d := range rec.deallocs {
		assert.Equal(t, rawCall{size: 64, align: 64}, d)
	}

	// The next allocation grows from scratch.
	_, err = Allocate(a, 10, 8)
	require.NoError(t, err)
	assert.Len(t, rec.allocs, 3)
	a.Release()
}

func TestArenaPassthrough(t *testing.T) {
	rec := &recordingResource{}
	a := NewArenaResource(WithUpstream(rec), WithChunkSize(64))
	defer a.Release()

	// Strictly larger than the chunk size: forwarded upstream exactly once
	// with the caller's size and alignment.
	buf, err := Allocate(a, 100, 8)
	require.NoError(t, err)
	require.Len(t, rec.allocs, 1)
	assert.Equal(t, rawCall{size: 100, align: 8}, rec.allocs[0])

	Deallocate(a, buf, 100, 8)
	require.Len(t, rec.deallocs, 1)
	assert.Equal(t, rawCall{size: 100, align: 8}, rec.deallocs[0])

	// Chunk-served memory is not forwarded on deallocation.
	small, err := Allocate(a, 10, 8)
	require.NoError(t, err)
	Deallocate(a, small, 10, 8)
	assert.Len(t, rec.deallocs, 1)
}

func TestArenaEqualChunkSizeNotPassedThrough(t *testing.T) {
	rec := &recordingResource{}
	a := NewArenaResource(WithUpstream(rec), WithChunkSize(64))
	defer a.Release()

	// A request of exactly the chunk size is served from a chunk.
	buf, err := Allocate(a, 64, 8)
	require.NoError(t, err)
	require.Len(t, rec.allocs, 1)
	assert.Equal(t, 64, rec.allocs[0].size)

	Deallocate(a, buf, 64, 8)
	assert.Empty(t, rec.deallocs)
}

func TestArenaReleaseIdempotent(t *testing.T) {
	rec := &recordingResource{}
	a := NewArenaResource(WithUpstream(rec), WithChunkSize(64))

	_, err := Allocate(a, 10, 8)
	require.NoError(t, err)
	_, err = Allocate(a, 60, 8)
	require.NoError(t, err)

	a.Release()
	n := len(rec.deallocs)
	a.Release()
	assert.Equal(t, n, len(rec.deallocs), "second release must be a no-op")

	a.Release() // empty arena, still fine
	assert.Equal(t, n, len(rec.deallocs))
}

func TestArenaLargeAlignmentChunk(t *testing.T) {
	rec := &recordingResource{}
	a := NewArenaResource(WithUpstream(rec), WithChunkSize(64))
	defer a.Release()

	// Alignment stricter than the default chunk alignment is honored by
	// requesting the chunk itself at that alignment.
	buf, err := Allocate(a, 64, 256)
	require.NoError(t, err)
	assert.True(t, isAlignedTo(int(addressOf(buf)), 256))
	require.Len(t, rec.allocs, 1)
	assert.Equal(t, rawCall{size: 64, align: 256}, rec.allocs[0])
}

func TestArenaUpstreamFailure(t *testing.T) {
	rec := &recordingResource{failWith: ErrAllocationFailure}
	a := NewArenaResource(WithUpstream(rec), WithChunkSize(64))

	_, err := Allocate(a, 10, 8) // chunk growth fails
	assert.ErrorIs(t, err, ErrAllocationFailure)

	_, err = Allocate(a, 100, 8) // passthrough fails
	assert.ErrorIs(t, err, ErrAllocationFailure)
}

func TestArenaCheckedUpstreamBalance(t *testing.T) {
	checked := NewCheckedResource(NewSystemResource())
	a := NewArenaResource(WithUpstream(checked), WithChunkSize(128))

	for i := 0; i < 32; i++ {
		_, err := Allocate(a, 24, 8)
		require.NoError(t, err)
	}
	big, err := Allocate(a, 1024, 8)
	require.NoError(t, err)
	Deallocate(a, big, 1024, 8)

	a.Release()
	checked.AssertSize(t, 0)
}
