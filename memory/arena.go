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

import "golang.org/x/xerrors"

// DefaultChunkSize is the chunk size an arena grows by unless configured
// otherwise (256 KiB).
const DefaultChunkSize = 256 * 1024

// chunkAlign is the minimum alignment every chunk is requested with from
// the upstream resource, so that in-chunk offsets aligned relative to the
// base are also absolutely aligned up to this bound.
const chunkAlign = DefaultAlignment

// chunk is one contiguous extent obtained from the upstream resource.
// Chunks form a singly linked list, most recently allocated first, and are
// returned upstream only as a whole by Release.
type chunk struct {
	buf   []byte
	align int // alignment the chunk was requested with
	next  *chunk
}

// ArenaResource is a monotonic allocator: it serves allocations by bumping
// a cursor through chunks obtained from an upstream resource and reclaims
// memory only in bulk, via Release. Individual deallocations are no-ops,
// except for oversized allocations that were passed through to upstream.
//
// An ArenaResource is not synchronized; confine it to one goroutine or
// serialize access externally. The arena borrows its upstream resource and
// never frees it.
type ArenaResource struct {
	upstream  Resource
	chunkSize int

	chunks *chunk // list head doubles as the current chunk
	pos    int    // bump cursor within chunks.buf

	owner arenaOwner
}

// ArenaOption configures an ArenaResource.
type ArenaOption func(*ArenaResource)

// WithUpstream sets the resource chunks are obtained from. Defaults to
// DefaultResource.
func WithUpstream(r Resource) ArenaOption {
	return func(a *ArenaResource) { a.upstream = r }
}

// WithChunkSize sets the size the arena grows by. Requests larger than
// this bypass the arena and go directly upstream. Non-positive values are
// replaced by DefaultChunkSize.
func WithChunkSize(size int) ArenaOption {
	return func(a *ArenaResource) { a.chunkSize = size }
}

// NewArenaResource returns an empty arena. No chunk is allocated until the
// first allocation request.
func NewArenaResource(opts ...ArenaOption) *ArenaResource {
	a := &ArenaResource{chunkSize: DefaultChunkSize}
	for _, opt := range opts {
		opt(a)
	}
	if a.upstream == nil {
		a.upstream = DefaultResource()
	}
	if a.chunkSize <= 0 {
		a.chunkSize = DefaultChunkSize
	}
	a.setOwner()
	return a
}

// Upstream returns the resource the arena obtains its chunks from.
func (a *ArenaResource) Upstream() Resource { return a.upstream }

// ChunkSize returns the configured chunk size.
func (a *ArenaResource) ChunkSize() int { return a.chunkSize }

func (a *ArenaResource) AllocateRaw(size, align int) ([]byte, error) {
	a.assertOwner()
	if size > a.chunkSize {
		// Oversized requests would strand most of a fresh chunk, so they
		// bypass the chunk list entirely. DeallocateRaw applies the same
		// size test to route the matching free upstream.
		b, err := a.upstream.AllocateRaw(size, align)
		if err != nil {
			return nil, xerrors.Errorf("memory: arena passthrough of %d bytes: %w", size, err)
		}
		return b, nil
	}
	off, ok := a.fit(size, align)
	if !ok {
		if err := a.grow(size, align); err != nil {
			return nil, err
		}
		// A fresh chunk is at least size bytes and its base is aligned to
		// align, so the request fits at offset zero.
		off = 0
	}
	return a.take(off, size), nil
}

// DeallocateRaw is a no-op for chunk-served memory; it is reclaimed only by
// Release. Sizes above the chunk size identify passthrough allocations and
// are forwarded upstream, so size must equal the size given at allocation.
func (a *ArenaResource) DeallocateRaw(b []byte, size, align int) {
	a.assertOwner()
	if size > a.chunkSize {
		a.upstream.DeallocateRaw(b, size, align)
	}
}

func (a *ArenaResource) IsEqual(other Resource) bool {
	o, ok := other.(*ArenaResource)
	return ok && o == a
}

// Release returns every chunk to the upstream resource and resets the
// arena to its empty state. Calling Release on an empty arena is a no-op;
// the next allocation grows a fresh chunk. Memory handed out by the arena
// is invalid after Release.
func (a *ArenaResource) Release() {
	a.assertOwner()
	for c := a.chunks; c != nil; {
		next := c.next
		a.upstream.DeallocateRaw(c.buf, len(c.buf), c.align)
		c = next
	}
	a.chunks = nil
	a.pos = 0
}

// fit computes the aligned offset for a request within the current chunk.
// Alignment is computed on the absolute address, not the relative offset,
// so requests stricter than the chunk's own alignment are still honored.
func (a *ArenaResource) fit(size, align int) (int, bool) {
	c := a.chunks
	if c == nil {
		return 0, false
	}
	base := int(addressOf(c.buf))
	off := roundToPowerOf2(base+a.pos, align) - base
	if off+size > len(c.buf) {
		return 0, false
	}
	return off, true
}

func (a *ArenaResource) take(off, size int) []byte {
	c := a.chunks
	a.pos = off + size
	return c.buf[off : off+size : off+size]
}

// grow obtains a new chunk from upstream and pushes it to the list head.
// Chunks are not sized exponentially: each is the larger of the configured
// chunk size and the immediate request.
func (a *ArenaResource) grow(size, align int) error {
	n := a.chunkSize
	if size > n {
		n = size
	}
	ca := chunkAlign
	if align > ca {
		ca = align
	}
	buf, err := a.upstream.AllocateRaw(n, ca)
	if err != nil {
		return xerrors.Errorf("memory: arena chunk of %d bytes: %w", n, err)
	}
	a.chunks = &chunk{buf: buf, align: ca, next: a.chunks}
	a.pos = 0
	return nil
}

var (
	_ Resource = (*ArenaResource)(nil)
)
