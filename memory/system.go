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

import "sync"

// SystemResource allocates from the Go heap. Deallocation is a no-op; the
// garbage collector reclaims memory once it is unreachable.
//
// SystemResource is safe to use from multiple goroutines.
type SystemResource struct {
	_ [1]byte // distinct instances must have distinct addresses for IsEqual
}

// NewSystemResource returns a new system resource. Most callers should use
// DefaultResource instead.
func NewSystemResource() *SystemResource { return &SystemResource{} }

// AllocateRaw over-allocates and shifts the base so that the returned slice
// honors align, since the Go runtime offers no aligned allocation call.
func (*SystemResource) AllocateRaw(size, align int) ([]byte, error) {
	buf := make([]byte, size+align) // padding so the base can be shifted up
	addr := int(addressOf(buf))
	next := roundToPowerOf2(addr, align)
	if addr != next {
		shift := next - addr
		return buf[shift : size+shift : size+shift], nil
	}
	return buf[:size:size], nil
}

func (*SystemResource) DeallocateRaw(b []byte, size, align int) {}

func (r *SystemResource) IsEqual(other Resource) bool {
	o, ok := other.(*SystemResource)
	return ok && o == r
}

var defaultResource = sync.OnceValue(func() *SystemResource {
	return NewSystemResource()
})

// DefaultResource returns the process-wide system resource. It is created
// on first use; concurrent first calls observe the same instance.
func DefaultResource() *SystemResource { return defaultResource() }

var (
	_ Resource = (*SystemResource)(nil)
)
