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
	"os"
	"runtime"
	"strconv"
	"sync"
	"sync/atomic"
)

// CheckedResource wraps a Resource and tracks every live allocation along
// with the call site that made it. It is intended for tests: wrap the
// resource under test, run the workload, then AssertSize to report leaks.
type CheckedResource struct {
	res Resource
	sz  int64

	allocs sync.Map
}

func NewCheckedResource(r Resource) *CheckedResource {
	return &CheckedResource{res: r}
}

// CurrentAlloc returns the number of bytes currently allocated and not yet
// deallocated through this resource.
func (c *CheckedResource) CurrentAlloc() int { return int(atomic.LoadInt64(&c.sz)) }

func (c *CheckedResource) AllocateRaw(size, align int) ([]byte, error) {
	out, err := c.res.AllocateRaw(size, align)
	if err != nil {
		return nil, err
	}
	atomic.AddInt64(&c.sz, int64(size))
	if pc, _, l, ok := runtime.Caller(allocFrames); ok {
		c.allocs.Store(addressOf(out), &dalloc{pc: pc, line: l, sz: size})
	}
	return out, nil
}

func (c *CheckedResource) DeallocateRaw(b []byte, size, align int) {
	atomic.AddInt64(&c.sz, int64(size)*-1)
	defer c.res.DeallocateRaw(b, size, align)

	if len(b) == 0 {
		return
	}
	c.allocs.Delete(addressOf(b))
}

func (c *CheckedResource) IsEqual(other Resource) bool {
	o, ok := other.(*CheckedResource)
	return ok && o == c
}

// Typically allocations go through the package-level Allocate wrapper or an
// Allocator method rather than hitting AllocateRaw directly. The default
// frame skip records the caller above those layers as the allocation site.
const defAllocFrames = 2

// Use the environment variable MEMKIT_CHECKED_ALLOC_FRAMES to control how
// many frames up the stack the allocation site is recorded from when using
// this to find memory leaks.
var allocFrames int = defAllocFrames

func init() {
	if val, ok := os.LookupEnv("MEMKIT_CHECKED_ALLOC_FRAMES"); ok {
		if f, err := strconv.Atoi(val); err == nil {
			allocFrames = f
		}
	}
}

type dalloc struct {
	pc   uintptr
	line int
	sz   int
}

// TestingT is the subset of testing.TB needed to report leaks.
type TestingT interface {
	Errorf(format string, args ...interface{})
	Helper()
}

// AssertSize reports an error on t for every live allocation and for any
// mismatch between the expected and current outstanding byte count.
func (c *CheckedResource) AssertSize(t TestingT, sz int) {
	c.allocs.Range(func(_, value interface{}) bool {
		info := value.(*dalloc)
		f := runtime.FuncForPC(info.pc)
		t.Errorf("LEAK of %d bytes FROM %s line %d\n", info.sz, f.Name(), info.line)
		return true
	})

	if int(atomic.LoadInt64(&c.sz)) != sz {
		t.Helper()
		t.Errorf("invalid memory size exp=%d, got=%d", sz, c.sz)
	}
}

// CheckedResourceScope records the outstanding byte count at construction
// so a test can assert that a block of code is allocation-balanced.
type CheckedResourceScope struct {
	res *CheckedResource
	sz  int
}

func NewCheckedResourceScope(res *CheckedResource) *CheckedResourceScope {
	sz := atomic.LoadInt64(&res.sz)
	return &CheckedResourceScope{res: res, sz: int(sz)}
}

func (c *CheckedResourceScope) CheckSize(t TestingT) {
	sz := int(atomic.LoadInt64(&c.res.sz))
	if c.sz != sz {
		t.Helper()
		t.Errorf("invalid memory size exp=%d, got=%d", c.sz, sz)
	}
}

var (
	_ Resource = (*CheckedResource)(nil)
)
