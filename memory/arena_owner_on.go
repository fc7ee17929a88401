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

//go:build assert

package memory

import (
	"bytes"
	"runtime"
	"strconv"

	"github.com/memkit/memkit/internal/debug"
)

// arenaOwner records the goroutine that constructed an arena. It is a
// debugging aid, not a lock: arenas are unsynchronized and must not be
// shared across goroutines without external serialization.
type arenaOwner struct {
	gid uint64
}

func (a *ArenaResource) setOwner() {
	a.owner.gid = goroutineID()
}

func (a *ArenaResource) assertOwner() {
	debug.Assert(a.owner.gid == goroutineID(), func() string {
		return "memory: arena " + strconv.FormatUint(a.owner.gid, 10) +
			" used from goroutine " + strconv.FormatUint(goroutineID(), 10)
	})
}

// goroutineID parses the current goroutine's id out of the stack header,
// "goroutine N [...". There is no runtime API for this; the cost is
// acceptable under the assert tag only.
func goroutineID() uint64 {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)
	s := bytes.TrimPrefix(buf[:n], []byte("goroutine "))
	if i := bytes.IndexByte(s, ' '); i > 0 {
		if id, err := strconv.ParseUint(string(s[:i]), 10, 64); err == nil {
			return id
		}
	}
	return 0
}
