// Copyright 2025 Blink Labs Software
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package gov

import (
	"sync"
	"time"
)

// Clock provides the current block height. Heights must be monotonically
// non-decreasing; the engine samples the clock once per operation and uses
// that height for every check within it.
type Clock interface {
	Now() uint64
}

// ManualClock is a Clock whose height only moves when told to. It is used
// by tests and by callers that drive block heights from an external source.
type ManualClock struct {
	mutex  sync.Mutex
	height uint64
}

func NewManualClock(height uint64) *ManualClock {
	return &ManualClock{height: height}
}

func (c *ManualClock) Now() uint64 {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return c.height
}

// SetHeight moves the clock to the given height. Monotonicity is the
// caller's responsibility.
func (c *ManualClock) SetHeight(height uint64) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.height = height
}

// Advance moves the clock forward by the given number of blocks
func (c *ManualClock) Advance(blocks uint64) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.height += blocks
}

// TickingClock derives the block height from wall-clock time elapsed since
// a fixed start, one block per interval
type TickingClock struct {
	start    time.Time
	interval time.Duration
}

func NewTickingClock(interval time.Duration) *TickingClock {
	if interval <= 0 {
		interval = time.Second
	}
	return &TickingClock{
		start:    time.Now(),
		interval: interval,
	}
}

func (c *TickingClock) Now() uint64 {
	elapsed := time.Since(c.start)
	if elapsed < 0 {
		return 0
	}
	return uint64(elapsed / c.interval)
}
