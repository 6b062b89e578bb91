/**
 * Copyright 2025-present Coinbase Global, Inc.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *  http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package exchange

import "sync"

// idGenerator issues order numbers and activity references. Both counters are
// monotonic for the life of the engine and advance even when the operation
// they were drawn for fails, so identifiers are never reused.
type idGenerator struct {
	mu          sync.Mutex
	orderSeq    uint64
	activitySeq uint64
}

// orderNumberBase puts every order number in stream 1's keyspace. The value
// stays below 2^53 so the float64 wire representation is exact.
const orderNumberBase = 100_000_000_000_000

// NextOrderNumber returns stream-1 order number base + (ts mod base) + seq.
func (g *idGenerator) NextOrderNumber(ts uint64) float64 {
	g.mu.Lock()
	g.orderSeq++
	seq := g.orderSeq
	g.mu.Unlock()
	return float64(orderNumberBase + ts%orderNumberBase + seq)
}

// NextActivityReference returns ts + seq from an independent counter.
func (g *idGenerator) NextActivityReference(ts uint64) uint64 {
	g.mu.Lock()
	g.activitySeq++
	seq := g.activitySeq
	g.mu.Unlock()
	return ts + seq
}
