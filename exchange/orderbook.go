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

import (
	"sort"
	"sync"

	"github.com/VirTrivedi/NSE-Fake-Exchange/wire"
)

// OrderBook stores confirmed orders keyed by order number. Cancelled orders
// stay in the book with Volume zero; the tombstone keeps them enumerable for
// kill-switch sweeps and historical responses.
//
// Concurrency Model:
// - Writer: the connection's message handlers
// - Readers: status display and admin API
// - All accessors copy; callers never hold references into the map.
type OrderBook struct {
	mu     sync.RWMutex
	orders map[float64]wire.OrderEntry
}

func NewOrderBook() *OrderBook {
	return &OrderBook{orders: make(map[float64]wire.OrderEntry)}
}

// Get returns a copy of the order.
func (b *OrderBook) Get(orderNumber float64) (wire.OrderEntry, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	o, ok := b.orders[orderNumber]
	return o, ok
}

// Put inserts or replaces the order.
func (b *OrderBook) Put(order wire.OrderEntry) {
	b.mu.Lock()
	b.orders[order.OrderNumber] = order
	b.mu.Unlock()
}

// Len returns the number of stored orders, tombstones included.
func (b *OrderBook) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.orders)
}

// SnapshotSorted returns copies of all orders in ascending order-number
// order. Sorted iteration keeps kill-switch confirmations deterministic.
func (b *OrderBook) SnapshotSorted() []wire.OrderEntry {
	b.mu.RLock()
	out := make([]wire.OrderEntry, 0, len(b.orders))
	for _, o := range b.orders {
		out = append(out, o)
	}
	b.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].OrderNumber < out[j].OrderNumber })
	return out
}
