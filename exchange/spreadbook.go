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

	"github.com/VirTrivedi/NSE-Fake-Exchange/constants"
	"github.com/VirTrivedi/NSE-Fake-Exchange/wire"
)

// SpreadBook stores confirmed spread orders keyed by OrderNumber1 and the
// spread-combination master keyed by the token pair. Spread, 2L and 3L
// orders share the OrderNumber1 keyspace.
type SpreadBook struct {
	mu     sync.RWMutex
	orders map[float64]wire.SpreadOrder
	combos map[[2]int32]wire.SpreadUpdateInfo
}

func NewSpreadBook() *SpreadBook {
	return &SpreadBook{
		orders: make(map[float64]wire.SpreadOrder),
		combos: make(map[[2]int32]wire.SpreadUpdateInfo),
	}
}

func (b *SpreadBook) Get(orderNumber float64) (wire.SpreadOrder, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	o, ok := b.orders[orderNumber]
	return o, ok
}

func (b *SpreadBook) Put(order wire.SpreadOrder) {
	b.mu.Lock()
	b.orders[order.OrderNumber1] = order
	b.mu.Unlock()
}

func (b *SpreadBook) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.orders)
}

// Snapshot returns copies of all spread orders in ascending order-number
// order.
func (b *SpreadBook) Snapshot() []wire.SpreadOrder {
	b.mu.RLock()
	out := make([]wire.SpreadOrder, 0, len(b.orders))
	for _, o := range b.orders {
		out = append(out, o)
	}
	b.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].OrderNumber1 < out[j].OrderNumber1 })
	return out
}

// PutCombination inserts or replaces a combination master record.
func (b *SpreadBook) PutCombination(info wire.SpreadUpdateInfo) {
	b.mu.Lock()
	b.combos[[2]int32{info.Token1, info.Token2}] = info
	b.mu.Unlock()
}

// GetCombination looks up the pair in either leg order.
func (b *SpreadBook) GetCombination(token1, token2 int32) (wire.SpreadUpdateInfo, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if c, ok := b.combos[[2]int32{token1, token2}]; ok {
		return c, true
	}
	c, ok := b.combos[[2]int32{token2, token1}]
	return c, ok
}

// ValidCombination reports whether the pair is registered, eligible and not
// deleted.
func (b *SpreadBook) ValidCombination(token1, token2 int32) bool {
	c, ok := b.GetCombination(token1, token2)
	if !ok {
		return false
	}
	return c.Eligibility == constants.CombinationEligible && c.DeleteFlag != "Y"
}

// Combinations returns a copy of the combination master.
func (b *SpreadBook) Combinations() []wire.SpreadUpdateInfo {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]wire.SpreadUpdateInfo, 0, len(b.combos))
	for _, c := range b.combos {
		out = append(out, c)
	}
	return out
}
