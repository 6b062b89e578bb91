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
	"fmt"
	"sort"
	"sync"

	"github.com/VirTrivedi/NSE-Fake-Exchange/wire"
)

// TradeLedger stores executed fills keyed by fill number, plus the set of
// modification and cancellation requests already seen. A request key is
// (FillNumber, TraderID, operation); replays of a seen key are duplicates.
//
// Concurrency Model:
// - Writer: the connection's trade handlers
// - Readers: status display and admin API
type TradeLedger struct {
	mu     sync.RWMutex
	trades map[int32]wire.TradeInq
	seen   map[string]bool
}

func NewTradeLedger() *TradeLedger {
	return &TradeLedger{
		trades: make(map[int32]wire.TradeInq),
		seen:   make(map[string]bool),
	}
}

func requestKey(fillNumber, traderID int32, op string) string {
	return fmt.Sprintf("%d_%d_%s", fillNumber, traderID, op)
}

// Get returns a copy of the fill.
func (l *TradeLedger) Get(fillNumber int32) (wire.TradeInq, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	t, ok := l.trades[fillNumber]
	return t, ok
}

// Put inserts or replaces the fill.
func (l *TradeLedger) Put(trade wire.TradeInq) {
	l.mu.Lock()
	l.trades[trade.FillNumber] = trade
	l.mu.Unlock()
}

// Seen reports whether this (fill, trader, operation) request was already
// processed.
func (l *TradeLedger) Seen(fillNumber, traderID int32, op string) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.seen[requestKey(fillNumber, traderID, op)]
}

// Mark records the request so replays are rejected as duplicates.
func (l *TradeLedger) Mark(fillNumber, traderID int32, op string) {
	l.mu.Lock()
	l.seen[requestKey(fillNumber, traderID, op)] = true
	l.mu.Unlock()
}

// Len returns the number of stored fills.
func (l *TradeLedger) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.trades)
}

// Snapshot returns copies of all fills in ascending fill-number order.
func (l *TradeLedger) Snapshot() []wire.TradeInq {
	l.mu.RLock()
	out := make([]wire.TradeInq, 0, len(l.trades))
	for _, t := range l.trades {
		out = append(out, t)
	}
	l.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].FillNumber < out[j].FillNumber })
	return out
}
