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
	"log"
	"sync"

	"github.com/VirTrivedi/NSE-Fake-Exchange/wire"
)

// MarketState holds the three parallel market-status structures plus the
// sticky markets-opening flag. Status writes always set all three structures
// to the same four flags; they can only diverge through test seeding.
type MarketState struct {
	mu      sync.RWMutex
	status  wire.MarketStatus
	ex      wire.MarketStatus
	pl      wire.MarketStatus
	opening bool
}

func NewMarketState() *MarketState {
	return &MarketState{}
}

// SetStatus writes the four flags into all three structures.
func (s *MarketState) SetStatus(normal, oddlot, spot, auction bool) {
	st := wire.MarketStatus{
		Normal:  b2i16(normal),
		Oddlot:  b2i16(oddlot),
		Spot:    b2i16(spot),
		Auction: b2i16(auction),
	}
	s.mu.Lock()
	s.status = st
	s.ex = st
	s.pl = st
	s.mu.Unlock()
	log.Printf("market status normal=%d oddlot=%d spot=%d auction=%d",
		st.Normal, st.Oddlot, st.Spot, st.Auction)
}

// SetOpening sets the sticky markets-opening flag, which forces the
// partial-info path on local-database requests regardless of status match.
func (s *MarketState) SetOpening(opening bool) {
	s.mu.Lock()
	s.opening = opening
	s.mu.Unlock()
	log.Printf("markets opening=%v", opening)
}

func (s *MarketState) Opening() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.opening
}

// Current returns the three structures by value.
func (s *MarketState) Current() (status, ex, pl wire.MarketStatus) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status, s.ex, s.pl
}

// NormalOpen reports whether the normal market is open.
func (s *MarketState) NormalOpen() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status.Normal == 1
}

// Stale reports whether any of the twelve flags in the trader's cached copy
// differs from the current state.
func (s *MarketState) Stale(status, ex, pl wire.MarketStatus) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return status != s.status || ex != s.ex || pl != s.pl
}

func b2i16(v bool) int16 {
	if v {
		return 1
	}
	return 0
}
