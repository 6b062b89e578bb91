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

	"github.com/VirTrivedi/NSE-Fake-Exchange/constants"
)

// BrokerPolicy tracks per-broker closeout, deactivation and hierarchy type.
// Brokers never appearing in a map carry the default: active, not in
// closeout, no type set.
//
// Concurrency Model:
// - Writers: admin REPL and HTTP API
// - Readers: message handlers on every order-path request
// - sync.RWMutex for read-write locking
type BrokerPolicy struct {
	mu          sync.RWMutex
	closeout    map[string]bool
	deactivated map[string]bool
	types       map[string]byte
}

func NewBrokerPolicy() *BrokerPolicy {
	return &BrokerPolicy{
		closeout:    make(map[string]bool),
		deactivated: make(map[string]bool),
		types:       make(map[string]byte),
	}
}

// SetCloseout marks or clears closeout status for a broker.
func (p *BrokerPolicy) SetCloseout(brokerID string, inCloseout bool) {
	p.mu.Lock()
	p.closeout[brokerID] = inCloseout
	p.mu.Unlock()
	log.Printf("broker %s closeout=%v", brokerID, inCloseout)
}

// SetDeactivated marks or clears deactivation for a broker.
func (p *BrokerPolicy) SetDeactivated(brokerID string, deactivated bool) {
	p.mu.Lock()
	p.deactivated[brokerID] = deactivated
	p.mu.Unlock()
	log.Printf("broker %s deactivated=%v", brokerID, deactivated)
}

// SetType records the broker's place in the CM > BM > DL hierarchy.
func (p *BrokerPolicy) SetType(brokerID string, brokerType byte) {
	p.mu.Lock()
	p.types[brokerID] = brokerType
	p.mu.Unlock()
	log.Printf("broker %s type=%c", brokerID, brokerType)
}

func (p *BrokerPolicy) InCloseout(brokerID string) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.closeout[brokerID]
}

func (p *BrokerPolicy) Deactivated(brokerID string) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.deactivated[brokerID]
}

// CanCancel applies the cancellation hierarchy. A broker can always cancel
// its own orders. Corporate managers can cancel anyone's, branch managers
// only dealers', dealers nobody else's. Brokers with no recorded type are
// treated as peers and allowed.
func (p *BrokerPolicy) CanCancel(cancellerID, ownerID string) bool {
	if cancellerID == ownerID {
		return true
	}

	p.mu.RLock()
	cancellerType, haveCanceller := p.types[cancellerID]
	ownerType, haveOwner := p.types[ownerID]
	p.mu.RUnlock()

	if !haveCanceller || !haveOwner {
		return true
	}

	switch cancellerType {
	case constants.CorporateManager:
		return true
	case constants.BranchManager:
		return ownerType == constants.Dealer
	case constants.Dealer:
		return false
	default:
		return true
	}
}

// Snapshot returns copies of the three maps for status display.
func (p *BrokerPolicy) Snapshot() (closeout, deactivated map[string]bool, types map[string]byte) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	closeout = make(map[string]bool, len(p.closeout))
	for k, v := range p.closeout {
		closeout[k] = v
	}
	deactivated = make(map[string]bool, len(p.deactivated))
	for k, v := range p.deactivated {
		deactivated[k] = v
	}
	types = make(map[string]byte, len(p.types))
	for k, v := range p.types {
		types[k] = v
	}
	return closeout, deactivated, types
}
