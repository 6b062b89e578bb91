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
	"github.com/VirTrivedi/NSE-Fake-Exchange/wire"
)

// SessionRegistry tracks which traders are signed on and when each last
// signed off. The logoff time survives the sign-off so the next sign-on can
// acknowledge the earlier session before opening a new one.
type SessionRegistry struct {
	mu         sync.RWMutex
	loggedIn   map[int32]struct{}
	lastLogoff map[int32]int32
}

func NewSessionRegistry() *SessionRegistry {
	return &SessionRegistry{
		loggedIn:   make(map[int32]struct{}),
		lastLogoff: make(map[int32]int32),
	}
}

func (r *SessionRegistry) LoggedIn(trader int32) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.loggedIn[trader]
	return ok
}

// TakeLogoff removes and returns the trader's recorded logoff time.
func (r *SessionRegistry) TakeLogoff(trader int32) (int32, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.lastLogoff[trader]
	if ok {
		delete(r.lastLogoff, trader)
	}
	return t, ok
}

// SignOn marks the trader as logged in.
func (r *SessionRegistry) SignOn(trader int32) {
	r.mu.Lock()
	r.loggedIn[trader] = struct{}{}
	r.mu.Unlock()
}

// SignOff removes the trader and records the logoff time. Returns false if
// the trader was not logged in.
func (r *SessionRegistry) SignOff(trader int32, logoffTime int32) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.loggedIn[trader]; !ok {
		return false
	}
	delete(r.loggedIn, trader)
	r.lastLogoff[trader] = logoffTime
	return true
}

// Active returns the logged-in trader ids for status display.
func (r *SessionRegistry) Active() []int32 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]int32, 0, len(r.loggedIn))
	for id := range r.loggedIn {
		out = append(out, id)
	}
	return out
}

func (e *Engine) handleSignOn(req *wire.SignOn, ts uint64) {
	log.Printf("sign-on request from trader %d broker %q", req.Header.TraderID, req.BrokerID)

	// A surviving logoff record means the previous session ended without the
	// trader seeing the confirmation. Acknowledge it before the new session.
	if logoffTime, ok := e.sessions.TakeLogoff(req.Header.TraderID); ok {
		log.Printf("trader %d had prior logoff at %d, sending recovery ack",
			req.Header.TraderID, logoffTime)
		ack := wire.SignOff{
			Header: respHeader(req.Header, constants.SignoffRequestOut, constants.Success),
			UserID: req.Header.TraderID,
		}
		e.send(ack.Marshal())
	}

	e.sessions.SignOn(req.Header.TraderID)

	resp := wire.SignOn{
		Header:                     respHeader(req.Header, constants.SignonRequestOut, constants.Success),
		UserID:                     req.UserID,
		TraderName:                 req.TraderName,
		BranchID:                   req.BranchID,
		VersionNumber:              req.VersionNumber,
		BrokerEligibilityPerMarket: req.BrokerEligibilityPerMarket,
		UserType:                   req.UserType,
		SequenceNumber:             req.SequenceNumber,
		BrokerID:                   req.BrokerID,
		MemberType:                 req.MemberType,
		ClearingStatus:             req.ClearingStatus,
		BrokerName:                 req.BrokerName,
		BrokerStatus:               "1",
		ShowIndex:                  "1",
		EndTime:                    epochSeconds(ts) + constants.SessionLengthSeconds,
	}
	e.send(resp.Marshal())
	log.Printf("trader %d signed on", req.Header.TraderID)
}

func (e *Engine) handleSignOff(req *wire.SignOff, ts uint64) {
	log.Printf("sign-off request from trader %d", req.Header.TraderID)

	if !e.sessions.SignOff(req.Header.TraderID, epochSeconds(ts)) {
		resp := wire.SignOff{
			Header: respHeader(req.Header, constants.SignoffRequestOut, constants.UserNotFound),
		}
		e.send(resp.Marshal())
		return
	}

	resp := wire.SignOff{
		Header: respHeader(req.Header, constants.SignoffRequestOut, constants.Success),
		UserID: req.Header.TraderID,
	}
	e.send(resp.Marshal())
	log.Printf("trader %d signed off", req.Header.TraderID)
}
