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

/*
HOT PATH - Trading Message Processing Flow

This documents the path every inbound frame takes. One engine instance serves
one trader connection; all responses for a request are emitted through the
sink before the handler returns.

┌─────────────────────────────────────────────────────────────────────────────┐
│                              NETWORK LAYER                                   │
│              (server.go owns the TCP read loop and buffering)                │
└─────────────────────────────────────────────────────────────────────────────┘
                                     │
                                     ▼
┌─────────────────────────────────────────────────────────────────────────────┐
│ [1] Parse() - engine.go                                          ENTRY POINT │
│     • Loops tryParse over the head of the buffer                             │
│     • Returns bytes consumed; caller retains the unconsumed tail             │
│     • Stops on short buffer, reserved TR codes, or a framing error           │
└─────────────────────────────────────────────────────────────────────────────┘
                                     │
                                     ▼
┌─────────────────────────────────────────────────────────────────────────────┐
│ [2] tryParse() - engine.go                                            FRAMER │
│     • Pre-peeks 2-byte transaction code before a full header exists          │
│     • Validates MessageLength against header size and remaining bytes        │
│     • error=true only when a known code arrives with a short body            │
│     • Unknown codes are logged and the frame is still consumed               │
└─────────────────────────────────────────────────────────────────────────────┘
                                     │
                                     ▼
┌─────────────────────────────────────────────────────────────────────────────┐
│ [3] handle*() - session.go refdata.go orders.go spreads.go trades.go         │
│     • First gate on every handler: trader is signed on                       │
│     • Outcome branches decided by the MatchOracle (one Roll per decision)    │
│     • State lives in SessionRegistry / BrokerPolicy / MarketState /          │
│       OrderBook / SpreadBook / TradeLedger                                   │
└─────────────────────────────────────────────────────────────────────────────┘
                                     │
                                     ▼
┌─────────────────────────────────────────────────────────────────────────────┐
│ [4] send() - engine.go                                                  SINK │
│     • Marshals fixed-layout frames (wire package) into fresh buffers         │
│     • Sink callback is treated as non-blocking and infallible                │
└─────────────────────────────────────────────────────────────────────────────┘
*/
package exchange

import (
	"log"

	"github.com/VirTrivedi/NSE-Fake-Exchange/constants"
	"github.com/VirTrivedi/NSE-Fake-Exchange/wire"
)

// Config carries the tunables an Engine is built with.
type Config struct {
	// RegularLot is the lot size spread and multi-leg volumes must be
	// multiples of. Zero means 1.
	RegularLot int32

	// Seed seeds the default match oracle.
	Seed int64
}

// Engine simulates the exchange side of a trader connection. It is
// single-threaded by design: the owning connection serializes Parse calls,
// and the individual stores carry their own locks so the admin surfaces can
// poke at state concurrently.
type Engine struct {
	sink       func([]byte)
	oracle     MatchOracle
	regularLot int32

	sessions *SessionRegistry
	brokers  *BrokerPolicy
	market   *MarketState
	orders   *OrderBook
	spreads  *SpreadBook
	trades   *TradeLedger
	stats    *StatsStore

	ids *idGenerator
}

// NewEngine builds an engine with empty state and the default rand oracle.
func NewEngine(cfg Config) *Engine {
	lot := cfg.RegularLot
	if lot <= 0 {
		lot = 1
	}
	return &Engine{
		oracle:     NewRandOracle(cfg.Seed),
		regularLot: lot,
		sessions:   NewSessionRegistry(),
		brokers:    NewBrokerPolicy(),
		market:     NewMarketState(),
		orders:     NewOrderBook(),
		spreads:    NewSpreadBook(),
		trades:     NewTradeLedger(),
		stats:      NewStatsStore(),
		ids:        &idGenerator{},
	}
}

// NewSessionEngine derives an engine for one trader connection. The derived
// engine shares every store and the identifier counters, so order numbers
// stay unique across connections, but carries its own sink and oracle.
func (e *Engine) NewSessionEngine(seed int64) *Engine {
	return &Engine{
		oracle:     NewRandOracle(seed),
		regularLot: e.regularLot,
		sessions:   e.sessions,
		brokers:    e.brokers,
		market:     e.market,
		orders:     e.orders,
		spreads:    e.spreads,
		trades:     e.trades,
		stats:      e.stats,
		ids:        e.ids,
	}
}

// SetSink installs the outbound frame callback.
func (e *Engine) SetSink(sink func([]byte)) {
	e.sink = sink
}

// SetOracle replaces the outcome oracle. Tests use this to script paths.
func (e *Engine) SetOracle(o MatchOracle) {
	e.oracle = o
}

// Brokers exposes the broker policy store for the admin surfaces.
func (e *Engine) Brokers() *BrokerPolicy { return e.brokers }

// Market exposes the market-state store for the admin surfaces.
func (e *Engine) Market() *MarketState { return e.market }

// Orders exposes the order book for the admin surfaces.
func (e *Engine) Orders() *OrderBook { return e.orders }

// Spreads exposes the spread book for the admin surfaces.
func (e *Engine) Spreads() *SpreadBook { return e.spreads }

// Trades exposes the trade ledger for the admin surfaces.
func (e *Engine) Trades() *TradeLedger { return e.trades }

// Stats exposes the bhavcopy statistics store for the admin surfaces.
func (e *Engine) Stats() *StatsStore { return e.stats }

// Sessions exposes the session registry for the admin surfaces.
func (e *Engine) Sessions() *SessionRegistry { return e.sessions }

func (e *Engine) send(frame []byte) {
	if e.sink != nil {
		e.sink(frame)
	}
}

// Parse consumes whole frames from the head of buf and dispatches them.
// It returns the number of bytes consumed and whether a framing error was
// hit. Callers append newly read bytes to the unconsumed tail and re-invoke.
//
// Contract: never reads past len(buf), never writes to buf, never blocks,
// and advances by exactly the sum of accepted frames' MessageLength.
func (e *Engine) Parse(buf []byte, ts uint64) (int, bool) {
	total := 0
	for total < len(buf) {
		seen, err := e.tryParse(buf[total:], ts)
		if seen == 0 || err {
			return total, err
		}
		total += seen
	}
	return total, false
}

func (e *Engine) tryParse(buf []byte, ts uint64) (int, bool) {
	if len(buf) < 2 {
		return 0, false
	}

	// Reserved TR codes have their own (unimplemented) framing, so they are
	// screened before a full header is required.
	switch wire.PeekTransactionCode(buf) {
	case constants.OrderEntryRequestTR, constants.OrderModifyRequestTR:
		return 0, false
	}

	if len(buf) < wire.HeaderSize {
		return 0, false
	}

	msgLen := int(wire.PeekMessageLength(buf))
	if msgLen < wire.HeaderSize || msgLen > len(buf) {
		// Incomplete or corrupt; treated uniformly as "need more data".
		return 0, false
	}

	header := wire.DecodeHeader(buf)
	frame := buf[:msgLen]

	switch header.TransactionCode {
	case constants.SignonRequestIn:
		if msgLen < wire.SignOnSize {
			return 0, true
		}
		var req wire.SignOn
		req.Unmarshal(frame)
		e.handleSignOn(&req, ts)

	case constants.SignoffRequestIn:
		if msgLen < wire.SignOffSize {
			return 0, true
		}
		var req wire.SignOff
		req.Unmarshal(frame)
		e.handleSignOff(&req, ts)

	case constants.SystemInfoRequest:
		if msgLen < wire.SystemInfoReqSize {
			return 0, true
		}
		var req wire.SystemInfoReq
		req.Unmarshal(frame)
		e.handleSystemInfoRequest(&req, ts)

	case constants.UpdateLocalDatabase:
		if msgLen < wire.UpdateLocalDatabaseSize {
			return 0, true
		}
		var req wire.UpdateLocalDatabase
		req.Unmarshal(frame)
		e.handleUpdateLocalDatabase(&req, ts)

	case constants.ExchangePortfolioReq:
		if msgLen < wire.ExchPortfolioReqSize {
			return 0, true
		}
		var req wire.ExchPortfolioReq
		req.Unmarshal(frame)
		e.handleExchangePortfolioRequest(&req, ts)

	case constants.MessageDownload:
		if msgLen < wire.MessageDownloadSize {
			return 0, true
		}
		var req wire.MessageDownload
		req.Unmarshal(frame)
		e.handleMessageDownload(&req, ts)

	case constants.OrderEntryRequest:
		if msgLen < wire.OrderEntrySize {
			return 0, true
		}
		var req wire.OrderEntry
		req.Unmarshal(frame)
		e.handleOrderEntry(&req, ts)

	case constants.PriceModificationRequest:
		if msgLen < wire.PriceModSize {
			return 0, true
		}
		var req wire.PriceMod
		req.Unmarshal(frame)
		e.handlePriceModification(&req, ts)

	case constants.OrderCancelIn:
		if msgLen < wire.OrderEntrySize {
			return 0, true
		}
		var req wire.OrderEntry
		req.Unmarshal(frame)
		e.handleOrderCancellation(&req, ts)

	case constants.KillSwitchIn:
		if msgLen < wire.OrderEntrySize {
			return 0, true
		}
		var req wire.OrderEntry
		req.Unmarshal(frame)
		e.handleKillSwitch(&req, ts)

	case constants.SpBoardLotIn:
		if msgLen < wire.SpreadOrderSize {
			return 0, true
		}
		var req wire.SpreadOrder
		req.Unmarshal(frame)
		e.handleSpreadOrderEntry(&req, ts)

	case constants.SpOrderModIn:
		if msgLen < wire.SpreadOrderSize {
			return 0, true
		}
		var req wire.SpreadOrder
		req.Unmarshal(frame)
		e.handleSpreadOrderModification(&req, ts)

	case constants.SpOrderCancelIn:
		if msgLen < wire.SpreadOrderSize {
			return 0, true
		}
		var req wire.SpreadOrder
		req.Unmarshal(frame)
		e.handleSpreadOrderCancellation(&req, ts)

	case constants.TwoLBoardLotIn:
		if msgLen < wire.SpreadOrderSize {
			return 0, true
		}
		var req wire.SpreadOrder
		req.Unmarshal(frame)
		e.handleMultiLegOrderEntry(&req, ts, false)

	case constants.ThrLBoardLotIn:
		if msgLen < wire.SpreadOrderSize {
			return 0, true
		}
		var req wire.SpreadOrder
		req.Unmarshal(frame)
		e.handleMultiLegOrderEntry(&req, ts, true)

	case constants.TradeModIn:
		if msgLen < wire.TradeInqSize {
			return 0, true
		}
		var req wire.TradeInq
		req.Unmarshal(frame)
		e.handleTradeModification(&req, ts)

	case constants.TradeCancelIn:
		if msgLen < wire.TradeInqSize {
			return 0, true
		}
		var req wire.TradeInq
		req.Unmarshal(frame)
		e.handleTradeCancellation(&req, ts)

	default:
		log.Printf("unknown transaction code %d from trader %d, consuming frame",
			header.TransactionCode, header.TraderID)
	}

	return msgLen, false
}

// respHeader echoes the request header with the response transaction and
// error codes swapped in.
func respHeader(req wire.MessageHeader, code, errCode int16) wire.MessageHeader {
	h := req
	h.TransactionCode = code
	h.ErrorCode = errCode
	return h
}

// epochSeconds converts the microsecond feed clock to wall seconds.
func epochSeconds(ts uint64) int32 {
	return int32(ts / 1_000_000)
}
