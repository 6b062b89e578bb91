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

package wire

// ContractDescSize is the width of the embedded contract descriptor.
const ContractDescSize = 28

// ContractDesc identifies a derivatives contract.
//
// Layout: InstrumentName(6) Symbol(10) ExpiryDate(4) StrikePrice(4)
// OptionType(2) CALevel(2)
type ContractDesc struct {
	InstrumentName string // 6, e.g. FUTSTK / OPTSTK
	Symbol         string // 10, space padded
	ExpiryDate     int32
	StrikePrice    int32
	OptionType     string // 2, CE / PE, empty for futures
	CALevel        int16
}

func (c *ContractDesc) marshalInto(w *writer) {
	w.putStr(c.InstrumentName, 6)
	w.putStr(c.Symbol, 10)
	w.putI32(c.ExpiryDate)
	w.putI32(c.StrikePrice)
	w.putStr(c.OptionType, 2)
	w.putI16(c.CALevel)
}

func (c *ContractDesc) unmarshalFrom(r *reader) {
	c.InstrumentName = r.str(6)
	c.Symbol = r.str(10)
	c.ExpiryDate = r.i32()
	c.StrikePrice = r.i32()
	c.OptionType = r.str(2)
	c.CALevel = r.i16()
}

// MarketStatusSize is the width of one market-status quadruple.
const MarketStatusSize = 8

// MarketStatus is one of the three parallel status quadruples (ST_MARKET_-
// STATUS, ST_EX_MARKET_STATUS, ST_PL_MARKET_STATUS share this shape).
//
// Layout: Normal(2) Oddlot(2) Spot(2) Auction(2), each 0 or 1.
type MarketStatus struct {
	Normal  int16
	Oddlot  int16
	Spot    int16
	Auction int16
}

func (m *MarketStatus) marshalInto(w *writer) {
	w.putI16(m.Normal)
	w.putI16(m.Oddlot)
	w.putI16(m.Spot)
	w.putI16(m.Auction)
}

func (m *MarketStatus) unmarshalFrom(r *reader) {
	m.Normal = r.i16()
	m.Oddlot = r.i16()
	m.Spot = r.i16()
	m.Auction = r.i16()
}
