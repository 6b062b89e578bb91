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

// BcastMessageWidth is the fixed width of the free-text field on journal and
// control broadcasts.
const BcastMessageWidth = 239

// BcastJournalMessageSize is the full frame size of BCAST_JRNL_VCT_MSG and
// its spread variant.
const BcastJournalMessageSize = HeaderSize + 252

// BcastJournalMessage is the free-text journal broadcast addressed to a
// broker.
//
// Body layout:
//
//	BranchNumber(2) BrokerNumber(5) ActionCode(3)
//	BroadcastMessageLength(2) Message(239) pad(1)
type BcastJournalMessage struct {
	Header                 MessageHeader
	BranchNumber           int16
	BrokerNumber           string // 5
	ActionCode             string // 3, e.g. SYS
	BroadcastMessageLength int16
	Message                string // 239
}

func (m *BcastJournalMessage) Marshal() []byte {
	w := newWriter(BcastJournalMessageSize)
	m.Header.MessageLength = BcastJournalMessageSize
	m.Header.marshalInto(w)
	w.putI16(m.BranchNumber)
	w.putStr(m.BrokerNumber, 5)
	w.putStr(m.ActionCode, 3)
	w.putI16(m.BroadcastMessageLength)
	w.putStr(m.Message, BcastMessageWidth)
	w.pad(1)
	return w.buf
}

func (m *BcastJournalMessage) Unmarshal(buf []byte) {
	r := newReader(buf)
	m.Header.unmarshalFrom(r)
	m.BranchNumber = r.i16()
	m.BrokerNumber = r.str(5)
	m.ActionCode = r.str(3)
	m.BroadcastMessageLength = r.i16()
	m.Message = r.str(BcastMessageWidth)
	r.skip(1)
}

// CtrlMsgToTraderSize is the full frame size of CTRL_MSG_TO_TRADER.
const CtrlMsgToTraderSize = HeaderSize + 250

// CtrlMsgToTrader is the free-text control message addressed to a single
// trader.
//
// Body layout:
//
//	TraderID(4) ActionCode(3) pad(1) BroadcastMessageLength(2)
//	Message(239) pad(1)
type CtrlMsgToTrader struct {
	Header                 MessageHeader
	TraderID               int32
	ActionCode             string // 3
	BroadcastMessageLength int16
	Message                string // 239
}

func (m *CtrlMsgToTrader) Marshal() []byte {
	w := newWriter(CtrlMsgToTraderSize)
	m.Header.MessageLength = CtrlMsgToTraderSize
	m.Header.marshalInto(w)
	w.putI32(m.TraderID)
	w.putStr(m.ActionCode, 3)
	w.pad(1)
	w.putI16(m.BroadcastMessageLength)
	w.putStr(m.Message, BcastMessageWidth)
	w.pad(1)
	return w.buf
}

func (m *CtrlMsgToTrader) Unmarshal(buf []byte) {
	r := newReader(buf)
	m.Header.unmarshalFrom(r)
	m.TraderID = r.i32()
	m.ActionCode = r.str(3)
	r.skip(1)
	m.BroadcastMessageLength = r.i16()
	m.Message = r.str(BcastMessageWidth)
	r.skip(1)
}

// OrderLimitUpdateSize is the full frame size of the user order-value limit
// broadcast.
const OrderLimitUpdateSize = HeaderSize + 20

// OrderLimitUpdate notifies a trader of revised order-value limits.
//
// Body layout: TraderID(4) OrderLimit(8) TradedValueLimit(8)
type OrderLimitUpdate struct {
	Header           MessageHeader
	TraderID         int32
	OrderLimit       float64
	TradedValueLimit float64
}

func (m *OrderLimitUpdate) Marshal() []byte {
	w := newWriter(OrderLimitUpdateSize)
	m.Header.MessageLength = OrderLimitUpdateSize
	m.Header.marshalInto(w)
	w.putI32(m.TraderID)
	w.putF64(m.OrderLimit)
	w.putF64(m.TradedValueLimit)
	return w.buf
}

func (m *OrderLimitUpdate) Unmarshal(buf []byte) {
	r := newReader(buf)
	m.Header.unmarshalFrom(r)
	m.TraderID = r.i32()
	m.OrderLimit = r.f64()
	m.TradedValueLimit = r.f64()
}

// DealerLimitUpdateSize is the full frame size of the dealer limit broadcast.
const DealerLimitUpdateSize = HeaderSize + 16

// DealerLimitUpdate notifies of a revised per-dealer limit.
//
// Body layout: DealerID(4) BranchID(4) DealerLimit(8)
type DealerLimitUpdate struct {
	Header      MessageHeader
	DealerID    int32
	BranchID    int32
	DealerLimit float64
}

func (m *DealerLimitUpdate) Marshal() []byte {
	w := newWriter(DealerLimitUpdateSize)
	m.Header.MessageLength = DealerLimitUpdateSize
	m.Header.marshalInto(w)
	w.putI32(m.DealerID)
	w.putI32(m.BranchID)
	w.putF64(m.DealerLimit)
	return w.buf
}

func (m *DealerLimitUpdate) Unmarshal(buf []byte) {
	r := newReader(buf)
	m.Header.unmarshalFrom(r)
	m.DealerID = r.i32()
	m.BranchID = r.i32()
	m.DealerLimit = r.f64()
}

// SpreadLimitUpdateSize is the full frame size of the spread order-limit
// broadcast.
const SpreadLimitUpdateSize = HeaderSize + 12

// SpreadLimitUpdate notifies a trader of a revised spread order limit.
//
// Body layout: TraderID(4) SpreadOrderLimit(8)
type SpreadLimitUpdate struct {
	Header           MessageHeader
	TraderID         int32
	SpreadOrderLimit float64
}

func (m *SpreadLimitUpdate) Marshal() []byte {
	w := newWriter(SpreadLimitUpdateSize)
	m.Header.MessageLength = SpreadLimitUpdateSize
	m.Header.marshalInto(w)
	w.putI32(m.TraderID)
	w.putF64(m.SpreadOrderLimit)
	return w.buf
}

func (m *SpreadLimitUpdate) Unmarshal(buf []byte) {
	r := newReader(buf)
	m.Header.unmarshalFrom(r)
	m.TraderID = r.i32()
	m.SpreadOrderLimit = r.f64()
}
