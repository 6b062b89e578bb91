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

// OrderEntrySize is the full frame size of MS_OE_REQUEST. The same layout is
// used for order entry, cancellation, kill switch, order confirmations,
// cancel confirmations, error responses and freeze notifications; only the
// transaction code differs.
const OrderEntrySize = HeaderSize + 114

// OrderEntry is the shared order request/response record.
//
// Body layout:
//
//	ParticipantType(1) CloseoutFlag(1) ReasonCode(2) TokenNo(4)
//	Contract(28) OrderNumber(8) BrokerID(5) AccountNumber(10) BookType(2)
//	BuySellIndicator(2) DisclosedVolume(4) Volume(4)
//	TotalVolumeRemaining(4) Price(4) TriggerPrice(4) GoodTillDate(4)
//	EntryDateTime(4) LastModified(4) Flags(2) SettlementPeriod(2)
//	ProClient(2) TraderID(4) LastActivityReference(8) pad(1)
type OrderEntry struct {
	Header                MessageHeader
	ParticipantType       byte // 'P' for participant-entered
	CloseoutFlag          byte // 'C' when the broker is in closeout
	ReasonCode            int16
	TokenNo               int32
	Contract              ContractDesc
	OrderNumber           float64
	BrokerID              string // 5
	AccountNumber         string // 10
	BookType              int16
	BuySellIndicator      int16
	DisclosedVolume       int32
	Volume                int32
	TotalVolumeRemaining  int32
	Price                 int32 // paise, negative means buy on price confirms
	TriggerPrice          int32
	GoodTillDate          int32
	EntryDateTime         int32
	LastModified          int32
	Flags                 uint16
	SettlementPeriod      int16
	ProClient             int16
	TraderID              int32
	LastActivityReference uint64
}

func (m *OrderEntry) Marshal() []byte {
	w := newWriter(OrderEntrySize)
	m.Header.MessageLength = OrderEntrySize
	m.Header.marshalInto(w)
	w.putByte(m.ParticipantType)
	w.putByte(m.CloseoutFlag)
	w.putI16(m.ReasonCode)
	w.putI32(m.TokenNo)
	m.Contract.marshalInto(w)
	w.putF64(m.OrderNumber)
	w.putStr(m.BrokerID, 5)
	w.putStr(m.AccountNumber, 10)
	w.putI16(m.BookType)
	w.putI16(m.BuySellIndicator)
	w.putI32(m.DisclosedVolume)
	w.putI32(m.Volume)
	w.putI32(m.TotalVolumeRemaining)
	w.putI32(m.Price)
	w.putI32(m.TriggerPrice)
	w.putI32(m.GoodTillDate)
	w.putI32(m.EntryDateTime)
	w.putI32(m.LastModified)
	w.putU16(m.Flags)
	w.putI16(m.SettlementPeriod)
	w.putI16(m.ProClient)
	w.putI32(m.TraderID)
	w.putU64(m.LastActivityReference)
	w.pad(1)
	return w.buf
}

func (m *OrderEntry) Unmarshal(buf []byte) {
	r := newReader(buf)
	m.Header.unmarshalFrom(r)
	m.ParticipantType = r.byte()
	m.CloseoutFlag = r.byte()
	m.ReasonCode = r.i16()
	m.TokenNo = r.i32()
	m.Contract.unmarshalFrom(r)
	m.OrderNumber = r.f64()
	m.BrokerID = r.str(5)
	m.AccountNumber = r.str(10)
	m.BookType = r.i16()
	m.BuySellIndicator = r.i16()
	m.DisclosedVolume = r.i32()
	m.Volume = r.i32()
	m.TotalVolumeRemaining = r.i32()
	m.Price = r.i32()
	m.TriggerPrice = r.i32()
	m.GoodTillDate = r.i32()
	m.EntryDateTime = r.i32()
	m.LastModified = r.i32()
	m.Flags = r.u16()
	m.SettlementPeriod = r.i16()
	m.ProClient = r.i16()
	m.TraderID = r.i32()
	m.LastActivityReference = r.u64()
	r.skip(1)
}

// PriceModSize is the full frame size of PRICE_MOD.
const PriceModSize = HeaderSize + 66

// PriceMod is the price/volume modification request.
//
// Body layout:
//
//	OrderNumber(8) TokenNo(4) Contract(28) Price(4) Volume(4)
//	BuySellIndicator(2) BrokerID(5) pad(1) LastActivityReference(8)
//	Flags(2)
type PriceMod struct {
	Header                MessageHeader
	OrderNumber           float64
	TokenNo               int32
	Contract              ContractDesc
	Price                 int32
	Volume                int32
	BuySellIndicator      int16
	BrokerID              string // 5
	LastActivityReference uint64
	Flags                 uint16
}

func (m *PriceMod) Marshal() []byte {
	w := newWriter(PriceModSize)
	m.Header.MessageLength = PriceModSize
	m.Header.marshalInto(w)
	w.putF64(m.OrderNumber)
	w.putI32(m.TokenNo)
	m.Contract.marshalInto(w)
	w.putI32(m.Price)
	w.putI32(m.Volume)
	w.putI16(m.BuySellIndicator)
	w.putStr(m.BrokerID, 5)
	w.pad(1)
	w.putU64(m.LastActivityReference)
	w.putU16(m.Flags)
	return w.buf
}

func (m *PriceMod) Unmarshal(buf []byte) {
	r := newReader(buf)
	m.Header.unmarshalFrom(r)
	m.OrderNumber = r.f64()
	m.TokenNo = r.i32()
	m.Contract.unmarshalFrom(r)
	m.Price = r.i32()
	m.Volume = r.i32()
	m.BuySellIndicator = r.i16()
	m.BrokerID = r.str(5)
	r.skip(1)
	m.LastActivityReference = r.u64()
	m.Flags = r.u16()
}
