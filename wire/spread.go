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

// SpreadLegSize is the width of one embedded spread/multi-leg order leg.
const SpreadLegSize = 50

// SpreadLeg is one leg of a spread, 2L or 3L order.
//
// Layout:
//
//	TokenNo(4) Contract(28) BuySellIndicator(2) Volume(4)
//	TotalVolumeRemaining(4) DisclosedVolume(4) Price(4)
type SpreadLeg struct {
	TokenNo              int32
	Contract             ContractDesc
	BuySellIndicator     int16
	Volume               int32
	TotalVolumeRemaining int32
	DisclosedVolume      int32
	Price                int32
}

func (l *SpreadLeg) marshalInto(w *writer) {
	w.putI32(l.TokenNo)
	l.Contract.marshalInto(w)
	w.putI16(l.BuySellIndicator)
	w.putI32(l.Volume)
	w.putI32(l.TotalVolumeRemaining)
	w.putI32(l.DisclosedVolume)
	w.putI32(l.Price)
}

func (l *SpreadLeg) unmarshalFrom(r *reader) {
	l.TokenNo = r.i32()
	l.Contract.unmarshalFrom(r)
	l.BuySellIndicator = r.i16()
	l.Volume = r.i32()
	l.TotalVolumeRemaining = r.i32()
	l.DisclosedVolume = r.i32()
	l.Price = r.i32()
}

// SpreadOrderSize is the full frame size of MS_SPD_OE_REQUEST. The layout
// carries three leg slots; spread orders use two, 3L orders use all three.
// Requests, confirmations, cancellations and error responses all share it.
const SpreadOrderSize = HeaderSize + 200

// SpreadOrder is the shared spread/2L/3L request/response record.
//
// Body layout:
//
//	BrokerID(5) pad(1) ProClient(2) AccountNumber(10) ParticipantType(1)
//	CloseoutFlag(1) NumberOfLegs(2) ReasonCode(2) PriceDiff(4) Flags(2)
//	GoodTillDate(4) OrderNumber1(8) LastActivityReference(8)
//	Leg1(50) Leg2(50) Leg3(50)
type SpreadOrder struct {
	Header                MessageHeader
	BrokerID              string // 5
	ProClient             int16
	AccountNumber         string // 10
	ParticipantType       byte
	CloseoutFlag          byte
	NumberOfLegs          int16
	ReasonCode            int16
	PriceDiff             int32 // signed paise difference between the legs
	Flags                 uint16
	GoodTillDate          int32
	OrderNumber1          float64
	LastActivityReference uint64
	Legs                  [3]SpreadLeg
}

func (m *SpreadOrder) Marshal() []byte {
	w := newWriter(SpreadOrderSize)
	m.Header.MessageLength = SpreadOrderSize
	m.Header.marshalInto(w)
	w.putStr(m.BrokerID, 5)
	w.pad(1)
	w.putI16(m.ProClient)
	w.putStr(m.AccountNumber, 10)
	w.putByte(m.ParticipantType)
	w.putByte(m.CloseoutFlag)
	w.putI16(m.NumberOfLegs)
	w.putI16(m.ReasonCode)
	w.putI32(m.PriceDiff)
	w.putU16(m.Flags)
	w.putI32(m.GoodTillDate)
	w.putF64(m.OrderNumber1)
	w.putU64(m.LastActivityReference)
	for i := range m.Legs {
		m.Legs[i].marshalInto(w)
	}
	return w.buf
}

func (m *SpreadOrder) Unmarshal(buf []byte) {
	r := newReader(buf)
	m.Header.unmarshalFrom(r)
	m.BrokerID = r.str(5)
	r.skip(1)
	m.ProClient = r.i16()
	m.AccountNumber = r.str(10)
	m.ParticipantType = r.byte()
	m.CloseoutFlag = r.byte()
	m.NumberOfLegs = r.i16()
	m.ReasonCode = r.i16()
	m.PriceDiff = r.i32()
	m.Flags = r.u16()
	m.GoodTillDate = r.i32()
	m.OrderNumber1 = r.f64()
	m.LastActivityReference = r.u64()
	for i := range m.Legs {
		m.Legs[i].unmarshalFrom(r)
	}
}

// SpreadUpdateInfoSize is the width of the embedded spread-combination
// master record.
const SpreadUpdateInfoSize = 32

// SpreadUpdateInfo describes one tradeable spread combination.
//
// Layout:
//
//	Token1(4) Token2(4) ReferencePrice(4) DayLowPriceDiffRange(4)
//	DayHighPriceDiffRange(4) OpLowPriceDiffRange(4) OpHighPriceDiffRange(4)
//	Eligibility(1) DeleteFlag(1) pad(2)
type SpreadUpdateInfo struct {
	Token1                int32
	Token2                int32
	ReferencePrice        int32
	DayLowPriceDiffRange  int32
	DayHighPriceDiffRange int32
	OpLowPriceDiffRange   int32
	OpHighPriceDiffRange  int32
	Eligibility           byte   // 1 tradeable, 0 suspended
	DeleteFlag            string // 1, Y/N
}

func (s *SpreadUpdateInfo) marshalInto(w *writer) {
	w.putI32(s.Token1)
	w.putI32(s.Token2)
	w.putI32(s.ReferencePrice)
	w.putI32(s.DayLowPriceDiffRange)
	w.putI32(s.DayHighPriceDiffRange)
	w.putI32(s.OpLowPriceDiffRange)
	w.putI32(s.OpHighPriceDiffRange)
	w.putByte(s.Eligibility)
	w.putStr(s.DeleteFlag, 1)
	w.pad(2)
}

func (s *SpreadUpdateInfo) unmarshalFrom(r *reader) {
	s.Token1 = r.i32()
	s.Token2 = r.i32()
	s.ReferencePrice = r.i32()
	s.DayLowPriceDiffRange = r.i32()
	s.DayHighPriceDiffRange = r.i32()
	s.OpLowPriceDiffRange = r.i32()
	s.OpHighPriceDiffRange = r.i32()
	s.Eligibility = r.byte()
	s.DeleteFlag = r.str(1)
	r.skip(2)
}

// SpreadMasterChangeSize is the full frame size of the spread-combination
// master broadcast (immediate and periodic variants).
const SpreadMasterChangeSize = HeaderSize + SpreadUpdateInfoSize

// SpreadMasterChange broadcasts a spread-combination master add or update.
//
// Body layout: SpreadUpdateInfo(32)
type SpreadMasterChange struct {
	Header MessageHeader
	Info   SpreadUpdateInfo
}

func (m *SpreadMasterChange) Marshal() []byte {
	w := newWriter(SpreadMasterChangeSize)
	m.Header.MessageLength = SpreadMasterChangeSize
	m.Header.marshalInto(w)
	m.Info.marshalInto(w)
	return w.buf
}

func (m *SpreadMasterChange) Unmarshal(buf []byte) {
	r := newReader(buf)
	m.Header.unmarshalFrom(r)
	m.Info.unmarshalFrom(r)
}
