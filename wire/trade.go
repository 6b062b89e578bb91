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

// TradeInqSize is the full frame size of MS_TRADE_INQ_DATA, the two-party
// trade modification/cancellation request.
const TradeInqSize = HeaderSize + 82

// TradeInq is the trade modification/cancellation request record. The same
// layout serves the confirmation and rejection responses.
//
// Body layout:
//
//	FillNumber(4) TokenNo(4) FillQuantity(4) FillPrice(4) MktType(1)
//	RequestedBy(1) BuyOpenClose(1) SellOpenClose(1) BuyBrokerID(5)
//	SellBrokerID(5) BuyAccountNumber(10) SellAccountNumber(10) TraderID(4)
//	Contract(28)
type TradeInq struct {
	Header            MessageHeader
	FillNumber        int32
	TokenNo           int32
	FillQuantity      int32
	FillPrice         int32
	MktType           byte // '1'..'4'
	RequestedBy       byte // '1' buyer, '2' seller, '3' both
	BuyOpenClose      byte // 'O' or 'C'
	SellOpenClose     byte // 'O' or 'C'
	BuyBrokerID       string // 5
	SellBrokerID      string // 5
	BuyAccountNumber  string // 10
	SellAccountNumber string // 10
	TraderID          int32
	Contract          ContractDesc
}

func (m *TradeInq) Marshal() []byte {
	w := newWriter(TradeInqSize)
	m.Header.MessageLength = TradeInqSize
	m.Header.marshalInto(w)
	w.putI32(m.FillNumber)
	w.putI32(m.TokenNo)
	w.putI32(m.FillQuantity)
	w.putI32(m.FillPrice)
	w.putByte(m.MktType)
	w.putByte(m.RequestedBy)
	w.putByte(m.BuyOpenClose)
	w.putByte(m.SellOpenClose)
	w.putStr(m.BuyBrokerID, 5)
	w.putStr(m.SellBrokerID, 5)
	w.putStr(m.BuyAccountNumber, 10)
	w.putStr(m.SellAccountNumber, 10)
	w.putI32(m.TraderID)
	m.Contract.marshalInto(w)
	return w.buf
}

func (m *TradeInq) Unmarshal(buf []byte) {
	r := newReader(buf)
	m.Header.unmarshalFrom(r)
	m.FillNumber = r.i32()
	m.TokenNo = r.i32()
	m.FillQuantity = r.i32()
	m.FillPrice = r.i32()
	m.MktType = r.byte()
	m.RequestedBy = r.byte()
	m.BuyOpenClose = r.byte()
	m.SellOpenClose = r.byte()
	m.BuyBrokerID = r.str(5)
	m.SellBrokerID = r.str(5)
	m.BuyAccountNumber = r.str(10)
	m.SellAccountNumber = r.str(10)
	m.TraderID = r.i32()
	m.Contract.unmarshalFrom(r)
}

// TradeConfirmSize is the full frame size of MS_TRADE_CONFIRM. Stop-loss and
// market-if-touched trigger notifications reuse this frame with the cause
// encoded in the flags word.
const TradeConfirmSize = HeaderSize + 94

// TradeConfirm is the unsolicited trade confirmation record.
//
// Body layout:
//
//	ResponseOrderNumber(8) BrokerID(5) pad(1) TraderID(4)
//	AccountNumber(10) BuySellIndicator(2) OriginalVolume(4)
//	DisclosedVolume(4) RemainingVolume(4) FillQuantity(4) FillPrice(4)
//	FillNumber(4) Flags(2) ActivityTime(4) TokenNo(4) Contract(28)
//	OpenClose(1) pad(1)
type TradeConfirm struct {
	Header              MessageHeader
	ResponseOrderNumber float64
	BrokerID            string // 5
	TraderID            int32
	AccountNumber       string // 10
	BuySellIndicator    int16
	OriginalVolume      int32
	DisclosedVolume     int32
	RemainingVolume     int32
	FillQuantity        int32
	FillPrice           int32
	FillNumber          int32
	Flags               uint16
	ActivityTime        int32
	TokenNo             int32
	Contract            ContractDesc
	OpenClose           byte // 'O' or 'C'
}

func (m *TradeConfirm) Marshal() []byte {
	w := newWriter(TradeConfirmSize)
	m.Header.MessageLength = TradeConfirmSize
	m.Header.marshalInto(w)
	w.putF64(m.ResponseOrderNumber)
	w.putStr(m.BrokerID, 5)
	w.pad(1)
	w.putI32(m.TraderID)
	w.putStr(m.AccountNumber, 10)
	w.putI16(m.BuySellIndicator)
	w.putI32(m.OriginalVolume)
	w.putI32(m.DisclosedVolume)
	w.putI32(m.RemainingVolume)
	w.putI32(m.FillQuantity)
	w.putI32(m.FillPrice)
	w.putI32(m.FillNumber)
	w.putU16(m.Flags)
	w.putI32(m.ActivityTime)
	w.putI32(m.TokenNo)
	m.Contract.marshalInto(w)
	w.putByte(m.OpenClose)
	w.pad(1)
	return w.buf
}

func (m *TradeConfirm) Unmarshal(buf []byte) {
	r := newReader(buf)
	m.Header.unmarshalFrom(r)
	m.ResponseOrderNumber = r.f64()
	m.BrokerID = r.str(5)
	r.skip(1)
	m.TraderID = r.i32()
	m.AccountNumber = r.str(10)
	m.BuySellIndicator = r.i16()
	m.OriginalVolume = r.i32()
	m.DisclosedVolume = r.i32()
	m.RemainingVolume = r.i32()
	m.FillQuantity = r.i32()
	m.FillPrice = r.i32()
	m.FillNumber = r.i32()
	m.Flags = r.u16()
	m.ActivityTime = r.i32()
	m.TokenNo = r.i32()
	m.Contract.unmarshalFrom(r)
	m.OpenClose = r.byte()
	r.skip(1)
}
