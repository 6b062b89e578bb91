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

// SignOnSize is the full frame size of MS_SIGNON_REQUEST_IN/OUT. Request and
// response share the layout; the response mirrors the request's profile
// fields back with BrokerStatus/ShowIndex/EndTime filled in.
const SignOnSize = HeaderSize + 108

// SignOn is the sign-on request/response record.
//
// Body layout:
//
//	UserID(4) Password(8) NewPassword(8) TraderName(26) BranchID(4)
//	VersionNumber(4) BrokerEligibilityPerMarket(2) UserType(2)
//	SequenceNumber(8) BrokerID(5) pad(1) MemberType(2) ClearingStatus(1)
//	BrokerName(26) BrokerStatus(1) ShowIndex(1) pad(1) EndTime(4)
type SignOn struct {
	Header                     MessageHeader
	UserID                     int32
	Password                   string // 8
	NewPassword                string // 8
	TraderName                 string // 26
	BranchID                   int32
	VersionNumber              int32
	BrokerEligibilityPerMarket uint16
	UserType                   int16
	SequenceNumber             float64
	BrokerID                   string // 5
	MemberType                 int16
	ClearingStatus             string // 1
	BrokerName                 string // 26
	BrokerStatus               string // 1
	ShowIndex                  string // 1
	EndTime                    int32
}

func (m *SignOn) Marshal() []byte {
	w := newWriter(SignOnSize)
	m.Header.MessageLength = SignOnSize
	m.Header.marshalInto(w)
	w.putI32(m.UserID)
	w.putStr(m.Password, 8)
	w.putStr(m.NewPassword, 8)
	w.putStr(m.TraderName, 26)
	w.putI32(m.BranchID)
	w.putI32(m.VersionNumber)
	w.putU16(m.BrokerEligibilityPerMarket)
	w.putI16(m.UserType)
	w.putF64(m.SequenceNumber)
	w.putStr(m.BrokerID, 5)
	w.pad(1)
	w.putI16(m.MemberType)
	w.putStr(m.ClearingStatus, 1)
	w.putStr(m.BrokerName, 26)
	w.putStr(m.BrokerStatus, 1)
	w.putStr(m.ShowIndex, 1)
	w.pad(1)
	w.putI32(m.EndTime)
	return w.buf
}

func (m *SignOn) Unmarshal(buf []byte) {
	r := newReader(buf)
	m.Header.unmarshalFrom(r)
	m.UserID = r.i32()
	m.Password = r.str(8)
	m.NewPassword = r.str(8)
	m.TraderName = r.str(26)
	m.BranchID = r.i32()
	m.VersionNumber = r.i32()
	m.BrokerEligibilityPerMarket = r.u16()
	m.UserType = r.i16()
	m.SequenceNumber = r.f64()
	m.BrokerID = r.str(5)
	r.skip(1)
	m.MemberType = r.i16()
	m.ClearingStatus = r.str(1)
	m.BrokerName = r.str(26)
	m.BrokerStatus = r.str(1)
	m.ShowIndex = r.str(1)
	r.skip(1)
	m.EndTime = r.i32()
}

// SignOffSize is the full frame size of MS_SIGNOFF / SIGNOFF_OUT.
const SignOffSize = HeaderSize + 4

// SignOff is the sign-off request/confirmation record.
//
// Body layout: UserID(4)
type SignOff struct {
	Header MessageHeader
	UserID int32
}

func (m *SignOff) Marshal() []byte {
	w := newWriter(SignOffSize)
	m.Header.MessageLength = SignOffSize
	m.Header.marshalInto(w)
	w.putI32(m.UserID)
	return w.buf
}

func (m *SignOff) Unmarshal(buf []byte) {
	r := newReader(buf)
	m.Header.unmarshalFrom(r)
	m.UserID = r.i32()
}
