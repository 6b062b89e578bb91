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

import "encoding/binary"

// HeaderSize is the length of the common message header. Every frame begins
// with it and MessageLength (header + body, inclusive) is its last field.
const HeaderSize = 24

// MessageHeader is the 24-byte prefix common to every request, response and
// broadcast frame.
//
// Layout:
//
//	TransactionCode(2) LogTime(4) AlphaChar(2) TraderId(4)
//	ErrorCode(2) Timestamp(8) MessageLength(2)
type MessageHeader struct {
	TransactionCode int16
	LogTime         int32
	AlphaChar       [2]byte
	TraderID        int32
	ErrorCode       int16
	Timestamp       int64
	MessageLength   int16
}

// PeekTransactionCode reads the leading transaction code of a buffer holding
// at least 2 bytes. The framer uses it to pre-screen reserved TR codes before
// a full header is available.
func PeekTransactionCode(buf []byte) int16 {
	return int16(binary.LittleEndian.Uint16(buf))
}

// PeekMessageLength returns the MessageLength field of a buffer holding at
// least HeaderSize bytes.
func PeekMessageLength(buf []byte) int16 {
	return int16(binary.LittleEndian.Uint16(buf[22:]))
}

func (h *MessageHeader) marshalInto(w *writer) {
	w.putI16(h.TransactionCode)
	w.putI32(h.LogTime)
	w.putByte(h.AlphaChar[0])
	w.putByte(h.AlphaChar[1])
	w.putI32(h.TraderID)
	w.putI16(h.ErrorCode)
	w.putI64(h.Timestamp)
	w.putI16(h.MessageLength)
}

func (h *MessageHeader) unmarshalFrom(r *reader) {
	h.TransactionCode = r.i16()
	h.LogTime = r.i32()
	h.AlphaChar[0] = r.byte()
	h.AlphaChar[1] = r.byte()
	h.TraderID = r.i32()
	h.ErrorCode = r.i16()
	h.Timestamp = r.i64()
	h.MessageLength = r.i16()
}

// DecodeHeader decodes the common header from the front of buf. The caller
// must supply at least HeaderSize bytes.
func DecodeHeader(buf []byte) MessageHeader {
	var h MessageHeader
	h.unmarshalFrom(newReader(buf))
	return h
}
