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

// BhavcopyHeaderSize is the full frame size of the report header opening a
// bhavcopy broadcast run.
const BhavcopyHeaderSize = HeaderSize + 6

// BhavcopyHeader opens the end-of-session report sequence.
//
// Body layout: MessageType(1) pad(1) ReportDate(4)
type BhavcopyHeader struct {
	Header      MessageHeader
	MessageType byte // session type
	ReportDate  int32
}

func (m *BhavcopyHeader) Marshal() []byte {
	w := newWriter(BhavcopyHeaderSize)
	m.Header.MessageLength = BhavcopyHeaderSize
	m.Header.marshalInto(w)
	w.putByte(m.MessageType)
	w.pad(1)
	w.putI32(m.ReportDate)
	return w.buf
}

func (m *BhavcopyHeader) Unmarshal(buf []byte) {
	r := newReader(buf)
	m.Header.unmarshalFrom(r)
	m.MessageType = r.byte()
	r.skip(1)
	m.ReportDate = r.i32()
}

// MktStatsDataSize is the width of one embedded market-statistics record.
const MktStatsDataSize = 76

// MktStatsData is one contract's end-of-session statistics row.
//
// Layout:
//
//	Contract(28) OpenPrice(4) HighPrice(4) LowPrice(4) ClosingPrice(4)
//	TotalQuantityTraded(4) TotalValueTraded(8) PreviousClosePrice(4)
//	OpenInterest(4) DayHiOI(4) DayLoOI(4) Indicator(2) pad(2)
type MktStatsData struct {
	Contract            ContractDesc
	OpenPrice           int32
	HighPrice           int32
	LowPrice            int32
	ClosingPrice        int32
	TotalQuantityTraded int32
	TotalValueTraded    float64
	PreviousClosePrice  int32
	OpenInterest        int32
	DayHiOI             int32
	DayLoOI             int32
	Indicator           uint16
}

func (s *MktStatsData) marshalInto(w *writer) {
	s.Contract.marshalInto(w)
	w.putI32(s.OpenPrice)
	w.putI32(s.HighPrice)
	w.putI32(s.LowPrice)
	w.putI32(s.ClosingPrice)
	w.putI32(s.TotalQuantityTraded)
	w.putF64(s.TotalValueTraded)
	w.putI32(s.PreviousClosePrice)
	w.putI32(s.OpenInterest)
	w.putI32(s.DayHiOI)
	w.putI32(s.DayLoOI)
	w.putU16(s.Indicator)
	w.pad(2)
}

func (s *MktStatsData) unmarshalFrom(r *reader) {
	s.Contract.unmarshalFrom(r)
	s.OpenPrice = r.i32()
	s.HighPrice = r.i32()
	s.LowPrice = r.i32()
	s.ClosingPrice = r.i32()
	s.TotalQuantityTraded = r.i32()
	s.TotalValueTraded = r.f64()
	s.PreviousClosePrice = r.i32()
	s.OpenInterest = r.i32()
	s.DayHiOI = r.i32()
	s.DayLoOI = r.i32()
	s.Indicator = r.u16()
	r.skip(2)
}

// MktStatsReportSize is the full frame size of the regular market-statistics
// packet, which carries exactly one record.
const MktStatsReportSize = HeaderSize + 80

// MktStatsReport is the regular (one record per frame) statistics packet.
//
// Body layout: MessageType(1) pad(1) NumberOfRecords(2) MktStatsData(76)
type MktStatsReport struct {
	Header          MessageHeader
	MessageType     byte
	NumberOfRecords int16
	Stats           MktStatsData
}

func (m *MktStatsReport) Marshal() []byte {
	w := newWriter(MktStatsReportSize)
	m.Header.MessageLength = MktStatsReportSize
	m.Header.marshalInto(w)
	w.putByte(m.MessageType)
	w.pad(1)
	w.putI16(m.NumberOfRecords)
	m.Stats.marshalInto(w)
	return w.buf
}

func (m *MktStatsReport) Unmarshal(buf []byte) {
	r := newReader(buf)
	m.Header.unmarshalFrom(r)
	m.MessageType = r.byte()
	r.skip(1)
	m.NumberOfRecords = r.i16()
	m.Stats.unmarshalFrom(r)
}

// EnhancedMktStatsRecords is the record capacity of the enhanced packet.
const EnhancedMktStatsRecords = 4

// EnhancedMktStatsReportSize is the full frame size of the enhanced
// market-statistics packet.
const EnhancedMktStatsReportSize = HeaderSize + 4 + EnhancedMktStatsRecords*MktStatsDataSize

// EnhancedMktStatsReport packs up to four statistics records per frame.
// Unused slots are zero.
//
// Body layout: NumberOfRecords(2) pad(2) MktStatsData(76) x4
type EnhancedMktStatsReport struct {
	Header          MessageHeader
	NumberOfRecords int16
	Stats           [EnhancedMktStatsRecords]MktStatsData
}

func (m *EnhancedMktStatsReport) Marshal() []byte {
	w := newWriter(EnhancedMktStatsReportSize)
	m.Header.MessageLength = EnhancedMktStatsReportSize
	m.Header.marshalInto(w)
	w.putI16(m.NumberOfRecords)
	w.pad(2)
	for i := range m.Stats {
		m.Stats[i].marshalInto(w)
	}
	return w.buf
}

func (m *EnhancedMktStatsReport) Unmarshal(buf []byte) {
	r := newReader(buf)
	m.Header.unmarshalFrom(r)
	m.NumberOfRecords = r.i16()
	r.skip(2)
	for i := range m.Stats {
		m.Stats[i].unmarshalFrom(r)
	}
}

// SpdStatsDataSize is the width of one embedded spread-statistics record.
const SpdStatsDataSize = 92

// SpdStatsData is one spread combination's end-of-session statistics row.
//
// Layout:
//
//	Token1(4) Token2(4) Contract1(28) Contract2(28) OpenPriceDiff(4)
//	HighPriceDiff(4) LowPriceDiff(4) ClosePriceDiff(4)
//	TotalQuantityTraded(4) TotalValueTraded(8)
type SpdStatsData struct {
	Token1              int32
	Token2              int32
	Contract1           ContractDesc
	Contract2           ContractDesc
	OpenPriceDiff       int32
	HighPriceDiff       int32
	LowPriceDiff        int32
	ClosePriceDiff      int32
	TotalQuantityTraded int32
	TotalValueTraded    float64
}

func (s *SpdStatsData) marshalInto(w *writer) {
	w.putI32(s.Token1)
	w.putI32(s.Token2)
	s.Contract1.marshalInto(w)
	s.Contract2.marshalInto(w)
	w.putI32(s.OpenPriceDiff)
	w.putI32(s.HighPriceDiff)
	w.putI32(s.LowPriceDiff)
	w.putI32(s.ClosePriceDiff)
	w.putI32(s.TotalQuantityTraded)
	w.putF64(s.TotalValueTraded)
}

func (s *SpdStatsData) unmarshalFrom(r *reader) {
	s.Token1 = r.i32()
	s.Token2 = r.i32()
	s.Contract1.unmarshalFrom(r)
	s.Contract2.unmarshalFrom(r)
	s.OpenPriceDiff = r.i32()
	s.HighPriceDiff = r.i32()
	s.LowPriceDiff = r.i32()
	s.ClosePriceDiff = r.i32()
	s.TotalQuantityTraded = r.i32()
	s.TotalValueTraded = r.f64()
}

// SpdStatsRecords is the record capacity of the spread-statistics packet.
const SpdStatsRecords = 3

// SpdStatsReportSize is the full frame size of the spread-statistics packet.
const SpdStatsReportSize = HeaderSize + 4 + SpdStatsRecords*SpdStatsDataSize

// SpdStatsReport packs up to three spread-statistics records per frame.
//
// Body layout: NumberOfRecords(2) pad(2) SpdStatsData(92) x3
type SpdStatsReport struct {
	Header          MessageHeader
	NumberOfRecords int16
	Stats           [SpdStatsRecords]SpdStatsData
}

func (m *SpdStatsReport) Marshal() []byte {
	w := newWriter(SpdStatsReportSize)
	m.Header.MessageLength = SpdStatsReportSize
	m.Header.marshalInto(w)
	w.putI16(m.NumberOfRecords)
	w.pad(2)
	for i := range m.Stats {
		m.Stats[i].marshalInto(w)
	}
	return w.buf
}

func (m *SpdStatsReport) Unmarshal(buf []byte) {
	r := newReader(buf)
	m.Header.unmarshalFrom(r)
	m.NumberOfRecords = r.i16()
	r.skip(2)
	for i := range m.Stats {
		m.Stats[i].unmarshalFrom(r)
	}
}

// BhavcopyTrailerSize is the full frame size of the report trailer.
const BhavcopyTrailerSize = HeaderSize + 4

// BhavcopyTrailer closes the data-packet portion of a bhavcopy run.
//
// Body layout: MessageType(1) pad(1) NumberOfPackets(2)
type BhavcopyTrailer struct {
	Header          MessageHeader
	MessageType     byte
	NumberOfPackets int16
}

func (m *BhavcopyTrailer) Marshal() []byte {
	w := newWriter(BhavcopyTrailerSize)
	m.Header.MessageLength = BhavcopyTrailerSize
	m.Header.marshalInto(w)
	w.putByte(m.MessageType)
	w.pad(1)
	w.putI16(m.NumberOfPackets)
	return w.buf
}

func (m *BhavcopyTrailer) Unmarshal(buf []byte) {
	r := newReader(buf)
	m.Header.unmarshalFrom(r)
	m.MessageType = r.byte()
	r.skip(1)
	m.NumberOfPackets = r.i16()
}

// MktIndexReportSize is the full frame size of the market-index report.
const MktIndexReportSize = HeaderSize + 42

// MktIndexReport carries the headline market index.
//
// Body layout:
//
//	IndexName(21) pad(1) IndexValue(4) OpeningIndex(4) HighIndexValue(4)
//	LowIndexValue(4) ClosingIndex(4)
type MktIndexReport struct {
	Header         MessageHeader
	IndexName      string // 21
	IndexValue     int32
	OpeningIndex   int32
	HighIndexValue int32
	LowIndexValue  int32
	ClosingIndex   int32
}

func (m *MktIndexReport) Marshal() []byte {
	w := newWriter(MktIndexReportSize)
	m.Header.MessageLength = MktIndexReportSize
	m.Header.marshalInto(w)
	w.putStr(m.IndexName, 21)
	w.pad(1)
	w.putI32(m.IndexValue)
	w.putI32(m.OpeningIndex)
	w.putI32(m.HighIndexValue)
	w.putI32(m.LowIndexValue)
	w.putI32(m.ClosingIndex)
	return w.buf
}

func (m *MktIndexReport) Unmarshal(buf []byte) {
	r := newReader(buf)
	m.Header.unmarshalFrom(r)
	m.IndexName = r.str(21)
	r.skip(1)
	m.IndexValue = r.i32()
	m.OpeningIndex = r.i32()
	m.HighIndexValue = r.i32()
	m.LowIndexValue = r.i32()
	m.ClosingIndex = r.i32()
}

// IndustryIndexEntrySize is the width of one embedded industry-index row.
const IndustryIndexEntrySize = 20

// IndustryIndexEntry is one industry's index value.
//
// Layout: IndustryName(15) pad(1) IndexValue(4)
type IndustryIndexEntry struct {
	IndustryName string // 15
	IndexValue   int32
}

func (e *IndustryIndexEntry) marshalInto(w *writer) {
	w.putStr(e.IndustryName, 15)
	w.pad(1)
	w.putI32(e.IndexValue)
}

func (e *IndustryIndexEntry) unmarshalFrom(r *reader) {
	e.IndustryName = r.str(15)
	r.skip(1)
	e.IndexValue = r.i32()
}

// IndustryIndexRecords is the row capacity of industry and sector packets.
const IndustryIndexRecords = 10

// IndustryIndexReportSize is the full frame size of the industry-index
// packet.
const IndustryIndexReportSize = HeaderSize + 4 + IndustryIndexRecords*IndustryIndexEntrySize

// IndustryIndexReport packs up to ten industry index rows per frame.
//
// Body layout: NoOfRecords(2) pad(2) IndustryIndexEntry(20) x10
type IndustryIndexReport struct {
	Header      MessageHeader
	NoOfRecords int16
	Entries     [IndustryIndexRecords]IndustryIndexEntry
}

func (m *IndustryIndexReport) Marshal() []byte {
	w := newWriter(IndustryIndexReportSize)
	m.Header.MessageLength = IndustryIndexReportSize
	m.Header.marshalInto(w)
	w.putI16(m.NoOfRecords)
	w.pad(2)
	for i := range m.Entries {
		m.Entries[i].marshalInto(w)
	}
	return w.buf
}

func (m *IndustryIndexReport) Unmarshal(buf []byte) {
	r := newReader(buf)
	m.Header.unmarshalFrom(r)
	m.NoOfRecords = r.i16()
	r.skip(2)
	for i := range m.Entries {
		m.Entries[i].unmarshalFrom(r)
	}
}

// SectorIndexReportSize is the full frame size of the sector-index packet.
const SectorIndexReportSize = HeaderSize + 20 + IndustryIndexRecords*IndustryIndexEntrySize

// SectorIndexReport groups up to ten index rows under one sector name.
//
// Body layout:
//
//	IndustryName(15) pad(1) NoOfRecords(2) pad(2) IndustryIndexEntry(20) x10
type SectorIndexReport struct {
	Header       MessageHeader
	IndustryName string // 15, sector name
	NoOfRecords  int16
	Entries      [IndustryIndexRecords]IndustryIndexEntry
}

func (m *SectorIndexReport) Marshal() []byte {
	w := newWriter(SectorIndexReportSize)
	m.Header.MessageLength = SectorIndexReportSize
	m.Header.marshalInto(w)
	w.putStr(m.IndustryName, 15)
	w.pad(1)
	w.putI16(m.NoOfRecords)
	w.pad(2)
	for i := range m.Entries {
		m.Entries[i].marshalInto(w)
	}
	return w.buf
}

func (m *SectorIndexReport) Unmarshal(buf []byte) {
	r := newReader(buf)
	m.Header.unmarshalFrom(r)
	m.IndustryName = r.str(15)
	r.skip(1)
	m.NoOfRecords = r.i16()
	r.skip(2)
	for i := range m.Entries {
		m.Entries[i].unmarshalFrom(r)
	}
}
