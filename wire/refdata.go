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

// SystemInfoReqSize is the full frame size of MS_SYSTEM_INFO_REQ.
const SystemInfoReqSize = HeaderSize + 4

// SystemInfoReq asks for the exchange-wide system parameters.
//
// Body layout: LastUpdateTime(4)
type SystemInfoReq struct {
	Header         MessageHeader
	LastUpdateTime int32
}

func (m *SystemInfoReq) Marshal() []byte {
	w := newWriter(SystemInfoReqSize)
	m.Header.MessageLength = SystemInfoReqSize
	m.Header.marshalInto(w)
	w.putI32(m.LastUpdateTime)
	return w.buf
}

func (m *SystemInfoReq) Unmarshal(buf []byte) {
	r := newReader(buf)
	m.Header.unmarshalFrom(r)
	m.LastUpdateTime = r.i32()
}

// SystemInfoDataSize is the full frame size of MS_SYSTEM_INFO_DATA. The same
// frame doubles as PARTIAL_SYSTEM_INFORMATION with only the transaction code
// changed, which is how stale local-database requests are answered.
const SystemInfoDataSize = HeaderSize + 66

// SystemInfoData carries the three parallel market-status structures plus the
// session-wide trading parameters.
//
// Body layout:
//
//	MarketStatus(8) ExMarketStatus(8) PlMarketStatus(8) UpdatePortfolio(1)
//	pad(1) MarketIndex(4) DefaultSettlementPeriodNormal(2)
//	DefaultSettlementPeriodSpot(2) DefaultSettlementPeriodAuction(2)
//	CompetitorPeriod(2) SolicitorPeriod(2) WarningPercent(2)
//	VolumeFreezePercent(2) SnapQuoteTime(2) pad(2) BoardLotQuantity(4)
//	TickSize(4) MaximumGtcDays(2) StockEligibleIndicators(2)
//	DisclosedQuantityPercentAllowed(2) RiskFreeInterestRate(4)
type SystemInfoData struct {
	Header                          MessageHeader
	MarketStatus                    MarketStatus
	ExMarketStatus                  MarketStatus
	PlMarketStatus                  MarketStatus
	UpdatePortfolio                 string // 1, Y/N
	MarketIndex                     int32
	DefaultSettlementPeriodNormal   int16
	DefaultSettlementPeriodSpot     int16
	DefaultSettlementPeriodAuction  int16
	CompetitorPeriod                int16
	SolicitorPeriod                 int16
	WarningPercent                  int16
	VolumeFreezePercent             int16
	SnapQuoteTime                   int16
	BoardLotQuantity                int32
	TickSize                        int32
	MaximumGtcDays                  int16
	StockEligibleIndicators         uint16
	DisclosedQuantityPercentAllowed int16
	RiskFreeInterestRate            int32
}

func (m *SystemInfoData) Marshal() []byte {
	w := newWriter(SystemInfoDataSize)
	m.Header.MessageLength = SystemInfoDataSize
	m.Header.marshalInto(w)
	m.MarketStatus.marshalInto(w)
	m.ExMarketStatus.marshalInto(w)
	m.PlMarketStatus.marshalInto(w)
	w.putStr(m.UpdatePortfolio, 1)
	w.pad(1)
	w.putI32(m.MarketIndex)
	w.putI16(m.DefaultSettlementPeriodNormal)
	w.putI16(m.DefaultSettlementPeriodSpot)
	w.putI16(m.DefaultSettlementPeriodAuction)
	w.putI16(m.CompetitorPeriod)
	w.putI16(m.SolicitorPeriod)
	w.putI16(m.WarningPercent)
	w.putI16(m.VolumeFreezePercent)
	w.putI16(m.SnapQuoteTime)
	w.pad(2)
	w.putI32(m.BoardLotQuantity)
	w.putI32(m.TickSize)
	w.putI16(m.MaximumGtcDays)
	w.putU16(m.StockEligibleIndicators)
	w.putI16(m.DisclosedQuantityPercentAllowed)
	w.putI32(m.RiskFreeInterestRate)
	return w.buf
}

func (m *SystemInfoData) Unmarshal(buf []byte) {
	r := newReader(buf)
	m.Header.unmarshalFrom(r)
	m.MarketStatus.unmarshalFrom(r)
	m.ExMarketStatus.unmarshalFrom(r)
	m.PlMarketStatus.unmarshalFrom(r)
	m.UpdatePortfolio = r.str(1)
	r.skip(1)
	m.MarketIndex = r.i32()
	m.DefaultSettlementPeriodNormal = r.i16()
	m.DefaultSettlementPeriodSpot = r.i16()
	m.DefaultSettlementPeriodAuction = r.i16()
	m.CompetitorPeriod = r.i16()
	m.SolicitorPeriod = r.i16()
	m.WarningPercent = r.i16()
	m.VolumeFreezePercent = r.i16()
	m.SnapQuoteTime = r.i16()
	r.skip(2)
	m.BoardLotQuantity = r.i32()
	m.TickSize = r.i32()
	m.MaximumGtcDays = r.i16()
	m.StockEligibleIndicators = r.u16()
	m.DisclosedQuantityPercentAllowed = r.i16()
	m.RiskFreeInterestRate = r.i32()
}

// UpdateLocalDatabaseSize is the full frame size of MS_UPDATE_LOCAL_DATABASE.
const UpdateLocalDatabaseSize = HeaderSize + 42

// UpdateLocalDatabase is the trader's incremental refresh request, carrying
// its cached view of the three market-status structures for staleness
// comparison.
//
// Body layout:
//
//	LastUpdateSecurityTime(4) LastUpdateParticipantTime(4)
//	LastUpdateInstrumentTime(4) LastUpdateIndexTime(4)
//	RequestForOpenOrders(1) pad(1) MarketStatus(8) ExMarketStatus(8)
//	PlMarketStatus(8)
type UpdateLocalDatabase struct {
	Header                    MessageHeader
	LastUpdateSecurityTime    int32
	LastUpdateParticipantTime int32
	LastUpdateInstrumentTime  int32
	LastUpdateIndexTime       int32
	RequestForOpenOrders      string // 1
	MarketStatus              MarketStatus
	ExMarketStatus            MarketStatus
	PlMarketStatus            MarketStatus
}

func (m *UpdateLocalDatabase) Marshal() []byte {
	w := newWriter(UpdateLocalDatabaseSize)
	m.Header.MessageLength = UpdateLocalDatabaseSize
	m.Header.marshalInto(w)
	w.putI32(m.LastUpdateSecurityTime)
	w.putI32(m.LastUpdateParticipantTime)
	w.putI32(m.LastUpdateInstrumentTime)
	w.putI32(m.LastUpdateIndexTime)
	w.putStr(m.RequestForOpenOrders, 1)
	w.pad(1)
	m.MarketStatus.marshalInto(w)
	m.ExMarketStatus.marshalInto(w)
	m.PlMarketStatus.marshalInto(w)
	return w.buf
}

func (m *UpdateLocalDatabase) Unmarshal(buf []byte) {
	r := newReader(buf)
	m.Header.unmarshalFrom(r)
	m.LastUpdateSecurityTime = r.i32()
	m.LastUpdateParticipantTime = r.i32()
	m.LastUpdateInstrumentTime = r.i32()
	m.LastUpdateIndexTime = r.i32()
	m.RequestForOpenOrders = r.str(1)
	r.skip(1)
	m.MarketStatus.unmarshalFrom(r)
	m.ExMarketStatus.unmarshalFrom(r)
	m.PlMarketStatus.unmarshalFrom(r)
}

// UpdateLdbHeaderSize is the full frame size of UPDATE_LDB_HEADER, a bare
// header frame announcing the data frame that follows.
const UpdateLdbHeaderSize = HeaderSize

// UpdateLdbHeader precedes UpdateLdbData in a fresh local-database download.
type UpdateLdbHeader struct {
	Header MessageHeader
}

func (m *UpdateLdbHeader) Marshal() []byte {
	w := newWriter(UpdateLdbHeaderSize)
	m.Header.MessageLength = UpdateLdbHeaderSize
	m.Header.marshalInto(w)
	return w.buf
}

func (m *UpdateLdbHeader) Unmarshal(buf []byte) {
	r := newReader(buf)
	m.Header.unmarshalFrom(r)
}

// UpdateLdbDataSize is the full frame size of UPDATE_LDB_DATA.
const UpdateLdbDataSize = HeaderSize + 72

// UpdateLdbData carries one increment of local-database payload behind an
// inner header echoing the outer one.
//
// Body layout: InnerHeader(24) Data(48)
type UpdateLdbData struct {
	Header      MessageHeader
	InnerHeader MessageHeader
	Data        string // 48
}

func (m *UpdateLdbData) Marshal() []byte {
	w := newWriter(UpdateLdbDataSize)
	m.Header.MessageLength = UpdateLdbDataSize
	m.Header.marshalInto(w)
	m.InnerHeader.marshalInto(w)
	w.putStr(m.Data, 48)
	return w.buf
}

func (m *UpdateLdbData) Unmarshal(buf []byte) {
	r := newReader(buf)
	m.Header.unmarshalFrom(r)
	m.InnerHeader.unmarshalFrom(r)
	m.Data = r.str(48)
}

// ExchPortfolioReqSize is the full frame size of EXCH_PORTFOLIO_REQ.
const ExchPortfolioReqSize = HeaderSize + 4

// ExchPortfolioReq asks for the trader's exchange portfolio snapshot.
//
// Body layout: LastUpdateDtTime(4)
type ExchPortfolioReq struct {
	Header           MessageHeader
	LastUpdateDtTime int32
}

func (m *ExchPortfolioReq) Marshal() []byte {
	w := newWriter(ExchPortfolioReqSize)
	m.Header.MessageLength = ExchPortfolioReqSize
	m.Header.marshalInto(w)
	w.putI32(m.LastUpdateDtTime)
	return w.buf
}

func (m *ExchPortfolioReq) Unmarshal(buf []byte) {
	r := newReader(buf)
	m.Header.unmarshalFrom(r)
	m.LastUpdateDtTime = r.i32()
}

// PortfolioDataSize is the width of one embedded portfolio record.
const PortfolioDataSize = 20

// PortfolioData is one portfolio row inside ExchPortfolioResp.
//
// Layout: Portfolio(10) Token(4) LastUpdateDtTime(4) DeleteFlag(1) pad(1)
type PortfolioData struct {
	Portfolio        string // 10
	Token            int32
	LastUpdateDtTime int32
	DeleteFlag       string // 1, Y/N
}

func (p *PortfolioData) marshalInto(w *writer) {
	w.putStr(p.Portfolio, 10)
	w.putI32(p.Token)
	w.putI32(p.LastUpdateDtTime)
	w.putStr(p.DeleteFlag, 1)
	w.pad(1)
}

func (p *PortfolioData) unmarshalFrom(r *reader) {
	p.Portfolio = r.str(10)
	p.Token = r.i32()
	p.LastUpdateDtTime = r.i32()
	p.DeleteFlag = r.str(1)
	r.skip(1)
}

// ExchPortfolioRespSize is the full frame size of EXCH_PORTFOLIO_RESP.
const ExchPortfolioRespSize = HeaderSize + 24

// ExchPortfolioResp returns a single portfolio record per frame.
//
// Body layout: NoOfRecords(2) MoreRecords(1) pad(1) PortfolioData(20)
type ExchPortfolioResp struct {
	Header      MessageHeader
	NoOfRecords int16
	MoreRecords string // 1, Y/N
	Portfolio   PortfolioData
}

func (m *ExchPortfolioResp) Marshal() []byte {
	w := newWriter(ExchPortfolioRespSize)
	m.Header.MessageLength = ExchPortfolioRespSize
	m.Header.marshalInto(w)
	w.putI16(m.NoOfRecords)
	w.putStr(m.MoreRecords, 1)
	w.pad(1)
	m.Portfolio.marshalInto(w)
	return w.buf
}

func (m *ExchPortfolioResp) Unmarshal(buf []byte) {
	r := newReader(buf)
	m.Header.unmarshalFrom(r)
	m.NoOfRecords = r.i16()
	m.MoreRecords = r.str(1)
	r.skip(1)
	m.Portfolio.unmarshalFrom(r)
}

// MessageDownloadSize is the full frame size of MS_MESSAGE_DOWNLOAD.
const MessageDownloadSize = HeaderSize + 8

// MessageDownload requests a replay of queued trader messages from the given
// sequence number onward.
//
// Body layout: SequenceNumber(8)
type MessageDownload struct {
	Header         MessageHeader
	SequenceNumber float64
}

func (m *MessageDownload) Marshal() []byte {
	w := newWriter(MessageDownloadSize)
	m.Header.MessageLength = MessageDownloadSize
	m.Header.marshalInto(w)
	w.putF64(m.SequenceNumber)
	return w.buf
}

func (m *MessageDownload) Unmarshal(buf []byte) {
	r := newReader(buf)
	m.Header.unmarshalFrom(r)
	m.SequenceNumber = r.f64()
}

// MessageDownloadHeaderSize is the full frame size of the download header,
// a bare header frame.
const MessageDownloadHeaderSize = HeaderSize

// MessageDownloadHeader opens the download header/data/trailer trio.
type MessageDownloadHeader struct {
	Header MessageHeader
}

func (m *MessageDownloadHeader) Marshal() []byte {
	w := newWriter(MessageDownloadHeaderSize)
	m.Header.MessageLength = MessageDownloadHeaderSize
	m.Header.marshalInto(w)
	return w.buf
}

func (m *MessageDownloadHeader) Unmarshal(buf []byte) {
	r := newReader(buf)
	m.Header.unmarshalFrom(r)
}

// MessageDownloadDataSize is the full frame size of the download data frame.
const MessageDownloadDataSize = HeaderSize + 244

// MessageDownloadData carries one replayed trader message: the message's own
// header followed by its opaque payload.
//
// Body layout: InnerHeader(24) InnerData(220)
type MessageDownloadData struct {
	Header      MessageHeader
	InnerHeader MessageHeader
	InnerData   string // 220
}

func (m *MessageDownloadData) Marshal() []byte {
	w := newWriter(MessageDownloadDataSize)
	m.Header.MessageLength = MessageDownloadDataSize
	m.Header.marshalInto(w)
	m.InnerHeader.marshalInto(w)
	w.putStr(m.InnerData, 220)
	return w.buf
}

func (m *MessageDownloadData) Unmarshal(buf []byte) {
	r := newReader(buf)
	m.Header.unmarshalFrom(r)
	m.InnerHeader.unmarshalFrom(r)
	m.InnerData = r.str(220)
}

// MessageDownloadTrailerSize is the full frame size of the download trailer,
// a bare header frame.
const MessageDownloadTrailerSize = HeaderSize

// MessageDownloadTrailer closes the download trio.
type MessageDownloadTrailer struct {
	Header MessageHeader
}

func (m *MessageDownloadTrailer) Marshal() []byte {
	w := newWriter(MessageDownloadTrailerSize)
	m.Header.MessageLength = MessageDownloadTrailerSize
	m.Header.marshalInto(w)
	return w.buf
}

func (m *MessageDownloadTrailer) Unmarshal(buf []byte) {
	r := newReader(buf)
	m.Header.unmarshalFrom(r)
}
